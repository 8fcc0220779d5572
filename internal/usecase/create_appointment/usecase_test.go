package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	appointmentRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/appointment"
	policyRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/policy"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/clientservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/ptr"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

type stubLogger struct{}

func (l *stubLogger) Info(format string, v ...interface{})  {}
func (l *stubLogger) Warn(format string, v ...interface{})  {}
func (l *stubLogger) Error(format string, v ...interface{}) {}

type stubTimeProvider struct {
	now time.Time
}

func (p *stubTimeProvider) Now() time.Time {
	return p.now
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	intervals []*domain.BusyInterval
	createErr error

	created *domain.Appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	appointment.ID = 42
	r.created = appointment
	return appointment, nil
}

func (r *fakeAppointmentRepo) GetBusyIntervals(ctx context.Context, companyID int64, date time.Time, employeeIDs []int64) ([]*domain.BusyInterval, error) {
	return r.intervals, nil
}

type fakePolicyRepo struct {
	policy *domain.CompanyBookingPolicy
	err    error
}

func (r *fakePolicyRepo) GetByCompany(ctx context.Context, companyID int64) (*domain.CompanyBookingPolicy, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.policy, nil
}

type fakeCatalogClient struct {
	company  *catalogservice.Company
	services []*catalogservice.Service

	companyErr  error
	servicesErr error
}

func (c *fakeCatalogClient) GetCompany(ctx context.Context, companyID int64) (*catalogservice.Company, error) {
	if c.companyErr != nil {
		return nil, c.companyErr
	}
	return c.company, nil
}

func (c *fakeCatalogClient) GetServices(ctx context.Context, companyID int64, serviceIDs []int64) ([]*catalogservice.Service, error) {
	if c.servicesErr != nil {
		return nil, c.servicesErr
	}
	return c.services, nil
}

type fakeClientClient struct {
	err error
}

func (c *fakeClientClient) GetClient(ctx context.Context, clientID int64) (*clientservice.ClientProfile, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &clientservice.ClientProfile{ID: clientID}, nil
}

func mondayCompany() *catalogservice.Company {
	return &catalogservice.Company{
		ID: 1,
		DaysOfWeek: []catalogservice.DayOfWeek{
			{DayOfWeek: 1, StartTime: ptr.Ptr("09:00"), EndTime: ptr.Ptr("18:00")},
		},
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, catalog *fakeCatalogClient) *UseCase {
	uc := NewUseCase(
		repo,
		&fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		catalog,
		&fakeClientClient{},
		&fakeTxManager{},
		&stubLogger{},
	)
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	uc.randomProvider = &stubRandomProvider{index: 0}
	return uc
}

func TestExecute_CreatesStackedAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	catalog := &fakeCatalogClient{
		company: mondayCompany(),
		services: []*catalogservice.Service{
			testService(1, "01:00", 10),
			testService(2, "00:30", 11),
		},
	}
	uc := newTestUseCase(repo, catalog)

	req := &Request{
		CompanyID: 1,
		ClientID:  2,
		Date:      testDate,
		StartTime: "10:00",
		Items:     []ItemRequest{{ServiceID: 1}, {ServiceID: 2}},
	}

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	appointment := resp.Appointment
	assert.Equal(t, int64(42), appointment.ID)
	assert.Equal(t, domain.StatusConfirmed, appointment.Status)
	assert.Equal(t, types.TimeString("10:00"), appointment.StartTime)
	assert.Equal(t, types.TimeString("11:30"), appointment.EndTime)

	require.Len(t, appointment.Items, 2)
	assert.Equal(t, types.TimeString("10:00"), appointment.Items[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), appointment.Items[0].EndTime)
	assert.Equal(t, int64(10), appointment.Items[0].EmployeeID)
	assert.Equal(t, types.TimeString("11:00"), appointment.Items[1].StartTime)
	assert.Equal(t, types.TimeString("11:30"), appointment.Items[1].EndTime)
	assert.Equal(t, int64(11), appointment.Items[1].EmployeeID)
}

func TestExecute_SlotDoesNotFit(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "02:00", 10)},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, catalog)

	req := &Request{
		CompanyID: 1,
		ClientID:  2,
		Date:      testDate,
		StartTime: "17:00", // 17:00 + 2 часа выходит за конец смены
		Items:     []ItemRequest{{ServiceID: 1}},
	}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CompanyClosed(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  &catalogservice.Company{ID: 1},
		services: []*catalogservice.Service{testService(1, "01:00", 10)},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, catalog)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCompanyClosed)
}

func TestExecute_TooLateToBook(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 10)},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, catalog)
	// Сегодня, правило по умолчанию требует час до начала
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, time.March, 9, 9, 30, 0, 0, time.UTC)}

	req := validRequest() // начало 10:00

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_EmployeeBusy(t *testing.T) {
	repo := &fakeAppointmentRepo{
		intervals: []*domain.BusyInterval{busy(10, 1, "10:00", "11:00")},
	}
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 10)},
	}
	uc := newTestUseCase(repo, catalog)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrNoEmployeeAvailable)
}

func TestExecute_ManualEmployeeNotEligible(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 10)},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, catalog)

	req := validRequest()
	req.Items = []ItemRequest{{ServiceID: 1, EmployeeID: ptr.Ptr(int64(99))}}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrEmployeeNotEligible)
}

func TestExecute_DuplicateSession(t *testing.T) {
	repo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrDuplicateSession}
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 10)},
	}
	uc := newTestUseCase(repo, catalog)

	req := validRequest()
	req.SessionID = ptr.Ptr("session-1")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAppointmentAlreadyExists)
}

func TestExecute_DuplicateWithoutSession(t *testing.T) {
	// Нарушение уникальности без session_id не должно приводить к панике
	repo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrDuplicateSession}
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 10)},
	}
	uc := newTestUseCase(repo, catalog)

	req := validRequest()
	req.SessionID = nil

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAppointmentAlreadyExists)
}

func TestExecute_ServiceCountMismatch(t *testing.T) {
	// Каталог вернул меньше услуг, чем запрошено
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 10)},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, catalog)

	req := validRequest()
	req.Items = []ItemRequest{{ServiceID: 1}, {ServiceID: 2}}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ClientNotFound(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 10)},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, catalog)
	uc.clientClient = &fakeClientClient{err: clientservice.ErrClientNotFound}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestStackItems(t *testing.T) {
	services := []*catalogservice.Service{
		testService(1, "01:00", 10),
		testService(2, "00:45", 11),
	}
	items := []ItemRequest{{ServiceID: 1}, {ServiceID: 2}}

	stacked, total, err := stackItems("09:00", items, services)

	require.NoError(t, err)
	assert.Equal(t, 105, total)
	require.Len(t, stacked, 2)
	assert.Equal(t, types.TimeString("09:00"), stacked[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), stacked[0].EndTime)
	assert.Equal(t, types.TimeString("10:00"), stacked[1].StartTime)
	assert.Equal(t, types.TimeString("10:45"), stacked[1].EndTime)
	assert.Equal(t, "Test Service", stacked[0].ServiceName)
	assert.Equal(t, 100.0, stacked[0].ServicePrice)
}

func TestStackItems_OrderMismatch(t *testing.T) {
	services := []*catalogservice.Service{testService(2, "01:00", 10)}
	items := []ItemRequest{{ServiceID: 1}}

	_, _, err := stackItems("09:00", items, services)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestEligibleEmployeeIDs_Dedup(t *testing.T) {
	services := []*catalogservice.Service{
		testService(1, "01:00", 10, 11),
		testService(2, "00:30", 11, 12),
	}

	assert.Equal(t, []int64{10, 11, 12}, eligibleEmployeeIDs(services))
}
