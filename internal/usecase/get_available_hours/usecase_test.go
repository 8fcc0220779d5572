package get_available_hours

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	policyRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/policy"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/ptr"
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

type fakeAppointmentRepo struct {
	intervals []*domain.BusyInterval
	err       error
}

func (r *fakeAppointmentRepo) GetBusyIntervals(ctx context.Context, companyID int64, date time.Time, employeeIDs []int64) ([]*domain.BusyInterval, error) {
	return r.intervals, r.err
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

func mondayCompany() *catalogservice.Company {
	return &catalogservice.Company{
		ID: 1,
		DaysOfWeek: []catalogservice.DayOfWeek{
			{DayOfWeek: 1, StartTime: ptr.Ptr("09:00"), EndTime: ptr.Ptr("12:00")},
		},
	}
}

func newTestUseCase(
	repo *fakeAppointmentRepo,
	policies *fakePolicyRepo,
	catalog *fakeCatalogClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(repo, policies, catalog, &stubLogger{})
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

func TestExecute_HappyPath(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 100, 10)},
	}
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		catalog,
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceIDs: []int64{1}, Date: testDate})

	require.NoError(t, err)
	// Смена 09:00-12:00, услуга на час, шаг 60: запись в 11:00 заканчивается
	// ровно в конец смены и допустима
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, hourStrings(resp.Hours))
	assert.Equal(t, 60, resp.StepMinutes)
	assert.Equal(t, 60, resp.TotalDurationMinutes)
	assert.Equal(t, 100.0, resp.TotalPrice)
}

func TestExecute_BusyEmployeeBlocksHours(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 100, 10)},
	}
	repo := &fakeAppointmentRepo{
		intervals: []*domain.BusyInterval{busy(10, 1, "09:00", "10:00")},
	}
	uc := newTestUseCase(
		repo,
		&fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		catalog,
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceIDs: []int64{1}, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00"}, hourStrings(resp.Hours))
}

func TestExecute_SecondEmployeeKeepsHoursOpen(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 100, 10, 11)},
	}
	repo := &fakeAppointmentRepo{
		intervals: []*domain.BusyInterval{busy(10, 1, "09:00", "12:00")},
	}
	uc := newTestUseCase(
		repo,
		&fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		catalog,
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceIDs: []int64{1}, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, hourStrings(resp.Hours))
}

func TestExecute_ClosedDay(t *testing.T) {
	company := &catalogservice.Company{ID: 1} // рабочие часы не настроены
	catalog := &fakeCatalogClient{
		company:  company,
		services: []*catalogservice.Service{testService(1, "01:00", 100, 10)},
	}
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		catalog,
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceIDs: []int64{1}, Date: testDate})

	require.NoError(t, err)
	assert.Empty(t, resp.Hours)
	assert.NotNil(t, resp.Hours)
}

func TestExecute_CompanyNotFound(t *testing.T) {
	catalog := &fakeCatalogClient{companyErr: catalogservice.ErrCompanyNotFound}
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		catalog,
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{CompanyID: 99, ServiceIDs: []int64{1}, Date: testDate})

	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:     mondayCompany(),
		servicesErr: catalogservice.ErrServiceNotFound,
	}
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		catalog,
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceIDs: []int64{99}, Date: testDate})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PolicyLimitsDate(t *testing.T) {
	catalog := &fakeCatalogClient{
		company:  mondayCompany(),
		services: []*catalogservice.Service{testService(1, "01:00", 100, 10)},
	}
	policies := &fakePolicyRepo{
		policy: &domain.CompanyBookingPolicy{CompanyID: 1, AdvanceBookingDays: 3},
	}
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		policies,
		catalog,
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceIDs: []int64{1}, Date: testDate})

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}
