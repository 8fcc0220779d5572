package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	appointmentRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/appointment"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/appointments/models"
)

type stubLogger struct{}

func (l *stubLogger) Info(format string, v ...interface{})  {}
func (l *stubLogger) Warn(format string, v ...interface{})  {}
func (l *stubLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	list        []*domain.Appointment
	getErr      error

	cancelledWith domain.AppointmentStatus
	updatedTo     domain.AppointmentStatus
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.appointment, nil
}

func (r *fakeAppointmentRepo) GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return r.list, nil
}

func (r *fakeAppointmentRepo) GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyAppointmentsFilter) ([]*domain.Appointment, error) {
	return r.list, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	r.updatedTo = status
	return nil
}

func (r *fakeAppointmentRepo) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	r.cancelledWith = status
	return nil
}

type fakeCatalogClient struct {
	company *catalogservice.Company
	err     error
}

func (c *fakeCatalogClient) GetCompany(ctx context.Context, companyID int64) (*catalogservice.Company, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.company, nil
}

func confirmedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:        42,
		ClientID:  7,
		CompanyID: 1,
		Date:      time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusConfirmed,
		Items: []*domain.AppointmentItem{
			{ServiceID: 1, EmployeeID: 10, StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60, ServicePrice: 100},
		},
	}
}

func newTestService(repo *fakeAppointmentRepo) *Service {
	catalog := &fakeCatalogClient{
		company: &catalogservice.Company{ID: 1, ManagerIDs: []int64{100}},
	}
	return NewService(repo, catalog, &stubLogger{})
}

func TestGetByID_Owner(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 42, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 60, resp.TotalDurationMinutes)
	assert.Equal(t, 100.0, resp.TotalPrice)
}

func TestGetByID_Manager(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 42, 100)

	assert.NoError(t, err)
}

func TestGetByID_Stranger(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 42, 55)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{getErr: appointmentRepo.ErrAppointmentNotFound}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 42, 7)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_ByClient(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{UserID: 7, CancellationReason: "no time"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledWith)
}

func TestCancel_ByManager(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{UserID: 100})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByCompany, repo.cancelledWith)
}

func TestCancel_Stranger(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{UserID: 55})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_CompletedAppointment(t *testing.T) {
	appointment := confirmedAppointment()
	appointment.Status = domain.StatusCompleted
	repo := &fakeAppointmentRepo{appointment: appointment}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{UserID: 7})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_ManagerOnly(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{UserID: 100, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updatedTo)

	// Клиент не может менять статус своей записи
	err = svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{UserID: 7, Status: "completed"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: confirmedAppointment()}
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{UserID: 100, Status: "unknown"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCompanyAppointments_ManagerOnly(t *testing.T) {
	repo := &fakeAppointmentRepo{list: []*domain.Appointment{confirmedAppointment()}}
	svc := newTestService(repo)

	resp, err := svc.GetCompanyAppointments(context.Background(), &models.GetCompanyAppointmentsRequest{
		UserID:    100,
		CompanyID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetCompanyAppointments(context.Background(), &models.GetCompanyAppointmentsRequest{
		UserID:    7,
		CompanyID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetClientAppointments(t *testing.T) {
	repo := &fakeAppointmentRepo{list: []*domain.Appointment{confirmedAppointment()}}
	svc := newTestService(repo)

	resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{ClientID: 7})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(42), resp.Appointments[0].ID)
}
