package create_appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/ptr"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// stubRandomProvider всегда выбирает кандидата с заданным индексом
type stubRandomProvider struct {
	index int
}

func (p *stubRandomProvider) Intn(n int) int {
	if p.index >= n {
		return n - 1
	}
	return p.index
}

func testService(id int64, duration string, employeeIDs ...int64) *catalogservice.Service {
	service := &catalogservice.Service{
		ID:                  id,
		CompanyID:           1,
		Name:                "Test Service",
		Duration:            duration,
		Price:               100,
		AllowChooseEmployee: true,
		AllowRandomEmployee: true,
	}
	for _, employeeID := range employeeIDs {
		service.Employees = append(service.Employees, catalogservice.Employee{ID: employeeID})
	}
	return service
}

func busy(employeeID, serviceID int64, start, end string) *domain.BusyInterval {
	return &domain.BusyInterval{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
	}
}

func allocUseCase(index int) *UseCase {
	return &UseCase{randomProvider: &stubRandomProvider{index: index}}
}

func TestAllocateEmployee_AutoPicksFreeCandidate(t *testing.T) {
	service := testService(1, "01:00", 10, 11)
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "10:00"),
	}

	employeeID, err := allocUseCase(0).allocateEmployee(service, nil, "09:00", "10:00", intervals)

	require.NoError(t, err)
	assert.Equal(t, int64(11), employeeID)
}

func TestAllocateEmployee_NoCandidates(t *testing.T) {
	service := testService(1, "01:00", 10, 11)
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "10:00"),
		busy(11, 1, "09:30", "10:30"),
	}

	_, err := allocUseCase(0).allocateEmployee(service, nil, "09:00", "10:00", intervals)

	assert.ErrorIs(t, err, ErrNoEmployeeAvailable)
}

func TestAllocateEmployee_BackToBackNotConflict(t *testing.T) {
	// Интервалы [09:00, 10:00) и [10:00, 11:00) не пересекаются
	service := testService(1, "01:00", 10)
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "10:00"),
	}

	employeeID, err := allocUseCase(0).allocateEmployee(service, nil, "10:00", "11:00", intervals)

	require.NoError(t, err)
	assert.Equal(t, int64(10), employeeID)
}

func TestAllocateEmployee_MinuteOverlapConflicts(t *testing.T) {
	service := testService(1, "01:00", 10)
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "10:00"),
	}

	_, err := allocUseCase(0).allocateEmployee(service, nil, "09:59", "10:59", intervals)

	assert.ErrorIs(t, err, ErrNoEmployeeAvailable)
}

func TestAllocateEmployee_ManualBypassesConflict(t *testing.T) {
	// Ручной выбор проверяет только закрепление за услугой; занятость
	// отсеется при проверке доступности всего слота
	service := testService(1, "01:00", 10)
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "10:00"),
	}

	employeeID, err := allocUseCase(0).allocateEmployee(service, ptr.Ptr(int64(10)), "09:00", "10:00", intervals)

	require.NoError(t, err)
	assert.Equal(t, int64(10), employeeID)
}

func TestAllocateEmployee_ManualNotEligible(t *testing.T) {
	service := testService(1, "01:00", 10, 11)

	_, err := allocUseCase(0).allocateEmployee(service, ptr.Ptr(int64(99)), "09:00", "10:00", nil)

	assert.ErrorIs(t, err, ErrEmployeeNotEligible)
}

func TestAllocateEmployee_RandomIndexSelectsCandidate(t *testing.T) {
	service := testService(1, "01:00", 10, 11, 12)

	employeeID, err := allocUseCase(2).allocateEmployee(service, nil, "09:00", "10:00", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(12), employeeID)
}

func TestEmployeeHasConflict_OtherServiceIgnored(t *testing.T) {
	intervals := []*domain.BusyInterval{
		busy(10, 2, "09:00", "10:00"),
	}

	assert.False(t, employeeHasConflict(10, 1, "09:00", "10:00", intervals))
	assert.True(t, employeeHasConflict(10, 2, "09:00", "10:00", intervals))
}

func TestEmployeeHasConflict_InvalidTimes(t *testing.T) {
	// Некорректные времена услуги трактуются как конфликт
	assert.True(t, employeeHasConflict(10, 1, "bad", "10:00", nil))
}
