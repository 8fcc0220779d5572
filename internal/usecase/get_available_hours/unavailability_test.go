package get_available_hours

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

func busy(employeeID, serviceID int64, start, end string) *domain.BusyInterval {
	return &domain.BusyInterval{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
	}
}

func TestGenerateUnavailableMarks_AllEmployeesBusy(t *testing.T) {
	services := []*catalogservice.Service{
		testService(1, "00:30", 100, 10, 11),
	}
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "10:00"),
		busy(11, 1, "09:00", "10:00"),
	}

	blocked := generateUnavailableMarks(services, 30, intervals)

	assert.Contains(t, blocked, 9*60)
	assert.Contains(t, blocked, 9*60+30)
	assert.NotContains(t, blocked, 10*60)
}

func TestGenerateUnavailableMarks_OneEmployeeFree(t *testing.T) {
	// Пока хотя бы один исполнитель свободен, метка не блокируется
	services := []*catalogservice.Service{
		testService(1, "00:30", 100, 10, 11),
	}
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "12:00"),
	}

	blocked := generateUnavailableMarks(services, 30, intervals)

	assert.Empty(t, blocked)
}

func TestGenerateUnavailableMarks_PartialOverlap(t *testing.T) {
	services := []*catalogservice.Service{
		testService(1, "00:30", 100, 10, 11),
	}
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "10:00"),
		busy(11, 1, "09:30", "10:30"),
	}

	blocked := generateUnavailableMarks(services, 30, intervals)

	// Заняты оба только в 09:30
	assert.Equal(t, map[int]struct{}{9*60 + 30: {}}, blocked)
}

func TestGenerateUnavailableMarks_NoIntervals(t *testing.T) {
	services := []*catalogservice.Service{
		testService(1, "00:30", 100, 10),
	}

	assert.Empty(t, generateUnavailableMarks(services, 30, nil))
}

func TestGenerateUnavailableMarks_OtherServiceIntervalsIgnored(t *testing.T) {
	services := []*catalogservice.Service{
		testService(1, "00:30", 100, 10),
	}
	intervals := []*domain.BusyInterval{
		busy(10, 2, "09:00", "10:00"),
	}

	assert.Empty(t, generateUnavailableMarks(services, 30, intervals))
}

func TestGenerateUnavailableMarks_UnionAcrossServices(t *testing.T) {
	services := []*catalogservice.Service{
		testService(1, "00:30", 100, 10),
		testService(2, "00:30", 100, 11),
	}
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "09:30"),
		busy(11, 2, "11:00", "11:30"),
	}

	blocked := generateUnavailableMarks(services, 30, intervals)

	// Блокировки разных услуг объединяются для всего черновика
	assert.Contains(t, blocked, 9*60)
	assert.Contains(t, blocked, 11*60)
	assert.Len(t, blocked, 2)
}

func TestEmployeeBusyMarks_Deduplication(t *testing.T) {
	// Два пересекающихся интервала одного исполнителя дают каждую метку один раз
	intervals := []*domain.BusyInterval{
		busy(10, 1, "09:00", "10:00"),
		busy(10, 1, "09:30", "10:30"),
	}

	marks := employeeBusyMarks(10, 1, 30, intervals)

	assert.Len(t, marks, 3)
	assert.Contains(t, marks, 9*60)
	assert.Contains(t, marks, 9*60+30)
	assert.Contains(t, marks, 10*60)
}

func TestExpandInterval(t *testing.T) {
	assert.Equal(t, []int{540, 570}, expandInterval("09:00", "10:00", 30))
	assert.Empty(t, expandInterval("09:00", "09:00", 30))
	assert.Nil(t, expandInterval("bad", "10:00", 30))
}
