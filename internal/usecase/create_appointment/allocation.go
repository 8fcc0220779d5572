package create_appointment

import (
	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// allocateEmployee выбирает исполнителя для услуги на интервал
// [itemStart, itemEnd). При ручном выборе проверяется только то, что
// исполнитель закреплён за услугой. При автоподборе исполнитель
// выбирается равновероятно среди закреплённых за услугой и свободных
// на этом интервале.
func (uc *UseCase) allocateEmployee(
	service *catalogservice.Service,
	manualEmployeeID *int64,
	itemStart types.TimeString,
	itemEnd types.TimeString,
	busyIntervals []*domain.BusyInterval,
) (int64, error) {
	if manualEmployeeID != nil {
		for _, employee := range service.Employees {
			if employee.ID == *manualEmployeeID {
				return *manualEmployeeID, nil
			}
		}

		return 0, ErrEmployeeNotEligible
	}

	candidates := make([]int64, 0, len(service.Employees))

	for _, employee := range service.Employees {
		if employeeHasConflict(employee.ID, service.ID, itemStart, itemEnd, busyIntervals) {
			continue
		}

		candidates = append(candidates, employee.ID)
	}

	if len(candidates) == 0 {
		return 0, ErrNoEmployeeAvailable
	}

	return candidates[uc.randomProvider.Intn(len(candidates))], nil
}

// employeeHasConflict проверяет минутное пересечение интервала с уже
// занятыми интервалами исполнителя по этой услуге
func employeeHasConflict(
	employeeID int64,
	serviceID int64,
	itemStart types.TimeString,
	itemEnd types.TimeString,
	busyIntervals []*domain.BusyInterval,
) bool {
	startMinutes, err := itemStart.Minutes()
	if err != nil {
		return true
	}

	endMinutes, err := itemEnd.Minutes()
	if err != nil {
		return true
	}

	for _, interval := range busyIntervals {
		if interval.EmployeeID != employeeID || interval.ServiceID != serviceID {
			continue
		}

		busyStart, err := interval.StartTime.Minutes()
		if err != nil {
			continue
		}

		busyEnd, err := interval.EndTime.Minutes()
		if err != nil {
			continue
		}

		if startMinutes < busyEnd && busyStart < endMinutes {
			return true
		}
	}

	return false
}
