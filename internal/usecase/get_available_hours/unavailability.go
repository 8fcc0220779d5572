package get_available_hours

import (
	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// generateUnavailableMarks вычисляет заблокированные минутные метки для
// набора выбранных услуг.
//
// Метка заблокирована для услуги, только когда в эту минуту заняты ВСЕ
// исполнители услуги (пересечение, не объединение): пока хотя бы один
// исполнитель свободен, слот можно забронировать - исполнители внутри
// услуги взаимозаменяемы. Заблокированные метки всех услуг объединяются
// в один набор для всего черновика.
func generateUnavailableMarks(
	services []*catalogservice.Service,
	stepMinutes int,
	intervals []*domain.BusyInterval,
) map[int]struct{} {
	blocked := make(map[int]struct{})

	// Без занятых интервалов заблокированных меток нет независимо
	// от конфигурации услуг и исполнителей
	if len(intervals) == 0 || stepMinutes <= 0 {
		return blocked
	}

	for _, service := range services {
		for mark := range serviceBlockedMarks(service, stepMinutes, intervals) {
			blocked[mark] = struct{}{}
		}
	}

	return blocked
}

// serviceBlockedMarks метки, в которые заняты все исполнители услуги
func serviceBlockedMarks(
	service *catalogservice.Service,
	stepMinutes int,
	intervals []*domain.BusyInterval,
) map[int]struct{} {
	blocked := make(map[int]struct{})

	if len(service.Employees) == 0 {
		return blocked
	}

	// Считаем, сколько РАЗНЫХ исполнителей заняты в каждую метку:
	// метки одного исполнителя предварительно дедуплицируются
	busyCount := make(map[int]int)
	for _, employee := range service.Employees {
		for mark := range employeeBusyMarks(employee.ID, service.ID, stepMinutes, intervals) {
			busyCount[mark]++
		}
	}

	for mark, count := range busyCount {
		if count == len(service.Employees) {
			blocked[mark] = struct{}{}
		}
	}

	return blocked
}

// employeeBusyMarks метки занятости одного исполнителя по данной услуге
func employeeBusyMarks(
	employeeID int64,
	serviceID int64,
	stepMinutes int,
	intervals []*domain.BusyInterval,
) map[int]struct{} {
	marks := make(map[int]struct{})

	for _, interval := range intervals {
		if interval.EmployeeID != employeeID || interval.ServiceID != serviceID {
			continue
		}
		for _, mark := range expandInterval(interval.StartTime, interval.EndTime, stepMinutes) {
			marks[mark] = struct{}{}
		}
	}

	return marks
}

// expandInterval разворачивает интервал в дискретные минутные метки
// от начала (включительно) до конца (не включая) с шагом stepMinutes
func expandInterval(start, end types.TimeString, stepMinutes int) []int {
	startMinutes, err := start.Minutes()
	if err != nil {
		return nil
	}
	endMinutes, err := end.Minutes()
	if err != nil {
		return nil
	}

	marks := make([]int, 0)
	for mark := startMinutes; mark < endMinutes; mark += stepMinutes {
		marks = append(marks, mark)
	}
	return marks
}
