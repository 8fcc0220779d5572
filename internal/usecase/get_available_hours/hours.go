package get_available_hours

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// generateHourList генерирует все возможные времена начала на день.
// Метки идут по сменам в порядке следования, внутри смены - от начала
// до конца (не включая конец) с шагом stepMinutes. Заблокированные
// метки пропускаются.
// Для сегодняшней даты применяется нижняя граница now + minNoticeMinutes
// (защита от записи "в ближайший час"); для остальных дат границы нет.
func generateHourList(
	date time.Time,
	day domain.OperatingDay,
	stepMinutes int,
	blocked map[int]struct{},
	now time.Time,
	minNoticeMinutes int,
) []types.TimeString {
	hourList := make([]types.TimeString, 0)

	if stepMinutes <= 0 || day.IsClosed() {
		return hourList
	}

	// Прошедшие даты не дают слотов
	if isDateInPast(date, now) {
		return hourList
	}

	// Нижняя граница для сегодняшней даты: текущее время + минимальный
	// интервал до записи, без выравнивания по шагу
	minMark := -1
	if isSameDay(date, now) {
		minMark = now.Hour()*60 + now.Minute() + minNoticeMinutes
	}

	for _, shift := range day.Shifts {
		start, err := shift.Start.Minutes()
		if err != nil {
			continue
		}
		end, err := shift.End.Minutes()
		if err != nil {
			continue
		}

		for mark := start; mark < end; mark += stepMinutes {
			if _, isBlocked := blocked[mark]; isBlocked {
				continue
			}
			if minMark >= 0 && mark < minMark {
				continue
			}
			hourList = append(hourList, types.NewTimeStringFromMinutes(mark))
		}
	}

	return hourList
}

// operatingDayForDate возвращает рабочие часы компании на день недели даты.
// Некорректные или неполные пары смен пропускаются: ошибка формата времени
// обрабатывается локально и превращается в "нет смен", а не в ошибку запроса.
func operatingDayForDate(company *catalogservice.Company, date time.Time) domain.OperatingDay {
	weekday := date.Weekday()
	day := domain.OperatingDay{Weekday: weekday}

	for _, dow := range company.DaysOfWeek {
		if time.Weekday(dow.DayOfWeek) != weekday {
			continue
		}
		for _, pair := range dow.ShiftPairs() {
			if pair[0] == nil || pair[1] == nil {
				continue
			}
			start, err := types.NewTimeStringFromString(*pair[0])
			if err != nil {
				continue
			}
			end, err := types.NewTimeStringFromString(*pair[1])
			if err != nil {
				continue
			}
			day.Shifts = append(day.Shifts, domain.Shift{Start: start, End: end})
		}
		break
	}

	return day
}

// smallestDurationMinutes минимальная длительность среди услуг - шаг сетки времен
func smallestDurationMinutes(services []*catalogservice.Service) int {
	step := 0
	for _, service := range services {
		minutes, err := types.TimeString(service.Duration).Minutes()
		if err != nil {
			continue
		}
		if step == 0 || minutes < step {
			step = minutes
		}
	}
	return step
}

// totalDurationMinutes суммарная длительность услуг
func totalDurationMinutes(services []*catalogservice.Service) int {
	total := 0
	for _, service := range services {
		minutes, err := types.TimeString(service.Duration).Minutes()
		if err != nil {
			continue
		}
		total += minutes
	}
	return total
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
