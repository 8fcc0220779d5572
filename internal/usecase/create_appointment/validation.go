package create_appointment

import (
	"fmt"
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.Items) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: too many services", ErrInvalidInput)
	}

	for _, item := range req.Items {
		if item.ServiceID <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if item.EmployeeID != nil && *item.EmployeeID <= 0 {
			return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if req.SessionID != nil && *req.SessionID == "" {
		return fmt.Errorf("%w: sessionID must not be empty", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет минимальный интервал до начала записи:
// для сегодняшней даты начало должно быть не раньше now + minNoticeMinutes
func validateBookingTime(date time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !isSameDay(date, now) {
		return nil
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	minMark := now.Hour()*60 + now.Minute() + minNoticeMinutes
	if startMinutes < minMark {
		return ErrTooLateToBook
	}

	return nil
}

// verifySlotFits проверяет, что интервал [start, start+totalDuration)
// целиком помещается в одну из смен дня; граница включительно
func verifySlotFits(day domain.OperatingDay, startTime types.TimeString, totalDurationMinutes int) bool {
	if day.IsClosed() {
		return false
	}

	start, err := startTime.Minutes()
	if err != nil {
		return false
	}
	end := start + totalDurationMinutes

	for _, shift := range day.Shifts {
		shiftStart, err := shift.Start.Minutes()
		if err != nil {
			continue
		}
		shiftEnd, err := shift.End.Minutes()
		if err != nil {
			continue
		}
		if start >= shiftStart && end <= shiftEnd {
			return true
		}
	}

	return false
}

// operatingDayForDate возвращает рабочие часы компании на день недели даты.
// Некорректные или неполные пары смен пропускаются.
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

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
