package get_available_hours

import (
	"fmt"
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// verifyAvailableHour проверяет, что запись суммарной длительности
// totalDurationMinutes может начаться в candidate:
//   - интервал [candidate, candidate+totalDuration) не задевает ни одну
//     заблокированную метку;
//   - интервал целиком помещается в ОДНУ из настроенных смен дня,
//     каждая смена проверяется независимо; граница включительно -
//     запись, заканчивающаяся ровно в конец смены, допустима.
//
// Закрытый день (без смен) всегда возвращает false.
func verifyAvailableHour(
	day domain.OperatingDay,
	totalDurationMinutes int,
	candidate types.TimeString,
	blocked map[int]struct{},
) bool {
	if day.IsClosed() {
		return false
	}

	start, err := candidate.Minutes()
	if err != nil {
		return false
	}
	end := start + totalDurationMinutes

	// Запись не должна проходить через полностью заблокированную минуту
	for mark := range blocked {
		if mark >= start && mark < end {
			return false
		}
	}

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

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: too many services", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
