package create_appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/ptr"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// Понедельник 2026-03-09
var testDate = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

func testDay(shifts ...[2]string) domain.OperatingDay {
	day := domain.OperatingDay{Weekday: testDate.Weekday()}
	for _, s := range shifts {
		day.Shifts = append(day.Shifts, domain.Shift{
			Start: types.TimeString(s[0]),
			End:   types.TimeString(s[1]),
		})
	}
	return day
}

func validRequest() *Request {
	return &Request{
		CompanyID: 1,
		ClientID:  2,
		Date:      testDate,
		StartTime: "10:00",
		Items:     []ItemRequest{{ServiceID: 1}},
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, validateRequest(validRequest()))
}

func TestValidateRequest_Invalid(t *testing.T) {
	req := validRequest()
	req.CompanyID = 0
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.ClientID = -1
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.Items = nil
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.Items = []ItemRequest{{ServiceID: 1, EmployeeID: ptr.Ptr(int64(0))}}
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.StartTime = "25"
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	empty := ""
	req.SessionID = &empty
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.Date = time.Time{}
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateBookingTime_Today(t *testing.T) {
	now := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

	// Начало не раньше now + minNotice
	assert.NoError(t, validateBookingTime(testDate, "11:00", now, 60))
	assert.ErrorIs(t, validateBookingTime(testDate, "10:59", now, 60), ErrTooLateToBook)
	assert.NoError(t, validateBookingTime(testDate, "10:00", now, 0))
}

func TestValidateBookingTime_FutureDate(t *testing.T) {
	// Для будущих дат минимальный интервал не применяется
	now := time.Date(2026, time.March, 8, 23, 50, 0, 0, time.UTC)

	assert.NoError(t, validateBookingTime(testDate, "00:10", now, 120))
}

func TestVerifySlotFits(t *testing.T) {
	day := testDay([2]string{"09:00", "12:00"}, [2]string{"14:00", "18:00"})

	assert.True(t, verifySlotFits(day, "09:00", 60))
	// Граница смены включительно
	assert.True(t, verifySlotFits(day, "11:00", 60))
	assert.False(t, verifySlotFits(day, "11:30", 60))
	// Перерыв между сменами не бронируется
	assert.False(t, verifySlotFits(day, "11:00", 240))
	assert.True(t, verifySlotFits(day, "14:00", 240))
}

func TestVerifySlotFits_ClosedDay(t *testing.T) {
	assert.False(t, verifySlotFits(testDay(), "09:00", 30))
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, validateDate(testDate, now, 0), ErrInvalidDate)

	future := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, validateDate(future, now, 0))
	assert.ErrorIs(t, validateDate(future, now, 7), ErrDateTooFarInFuture)
	assert.NoError(t, validateDate(future, now, 10))
}
