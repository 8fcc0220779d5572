package get_available_hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifyAvailableHour_FitsInShift(t *testing.T) {
	day := testDay([2]string{"09:00", "12:00"})

	assert.True(t, verifyAvailableHour(day, 60, "09:00", nil))
	assert.True(t, verifyAvailableHour(day, 60, "10:30", nil))
}

func TestVerifyAvailableHour_BoundaryInclusive(t *testing.T) {
	day := testDay([2]string{"09:00", "12:00"})

	// Запись, заканчивающаяся ровно в конец смены, допустима
	assert.True(t, verifyAvailableHour(day, 60, "11:00", nil))
	assert.False(t, verifyAvailableHour(day, 61, "11:00", nil))
}

func TestVerifyAvailableHour_MustFitSingleShift(t *testing.T) {
	day := testDay([2]string{"09:00", "12:00"}, [2]string{"13:00", "18:00"})

	// Запись не может переходить из одной смены в другую через перерыв
	assert.False(t, verifyAvailableHour(day, 120, "11:00", nil))
	assert.True(t, verifyAvailableHour(day, 120, "13:00", nil))
}

func TestVerifyAvailableHour_BlockedMark(t *testing.T) {
	day := testDay([2]string{"09:00", "12:00"})
	blocked := map[int]struct{}{
		10 * 60: {},
	}

	// Интервал записи не должен проходить через заблокированную минуту
	assert.False(t, verifyAvailableHour(day, 90, "09:00", blocked))
	assert.True(t, verifyAvailableHour(day, 60, "09:00", blocked))
	assert.True(t, verifyAvailableHour(day, 60, "10:30", blocked))
}

func TestVerifyAvailableHour_ClosedDay(t *testing.T) {
	assert.False(t, verifyAvailableHour(testDay(), 30, "09:00", nil))
}

func TestVerifyAvailableHour_InvalidCandidate(t *testing.T) {
	day := testDay([2]string{"09:00", "12:00"})

	assert.False(t, verifyAvailableHour(day, 30, "bad", nil))
}

func TestValidateDate_PastDate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, validateDate(yesterday, now, 0), ErrInvalidDate)
}

func TestValidateDate_TodayAllowed(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)
	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validateDate(today, now, 0))
}

func TestValidateDate_AdvanceLimit(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	withinLimit := time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC)
	beyondLimit := time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validateDate(withinLimit, now, 7))
	assert.ErrorIs(t, validateDate(beyondLimit, now, 7), ErrDateTooFarInFuture)

	// advanceBookingDays = 0 означает отсутствие ограничения
	farFuture := time.Date(2027, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, validateDate(farFuture, now, 0))
}

func TestValidateRequest(t *testing.T) {
	valid := &Request{CompanyID: 1, ServiceIDs: []int64{1, 2}, Date: testDate}
	assert.NoError(t, validateRequest(valid))

	assert.ErrorIs(t, validateRequest(&Request{CompanyID: 0, ServiceIDs: []int64{1}, Date: testDate}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{CompanyID: 1, Date: testDate}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{CompanyID: 1, ServiceIDs: []int64{-5}, Date: testDate}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{CompanyID: 1, ServiceIDs: []int64{1}}), ErrInvalidInput)
}
