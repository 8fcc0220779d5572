package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

func wizardSession(startTime types.TimeString, durations ...int) *BookingSession {
	session := &BookingSession{
		ID:        "test-session",
		CompanyID: 1,
		StartTime: startTime,
		Step:      StepPickingDateTime,
	}
	for i, d := range durations {
		session.Items = append(session.Items, &ScheduleItem{
			ServiceID:       int64(i + 1),
			DurationMinutes: d,
		})
	}
	return session
}

func TestBookingSession_Restack(t *testing.T) {
	session := wizardSession("09:00", 60, 30)

	require.NoError(t, session.Restack())

	assert.Equal(t, types.TimeString("09:00"), session.Items[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), session.Items[0].EndTime)
	assert.Equal(t, types.TimeString("10:00"), session.Items[1].StartTime)
	assert.Equal(t, types.TimeString("10:30"), session.Items[1].EndTime)
	assert.Equal(t, types.TimeString("10:30"), session.EndTime())
}

func TestBookingSession_Restack_NewStartTime(t *testing.T) {
	session := wizardSession("09:00", 60, 30)
	require.NoError(t, session.Restack())

	// Повторный выбор времени передвигает все строки
	session.StartTime = "10:00"
	require.NoError(t, session.Restack())

	assert.Equal(t, types.TimeString("10:00"), session.Items[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), session.Items[1].StartTime)
	assert.Equal(t, types.TimeString("11:30"), session.EndTime())
}

func TestBookingSession_Restack_EmptyStartTime(t *testing.T) {
	autoID := int64(7)
	manualID := int64(9)

	session := wizardSession("09:00", 60, 30)
	session.Items[0].EmployeeID = &autoID
	session.Items[1].EmployeeID = &manualID
	session.Items[1].ManualEmployee = true
	require.NoError(t, session.Restack())

	session.StartTime = ""
	require.NoError(t, session.Restack())

	// Времена очищены, автоподобранный исполнитель сброшен, ручной - нет
	assert.True(t, session.Items[0].StartTime.IsZero())
	assert.True(t, session.Items[1].EndTime.IsZero())
	assert.Nil(t, session.Items[0].EmployeeID)
	require.NotNil(t, session.Items[1].EmployeeID)
	assert.Equal(t, manualID, *session.Items[1].EmployeeID)
}

func TestBookingSession_StepMinutes(t *testing.T) {
	assert.Equal(t, DefaultStepMinutes, wizardSession("").StepMinutes())
	assert.Equal(t, 30, wizardSession("", 60, 30, 45).StepMinutes())
	assert.Equal(t, 90, wizardSession("", 90).StepMinutes())
}

func TestBookingSession_Totals(t *testing.T) {
	session := wizardSession("", 60, 30)
	session.Items[0].Price = 100.50
	session.Items[1].Price = 49.50

	assert.Equal(t, 90, session.TotalDurationMinutes())
	assert.Equal(t, 150.0, session.TotalPrice())
	assert.Equal(t, []int64{1, 2}, session.ServiceIDs())
}

func TestBookingSession_FindItem(t *testing.T) {
	session := wizardSession("", 60, 30)

	require.NotNil(t, session.FindItem(2))
	assert.Equal(t, int64(2), session.FindItem(2).ServiceID)
	assert.Nil(t, session.FindItem(99))
}

func TestBookingSession_EndTime_Empty(t *testing.T) {
	assert.True(t, wizardSession("").EndTime().IsZero())
}
