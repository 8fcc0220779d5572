package domain

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// Shift один непрерывный интервал работы внутри дня
type Shift struct {
	Start types.TimeString
	End   types.TimeString
}

// OperatingDay рабочие часы компании на один день недели.
// До четырех смен, по порядку, без пересечений между собой.
// Справочные данные из каталога компаний; движком не изменяются.
type OperatingDay struct {
	Weekday time.Weekday
	Shifts  []Shift
}

// IsClosed returns true if no shifts are configured for the day
func (d OperatingDay) IsClosed() bool {
	return len(d.Shifts) == 0
}

// MaxShiftsPerDay максимальное количество смен в одном дне
const MaxShiftsPerDay = 4
