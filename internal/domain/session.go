package domain

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// WizardStep шаг мастера записи
type WizardStep string

const (
	StepSelectingServices WizardStep = "selecting_services"
	StepPickingDateTime   WizardStep = "picking_datetime"
	StepAuthenticating    WizardStep = "authenticating"
	StepReviewing         WizardStep = "reviewing"
	StepCompleted         WizardStep = "completed"
)

// ScheduleItem строка черновика: одна выбранная услуга.
// Времена пустые, пока не выбрано время начала черновика; при выборе
// времена услуг складываются последовательно в порядке выбора.
type ScheduleItem struct {
	ServiceID       int64            `json:"service_id"`
	ServiceName     string           `json:"service_name"`
	EmployeeID      *int64           `json:"employee_id"`
	ManualEmployee  bool             `json:"manual_employee"` // исполнитель выбран вручную, автоподбор не применяется
	StartTime       types.TimeString `json:"start_time"`
	EndTime         types.TimeString `json:"end_time"`
	Price           float64          `json:"price"`
	DurationMinutes int              `json:"duration_minutes"`
}

// BookingSession черновик записи, живущий между шагами мастера.
// Единственное состояние, переносимое между шагами; сохраняется в хранилище
// сессий после каждой мутации.
type BookingSession struct {
	ID        string           `json:"id"`
	CompanyID int64            `json:"company_id"`
	ClientID  *int64           `json:"client_id"`
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"start_time"`
	Step      WizardStep       `json:"step"`
	Items     []*ScheduleItem  `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalDurationMinutes суммарная длительность выбранных услуг
func (s *BookingSession) TotalDurationMinutes() int {
	var total int
	for _, item := range s.Items {
		total += item.DurationMinutes
	}
	return total
}

// TotalPrice суммарная стоимость выбранных услуг
func (s *BookingSession) TotalPrice() float64 {
	var total float64
	for _, item := range s.Items {
		total += item.Price
	}
	return total
}

// StepMinutes шаг сетки доступных времен: минимальная длительность среди
// выбранных услуг. Больший шаг пропускал бы допустимые времена начала
// для самой короткой услуги. Для пустого черновика возвращает дефолтный шаг.
func (s *BookingSession) StepMinutes() int {
	if len(s.Items) == 0 {
		return DefaultStepMinutes
	}
	step := s.Items[0].DurationMinutes
	for _, item := range s.Items[1:] {
		if item.DurationMinutes < step {
			step = item.DurationMinutes
		}
	}
	return step
}

// ServiceIDs идентификаторы выбранных услуг в порядке выбора
func (s *BookingSession) ServiceIDs() []int64 {
	ids := make([]int64, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.ServiceID
	}
	return ids
}

// FindItem возвращает строку черновика по услуге
func (s *BookingSession) FindItem(serviceID int64) *ScheduleItem {
	for _, item := range s.Items {
		if item.ServiceID == serviceID {
			return item
		}
	}
	return nil
}

// Restack пересчитывает времена строк: длительности складываются
// последовательно от времени начала черновика. Пустое время начала
// очищает времена всех строк и сбрасывает автоподобранных исполнителей.
func (s *BookingSession) Restack() error {
	if s.StartTime.IsZero() {
		for _, item := range s.Items {
			item.StartTime = ""
			item.EndTime = ""
			if !item.ManualEmployee {
				item.EmployeeID = nil
			}
		}
		return nil
	}

	cursor, err := s.StartTime.Minutes()
	if err != nil {
		return err
	}

	for _, item := range s.Items {
		item.StartTime = types.NewTimeStringFromMinutes(cursor)
		cursor += item.DurationMinutes
		item.EndTime = types.NewTimeStringFromMinutes(cursor)
	}
	return nil
}

// EndTime время окончания последней услуги; пустое, если время не выбрано
func (s *BookingSession) EndTime() types.TimeString {
	if len(s.Items) == 0 {
		return ""
	}
	return s.Items[len(s.Items)-1].EndTime
}
