package domain

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending            AppointmentStatus = "pending"
	StatusConfirmed          AppointmentStatus = "confirmed"
	StatusInProgress         AppointmentStatus = "in_progress"
	StatusCompleted          AppointmentStatus = "completed"
	StatusCancelledByClient  AppointmentStatus = "cancelled_by_client"
	StatusCancelledByCompany AppointmentStatus = "cancelled_by_company"
	StatusNoShow             AppointmentStatus = "no_show"
)

// Appointment represents a multi-service appointment in the system.
// Одна запись может включать несколько услуг; каждая услуга - отдельный
// AppointmentItem со своим исполнителем и временным интервалом.
type Appointment struct {
	ID        int64
	SessionID *string // ID сессии мастера записи, из которой создана запись (идемпотентность)
	ClientID  int64
	CompanyID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    AppointmentStatus

	Items []*AppointmentItem

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentItem одна услуга внутри записи
type AppointmentItem struct {
	ID              int64
	AppointmentID   int64
	ServiceID       int64
	EmployeeID      int64
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
}

// IsActive returns true if the appointment is in an active state
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByClient &&
		a.Status != StatusCancelledByCompany &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledByCompany
}

// IsCompleted returns true if the appointment is completed or was a no-show
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted || a.Status == StatusNoShow
}

// TotalPrice суммарная стоимость всех услуг записи
func (a *Appointment) TotalPrice() float64 {
	var total float64
	for _, item := range a.Items {
		total += item.ServicePrice
	}
	return total
}

// TotalDurationMinutes суммарная длительность всех услуг записи
func (a *Appointment) TotalDurationMinutes() int {
	var total int
	for _, item := range a.Items {
		total += item.DurationMinutes
	}
	return total
}

// CompanyAppointmentsFilter фильтр для получения записей компании
type CompanyAppointmentsFilter struct {
	CompanyID       int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time         // Конец периода (опционально, если nil - без ограничения)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли неактивные записи (отмененные, no-show)
}

// BusyInterval занятый интервал исполнителя: существующая запись, из-за которой
// сотрудник занят данной услугой в данном интервале. Источник данных для
// расчета заблокированных минутных меток.
type BusyInterval struct {
	EmployeeID int64
	ServiceID  int64
	StartTime  types.TimeString
	EndTime    types.TimeString
}
