package models

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
)

// Request модели

// StartSessionRequest запрос на создание сессии мастера записи
type StartSessionRequest struct {
	CompanyID int64 `json:"companyId"`
}

// AddServiceRequest запрос на добавление услуги в черновик
type AddServiceRequest struct {
	ServiceID int64 `json:"serviceId"`
}

// RemoveServiceRequest запрос на удаление услуги из черновика
type RemoveServiceRequest struct {
	ServiceID int64 `json:"serviceId"`
}

// SetDateRequest запрос на выбор даты
type SetDateRequest struct {
	Date time.Time `json:"date"`
}

// SetStartTimeRequest запрос на выбор времени начала
type SetStartTimeRequest struct {
	StartTime string `json:"startTime"` // "10:00"
}

// ChooseEmployeeRequest запрос на ручной выбор исполнителя услуги.
// EmployeeID = nil возвращает услугу к автоподбору.
type ChooseEmployeeRequest struct {
	ServiceID  int64  `json:"serviceId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
}

// SetClientRequest запрос на привязку клиента к сессии
type SetClientRequest struct {
	ClientID int64 `json:"clientId"`
}

// SubmitRequest запрос на подтверждение записи из сессии
type SubmitRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// Response модели

// ScheduleItemResponse строка черновика
type ScheduleItemResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	EmployeeID      *int64  `json:"employeeId,omitempty"`
	ManualEmployee  bool    `json:"manualEmployee"`
	StartTime       string  `json:"startTime,omitempty"` // пусто, пока время не выбрано
	EndTime         string  `json:"endTime,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// SessionResponse ответ с состоянием сессии мастера записи
type SessionResponse struct {
	ID        string `json:"id"`
	CompanyID int64  `json:"companyId"`
	ClientID  *int64 `json:"clientId,omitempty"`
	Date      string `json:"date"`                // "2025-10-15"
	StartTime string `json:"startTime,omitempty"` // пусто, пока время не выбрано
	EndTime   string `json:"endTime,omitempty"`
	Step      string `json:"step"`

	Items []ScheduleItemResponse `json:"items"`

	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalPrice           float64 `json:"totalPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.BookingSession) *SessionResponse {
	if s == nil {
		return nil
	}

	items := make([]ScheduleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, ScheduleItemResponse{
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			EmployeeID:      item.EmployeeID,
			ManualEmployee:  item.ManualEmployee,
			StartTime:       item.StartTime.String(),
			EndTime:         item.EndTime.String(),
			Price:           item.Price,
			DurationMinutes: item.DurationMinutes,
		})
	}

	return &SessionResponse{
		ID:                   s.ID,
		CompanyID:            s.CompanyID,
		ClientID:             s.ClientID,
		Date:                 s.Date.Format(domain.DateFormat),
		StartTime:            s.StartTime.String(),
		EndTime:              s.EndTime().String(),
		Step:                 string(s.Step),
		Items:                items,
		TotalDurationMinutes: s.TotalDurationMinutes(),
		TotalPrice:           s.TotalPrice(),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
