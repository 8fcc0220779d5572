package create_appointment

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/appointments/models"
	createAppointment "github.com/gatacompleta/GCA-AppointmentService/internal/usecase/create_appointment"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// AppointmentItemRequest одна услуга в создаваемой записи
type AppointmentItemRequest struct {
	ServiceID  int64  `json:"serviceId"`
	EmployeeID *int64 `json:"employeeId,omitempty"` // только при ручном выборе исполнителя
}

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID  int64                    `json:"clientId"`
	CompanyID int64                    `json:"companyId"`
	Date      string                   `json:"date"`      // "2025-10-15"
	StartTime string                   `json:"startTime"` // "10:00"
	Items     []AppointmentItemRequest `json:"items"`
	Notes     *string                  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	items := make([]createAppointment.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, createAppointment.ItemRequest{
			ServiceID:  item.ServiceID,
			EmployeeID: item.EmployeeID,
		})
	}

	return &createAppointment.Request{
		ClientID:  r.ClientID,
		CompanyID: r.CompanyID,
		Date:      date,
		StartTime: startTime,
		Items:     items,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *models.AppointmentResponse {
	return models.FromDomainAppointment(resp.Appointment)
}
