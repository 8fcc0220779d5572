package create_appointment

import (
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// ItemRequest одна услуга в создаваемой записи. EmployeeID задаётся
// только при ручном выборе исполнителя, иначе исполнитель подбирается
// автоматически.
type ItemRequest struct {
	ServiceID  int64
	EmployeeID *int64
}

// Request модель запроса на создание записи
type Request struct {
	CompanyID int64
	ClientID  int64
	SessionID *string
	Date      time.Time
	StartTime types.TimeString
	Items     []ItemRequest
	Notes     *string
}

// Response модель ответа на создание записи
type Response struct {
	Appointment *domain.Appointment
}
