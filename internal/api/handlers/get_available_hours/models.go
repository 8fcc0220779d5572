package get_available_hours

import (
	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	getAvailableHours "github.com/gatacompleta/GCA-AppointmentService/internal/usecase/get_available_hours"
)

// AvailableHoursResponse HTTP response model
type AvailableHoursResponse struct {
	CompanyID            int64    `json:"companyId"`
	Date                 string   `json:"date"` // "2025-10-15"
	ServiceIDs           []int64  `json:"serviceIds"`
	Hours                []string `json:"hours"` // ["09:00", "09:30", ...]
	StepMinutes          int      `json:"stepMinutes"`
	TotalDurationMinutes int      `json:"totalDurationMinutes"`
	TotalPrice           float64  `json:"totalPrice"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableHours.Response) *AvailableHoursResponse {
	hours := make([]string, 0, len(resp.Hours))
	for _, hour := range resp.Hours {
		hours = append(hours, hour.String())
	}

	return &AvailableHoursResponse{
		CompanyID:            resp.CompanyID,
		Date:                 resp.Date.Format(domain.DateFormat),
		ServiceIDs:           resp.ServiceIDs,
		Hours:                hours,
		StepMinutes:          resp.StepMinutes,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		TotalPrice:           resp.TotalPrice,
	}
}
