package get_company_appointments

import (
	"net/url"
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/appointments/models"
)

// ParseQuery разбирает query параметры фильтрации записей компании
func ParseQuery(values url.Values, companyID, userID int64) (*models.GetCompanyAppointmentsRequest, error) {
	req := &models.GetCompanyAppointmentsRequest{
		CompanyID: companyID,
		UserID:    userID,
	}

	if raw := values.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := values.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := values.Get("status"); status != "" {
		req.Status = &status
	}

	if values.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	return req, nil
}
