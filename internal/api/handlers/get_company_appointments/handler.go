package get_company_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers"
	"github.com/gatacompleta/GCA-AppointmentService/internal/api/middleware"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidCompanyID = "некорректный идентификатор компании"
	msgInvalidFilter    = "некорректные параметры фильтрации"
	msgCompanyNotFound  = "компания не найдена"
	msgAccessDenied     = "нет прав доступа к записям компании"
	msgUnauthorized     = "требуется идентификация пользователя"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/appointments?startDate=...&endDate=...&status=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil || companyID <= 0 {
		h.logger.Warn("GET /companies/{companyId}/appointments - Invalid company id: %s", vars["companyId"])
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	req, err := ParseQuery(r.URL.Query(), companyID, userID)
	if err != nil {
		h.logger.Warn("GET /companies/{companyId}/appointments - Invalid filter: company_id=%d, error=%v", companyID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetCompanyAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{companyId}/appointments - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /companies/{companyId}/appointments - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /companies/{companyId}/appointments - Invalid filter: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /companies/{companyId}/appointments - Failed: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
