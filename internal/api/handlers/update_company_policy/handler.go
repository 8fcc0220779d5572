package update_company_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers"
	"github.com/gatacompleta/GCA-AppointmentService/internal/api/middleware"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/policy"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/policy/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCompanyID   = "некорректный идентификатор компании"
	msgInvalidPolicy      = "некорректные значения правил записи"
	msgCompanyNotFound    = "компания не найдена"
	msgAccessDenied       = "нет прав на изменение правил записи"
	msgUnauthorized       = "требуется идентификация пользователя"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/companies/{companyId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil || companyID <= 0 {
		h.logger.Warn("PUT /companies/{companyId}/policy - Invalid company id: %s", vars["companyId"])
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /companies/{companyId}/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), companyID, &models.UpdatePolicyRequest{
		UserID:                  userID,
		MinBookingNoticeMinutes: req.MinBookingNoticeMinutes,
		AdvanceBookingDays:      req.AdvanceBookingDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrCompanyNotFound):
			h.logger.Warn("PUT /companies/{companyId}/policy - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("PUT /companies/{companyId}/policy - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /companies/{companyId}/policy - Invalid policy values: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("PUT /companies/{companyId}/policy - Failed: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /companies/{companyId}/policy - Updated: company_id=%d, user_id=%d", companyID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
