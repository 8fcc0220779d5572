package get_available_hours

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers"
	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	getAvailableHours "github.com/gatacompleta/GCA-AppointmentService/internal/usecase/get_available_hours"
)

const (
	msgInvalidCompanyID  = "некорректный идентификатор компании"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceIDs = "некорректный список услуг"
	msgCompanyNotFound   = "компания не найдена"
	msgServiceNotFound   = "услуга не найдена"
	msgInvalidDateValue  = "некорректная дата записи"
	msgDateTooFar        = "дата записи слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableHoursUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableHoursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/available-hours?date=YYYY-MM-DD&serviceIds=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil || companyID <= 0 {
		h.logger.Warn("GET /available-hours - Invalid company id: %s", vars["companyId"])
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-hours - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceIDs, err := parseServiceIDs(r.URL.Query().Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /available-hours - Invalid serviceIds: %s", r.URL.Query().Get("serviceIds"))
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableHours.Request{
		CompanyID:  companyID,
		ServiceIDs: serviceIDs,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableHours.ErrCompanyNotFound):
			h.logger.Warn("GET /available-hours - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getAvailableHours.ErrServiceNotFound):
			h.logger.Warn("GET /available-hours - Service not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableHours.ErrInvalidDate):
			h.logger.Warn("GET /available-hours - Invalid date: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidDateValue)

		case errors.Is(err, getAvailableHours.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-hours - Date too far in future: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableHours.ErrInvalidInput):
			h.logger.Warn("GET /available-hours - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceIDs)

		default:
			h.logger.Error("GET /available-hours - Failed: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseServiceIDs разбирает список услуг из query параметра "1,2,3"
func parseServiceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, errors.New("serviceIds is required")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
