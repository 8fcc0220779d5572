package update_session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers"
	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgUnknownAction       = "неизвестное действие"
	msgMissingServiceID    = "не указана услуга"
	msgMissingDate         = "не указана дата"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingStartTime    = "не указано время начала"
	msgMissingClientID     = "не указан клиент"
	msgSessionNotFound     = "сессия не найдена или истекла"
	msgServiceNotFound     = "услуга не найдена"
	msgClientNotFound      = "клиент не найден"
	msgServiceAlreadyAdded = "услуга уже добавлена в запись"
	msgServiceNotInSession = "услуга не входит в запись"
	msgManualNotAllowed    = "услуга не допускает выбор исполнителя"
	msgEmployeeNotEligible = "исполнитель не оказывает выбранную услугу"
	msgTimeNotAvailable    = "выбранное время недоступно"
	msgNoServicesSelected  = "не выбрана ни одна услуга"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UpdateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{sessionId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.dispatch(r, sessionID, &req)
	if err != nil {
		h.respondError(w, sessionID, req.Action, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// dispatch вызывает мутацию черновика по действию
func (h *Handler) dispatch(r *http.Request, sessionID string, req *UpdateSessionRequest) (*models.SessionResponse, error) {
	ctx := r.Context()

	switch req.Action {
	case ActionAddService:
		if req.ServiceID == nil {
			return nil, badRequest(msgMissingServiceID)
		}
		return h.service.AddService(ctx, sessionID, &models.AddServiceRequest{ServiceID: *req.ServiceID})

	case ActionRemoveService:
		if req.ServiceID == nil {
			return nil, badRequest(msgMissingServiceID)
		}
		return h.service.RemoveService(ctx, sessionID, &models.RemoveServiceRequest{ServiceID: *req.ServiceID})

	case ActionSetDate:
		if req.Date == nil {
			return nil, badRequest(msgMissingDate)
		}
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return nil, badRequest(msgInvalidDate)
		}
		return h.service.SetDate(ctx, sessionID, &models.SetDateRequest{Date: date})

	case ActionSetStartTime:
		if req.StartTime == nil {
			return nil, badRequest(msgMissingStartTime)
		}
		return h.service.SetStartTime(ctx, sessionID, &models.SetStartTimeRequest{StartTime: *req.StartTime})

	case ActionChooseEmployee:
		if req.ServiceID == nil {
			return nil, badRequest(msgMissingServiceID)
		}
		return h.service.ChooseEmployee(ctx, sessionID, &models.ChooseEmployeeRequest{
			ServiceID:  *req.ServiceID,
			EmployeeID: req.EmployeeID,
		})

	case ActionSetClient:
		if req.ClientID == nil {
			return nil, badRequest(msgMissingClientID)
		}
		return h.service.SetClient(ctx, sessionID, &models.SetClientRequest{ClientID: *req.ClientID})

	default:
		return nil, badRequest(msgUnknownAction)
	}
}

// badRequestError ошибка валидации запроса на уровне handler
type badRequestError struct {
	message string
}

func (e *badRequestError) Error() string {
	return e.message
}

func badRequest(message string) error {
	return &badRequestError{message: message}
}

func (h *Handler) respondError(w http.ResponseWriter, sessionID, action string, err error) {
	var badReq *badRequestError
	if errors.As(err, &badReq) {
		h.logger.Warn("PATCH /sessions/{sessionId} - Invalid request: session_id=%s, action=%s, error=%v", sessionID, action, err)
		handlers.RespondBadRequest(w, badReq.message)
		return
	}

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		h.logger.Warn("PATCH /sessions/{sessionId} - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, session.ErrServiceNotFound):
		h.logger.Warn("PATCH /sessions/{sessionId} - Service not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, session.ErrClientNotFound):
		h.logger.Warn("PATCH /sessions/{sessionId} - Client not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgClientNotFound)

	case errors.Is(err, session.ErrServiceAlreadyAdded):
		h.logger.Warn("PATCH /sessions/{sessionId} - Service already added: session_id=%s", sessionID)
		handlers.RespondError(w, http.StatusConflict, msgServiceAlreadyAdded)

	case errors.Is(err, session.ErrServiceNotInSession):
		h.logger.Warn("PATCH /sessions/{sessionId} - Service not in session: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgServiceNotInSession)

	case errors.Is(err, session.ErrManualSelectionNotAllowed):
		h.logger.Warn("PATCH /sessions/{sessionId} - Manual selection not allowed: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgManualNotAllowed)

	case errors.Is(err, session.ErrEmployeeNotEligible):
		h.logger.Warn("PATCH /sessions/{sessionId} - Employee not eligible: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgEmployeeNotEligible)

	case errors.Is(err, session.ErrTimeNotAvailable):
		h.logger.Warn("PATCH /sessions/{sessionId} - Time not available: session_id=%s", sessionID)
		handlers.RespondError(w, http.StatusConflict, msgTimeNotAvailable)

	case errors.Is(err, session.ErrNoServicesSelected):
		h.logger.Warn("PATCH /sessions/{sessionId} - No services selected: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgNoServicesSelected)

	case errors.Is(err, session.ErrInvalidInput):
		h.logger.Warn("PATCH /sessions/{sessionId} - Invalid input: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("PATCH /sessions/{sessionId} - Failed: session_id=%s, action=%s, error=%v", sessionID, action, err)
		handlers.RespondInternalError(w)
	}
}
