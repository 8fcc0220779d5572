package advance_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session/models"
)

const (
	directionNext = "next"
	directionBack = "back"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDirection   = "некорректное направление перехода"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgNoServicesSelected = "не выбрана ни одна услуга"
	msgNoTimeSelected     = "не выбрано время начала"
	msgClientRequired     = "требуется идентификация клиента"
	msgInvalidStep        = "переход с текущего шага недоступен"
)

// AdvanceSessionRequest HTTP request model
type AdvanceSessionRequest struct {
	Direction string `json:"direction"` // "next" или "back"
}

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

// Handle POST /api/v1/sessions/{sessionId}/advance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req AdvanceSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{sessionId}/advance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *models.SessionResponse
	var err error

	switch req.Direction {
	case directionNext:
		result, err = h.service.Advance(r.Context(), sessionID)
	case directionBack:
		result, err = h.service.Back(r.Context(), sessionID)
	default:
		h.logger.Warn("POST /sessions/{sessionId}/advance - Invalid direction: %s", req.Direction)
		handlers.RespondBadRequest(w, msgInvalidDirection)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{sessionId}/advance - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, session.ErrNoServicesSelected):
			h.logger.Warn("POST /sessions/{sessionId}/advance - No services selected: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgNoServicesSelected)

		case errors.Is(err, session.ErrNoTimeSelected):
			h.logger.Warn("POST /sessions/{sessionId}/advance - No time selected: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgNoTimeSelected)

		case errors.Is(err, session.ErrClientRequired):
			h.logger.Warn("POST /sessions/{sessionId}/advance - Client required: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgClientRequired)

		case errors.Is(err, session.ErrInvalidStep):
			h.logger.Warn("POST /sessions/{sessionId}/advance - Invalid step transition: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStep)

		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{sessionId}/advance - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /sessions/{sessionId}/advance - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{sessionId}/advance - Moved: session_id=%s, direction=%s, step=%s",
		sessionID, req.Direction, result.Step)
	handlers.RespondJSON(w, http.StatusOK, result)
}
