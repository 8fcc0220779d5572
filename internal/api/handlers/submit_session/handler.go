package submit_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session/models"
	createAppointment "github.com/gatacompleta/GCA-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgSessionNotFound     = "сессия не найдена или истекла"
	msgInvalidStep         = "запись можно подтвердить только с шага проверки"
	msgClientRequired      = "требуется идентификация клиента"
	msgSlotNotAvailable    = "выбранное время недоступно"
	msgNoEmployeeAvailable = "нет свободного исполнителя на выбранное время"
	msgTooLateToBook       = "слишком поздно для записи на это время"
	msgCompanyClosed       = "компания закрыта в выбранную дату"
	msgAlreadyExists       = "запись по этой сессии уже создана"
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

// Handle POST /api/v1/sessions/{sessionId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{sessionId}/submit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{sessionId}/submit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, session.ErrInvalidStep):
			h.logger.Warn("POST /sessions/{sessionId}/submit - Invalid step: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStep)

		case errors.Is(err, session.ErrClientRequired):
			h.logger.Warn("POST /sessions/{sessionId}/submit - Client required: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgClientRequired)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /sessions/{sessionId}/submit - Slot not available: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /sessions/{sessionId}/submit - Too late to book: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrNoEmployeeAvailable):
			h.logger.Warn("POST /sessions/{sessionId}/submit - No employee available: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgNoEmployeeAvailable)

		case errors.Is(err, createAppointment.ErrCompanyClosed):
			h.logger.Warn("POST /sessions/{sessionId}/submit - Company closed: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgCompanyClosed)

		case errors.Is(err, createAppointment.ErrAppointmentAlreadyExists):
			h.logger.Warn("POST /sessions/{sessionId}/submit - Already exists: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		default:
			h.logger.Error("POST /sessions/{sessionId}/submit - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{sessionId}/submit - Appointment created: session_id=%s, appointment_id=%d",
		sessionID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
