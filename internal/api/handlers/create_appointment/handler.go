package create_appointment

import (
	"errors"
	"net/http"

	"github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers"
	createAppointment "github.com/gatacompleta/GCA-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateFormat   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotNotAvailable    = "выбранное время недоступно"
	msgNoEmployeeAvailable = "нет свободного исполнителя на выбранное время"
	msgEmployeeNotEligible = "исполнитель не оказывает выбранную услугу"
	msgCompanyNotFound     = "компания не найдена"
	msgServiceNotFound     = "услуга не найдена"
	msgClientNotFound      = "клиент не найден"
	msgCompanyClosed       = "компания закрыта в выбранную дату"
	msgInvalidDate         = "некорректная дата записи"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для записи на это время"
	msgAlreadyExists       = "запись по этой сессии уже создана"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%d, company_id=%d", req.ClientID, req.CompanyID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrNoEmployeeAvailable):
			h.logger.Warn("POST /appointments - No employee available: client_id=%d, company_id=%d", req.ClientID, req.CompanyID)
			handlers.RespondError(w, http.StatusConflict, msgNoEmployeeAvailable)

		case errors.Is(err, createAppointment.ErrAppointmentAlreadyExists):
			h.logger.Warn("POST /appointments - Appointment already exists: client_id=%d, company_id=%d", req.ClientID, req.CompanyID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		case errors.Is(err, createAppointment.ErrEmployeeNotEligible):
			h.logger.Warn("POST /appointments - Employee not eligible: client_id=%d, company_id=%d", req.ClientID, req.CompanyID)
			handlers.RespondBadRequest(w, msgEmployeeNotEligible)

		case errors.Is(err, createAppointment.ErrCompanyNotFound):
			h.logger.Warn("POST /appointments - Company not found: company_id=%d", req.CompanyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: company_id=%d", req.CompanyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrCompanyClosed):
			h.logger.Warn("POST /appointments - Company closed: company_id=%d", req.CompanyID)
			handlers.RespondBadRequest(w, msgCompanyClosed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: company_id=%d", req.CompanyID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: company_id=%d", req.CompanyID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: company_id=%d", req.CompanyID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, company_id=%d, error=%v",
				req.ClientID, req.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d, company_id=%d",
		result.Appointment.ID, req.ClientID, req.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
