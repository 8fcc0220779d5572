package submit_session

import (
	"context"

	apptModels "github.com/gatacompleta/GCA-AppointmentService/internal/service/appointments/models"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session/models"
)

type SessionService interface {
	Submit(ctx context.Context, sessionID string, req *models.SubmitRequest) (*apptModels.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
