package start_session

import (
	"context"

	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session/models"
)

type SessionService interface {
	Start(ctx context.Context, req *models.StartSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
