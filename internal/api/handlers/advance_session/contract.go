package advance_session

import (
	"context"

	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session/models"
)

type SessionService interface {
	Advance(ctx context.Context, sessionID string) (*models.SessionResponse, error)
	Back(ctx context.Context, sessionID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
