package update_session

import (
	"context"

	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session/models"
)

type SessionService interface {
	AddService(ctx context.Context, sessionID string, req *models.AddServiceRequest) (*models.SessionResponse, error)
	RemoveService(ctx context.Context, sessionID string, req *models.RemoveServiceRequest) (*models.SessionResponse, error)
	SetDate(ctx context.Context, sessionID string, req *models.SetDateRequest) (*models.SessionResponse, error)
	SetStartTime(ctx context.Context, sessionID string, req *models.SetStartTimeRequest) (*models.SessionResponse, error)
	ChooseEmployee(ctx context.Context, sessionID string, req *models.ChooseEmployeeRequest) (*models.SessionResponse, error)
	SetClient(ctx context.Context, sessionID string, req *models.SetClientRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
