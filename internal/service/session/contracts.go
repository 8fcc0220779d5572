package session

import (
	"context"
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/clientservice"
	"github.com/gatacompleta/GCA-AppointmentService/internal/usecase/create_appointment"
	"github.com/gatacompleta/GCA-AppointmentService/internal/usecase/get_available_hours"
)

// SessionStore интерфейс хранилища сессий мастера записи
type SessionStore interface {
	Save(ctx context.Context, session *domain.BookingSession) error
	Get(ctx context.Context, sessionID string) (*domain.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*catalogservice.Company, error)
	GetService(ctx context.Context, companyID, serviceID int64) (*catalogservice.Service, error)
}

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	GetClient(ctx context.Context, clientID int64) (*clientservice.ClientProfile, error)
}

// AvailabilityUseCase интерфейс use case расчета доступных времен.
// Используется для проверки выбранного времени начала черновика.
type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *get_available_hours.Request) (*get_available_hours.Response, error)
}

// AppointmentCreator интерфейс use case создания записи
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// IDProvider интерфейс генерации идентификаторов сессий (для тестирования)
type IDProvider interface {
	NewID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
