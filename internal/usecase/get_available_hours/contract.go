package get_available_hours

import (
	"context"
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetBusyIntervals получает занятые интервалы исполнителей компании на дату
	GetBusyIntervals(ctx context.Context, companyID int64, date time.Time, employeeIDs []int64) ([]*domain.BusyInterval, error)
}

// PolicyRepository интерфейс репозитория правил записи
type PolicyRepository interface {
	GetByCompany(ctx context.Context, companyID int64) (*domain.CompanyBookingPolicy, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*catalogservice.Company, error)
	GetServices(ctx context.Context, companyID int64, serviceIDs []int64) ([]*catalogservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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
