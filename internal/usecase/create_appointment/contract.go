package create_appointment

import (
	"context"
	"math/rand"
	"time"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/clientservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
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

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	GetClient(ctx context.Context, clientID int64) (*clientservice.ClientProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RandomProvider интерфейс источника случайности для автоподбора
// исполнителя (для тестирования)
type RandomProvider interface {
	Intn(n int) int
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

// RealRandomProvider реальный источник случайности для production
type RealRandomProvider struct{}

// Intn возвращает случайное число в [0, n)
func (p *RealRandomProvider) Intn(n int) int {
	return rand.Intn(n)
}
