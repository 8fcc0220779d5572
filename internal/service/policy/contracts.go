package policy

import (
	"context"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
)

// PolicyRepository интерфейс репозитория правил записи
type PolicyRepository interface {
	GetByCompany(ctx context.Context, companyID int64) (*domain.CompanyBookingPolicy, error)
	Upsert(ctx context.Context, policy *domain.CompanyBookingPolicy) (*domain.CompanyBookingPolicy, error)
	Delete(ctx context.Context, companyID int64) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*catalogservice.Company, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
