package update_company_policy

import (
	"context"

	"github.com/gatacompleta/GCA-AppointmentService/internal/service/policy/models"
)

type PolicyService interface {
	Update(ctx context.Context, companyID int64, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
