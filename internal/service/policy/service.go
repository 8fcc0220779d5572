package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	policyRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/policy"
	catalogClient "github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/policy/models"
)

// Service сервис для работы с правилами записи компаний
type Service struct {
	policyRepo    PolicyRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса правил записи
func NewService(
	policyRepository PolicyRepository,
	catalogServiceClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:    policyRepository,
		catalogClient: catalogServiceClient,
		logger:        logger,
	}
}

// Get получает правила записи компании.
// Если компания не настраивала собственные правила, возвращаются значения
// по умолчанию с признаком isDefault.
func (s *Service) Get(ctx context.Context, companyID int64) (*models.PolicyResponse, error) {
	s.logger.Info("GetPolicy: fetching booking policy for company=%d", companyID)

	policy, err := s.policyRepo.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Info("GetPolicy: company=%d has no custom policy, using defaults", companyID)
			return models.FromDomainPolicy(domain.DefaultPolicy(companyID), true), nil
		}
		s.logger.Error("GetPolicy: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(policy, false), nil
}

// Update создает или обновляет правила записи компании
// Доступно только менеджерам компании
func (s *Service) Update(ctx context.Context, companyID int64, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpdatePolicy: updating booking policy for company=%d by user=%d, notice=%d, advance=%d",
		companyID, req.UserID, req.MinBookingNoticeMinutes, req.AdvanceBookingDays)

	if err := s.checkManagerAccess(ctx, companyID, req.UserID); err != nil {
		return nil, err
	}

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("UpdatePolicy: validation failed for company=%d: %v", companyID, err)
		return nil, err
	}

	policy := &domain.CompanyBookingPolicy{
		CompanyID:               companyID,
		MinBookingNoticeMinutes: req.MinBookingNoticeMinutes,
		AdvanceBookingDays:      req.AdvanceBookingDays,
	}

	updated, err := s.policyRepo.Upsert(ctx, policy)
	if err != nil {
		s.logger.Error("UpdatePolicy: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicy: successfully updated booking policy for company=%d", companyID)
	return models.FromDomainPolicy(updated, false), nil
}

// validateUpdateRequest проверяет границы значений правил записи
func validateUpdateRequest(req *models.UpdatePolicyRequest) error {
	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes ||
		req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером компании
func (s *Service) checkManagerAccess(ctx context.Context, companyID int64, userID int64) error {
	company, err := s.catalogClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCompanyNotFound) {
			s.logger.Warn("checkManagerAccess: company id=%d not found", companyID)
			return ErrCompanyNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get company id=%d: %v", companyID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get company: %v", ErrInternal, err)
	}

	for _, managerID := range company.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of company=%d", userID, companyID)
	return ErrAccessDenied
}
