package get_available_hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	policyRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/policy"
	catalogClient "github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// UseCase use case для получения доступных времен начала записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	policyRepo      PolicyRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policyRepo PolicyRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		policyRepo:      policyRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных времен начала.
//
// Конвейер: рабочие часы дня + занятость исполнителей -> сетка меток ->
// фильтр по суммарной длительности выбранных услуг.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableHours: company=%d, services=%v, date=%s",
		req.CompanyID, req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем компанию с рабочими часами
	company, err := uc.catalogClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCompanyNotFound) {
			uc.logger.Warn("GetAvailableHours: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetAvailableHours: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 4. Получаем выбранные услуги с длительностями и исполнителями
	services, err := uc.catalogClient.GetServices(ctx, req.CompanyID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableHours: one of services %v not found", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableHours: failed to get services %v: %v", req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	// 5. Получаем правила записи компании
	policy, err := uc.policyRepo.GetByCompany(ctx, req.CompanyID)
	if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		uc.logger.Error("GetAvailableHours: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}

	// Если правила не настроены, используем дефолтные значения
	if policy == nil {
		policy = domain.DefaultPolicy(req.CompanyID)
		uc.logger.Info("GetAvailableHours: using default policy for company=%d", req.CompanyID)
	}

	// 6. Валидация даты с учетом правил
	if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableHours: date validation failed: %v", err)
		return nil, err
	}

	// 7. Рабочие часы на указанную дату; закрытый день - пустой список времен
	day := operatingDayForDate(company, req.Date)

	stepMinutes := smallestDurationMinutes(services)
	totalDuration := totalDurationMinutes(services)

	if day.IsClosed() || stepMinutes == 0 {
		uc.logger.Info("GetAvailableHours: company %d is closed on %s",
			req.CompanyID, req.Date.Format(domain.DateFormat))
		return uc.respond(req, nil, stepMinutes, totalDuration, services), nil
	}

	// 8. Получаем занятые интервалы исполнителей выбранных услуг
	intervals, err := uc.appointmentRepo.GetBusyIntervals(ctx, req.CompanyID, req.Date, eligibleEmployeeIDs(services))
	if err != nil {
		uc.logger.Error("GetAvailableHours: failed to get busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get busy intervals: %v", ErrInternal, err)
	}

	// 9. Заблокированные метки: по каждой услуге заняты ВСЕ исполнители
	blocked := generateUnavailableMarks(services, stepMinutes, intervals)

	// 10. Сетка времен начала по сменам дня
	hourList := generateHourList(req.Date, day, stepMinutes, blocked, now, policy.MinBookingNoticeMinutes)

	// 11. Оставляем только времена, в которые помещается вся запись
	available := make([]types.TimeString, 0, len(hourList))
	for _, hour := range hourList {
		if verifyAvailableHour(day, totalDuration, hour, blocked) {
			available = append(available, hour)
		}
	}

	uc.logger.Info("GetAvailableHours: %d available hours for company=%d, date=%s",
		len(available), req.CompanyID, req.Date.Format(domain.DateFormat))

	return uc.respond(req, available, stepMinutes, totalDuration, services), nil
}

func (uc *UseCase) respond(
	req *Request,
	hours []types.TimeString,
	stepMinutes, totalDuration int,
	services []*catalogClient.Service,
) *Response {
	if hours == nil {
		hours = []types.TimeString{}
	}

	var totalPrice float64
	for _, service := range services {
		totalPrice += service.Price
	}

	return &Response{
		Date:                 req.Date,
		CompanyID:            req.CompanyID,
		ServiceIDs:           req.ServiceIDs,
		Hours:                hours,
		StepMinutes:          stepMinutes,
		TotalDurationMinutes: totalDuration,
		TotalPrice:           totalPrice,
	}
}

// eligibleEmployeeIDs уникальные идентификаторы исполнителей всех услуг
func eligibleEmployeeIDs(services []*catalogClient.Service) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, service := range services {
		for _, employee := range service.Employees {
			if _, ok := seen[employee.ID]; ok {
				continue
			}
			seen[employee.ID] = struct{}{}
			ids = append(ids, employee.ID)
		}
	}
	return ids
}
