package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	appointmentRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/appointment"
	policyRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/policy"
	catalogClient "github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	clientClient "github.com/gatacompleta/GCA-AppointmentService/internal/integrations/clientservice"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	policyRepo      PolicyRepository
	catalogClient   CatalogServiceClient
	clientClient    ClientServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	randomProvider  RandomProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepository AppointmentRepository,
	policyRepository PolicyRepository,
	catalogServiceClient CatalogServiceClient,
	clientServiceClient ClientServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepository,
		policyRepo:      policyRepository,
		catalogClient:   catalogServiceClient,
		clientClient:    clientServiceClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		randomProvider:  &RealRandomProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка доступности и выбор исполнителей выполняются в сериализуемой
// транзакции, чтобы две параллельные записи не получили один и тот же
// интервал одного исполнителя.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, company=%d, services=%d, date=%s, time=%s",
		req.ClientID, req.CompanyID, len(req.Items), req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем компанию
	company, err := uc.catalogClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCompanyNotFound) {
			uc.logger.Warn("CreateAppointment: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 4. Получаем услуги в порядке следования в записи
	serviceIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		serviceIDs = append(serviceIDs, item.ServiceID)
	}

	services, err := uc.catalogClient.GetServices(ctx, req.CompanyID, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: one of services %v not found", serviceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get services %v: %v", serviceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	if len(services) != len(req.Items) {
		uc.logger.Warn("CreateAppointment: requested %d services, catalog returned %d", len(req.Items), len(services))
		return nil, ErrServiceNotFound
	}

	// 5. Проверяем существование клиента
	if _, err := uc.clientClient.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientClient.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем правила записи компании
		policy, err := uc.policyRepo.GetByCompany(txCtx, req.CompanyID)
		if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CreateAppointment: failed to get booking policy: %v", err)
			return fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}

		// Если правила не настроены, используем дефолтные значения
		if policy == nil {
			policy = domain.DefaultPolicy(req.CompanyID)
			uc.logger.Info("CreateAppointment: using default booking policy for company=%d", req.CompanyID)
		}

		// 6.2. Валидация даты с учетом правил
		if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 6.3. Получаем рабочие часы на указанную дату
		day := operatingDayForDate(company, req.Date)
		if day.IsClosed() {
			uc.logger.Warn("CreateAppointment: company is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrCompanyClosed
		}

		// 6.4. Проверка минимального интервала до начала записи
		if err := validateBookingTime(req.Date, req.StartTime, now, policy.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
			return err
		}

		// 6.5. Раскладываем услуги последовательно от времени начала записи
		items, totalDuration, err := stackItems(req.StartTime, req.Items, services)
		if err != nil {
			uc.logger.Warn("CreateAppointment: failed to stack items: %v", err)
			return err
		}

		// 6.6. Проверяем, что запись целиком помещается в одну смену
		if !verifySlotFits(day, req.StartTime, totalDuration) {
			uc.logger.Warn("CreateAppointment: slot %s+%dmin does not fit working hours", req.StartTime, totalDuration)
			return ErrSlotNotAvailable
		}

		// 6.7. Получаем занятые интервалы с блокировкой (FOR UPDATE)
		busyIntervals, err := uc.appointmentRepo.GetBusyIntervals(txCtx, req.CompanyID, req.Date, eligibleEmployeeIDs(services))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get busy intervals: %v", err)
			return fmt.Errorf("%w: failed to get busy intervals: %v", ErrInternal, err)
		}

		// 6.8. Подбираем исполнителя для каждой услуги
		for i, item := range items {
			employeeID, err := uc.allocateEmployee(services[i], req.Items[i].EmployeeID, item.StartTime, item.EndTime, busyIntervals)
			if err != nil {
				uc.logger.Warn("CreateAppointment: allocation failed for service id=%d at %s: %v",
					item.ServiceID, item.StartTime, err)
				return err
			}
			item.EmployeeID = employeeID

			// Выбранный исполнитель занят на этот интервал для следующих услуг записи
			busyIntervals = append(busyIntervals, &domain.BusyInterval{
				EmployeeID: employeeID,
				ServiceID:  item.ServiceID,
				StartTime:  item.StartTime,
				EndTime:    item.EndTime,
			})
		}

		// 6.9. Создаем запись с денормализацией данных услуг
		appointment := &domain.Appointment{
			SessionID: req.SessionID,
			ClientID:  req.ClientID,
			CompanyID: req.CompanyID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   items[len(items)-1].EndTime,
			Status:    domain.StatusConfirmed,
			Items:     items,
			Notes:     req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateSession) {
				sessionID := ""
				if req.SessionID != nil {
					sessionID = *req.SessionID
				}
				uc.logger.Warn("CreateAppointment: appointment already exists for session=%q client=%d", sessionID, req.ClientID)
				return ErrAppointmentAlreadyExists
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{Appointment: result}, nil
}

// stackItems раскладывает услуги последовательно: первая начинается во
// время начала записи, каждая следующая - в момент окончания предыдущей
func stackItems(startTime types.TimeString, items []ItemRequest, services []*catalogClient.Service) ([]*domain.AppointmentItem, int, error) {
	result := make([]*domain.AppointmentItem, 0, len(items))
	cursor := startTime
	total := 0

	for i, item := range items {
		service := services[i]
		if service.ID != item.ServiceID {
			return nil, 0, fmt.Errorf("%w: service order mismatch", ErrInternal)
		}

		duration, err := types.TimeString(service.Duration).Minutes()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid duration for service id=%d: %v", ErrInternal, service.ID, err)
		}

		end, err := cursor.AddMinutes(duration)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: failed to stack service id=%d: %v", ErrInternal, service.ID, err)
		}

		result = append(result, &domain.AppointmentItem{
			ServiceID:       service.ID,
			StartTime:       cursor,
			EndTime:         end,
			DurationMinutes: duration,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		})

		cursor = end
		total += duration
	}

	return result, total, nil
}

// eligibleEmployeeIDs собирает уникальные идентификаторы исполнителей всех услуг
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
