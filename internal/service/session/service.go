package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/sessionstore"
	catalogClient "github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	clientClient "github.com/gatacompleta/GCA-AppointmentService/internal/integrations/clientservice"
	apptModels "github.com/gatacompleta/GCA-AppointmentService/internal/service/appointments/models"
	"github.com/gatacompleta/GCA-AppointmentService/internal/service/session/models"
	"github.com/gatacompleta/GCA-AppointmentService/internal/usecase/create_appointment"
	"github.com/gatacompleta/GCA-AppointmentService/internal/usecase/get_available_hours"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/types"
)

// UUIDProvider генерирует идентификаторы сессий на основе UUID v4
type UUIDProvider struct{}

// NewID возвращает новый идентификатор сессии
func (p *UUIDProvider) NewID() string {
	return uuid.NewString()
}

// Service сервис мастера записи: хранит черновик между шагами и управляет
// переходами. Черновик - единственное состояние мастера; каждая мутация
// сохраняет его в хранилище сессий.
type Service struct {
	store         SessionStore
	catalogClient CatalogServiceClient
	clientClient  ClientServiceClient
	availability  AvailabilityUseCase
	creator       AppointmentCreator
	timeProvider  TimeProvider
	idProvider    IDProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса мастера записи
func NewService(
	store SessionStore,
	catalogServiceClient CatalogServiceClient,
	clientServiceClient ClientServiceClient,
	availability AvailabilityUseCase,
	creator AppointmentCreator,
	logger Logger,
) *Service {
	return &Service{
		store:         store,
		catalogClient: catalogServiceClient,
		clientClient:  clientServiceClient,
		availability:  availability,
		creator:       creator,
		timeProvider:  &RealTimeProvider{},
		idProvider:    &UUIDProvider{},
		logger:        logger,
	}
}

// Start создает новую сессию мастера записи для компании.
// Дата по умолчанию - сегодня, шаг - выбор услуг.
func (s *Service) Start(ctx context.Context, req *models.StartSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("StartSession: starting session for company=%d", req.CompanyID)

	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if _, err := s.catalogClient.GetCompany(ctx, req.CompanyID); err != nil {
		if errors.Is(err, catalogClient.ErrCompanyNotFound) {
			s.logger.Warn("StartSession: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("StartSession: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	session := &domain.BookingSession{
		ID:        s.idProvider.NewID(),
		CompanyID: req.CompanyID,
		Date:      dateOnly(now),
		Step:      domain.StepSelectingServices,
		Items:     make([]*domain.ScheduleItem, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("StartSession: started session id=%s for company=%d", session.ID, req.CompanyID)
	return models.FromDomainSession(session), nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// AddService добавляет услугу в черновик.
// Изменение состава услуг сбрасывает выбранное время начала.
func (s *Service) AddService(ctx context.Context, sessionID string, req *models.AddServiceRequest) (*models.SessionResponse, error) {
	s.logger.Info("AddService: session=%s, service=%d", sessionID, req.ServiceID)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.FindItem(req.ServiceID) != nil {
		s.logger.Warn("AddService: service id=%d already in session=%s", req.ServiceID, sessionID)
		return nil, ErrServiceAlreadyAdded
	}

	service, err := s.getService(ctx, session.CompanyID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	duration, err := types.TimeString(service.Duration).Minutes()
	if err != nil {
		s.logger.Error("AddService: invalid duration %q for service id=%d", service.Duration, service.ID)
		return nil, fmt.Errorf("%w: invalid service duration: %v", ErrInternal, err)
	}

	session.Items = append(session.Items, &domain.ScheduleItem{
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		Price:           service.Price,
		DurationMinutes: duration,
	})

	if err := s.resetStartTime(session); err != nil {
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// RemoveService удаляет услугу из черновика.
// Изменение состава услуг сбрасывает выбранное время начала.
func (s *Service) RemoveService(ctx context.Context, sessionID string, req *models.RemoveServiceRequest) (*models.SessionResponse, error) {
	s.logger.Info("RemoveService: session=%s, service=%d", sessionID, req.ServiceID)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.FindItem(req.ServiceID) == nil {
		s.logger.Warn("RemoveService: service id=%d not in session=%s", req.ServiceID, sessionID)
		return nil, ErrServiceNotInSession
	}

	items := make([]*domain.ScheduleItem, 0, len(session.Items)-1)
	for _, item := range session.Items {
		if item.ServiceID != req.ServiceID {
			items = append(items, item)
		}
	}
	session.Items = items

	if err := s.resetStartTime(session); err != nil {
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// SetDate выбирает дату записи.
// Смена даты сбрасывает выбранное время начала.
func (s *Service) SetDate(ctx context.Context, sessionID string, req *models.SetDateRequest) (*models.SessionResponse, error) {
	s.logger.Info("SetDate: session=%s, date=%s", sessionID, req.Date.Format(domain.DateFormat))

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	session.Date = dateOnly(req.Date)

	if err := s.resetStartTime(session); err != nil {
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// SetStartTime выбирает время начала записи.
// Время проверяется по актуальному списку доступных времен; услуги
// черновика раскладываются последовательно от выбранного времени.
func (s *Service) SetStartTime(ctx context.Context, sessionID string, req *models.SetStartTimeRequest) (*models.SessionResponse, error) {
	s.logger.Info("SetStartTime: session=%s, time=%s", sessionID, req.StartTime)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(session.Items) == 0 {
		return nil, ErrNoServicesSelected
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	available, err := s.availability.Execute(ctx, &get_available_hours.Request{
		CompanyID:  session.CompanyID,
		ServiceIDs: session.ServiceIDs(),
		Date:       session.Date,
	})
	if err != nil {
		s.logger.Error("SetStartTime: availability check failed for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	if !containsHour(available.Hours, startTime) {
		s.logger.Warn("SetStartTime: time %s not available for session=%s", startTime, sessionID)
		return nil, ErrTimeNotAvailable
	}

	session.StartTime = startTime
	if err := session.Restack(); err != nil {
		return nil, fmt.Errorf("%w: failed to restack items: %v", ErrInternal, err)
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// ChooseEmployee закрепляет исполнителя за услугой черновика вручную.
// EmployeeID = nil возвращает услугу к автоподбору при подтверждении.
func (s *Service) ChooseEmployee(ctx context.Context, sessionID string, req *models.ChooseEmployeeRequest) (*models.SessionResponse, error) {
	s.logger.Info("ChooseEmployee: session=%s, service=%d, employee=%v", sessionID, req.ServiceID, req.EmployeeID)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item := session.FindItem(req.ServiceID)
	if item == nil {
		return nil, ErrServiceNotInSession
	}

	if req.EmployeeID == nil {
		item.EmployeeID = nil
		item.ManualEmployee = false

		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
		return models.FromDomainSession(session), nil
	}

	service, err := s.getService(ctx, session.CompanyID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	if !service.AllowChooseEmployee {
		s.logger.Warn("ChooseEmployee: manual selection not allowed for service id=%d", req.ServiceID)
		return nil, ErrManualSelectionNotAllowed
	}

	eligible := false
	for _, employee := range service.Employees {
		if employee.ID == *req.EmployeeID {
			eligible = true
			break
		}
	}
	if !eligible {
		s.logger.Warn("ChooseEmployee: employee id=%d not eligible for service id=%d", *req.EmployeeID, req.ServiceID)
		return nil, ErrEmployeeNotEligible
	}

	item.EmployeeID = req.EmployeeID
	item.ManualEmployee = true

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// SetClient привязывает клиента к сессии после идентификации
func (s *Service) SetClient(ctx context.Context, sessionID string, req *models.SetClientRequest) (*models.SessionResponse, error) {
	s.logger.Info("SetClient: session=%s, client=%d", sessionID, req.ClientID)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if _, err := s.clientClient.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientClient.ErrClientNotFound) {
			s.logger.Warn("SetClient: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("SetClient: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	session.ClientID = &req.ClientID

	// Шаг идентификации пройден
	if session.Step == domain.StepAuthenticating {
		session.Step = domain.StepReviewing
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// Advance переводит мастер на следующий шаг.
// Переход разрешается только после выполнения требований текущего шага:
// выбор услуг требует хотя бы одну услугу, выбор времени - дату и время,
// идентификация - привязанного клиента. Шаг идентификации пропускается,
// если клиент уже привязан.
func (s *Service) Advance(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	s.logger.Info("Advance: session=%s", sessionID)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case domain.StepSelectingServices:
		if len(session.Items) == 0 {
			return nil, ErrNoServicesSelected
		}
		session.Step = domain.StepPickingDateTime

	case domain.StepPickingDateTime:
		if session.StartTime.IsZero() {
			return nil, ErrNoTimeSelected
		}
		if session.ClientID != nil {
			session.Step = domain.StepReviewing
		} else {
			session.Step = domain.StepAuthenticating
		}

	case domain.StepAuthenticating:
		if session.ClientID == nil {
			return nil, ErrClientRequired
		}
		session.Step = domain.StepReviewing

	default:
		// С шага проверки дальше ведет только подтверждение записи
		return nil, ErrInvalidStep
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Advance: session=%s moved to step=%s", sessionID, session.Step)
	return models.FromDomainSession(session), nil
}

// Back возвращает мастер на предыдущий шаг.
// Возврат с шага проверки и идентификации ведет к выбору времени.
func (s *Service) Back(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	s.logger.Info("Back: session=%s", sessionID)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case domain.StepPickingDateTime:
		session.Step = domain.StepSelectingServices
	case domain.StepAuthenticating, domain.StepReviewing:
		session.Step = domain.StepPickingDateTime
	default:
		return nil, ErrInvalidStep
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// Submit подтверждает запись из сессии.
// Доступность перепроверяется внутри use case создания записи в
// сериализуемой транзакции; идентификатор сессии выступает ключом
// идемпотентности. При успехе сессия удаляется, при ошибке черновик
// сохраняется нетронутым для повторной попытки.
func (s *Service) Submit(ctx context.Context, sessionID string, req *models.SubmitRequest) (*apptModels.AppointmentResponse, error) {
	s.logger.Info("Submit: session=%s", sessionID)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepReviewing {
		s.logger.Warn("Submit: session=%s is on step=%s, expected reviewing", sessionID, session.Step)
		return nil, ErrInvalidStep
	}

	if session.ClientID == nil {
		return nil, ErrClientRequired
	}

	items := make([]create_appointment.ItemRequest, 0, len(session.Items))
	for _, item := range session.Items {
		itemReq := create_appointment.ItemRequest{ServiceID: item.ServiceID}
		if item.ManualEmployee {
			itemReq.EmployeeID = item.EmployeeID
		}
		items = append(items, itemReq)
	}

	resp, err := s.creator.Execute(ctx, &create_appointment.Request{
		CompanyID: session.CompanyID,
		ClientID:  *session.ClientID,
		SessionID: &session.ID,
		Date:      session.Date,
		StartTime: session.StartTime,
		Items:     items,
		Notes:     req.Notes,
	})
	if err != nil {
		// Черновик остается как есть: клиент может выбрать другое время
		s.logger.Warn("Submit: creation failed for session=%s: %v", sessionID, err)
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		// Запись уже создана; повторное подтверждение отсечет уникальный
		// индекс по session_id
		s.logger.Error("Submit: failed to delete session=%s: %v", sessionID, err)
	}

	s.logger.Info("Submit: session=%s created appointment id=%d", sessionID, resp.Appointment.ID)
	return apptModels.FromDomainAppointment(resp.Appointment), nil
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, sessionID string) (*domain.BookingSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrSessionNotFound) {
			s.logger.Warn("load: session=%s not found", sessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("load: failed to get session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	return session, nil
}

func (s *Service) save(ctx context.Context, session *domain.BookingSession) error {
	session.UpdatedAt = s.timeProvider.Now()

	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("save: failed to save session=%s: %v", session.ID, err)
		return fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) getService(ctx context.Context, companyID, serviceID int64) (*catalogClient.Service, error) {
	service, err := s.catalogClient.GetService(ctx, companyID, serviceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			s.logger.Warn("getService: service id=%d not found in company=%d", serviceID, companyID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("getService: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return service, nil
}

// resetStartTime сбрасывает выбранное время начала и возвращает мастер
// к шагу выбора времени, если он был дальше
func (s *Service) resetStartTime(session *domain.BookingSession) error {
	session.StartTime = ""
	if err := session.Restack(); err != nil {
		return fmt.Errorf("%w: failed to restack items: %v", ErrInternal, err)
	}

	if session.Step == domain.StepAuthenticating || session.Step == domain.StepReviewing {
		session.Step = domain.StepPickingDateTime
	}

	return nil
}

func containsHour(hours []types.TimeString, hour types.TimeString) bool {
	for _, h := range hours {
		if h == hour {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
