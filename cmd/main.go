package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	advanceSessionHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/advance_session"
	cancelAppointmentHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableHoursHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/get_available_hours"
	getClientAppointmentsHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/get_client_appointments"
	getCompanyAppointmentsHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/get_company_appointments"
	getCompanyPolicyHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/get_company_policy"
	getSessionHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/get_session"
	startSessionHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/start_session"
	submitSessionHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/submit_session"
	updateAppointmentStatusHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/update_appointment_status"
	updateCompanyPolicyHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/update_company_policy"
	updateSessionHandler "github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers/update_session"
	"github.com/gatacompleta/GCA-AppointmentService/internal/api/middleware"
	"github.com/gatacompleta/GCA-AppointmentService/internal/config"
	appointmentRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/appointment"
	policyRepo "github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/policy"
	"github.com/gatacompleta/GCA-AppointmentService/internal/infra/storage/sessionstore"
	catalogServiceClient "github.com/gatacompleta/GCA-AppointmentService/internal/integrations/catalogservice"
	clientServiceClient "github.com/gatacompleta/GCA-AppointmentService/internal/integrations/clientservice"
	appointmentsService "github.com/gatacompleta/GCA-AppointmentService/internal/service/appointments"
	policyService "github.com/gatacompleta/GCA-AppointmentService/internal/service/policy"
	sessionService "github.com/gatacompleta/GCA-AppointmentService/internal/service/session"
	createAppointmentUC "github.com/gatacompleta/GCA-AppointmentService/internal/usecase/create_appointment"
	getAvailableHoursUC "github.com/gatacompleta/GCA-AppointmentService/internal/usecase/get_available_hours"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/dbmetrics"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/logger"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/metrics"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/simpletxmanager"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GCA-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (хранилище сессий мастера записи)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, ClientService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.ClientService.URL, cfg.ClientService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		policyRepository      *policyRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище сессий мастера записи
	sessionStore := sessionstore.NewStore(redisClient, time.Duration(cfg.Session.TTLMinutes)*time.Minute)

	// Инициализируем use cases
	getAvailableHoursUseCase := getAvailableHoursUC.NewUseCase(
		appointmentRepository,
		policyRepository,
		catalogClient,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		policyRepository,
		catalogClient,
		clientClient,
		txMgr,
		log,
	)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogClient,
		log,
	)
	policySvc := policyService.NewService(
		policyRepository,
		catalogClient,
		log,
	)
	sessionSvc := sessionService.NewService(
		sessionStore,
		catalogClient,
		clientClient,
		getAvailableHoursUseCase,
		createAppointmentUseCase,
		log,
	)

	// Инициализируем handlers
	getAvailableHours := getAvailableHoursHandler.NewHandler(getAvailableHoursUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getCompanyAppointments := getCompanyAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getCompanyPolicy := getCompanyPolicyHandler.NewHandler(policySvc, log)
	updateCompanyPolicy := updateCompanyPolicyHandler.NewHandler(policySvc, log)
	startSession := startSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	updateSession := updateSessionHandler.NewHandler(sessionSvc, log)
	advanceSession := advanceSessionHandler.NewHandler(sessionSvc, log)
	submitSession := submitSessionHandler.NewHandler(sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных времен начала записи
	api.HandleFunc("/companies/{companyId}/available-hours",
		getAvailableHours.Handle).Methods(http.MethodGet)

	// Получение правил записи компании
	api.HandleFunc("/companies/{companyId}/policy",
		getCompanyPolicy.Handle).Methods(http.MethodGet)

	// --- Мастер записи (черновик доступен анонимно до подтверждения) ---
	api.HandleFunc("/sessions", startSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", updateSession.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/advance", advanceSession.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Подтверждение черновика мастера записи
	protected.HandleFunc("/sessions/{sessionId}/submit", submitSession.Handle).Methods(http.MethodPost)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса записи (для менеджеров)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление компанией (для менеджеров) ---
	// Список записей компании
	protected.HandleFunc("/companies/{companyId}/appointments", getCompanyAppointments.Handle).Methods(http.MethodGet)

	// Обновление правил записи компании
	protected.HandleFunc("/companies/{companyId}/policy", updateCompanyPolicy.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
