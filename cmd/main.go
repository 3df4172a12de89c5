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

	cancelBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_booking"
	createExceptionHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_exception"
	createRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_rule"
	deleteExceptionHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_exception"
	deleteRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_rule"
	getAvailableDaysHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_available_days"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_client_bookings"
	getExceptionsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_exceptions"
	getProviderBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_provider_bookings"
	getRulesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_rules"
	updateBookingStatusHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_booking_status"
	updateRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_rule"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	exceptionRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/exception"
	ruleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rule"
	notificationClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/notificationservice"
	availabilityService "github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	getAvailableDaysUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_days"
	getAvailableSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/idgen"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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

	// Транзакционный менеджер: интерфейс общий для обоих вариантов подключения
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		ruleRepository      *ruleRepo.Repository
		exceptionRepository *exceptionRepo.Repository
		txMgr               TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		exceptionRepository = exceptionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		exceptionRepository = exceptionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Kafka-producer событий бронирований (опционально)
	var (
		createdProducer   createBookingUC.EventProducer
		lifecycleProducer bookingsService.EventProducer
	)
	if cfg.Events.Enabled {
		producer := events.NewProducer(cfg.Events.Brokers, cfg.Events.Topic, log)
		defer producer.Close()
		createdProducer = producer
		lifecycleProducer = producer
		log.Info("Kafka event producer initialized (brokers=%s, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}

	// Клиент сервиса уведомлений (опционально)
	var (
		confirmationNotifier createBookingUC.NotificationClient
		cancellationNotifier bookingsService.NotificationClient
	)
	if cfg.NotificationService.Enabled {
		notifier := notificationClient.NewClient(
			cfg.NotificationService.URL,
			time.Duration(cfg.NotificationService.Timeout)*time.Second,
			log,
		)
		confirmationNotifier = notifier
		cancellationNotifier = notifier
		log.Info("NotificationService client initialized (url=%s, timeout=%ds)",
			cfg.NotificationService.URL, cfg.NotificationService.Timeout)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		ruleRepository,
		exceptionRepository,
		bookingRepository,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		lifecycleProducer,
		cancellationNotifier,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		ruleRepository,
		exceptionRepository,
		idgen.New("brl"),
		idgen.New("bex"),
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		txMgr,
		idgen.New("book"),
		createdProducer,
		confirmationNotifier,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilitySvc, log)
	getAvailableDaysUseCase := getAvailableDaysUC.NewUseCase(availabilitySvc, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDays := getAvailableDaysHandler.NewHandler(getAvailableDaysUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingsSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingsSvc, log)
	createRule := createRuleHandler.NewHandler(scheduleSvc, log)
	getRules := getRulesHandler.NewHandler(scheduleSvc, log)
	updateRule := updateRuleHandler.NewHandler(scheduleSvc, log)
	deleteRule := deleteRuleHandler.NewHandler(scheduleSvc, log)
	createException := createExceptionHandler.NewHandler(scheduleSvc, log)
	getExceptions := getExceptionsHandler.NewHandler(scheduleSvc, log)
	deleteException := deleteExceptionHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Дни с доступными слотами
	api.HandleFunc("/providers/{providerId}/available-days",
		getAvailableDays.Handle).Methods(http.MethodGet)

	// Доступные слоты на конкретную дату
	api.HandleFunc("/providers/{providerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Расписание провайдера (для менеджеров) ---
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/rules", createRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/rules", getRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rules/{ruleId}", updateRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/rules/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/providers/{providerId}/exceptions", createException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/exceptions", getExceptions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/exceptions/{exceptionId}", deleteException.Handle).Methods(http.MethodDelete)

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
