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

	cancelBookingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_booking"
	getBookingReviewsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_booking_reviews"
	getCustomerBookingsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_customer_bookings"
	getNotificationsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_notifications"
	getProviderAvailabilityHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_provider_availability"
	getProviderBookingsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_provider_bookings"
	markNotificationReadHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/mark_notification_read"
	removeSlotHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/remove_slot"
	setAvailabilityHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/set_availability"
	submitReviewHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/submit_review"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/config"
	availabilityCache "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/cache/availability"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/notification"
	reviewRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/review"
	listingServiceClient "github.com/m04kA/SMC-MarketplaceBooking/internal/integrations/listingservice"
	userServiceClient "github.com/m04kA/SMC-MarketplaceBooking/internal/integrations/userservice"
	availabilityService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings"
	notificationsService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/notifications"
	reviewsService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/reviews"
	slotsService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/get_available_slots"
	removeSlotUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/remove_slot"
	submitReviewUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/submit_review"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/mq"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("BOOKING_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-MarketplaceBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены); nil отключает запись во всех компонентах
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Database.SerializableAttempts)

	// Кэш расписаний (опционально)
	var scheduleCache availabilityService.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		scheduleCache = availabilityCache.NewCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Публикация уведомлений (опционально)
	var publisher notificationsService.Publisher
	if cfg.RabbitMQ.Enabled {
		p, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer p.Close()

		publisher = p
		log.Info("Notification events enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	listingClient := listingServiceClient.NewClient(
		cfg.ListingService.URL,
		time.Duration(cfg.ListingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, ListingService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.ListingService.URL, cfg.ListingService.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(
		notificationRepository,
		publisher,
		metricsCollector,
		time.Duration(cfg.Notifications.Timeout)*time.Second,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		scheduleCache,
		metricsCollector,
		log,
	)
	slotSvc := slotsService.NewService(bookingRepository, availabilityRepository)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		userClient,
		listingClient,
		notificationSvc,
		metricsCollector,
		log,
	)
	reviewSvc := reviewsService.NewService(reviewRepository, bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotSvc,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilitySvc,
		slotSvc,
		txMgr,
		log,
	)
	removeSlotUseCase := removeSlotUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		availabilitySvc,
		txMgr,
		log,
	)
	submitReviewUseCase := submitReviewUC.NewUseCase(
		bookingRepository,
		reviewRepository,
		notificationSvc,
		log,
	)

	// Инициализируем handlers
	getProviderAvailability := getProviderAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(availabilitySvc, log)
	removeSlot := removeSlotHandler.NewHandler(removeSlotUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	submitReview := submitReviewHandler.NewHandler(submitReviewUseCase, log)
	getBookingReviews := getBookingReviewsHandler.NewHandler(reviewSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание провайдера
	api.HandleFunc("/providers/{providerId}/availability",
		getProviderAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/availability/{day}",
		getAvailability.Handle).Methods(http.MethodGet)

	// Слоты провайдера на дату с отметкой занятости
	api.HandleFunc("/providers/{providerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Отзывы бронирования
	api.HandleFunc("/bookings/{bookingId}/reviews",
		getBookingReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание (только сам провайдер) ---
	protected.HandleFunc("/providers/{providerId}/availability/{day}",
		setAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/availability/{day}/slots",
		removeSlot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Создание бронирования (с ограничением частоты на пользователя)
	var create http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		create = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst).Middleware(create)
		log.Info("Booking creation rate limited to %d/min (burst %d)", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", create).Methods(http.MethodPost)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Списки бронирований
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

	// --- Отзывы ---
	protected.HandleFunc("/bookings/{bookingId}/reviews", submitReview.Handle).Methods(http.MethodPost)

	// --- Уведомления ---
	protected.HandleFunc("/users/{userId}/notifications", getNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

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
	close(stopMetricsCh)

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
