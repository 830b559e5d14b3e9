package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	adminCategoriesHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/admin_categories"
	adminMenuItemsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/admin_menu_items"
	createReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_available_slots"
	getCategoriesHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_categories"
	getDashboardHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_dashboard"
	getMenuHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_menu"
	getReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_reservation"
	getSettingsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_settings"
	listReservationsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/list_reservations"
	updateReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/update_reservation"
	updateReservationStatusHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/cache"
	menuRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/menu"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/storage/migrations"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RestaurantService/internal/scheduler"
	menuService "github.com/m04kA/SMC-RestaurantService/internal/service/menu"
	reservationsService "github.com/m04kA/SMC-RestaurantService/internal/service/reservations"
	settingsService "github.com/m04kA/SMC-RestaurantService/internal/service/settings"
	createReservationUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_available_slots"
	sendRemindersUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/metrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// availabilityCache кеш слотов целиком: чтение для витрины, сброс после записи
type availabilityCache interface {
	Get(ctx context.Context, date time.Time, guests int) (*domain.DaySlots, int64, error)
	Set(ctx context.Context, date time.Time, guests int, generation int64, slots *domain.DaySlots) (bool, error)
	Invalidate(ctx context.Context, date time.Time) error
}

// notifier публикация событий бронирований
type notifier interface {
	PublishReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error
	PublishReservationReminder(ctx context.Context, reservation *domain.Reservation) error
}

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API и планировщик напоминаний",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer a.log.Close()

			return serve(a, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "применить миграции перед запуском")
	return cmd
}

func serve(a *app, migrateUp bool) error {
	cfg, log := a.cfg, a.log
	log.Info("Starting SMC-RestaurantService (%s)...", a.restaurant.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Метрики (если включены). nil-коллектор безопасен для всех Observe*
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if migrateUp {
		if err := migrations.Up(db); err != nil {
			return err
		}
		log.Info("Database migrations applied")
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	menuRepository := menuRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кеш доступности (опционально). Интерфейс остается nil, если кеш выключен
	var slotsCache availabilityCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		slotsCache = cache.NewAvailabilityCache(redisClient, cfg.Redis.TTL())
		log.Info("Availability cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Уведомления (опционально)
	var events notifier
	if cfg.RabbitMQ.Enabled {
		publisher, err := a.newPublisher()
		if err != nil {
			return err
		}
		defer publisher.Close()

		events = publisher
		log.Info("Notifications enabled (confirmed=%s, reminder=%s)",
			cfg.RabbitMQ.ConfirmedQueue, cfg.RabbitMQ.ReminderQueue)
	}

	// Use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		txMgr,
		events,
		slotsCache,
		metricsCollector,
		a.restaurant,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		slotsCache,
		metricsCollector,
		a.restaurant,
		log,
	)

	// Сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, slotsCache, a.restaurant, log)
	menuSvc := menuService.NewService(menuRepository, txMgr, log)
	settingsSvc := settingsService.NewService(a.restaurant)

	// Handlers
	getSettings := getSettingsHandler.NewHandler(settingsSvc)
	getMenu := getMenuHandler.NewHandler(menuSvc, log)
	getCategories := getCategoriesHandler.NewHandler(menuSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, a.restaurant.Location, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getDashboard := getDashboardHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationsSvc, log)
	adminCategories := adminCategoriesHandler.NewHandler(menuSvc, log)
	adminMenuItems := adminMenuItemsHandler.NewHandler(menuSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (сайт ресторана)
	// ============================================================

	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/menu", getMenu.Handle).Methods(http.MethodGet)
	api.HandleFunc("/categories", getCategories.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth)

	// --- Бронирования ---
	admin.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}", updateReservation.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/reservations/{id:[0-9]+}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Меню ---
	admin.HandleFunc("/categories", adminCategories.Create).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id:[0-9]+}", adminCategories.Update).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id:[0-9]+}", adminCategories.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/menu-items", adminMenuItems.List).Methods(http.MethodGet)
	admin.HandleFunc("/menu-items", adminMenuItems.Create).Methods(http.MethodPost)
	admin.HandleFunc("/menu-items/reorder", adminMenuItems.Reorder).Methods(http.MethodPost)
	admin.HandleFunc("/menu-items/{id:[0-9]+}", adminMenuItems.Update).Methods(http.MethodPut)
	admin.HandleFunc("/menu-items/{id:[0-9]+}", adminMenuItems.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/menu-items/{id:[0-9]+}/toggle", adminMenuItems.Toggle).Methods(http.MethodPatch)

	// Планировщик напоминаний (только если есть куда отправлять)
	if cfg.Reminders.Enabled {
		if events == nil {
			log.Warn("Reminders enabled but rabbitmq is disabled, scheduler not started")
		} else {
			sendReminders := sendRemindersUC.NewUseCase(
				reservationRepository,
				events,
				metricsCollector,
				a.restaurant.Location,
				log,
			)
			sched := scheduler.New(
				sendReminders,
				time.Duration(cfg.Reminders.CheckInterval)*time.Second,
				types.TimeString(cfg.Reminders.RunAt),
				a.restaurant.Location,
				log,
			)
			go sched.Start(ctx)
		}
	}

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
