package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/agenda"
	"github.com/Freeeeeet/cabinet_desk/internal/app"
	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/cache"
	"github.com/Freeeeeet/cabinet_desk/internal/client"
	"github.com/Freeeeeet/cabinet_desk/internal/config"
	"github.com/Freeeeeet/cabinet_desk/internal/controller"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/cabinet_desk/internal/controller/state"
	"github.com/Freeeeeet/cabinet_desk/internal/metrics"
	"github.com/Freeeeeet/cabinet_desk/internal/repository"
	"github.com/Freeeeeet/cabinet_desk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting cabinet desk bot",
		"environment", cfg.Environment,
		"token_length", len(cfg.TelegramToken))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// Postgres: только таблица сессий
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Connected to database")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return err
	}

	// Redis необязателен: без него агенда всегда читается из API
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, agenda cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr))
		}
	}
	agendaCache := cache.NewAgendaCache(redisClient, cfg.AgendaCacheTTL)

	m := metrics.New(prometheus.DefaultRegisterer)
	metricsServer := startMetricsServer(cfg.MetricsAddr, logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	// REST-клиенты сервисов кабинета
	opts := client.Options{
		Timeout: cfg.StoreTimeout,
		Limiter: rate.NewLimiter(rate.Limit(cfg.StoreRatePerSec), int(cfg.StoreRatePerSec)+1),
		Metrics: m,
	}
	authClient := client.NewAuthClient(cfg.AuthAPIURL, opts, logger)
	appointmentClient := client.NewAppointmentClient(cfg.AppointmentAPIURL, opts, logger)
	patientClient := client.NewPatientClient(cfg.PatientAPIURL, opts, logger)
	billingClient := client.NewBillingClient(cfg.BillingAPIURL, opts, logger)
	consultationClient := client.NewConsultationClient(cfg.ConsultationAPIURL, opts, logger)
	prescriptionClient := client.NewPrescriptionClient(cfg.PrescriptionAPIURL, opts, logger)
	userClient := client.NewUserClient(cfg.UserAPIURL, opts, logger)
	cabinetClient := client.NewCabinetClient(cfg.CabinetAPIURL, opts, logger)

	grid, err := agenda.NewGrid(cfg.AgendaStartHour, cfg.AgendaEndHour, cfg.AgendaSlotMinutes)
	if err != nil {
		return err
	}

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, token signatures are not verified")
	}

	sessionRepo := repository.NewSessionRepository(pool)

	sessionService := service.NewSessionService(sessionRepo, authClient, userClient, cabinetClient, auth.NewDecoder(cfg.JWTSecret), logger)
	agendaService := service.NewAgendaService(grid, appointmentClient, patientClient, agendaCache, m, logger)
	bookingService := service.NewBookingService(agendaService, appointmentClient, patientClient, m, logger)
	dashboardService := service.NewDashboardService(agendaService, logger)
	adminService := service.NewAdminService(cabinetClient, userClient, patientClient, logger)
	lookupService := service.NewLookupService(appointmentClient, patientClient, billingClient, consultationClient, prescriptionClient, logger)

	scheduler := app.NewScheduler(sessionService, cfg.SessionPurgeInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	botController := controller.NewBotController(&callbacktypes.Handler{
		Sessions:     sessionService,
		Agenda:       agendaService,
		Booking:      bookingService,
		Dashboard:    dashboardService,
		Lookup:       lookupService,
		Admin:        adminService,
		StateManager: state.NewManager(),
		Logger:       logger,
	}, m, logger)

	b, err := bot.New(cfg.TelegramToken, botController.Options()...)
	if err != nil {
		return err
	}
	botController.Attach(b)

	if err := botController.RegisterHandlers(ctx); err != nil {
		// меню команд не критично
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	return botController.Start(ctx)
}

func startMetricsServer(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	return srv
}
