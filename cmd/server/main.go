package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/plannery/backend/api/handler"
	"github.com/plannery/backend/internal/config"
	"github.com/plannery/backend/internal/infrastructure/buffer"
	"github.com/plannery/backend/internal/infrastructure/monitor"
	pgInfra "github.com/plannery/backend/internal/infrastructure/postgres"
	redisInfra "github.com/plannery/backend/internal/infrastructure/redis"
	"github.com/plannery/backend/internal/middleware"
	"github.com/plannery/backend/internal/router"
	"github.com/plannery/backend/internal/services"
	"github.com/plannery/backend/internal/services/estimator"
	"github.com/plannery/backend/internal/services/lifecycle"
	"github.com/plannery/backend/pkg/httpcontext"
	"github.com/plannery/backend/pkg/logger"
	"github.com/plannery/backend/repository/postgres"
	redisRepo "github.com/plannery/backend/repository/redis"
	authUC "github.com/plannery/backend/usecase/auth"
	calendarUC "github.com/plannery/backend/usecase/calendar"
	plannerUC "github.com/plannery/backend/usecase/planner"
	profileUC "github.com/plannery/backend/usecase/profile"
	taskUC "github.com/plannery/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		AppName:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, cancel := manager.SignalContext(context.Background())
	defer cancel()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	historyRepo := postgres.NewTaskHistoryRepository(pool)
	calendarRepo := postgres.NewCalendarRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.RefreshTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		taskRepo,
		logger.WithComponent(zapLogger, "buffer_processor"),
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)
	durationEstimator := estimator.NewHeuristic(logger.WithComponent(zapLogger, "estimator"))

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		JWTSecret:  cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}, zapLogger)
	profileUseCase := profileUC.New(userRepo, bufferBridge, zapLogger)
	taskUseCase := taskUC.New(taskRepo, durationEstimator, bufferBridge, zapLogger).WithHistory(historyRepo)
	plannerUseCase := plannerUC.New(taskRepo, zapLogger)
	calendarUseCase := calendarUC.New(calendarRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Planner:  apiHandler.NewPlannerHandler(plannerUseCase, ctxAdapter, zapLogger),
		Calendar: apiHandler.NewCalendarHandler(calendarUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
