package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/vitaboard/backend/api/handler"
	"github.com/vitaboard/backend/internal/config"
	"github.com/vitaboard/backend/internal/infrastructure/localstore"
	"github.com/vitaboard/backend/internal/infrastructure/monitor"
	pgInfra "github.com/vitaboard/backend/internal/infrastructure/postgres"
	redisInfra "github.com/vitaboard/backend/internal/infrastructure/redis"
	"github.com/vitaboard/backend/internal/middleware"
	"github.com/vitaboard/backend/internal/router"
	"github.com/vitaboard/backend/internal/services"
	"github.com/vitaboard/backend/internal/services/lifecycle"
	"github.com/vitaboard/backend/pkg/httpcontext"
	"github.com/vitaboard/backend/pkg/logger"
	localRepo "github.com/vitaboard/backend/repository/localstore"
	"github.com/vitaboard/backend/repository/postgres"
	redisRepo "github.com/vitaboard/backend/repository/redis"
	activityUC "github.com/vitaboard/backend/usecase/activity"
	authUC "github.com/vitaboard/backend/usecase/auth"
	healthUC "github.com/vitaboard/backend/usecase/health"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

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

	redisClient, err := redisInfra.NewClient(cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	localStore, err := localstore.Open(cfg.Localstore.Path, cfg.Localstore.Bucket)
	if err != nil {
		zapLogger.Fatal("failed to open local store", zap.Error(err))
	}
	manager.Register("localstore", func(ctx context.Context) error {
		return localStore.Close()
	})

	mon := monitor.New(pool, redisClient, localStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)
	healthRepo := localRepo.NewHealthStateRepository(localStore)

	activityService := activityUC.NewService(activityRepo, zapLogger)
	healthService := healthUC.NewService(healthRepo, zapLogger)
	authUseCase := authUC.New(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)

	if cfg.Sweep.Enabled {
		sweep := services.NewOverdueSweep(
			activityRepo,
			activityService,
			zapLogger,
			services.SweepConfig{Schedule: cfg.Sweep.Schedule},
		)
		sweep.Start()
		manager.Register("overdue_sweep", func(ctx context.Context) error {
			sweep.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Session.TTL),
		Activity: apiHandler.NewActivityHandler(activityService, ctxAdapter, zapLogger),
		Wellness: apiHandler.NewWellnessHandler(healthService, ctxAdapter, zapLogger),
		Status:   apiHandler.NewStatusHandler(mon, ctxAdapter, zapLogger),
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
