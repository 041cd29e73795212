package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	apirest "github.com/skillmastery/server/api/rest"
	"github.com/skillmastery/server/audit"
	"github.com/skillmastery/server/cache"
	"github.com/skillmastery/server/config"
	dbadapter "github.com/skillmastery/server/db"
	"github.com/skillmastery/server/model"
	"github.com/skillmastery/server/observability"
	"github.com/skillmastery/server/scheduler"
	"github.com/skillmastery/server/service"
	"go.uber.org/zap"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	if cfg.Server.AdminKey == "" {
		logger.Warn("server.admin_key is not set; admin endpoints are disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Tracing ----
	shutdownOTel, err := observability.InitOTel(ctx, logger, cfg.Tracing)
	if err != nil {
		logger.Fatal("otel", zap.Error(err))
	}

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	if err := model.AutoMigrate(db); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}
	logger.Info("DB initialized", zap.String("mode", cfg.Database.Mode))

	// ---- Cache ----
	c, err := cache.NewCache(cache.CacheConfig{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		LocalGCInterval: cfg.Cache.LocalGCInterval,
	})
	if err != nil {
		logger.Fatal("cache", zap.Error(err))
	}
	defer c.Close()
	logger.Info("Cache initialized", zap.Bool("redis", cfg.Cache.RedisAddr != ""), zap.Duration("list_ttl", cfg.Cache.ListTTL))

	// ---- Audit ----
	var auditSvc *audit.Service
	if cfg.Audit.Enabled {
		auditSvc = audit.New(db, logger)
	}

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	if auditSvc != nil && cfg.Audit.Retention > 0 {
		err := sched.AddJob("audit_retention", cfg.Audit.PurgeSchedule, func(ctx context.Context) error {
			_, err := auditSvc.Purge(ctx, cfg.Audit.Retention)
			return err
		})
		if err != nil {
			logger.Fatal("scheduler", zap.Error(err))
		}
	}
	sched.Start()

	// ---- Services ----
	services := service.New(db,
		service.WithListCache(c, cfg.Cache.ListTTL),
		service.WithLogger(logger),
	)

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := apirest.NewRouter(ctx, apirest.RouterDeps{
		DB:        db,
		Services:  services,
		Audit:     auditSvc,
		Scheduler: sched,
		Server:    cfg.Server,
		Security:  cfg.Security,
		Tracing:   cfg.Tracing,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: apirest.CaseInsensitive(r),
	}
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	sched.Stop()
	auditSvc.Stop(shutdownCtx)
	if err := shutdownOTel(shutdownCtx); err != nil {
		logger.Warn("otel shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
