package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dtroode/defo-server/internal/access"
	grpcrouter "github.com/dtroode/defo-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/defo-server/internal/api/grpc/server"
	httpcontext "github.com/dtroode/defo-server/internal/api/http/context"
	httprouter "github.com/dtroode/defo-server/internal/api/http/router"
	httpserver "github.com/dtroode/defo-server/internal/api/http/server"
	"github.com/dtroode/defo-server/internal/config"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/repository/postgres"
	"github.com/dtroode/defo-server/internal/server"
	"github.com/dtroode/defo-server/internal/service"
	"github.com/dtroode/defo-server/internal/storage"
	"github.com/dtroode/defo-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const healthProbeInterval = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger, err := logger.NewWithSentry(cfg.LogLevel, cfg.SentryDSN)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	datasetRepo := postgres.NewDatasetRepository(db)
	permissionRepo := postgres.NewPermissionRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	blobs, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "backend", cfg.Storage.Backend)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	gate := access.NewGate(permissionRepo)

	services := httprouter.Services{
		Auth:       service.NewAuth(userRepo, refreshTokenRepo, tokenManager, logger),
		Project:    service.NewProject(projectRepo, datasetRepo, blobs, gate, logger),
		Permission: service.NewPermission(projectRepo, userRepo, permissionRepo, gate, logger),
		Dataset:    service.NewDataset(projectRepo, datasetRepo, blobs, gate, cfg.Upload.MaxFileSize, logger),
		Analysis:   service.NewAnalysis(projectRepo, datasetRepo, blobs, gate, logger),
		DB:         db,
	}

	httpSrv := registerHTTPServer(cfg, services, logger)
	healthRouter := grpcrouter.New(db, logger)
	grpcSrv := grpcserver.NewGRPCServer(healthRouter.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	probeCtx, stopProbe := context.WithCancel(ctx)
	defer stopProbe()
	go healthRouter.Probe(probeCtx, healthProbeInterval)

	var wg sync.WaitGroup
	start := func(s model.Server, sl model.SecurityLayer) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}()
	}
	start(httpSrv, server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName))
	start(grpcSrv, server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName))

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	stopProbe()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range []model.Server{httpSrv, grpcSrv} {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(cfg *config.Config, services httprouter.Services, logger *logger.Logger) *httpserver.HTTPServer {
	r := httprouter.New(services, httprouter.Options{
		CORSOrigins: cfg.HTTP.CORSOrigins,
		MaxFileSize: cfg.Upload.MaxFileSize,
	}, httpcontext.NewManager(), logger)

	return httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
}
