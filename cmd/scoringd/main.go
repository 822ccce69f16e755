package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nozima-Rustamova/credit-ML/internal/application/usecase"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/infrastructure/config"
	"github.com/Nozima-Rustamova/credit-ML/internal/infrastructure/govdata"
	"github.com/Nozima-Rustamova/credit-ML/internal/infrastructure/messaging"
	"github.com/Nozima-Rustamova/credit-ML/internal/infrastructure/ml"
	"github.com/Nozima-Rustamova/credit-ML/internal/infrastructure/postgres"
	"github.com/Nozima-Rustamova/credit-ML/internal/infrastructure/scheduler"
	grpcpresentation "github.com/Nozima-Rustamova/credit-ML/internal/presentation/grpc"
	"github.com/Nozima-Rustamova/credit-ML/internal/presentation/rest"
	"github.com/Nozima-Rustamova/credit-ML/pkg/auth"
	"github.com/Nozima-Rustamova/credit-ML/pkg/kafka"
	"github.com/Nozima-Rustamova/credit-ML/pkg/observability"
	pkgpostgres "github.com/Nozima-Rustamova/credit-ML/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting credit-scoring",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: "credit-scoring",
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize metrics exporter.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "credit-scoring",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection and migrations.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DatabaseURL, 10, 2)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	migrationsURL := getEnv("MIGRATIONS_URL", "file://migrations")
	if err := pkgpostgres.RunMigrations(cfg.DatabaseURL, migrationsURL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Load optional statistical models.
	individualModel, err := ml.LoadModel(cfg.IndividualModelPath)
	if err != nil {
		logger.Error("failed to load individual model", "path", cfg.IndividualModelPath, "error", err)
		os.Exit(1)
	}
	companyModel, err := ml.LoadModel(cfg.CompanyModelPath)
	if err != nil {
		logger.Error("failed to load company model", "path", cfg.CompanyModelPath, "error", err)
		os.Exit(1)
	}
	logger.Info("scoring models loaded",
		"individual_model", individualModel.ID(),
		"company_model", companyModel.ID(),
	)

	// Wire infrastructure adapters.
	requestRepo := postgres.NewCreditRequestRepository(pool)
	individualRepo := postgres.NewIndividualProfileRepository(pool)
	companyRepo := postgres.NewCompanyProfileRepository(pool)
	auditRepo := postgres.NewPredictionLogRepository(pool)
	recordRepo := postgres.NewExternalRecordRepository(pool)

	producer := kafka.NewProducer(kafka.Config{Brokers: []string{cfg.KafkaBroker}})
	defer producer.Close()
	eventPublisher := messaging.NewKafkaPublisher(producer, messaging.DefaultTopic, logger)

	soliqClient := govdata.NewMockSoliqClient(logger)
	kadastrClient := govdata.NewMockKadastrClient(logger)

	// Wire domain services.
	scorer := service.NewRiskScorer(individualModel, companyModel, logger)

	// Wire use cases.
	scoreIndividualUC := usecase.NewScoreIndividual(scorer, auditRepo, logger)
	scoreCompanyUC := usecase.NewScoreCompany(scorer, auditRepo, logger)
	submitUC := usecase.NewSubmitCreditRequest(requestRepo, individualRepo, companyRepo, auditRepo, eventPublisher, scorer, logger)
	getRequestUC := usecase.NewGetCreditRequest(requestRepo)
	listPredictionsUC := usecase.NewListPredictions(auditRepo)
	rescoreUC := usecase.NewRescorePending(requestRepo, individualRepo, companyRepo, auditRepo, eventPublisher, scorer, cfg.RescoreBatch, logger)
	purgeUC := usecase.NewPurgePredictionLogs(auditRepo, cfg.AuditRetention, logger)
	refreshUC := usecase.NewRefreshExternalRecords(individualRepo, companyRepo, recordRepo, soliqClient, kadastrClient, cfg.RefreshTTL, cfg.RefreshBatch, logger)

	// Background workers.
	rescoreWorker := scheduler.NewWorker("rescore_pending", func(ctx context.Context) error {
		_, err := rescoreUC.Execute(ctx)
		return err
	}, cfg.RescoreInterval, logger)

	purgeWorker := scheduler.NewWorker("purge_prediction_logs", func(ctx context.Context) error {
		_, err := purgeUC.Execute(ctx)
		return err
	}, cfg.PurgeInterval, logger)

	refreshWorker := scheduler.NewWorker("refresh_external_records", func(ctx context.Context) error {
		_, err := refreshUC.Execute(ctx)
		return err
	}, cfg.RefreshInterval, logger)

	go rescoreWorker.Start(ctx)
	go purgeWorker.Start(ctx)
	go refreshWorker.Start(ctx)

	// JWT verification for the gRPC surface.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: 24 * time.Hour,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewScoringServiceHandler(
		scoreIndividualUC, scoreCompanyUC, submitUC, getRequestUC, listPredictionsUC, logger,
	)
	grpcServer := grpcpresentation.NewServer(
		grpcHandler, cfg.GRPCAddress(), logger, jwtService, cfg.TLSCertFile, cfg.TLSKeyFile,
	)

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(logger, map[string]rest.CheckFunc{
		"database": func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		},
	})
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("credit-scoring started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down credit-scoring")

	rescoreWorker.Stop()
	purgeWorker.Stop()
	refreshWorker.Stop()

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-scoring stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
