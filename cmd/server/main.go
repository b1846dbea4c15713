// Package main provides the entry point for the jackpot builder API server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/jackpot-builder/internal/api"
	"github.com/yourusername/jackpot-builder/internal/cache"
	"github.com/yourusername/jackpot-builder/internal/config"
	"github.com/yourusername/jackpot-builder/internal/database"
	"github.com/yourusername/jackpot-builder/internal/datasource"
	"github.com/yourusername/jackpot-builder/internal/generator"
	"github.com/yourusername/jackpot-builder/internal/health"
	"github.com/yourusername/jackpot-builder/internal/logger"
	"github.com/yourusername/jackpot-builder/internal/metrics"
	"github.com/yourusername/jackpot-builder/internal/models"
	"github.com/yourusername/jackpot-builder/internal/repository"
	"github.com/yourusername/jackpot-builder/internal/scheduler"
	"github.com/yourusername/jackpot-builder/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the jackpot builder API server",
	Long:  `Serves the jackpot REST API, schedules weekly fixture syncs and exposes health and metrics endpoints.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func runServer() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Jackpot builder starting")

	// Database and repositories
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	// Fixture source chain
	sourceLog := log.New(appLog.Writer(), "", 0)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), sourceLog)
	defer httpClient.Close()

	chain, err := datasource.NewChainFromConfig(cfg.DataSources, httpClient, sourceLog)
	if err != nil {
		return fmt.Errorf("failed to build fixture source chain: %w", err)
	}
	appLog.WithField("sources", chain.Sources()).Info("Fixture source chain ready")

	// Slip generation
	gen := generator.New(nil, appLog)
	slipCache := cache.NewSlipCache(
		time.Duration(cfg.Jackpot.CacheTTLSeconds)*time.Second,
		cfg.Jackpot.CacheMaxSize,
	)
	svc := service.NewSlipService(repos, chain, gen, slipCache, service.SlipDefaults{
		Strategy:  models.Strategy(cfg.Jackpot.DefaultStrategy),
		RiskLevel: cfg.Jackpot.DefaultRiskLevel,
		Stake:     decimal.NewFromFloat(cfg.Jackpot.DefaultStake),
	}, appLog)

	// Weekly sync scheduler
	var sched *scheduler.Scheduler
	if cfg.Features.FixtureSyncEnabled {
		sched = scheduler.NewScheduler(svc, log.New(appLog.Writer(), "", 0))
		syncTimeout := time.Duration(cfg.DataSources.Schedule.SyncTimeoutSeconds) * time.Second
		if err := sched.ScheduleWeeklySync(cfg.DataSources.Schedule.FixtureSync, syncTimeout); err != nil {
			return fmt.Errorf("failed to schedule weekly sync: %w", err)
		}
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
		appLog.WithField("cron", cfg.DataSources.Schedule.FixtureSync).Info("Weekly sync scheduled")
	}

	// Health and metrics endpoints
	var metricsHandler = metrics.Handler()
	if !cfg.Metrics.Enabled {
		metricsHandler = nil
	}
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(cfg.Server.HealthPort),
		Sources:     chain.Sources(),
		Metrics:     metricsHandler,
		MetricsPath: cfg.Metrics.Path,
		Logger:      appLog,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	// API server
	apiServer := api.NewServer(cfg.Server, cfg.Features, svc, appLog, cfg.IsProduction())
	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start()
	}()
	healthServer.SetReady(true)

	// Wait for shutdown signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig.String()).Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	healthServer.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Failed to shut down API server cleanly")
	}

	appLog.Info("Jackpot builder stopped")
	return nil
}
