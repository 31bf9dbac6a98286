package cli

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/adapters/gemini"
	"github.com/emiliopalmerini/labgenie/internal/adapters/otel"
	"github.com/emiliopalmerini/labgenie/internal/adapters/sqlite"
	"github.com/emiliopalmerini/labgenie/internal/adapters/storage"
	"github.com/emiliopalmerini/labgenie/internal/app"
	"github.com/emiliopalmerini/labgenie/internal/chart"
	"github.com/emiliopalmerini/labgenie/internal/export"
	"github.com/emiliopalmerini/labgenie/internal/generator"
	"github.com/emiliopalmerini/labgenie/internal/ports"
	"github.com/emiliopalmerini/labgenie/internal/service"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config         *app.Config
	Logger         *zap.Logger
	DB             *sql.DB
	ExperimentRepo ports.ExperimentRepository
	Generator      ports.RecordGenerator
	Charts         ports.ChartRenderer
	Exporter       ports.DocumentExporter
	Artifacts      ports.ArtifactStore
	Metrics        ports.MetricsRecorder
	Service        *service.Service
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig() (*app.Config, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// NewAppContext creates an AppContext with all dependencies initialized.
func NewAppContext(ctx context.Context, cfg *app.Config) (*AppContext, error) {
	logger, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := cfg.OpenDatabase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	artifacts, err := storage.NewExportStorage(cfg.ExportDir)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize export storage: %w", err)
	}

	var client ports.TextGenerator
	if cfg.GeminiAPIKey != "" {
		c, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini client unavailable, using fallback records", zap.Error(err))
		} else {
			client = c
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, using fallback records")
	}

	a := &AppContext{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		ExperimentRepo: sqlite.NewExperimentRepository(db),
		Generator:      generator.New(client, logger, generator.WithTimeout(cfg.GenerationTimeout)),
		Charts:         chart.NewRenderer(),
		Exporter:       export.NewExporter(logger),
		Artifacts:      artifacts,
		Metrics:        newMetrics(ctx, cfg.OTEL, logger),
	}
	a.Service = service.New(a.ExperimentRepo, a.Generator, a.Charts, a.Exporter, logger,
		service.WithMetrics(a.Metrics),
		service.WithArtifactStore(a.Artifacts),
	)
	return a, nil
}

// newMetrics falls back to a no-op recorder when OTEL is off or unreachable.
func newMetrics(ctx context.Context, cfg otel.Config, logger *zap.Logger) ports.MetricsRecorder {
	if !cfg.Active() {
		return otel.NewNoOpRecorder()
	}
	rec, err := otel.NewRecorder(ctx, cfg)
	if err != nil {
		logger.Warn("OTEL metrics disabled", zap.Error(err))
		return otel.NewNoOpRecorder()
	}
	return rec
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close(ctx context.Context) error {
	if a.Metrics != nil {
		if err := a.Metrics.Close(ctx); err != nil && a.Logger != nil {
			a.Logger.Warn("flushing metrics failed", zap.Error(err))
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// withApp loads configuration, builds an AppContext and closes it after fn.
func withApp(ctx context.Context, fn func(*AppContext) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := NewAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	return fn(a)
}
