// Package service sequences parsing, generation, rendering, persistence and
// export for both the web handlers and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/adapters/otel"
	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/ports"
)

var errNoArtifactStore = errors.New("no artifact store configured")

// Service is the request orchestrator.
type Service struct {
	repo      ports.ExperimentRepository
	generator ports.RecordGenerator
	charts    ports.ChartRenderer
	exporter  ports.DocumentExporter
	artifacts ports.ArtifactStore
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records outcomes on m instead of discarding them.
func WithMetrics(m ports.MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithArtifactStore enables Export, which needs scratch files.
func WithArtifactStore(a ports.ArtifactStore) Option {
	return func(s *Service) { s.artifacts = a }
}

func New(
	repo ports.ExperimentRepository,
	generator ports.RecordGenerator,
	charts ports.ChartRenderer,
	exporter ports.DocumentExporter,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		repo:      repo,
		generator: generator,
		charts:    charts,
		exporter:  exporter,
		metrics:   otel.NewNoOpRecorder(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the input, generates the record, renders the chart and
// stores the experiment, returning its id. Nothing is stored unless every
// earlier step succeeds. Errors are *domain.ValidationError or
// *domain.StageError.
func (s *Service) Submit(ctx context.Context, description, rawReadings string) (int64, error) {
	id, err := s.submit(ctx, description, rawReadings)
	if err != nil {
		s.metrics.RecordSubmission(ctx, ports.OutcomeError)
		return 0, err
	}
	s.metrics.RecordSubmission(ctx, ports.OutcomeOK)
	return id, nil
}

func (s *Service) submit(ctx context.Context, description, rawReadings string) (int64, error) {
	name, err := domain.ValidateDescription(description)
	if err != nil {
		return 0, err
	}
	readings, err := domain.ParseReadings(rawReadings)
	if err != nil {
		return 0, err
	}

	record, source := s.generator.Generate(ctx, name, readings)
	s.metrics.RecordGeneration(ctx, source)

	graph, err := s.charts.Render(readings, name+" - Readings", record.XLabel, record.YLabel)
	if err != nil {
		s.logger.Error("chart rendering failed", zap.String("experiment", name), zap.Error(err))
		return 0, &domain.StageError{Stage: domain.StageRender, Err: err}
	}

	experiment := domain.NewExperiment(name, strings.TrimSpace(rawReadings), record, graph)
	id, err := s.repo.Create(ctx, experiment)
	if err != nil {
		s.logger.Error("saving experiment failed", zap.String("experiment", name), zap.Error(err))
		return 0, &domain.StageError{Stage: domain.StagePersist, Err: err}
	}

	s.logger.Info("experiment created",
		zap.Int64("experiment_id", id),
		zap.String("experiment", name),
		zap.Int("readings", len(readings)),
		zap.String("source", string(source)),
	)
	return id, nil
}

// List returns every experiment in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.ExperimentSummary, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("listing experiments failed", zap.Error(err))
		return nil, &domain.StageError{Stage: domain.StageList, Err: err}
	}
	return summaries, nil
}

// Get returns the experiment or an error wrapping domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Experiment, error) {
	experiment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("fetching experiment failed", zap.Int64("experiment_id", id), zap.Error(err))
		return nil, &domain.StageError{Stage: domain.StageFetch, Err: err}
	}
	return experiment, nil
}

// ExportTo writes the experiment to path.
func (s *Service) ExportTo(ctx context.Context, id int64, format domain.ExportFormat, path string) error {
	experiment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.exporter.Export(experiment, format, path); err != nil {
		s.metrics.RecordExport(ctx, format, ports.OutcomeError)
		s.logger.Error("export failed",
			zap.Int64("experiment_id", id),
			zap.String("format", string(format)),
			zap.Error(err))
		return &domain.StageError{Stage: domain.StageExport, Err: err}
	}

	s.metrics.RecordExport(ctx, format, ports.OutcomeOK)
	return nil
}

// Artifact is a rendered document waiting to be streamed. Release removes it.
type Artifact struct {
	Path        string
	Filename    string
	ContentType string

	store ports.ArtifactStore
}

// Open opens the artifact for reading.
func (a *Artifact) Open(ctx context.Context) (*os.File, error) {
	return a.store.Open(ctx, a.Path)
}

// Release deletes the artifact.
func (a *Artifact) Release(ctx context.Context) error {
	return a.store.Delete(ctx, a.Path)
}

// Export renders the experiment to a uniquely named scratch file.
func (s *Service) Export(ctx context.Context, id int64, format domain.ExportFormat) (*Artifact, error) {
	if s.artifacts == nil {
		return nil, &domain.StageError{Stage: domain.StageExport, Err: errNoArtifactStore}
	}

	path := s.artifacts.Reserve(format)
	if err := s.ExportTo(ctx, id, format, path); err != nil {
		if delErr := s.artifacts.Delete(ctx, path); delErr != nil {
			s.logger.Warn("removing partial export failed", zap.String("path", path), zap.Error(delErr))
		}
		return nil, err
	}

	return &Artifact{
		Path:        path,
		Filename:    domain.ExportFilename(id, format),
		ContentType: format.ContentType(),
		store:       s.artifacts,
	}, nil
}

// SubmittedMessage is shown after a successful submission.
const SubmittedMessage = "Experiment record generated and saved successfully!"

// Message maps an orchestrator error to the text shown to the user.
func Message(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "Experiment not found!"
	}
	if errors.Is(err, domain.ErrUnsupportedFormat) {
		return "Unsupported export format!"
	}

	var se *domain.StageError
	if errors.As(err, &se) {
		switch se.Stage {
		case domain.StageRender:
			return fmt.Sprintf("Error generating graph: %v", se.Err)
		case domain.StagePersist:
			return fmt.Sprintf("Error saving experiment: %v", se.Err)
		case domain.StageExport:
			return fmt.Sprintf("Error exporting file: %v", se.Err)
		case domain.StageList:
			return fmt.Sprintf("Error loading dashboard: %v", se.Err)
		case domain.StageFetch:
			return fmt.Sprintf("Error viewing record: %v", se.Err)
		}
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err)
}
