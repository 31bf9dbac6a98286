package otel

import (
	"context"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

// NoOpRecorder is a metrics recorder that does nothing.
type NoOpRecorder struct{}

// NewNoOpRecorder creates a new no-op recorder for graceful degradation.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

func (r *NoOpRecorder) RecordSubmission(ctx context.Context, outcome string) {}

func (r *NoOpRecorder) RecordGeneration(ctx context.Context, source domain.RecordSource) {}

func (r *NoOpRecorder) RecordExport(ctx context.Context, format domain.ExportFormat, outcome string) {}

func (r *NoOpRecorder) Close(ctx context.Context) error {
	return nil
}
