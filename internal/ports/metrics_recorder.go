package ports

import (
	"context"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

// MetricsRecorder records submission, generation and export outcomes to an
// external observability system.
type MetricsRecorder interface {
	RecordSubmission(ctx context.Context, outcome string)
	RecordGeneration(ctx context.Context, source domain.RecordSource)
	RecordExport(ctx context.Context, format domain.ExportFormat, outcome string)
	// Close shuts down the recorder and flushes any pending metrics.
	Close(ctx context.Context) error
}

// Outcome labels shared by the recorders.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
