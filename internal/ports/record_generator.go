package ports

import (
	"context"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

// RecordGenerator produces a LabRecord for a description and its readings.
// It never fails: implementations fall back to a local heuristic.
type RecordGenerator interface {
	Generate(ctx context.Context, description string, readings []domain.Reading) (domain.LabRecord, domain.RecordSource)
}
