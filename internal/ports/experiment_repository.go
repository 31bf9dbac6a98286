package ports

import (
	"context"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

// ExperimentRepository persists immutable experiments. There is no update or
// delete path.
type ExperimentRepository interface {
	Create(ctx context.Context, experiment *domain.Experiment) (int64, error)
	List(ctx context.Context) ([]domain.ExperimentSummary, error)
	// GetByID returns domain.ErrNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*domain.Experiment, error)
}
