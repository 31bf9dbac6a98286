package ports

import (
	"context"
	"os"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

// ArtifactStore provides scratch files for rendered documents.
type ArtifactStore interface {
	Reserve(format domain.ExportFormat) string
	Open(ctx context.Context, path string) (*os.File, error)
	Delete(ctx context.Context, path string) error
}
