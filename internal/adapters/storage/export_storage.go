package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

// ExportStorage hands out unique scratch paths for rendered documents so
// concurrent exports never share a file.
type ExportStorage struct {
	baseDir string
}

func NewExportStorage(baseDir string) (*ExportStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &ExportStorage{baseDir: baseDir}, nil
}

// Reserve returns a fresh path for a document in the given format. Nothing is
// created on disk.
func (s *ExportStorage) Reserve(format domain.ExportFormat) string {
	return filepath.Join(s.baseDir, uuid.NewString()+"."+string(format))
}

// Open opens a previously written document for streaming.
func (s *ExportStorage) Open(ctx context.Context, path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	return file, nil
}

func (s *ExportStorage) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete export file: %w", err)
	}
	return nil
}
