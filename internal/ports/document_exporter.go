package ports

import "github.com/emiliopalmerini/labgenie/internal/domain"

// DocumentExporter writes an experiment to path in the given format.
type DocumentExporter interface {
	Export(experiment *domain.Experiment, format domain.ExportFormat, path string) error
}
