// Package export renders stored experiments as DOCX or PDF documents.
package export

import (
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

type section struct {
	Heading string
	Body    string
}

// Exporter writes documents with the title, the four text sections and the
// embedded chart, in that order.
type Exporter struct {
	logger *zap.Logger
}

func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

// Export writes experiment to path in the given format.
func (e *Exporter) Export(experiment *domain.Experiment, format domain.ExportFormat, path string) error {
	graph, err := base64.StdEncoding.DecodeString(experiment.Graph)
	if err != nil {
		return fmt.Errorf("failed to decode graph: %w", err)
	}

	switch format {
	case domain.FormatDOCX:
		err = writeDOCX(experiment, graph, path)
	case domain.FormatPDF:
		err = writePDF(experiment, graph, path)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}

	e.logger.Debug("experiment exported",
		zap.Int64("experiment_id", experiment.ID),
		zap.String("format", string(format)),
		zap.String("path", path),
	)
	return nil
}

// Title is the document title for an experiment.
func Title(experiment *domain.Experiment) string {
	return "Lab Record: " + experiment.Name
}

func sections(experiment *domain.Experiment) []section {
	return []section{
		{"Aim", experiment.Aim},
		{"Theory", experiment.Theory},
		{"Procedure", experiment.Procedure},
		{"Result", experiment.Result},
	}
}

func lines(body string) []string {
	return strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
}
