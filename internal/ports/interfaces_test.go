package ports_test

import (
	"testing"

	"github.com/emiliopalmerini/labgenie/internal/adapters/gemini"
	"github.com/emiliopalmerini/labgenie/internal/adapters/otel"
	"github.com/emiliopalmerini/labgenie/internal/adapters/sqlite"
	"github.com/emiliopalmerini/labgenie/internal/adapters/storage"
	"github.com/emiliopalmerini/labgenie/internal/chart"
	"github.com/emiliopalmerini/labgenie/internal/export"
	"github.com/emiliopalmerini/labgenie/internal/generator"
	"github.com/emiliopalmerini/labgenie/internal/ports"
)

func TestAdaptersImplementPorts(t *testing.T) {
	var _ ports.ExperimentRepository = (*sqlite.ExperimentRepository)(nil)
	var _ ports.TextGenerator = (*gemini.Client)(nil)
	var _ ports.RecordGenerator = (*generator.Generator)(nil)
	var _ ports.ChartRenderer = (*chart.Renderer)(nil)
	var _ ports.DocumentExporter = (*export.Exporter)(nil)
	var _ ports.ArtifactStore = (*storage.ExportStorage)(nil)
	var _ ports.MetricsRecorder = (*otel.Recorder)(nil)
	var _ ports.MetricsRecorder = (*otel.NoOpRecorder)(nil)
}
