package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/chart"
	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/generator"
)

type fixture struct {
	svc     *Service
	repo    *memoryRepo
	charts  *stubCharts
	export  *stubExporter
	store   *dirStore
	metrics *countingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    &memoryRepo{},
		charts:  &stubCharts{},
		export:  &stubExporter{},
		store:   &dirStore{dir: t.TempDir()},
		metrics: newCountingMetrics(),
	}
	f.svc = New(f.repo, generator.New(nil, zap.NewNop()), f.charts, f.export, zap.NewNop(),
		WithMetrics(f.metrics),
		WithArtifactStore(f.store),
	)
	return f
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)

	id, err := f.svc.Submit(context.Background(), "  Ohm's Law ", " 1,2;2,4;3,6 ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ohm's Law", got.Name)
	assert.Equal(t, "1,2;2,4;3,6", got.Readings)
	assert.Equal(t, "cG5n", got.Graph)
	assert.Contains(t, got.Theory, "a linear relationship")

	assert.Equal(t, "Ohm's Law - Readings", f.charts.title)
	assert.Equal(t, "Independent variable (X)", f.charts.xLabel)
	assert.Equal(t, 1, f.metrics.submissions["ok"])
	assert.Equal(t, 1, f.metrics.generations[domain.SourceFallback])
}

func TestSubmit_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		description string
		readings    string
		message     string
	}{
		{"blank description", "  ", "1,2", "Experiment description cannot be empty."},
		{"blank readings", "x", "", "Readings cannot be empty."},
		{"malformed", "x", "abc", "Invalid readings format: abc. Use format x,y;x,y;..."},
		{"missing field", "x", "1,2;3", "Invalid readings format: 3. Use format x,y;x,y;..."},
		{"out of range", "x", "2000000,1", "Reading values too large or too small: 2000000,1"},
		{"only separators", "x", ";;", "No valid readings provided."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Submit(context.Background(), tt.description, tt.readings)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, tt.message, Message(err))
			assert.Empty(t, f.repo.rows, "nothing should be persisted")
			assert.Equal(t, 1, f.metrics.submissions["error"])
		})
	}
}

func TestSubmit_RenderFailureAbortsPersist(t *testing.T) {
	f := newFixture(t)
	f.charts.err = errors.New("no fonts")

	_, err := f.svc.Submit(context.Background(), "Ohm's Law", "1,2")

	var se *domain.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.StageRender, se.Stage)
	assert.Empty(t, f.repo.rows)
	assert.Equal(t, "Error generating graph: no fonts", Message(err))
}

func TestSubmit_PersistFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.createErr = errors.New("disk full")

	_, err := f.svc.Submit(context.Background(), "Ohm's Law", "1,2")

	var se *domain.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.StagePersist, se.Stage)
	assert.True(t, strings.HasPrefix(Message(err), "Error saving experiment"))
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Experiment not found!", Message(err))
}

func TestGet_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.getErr = errors.New("locked")

	_, err := f.svc.Get(context.Background(), 1)
	var se *domain.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.StageFetch, se.Stage)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Submit(ctx, "a", "1,1")
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, "b", "1,1")
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)

	f.repo.listErr = errors.New("boom")
	_, err = f.svc.List(ctx)
	assert.Equal(t, "Error loading dashboard: boom", Message(err))
}

func TestExport_Artifact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, err := f.svc.Submit(ctx, "Ohm's Law", "1,2")
	require.NoError(t, err)

	a, err := f.svc.Export(ctx, id, domain.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "experiment_1.pdf", a.Filename)
	assert.Equal(t, "application/pdf", a.ContentType)

	file, err := a.Open(ctx)
	require.NoError(t, err)
	_ = file.Close()

	require.NoError(t, a.Release(ctx))
	_, err = os.Stat(a.Path)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 1, f.metrics.exports["pdf/ok"])
}

func TestExport_FailureCleansUp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, err := f.svc.Submit(ctx, "Ohm's Law", "1,2")
	require.NoError(t, err)
	f.export.err = errors.New("library exploded")

	_, err = f.svc.Export(ctx, id, domain.FormatDOCX)
	var se *domain.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.StageExport, se.Stage)

	entries, err := os.ReadDir(f.store.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 1, f.metrics.exports["docx/error"])
}

func TestExport_UnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Export(context.Background(), 99, domain.FormatPDF)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport_NoStore(t *testing.T) {
	svc := New(&memoryRepo{}, generator.New(nil, zap.NewNop()), &stubCharts{}, &stubExporter{}, zap.NewNop())

	_, err := svc.Export(context.Background(), 1, domain.FormatPDF)
	assert.Error(t, err)
}

func TestSubmit_RealChart(t *testing.T) {
	repo := &memoryRepo{}
	svc := New(repo, generator.New(nil, zap.NewNop()), chart.NewRenderer(), &stubExporter{}, zap.NewNop())

	id, err := svc.Submit(context.Background(), "Ohm's Law", "1,2;2,4;3,6")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Graph)
	assert.Equal(t, "experiment_1.docx", domain.ExportFilename(id, domain.FormatDOCX))
}
