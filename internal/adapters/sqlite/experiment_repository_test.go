package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/labgenie/internal/adapters/sqlite"
	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/migrate"
)

func sampleExperiment(name string) *domain.Experiment {
	return domain.NewExperiment(name, "1,2;2,4;3,6", domain.LabRecord{
		Aim:       "To verify " + name,
		Theory:    "V = IR",
		Procedure: "1. Connect\n2. Measure",
		Result:    "Linear",
	}, "iVBORw0KGgo=")
}

func TestExperimentRepository_RoundTrip(t *testing.T) {
	repo := sqlite.NewExperimentRepository(testDB(t))
	ctx := context.Background()

	in := sampleExperiment("Ohm's Law")
	id, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Readings, got.Readings)
	assert.Equal(t, in.Aim, got.Aim)
	assert.Equal(t, in.Theory, got.Theory)
	assert.Equal(t, in.Procedure, got.Procedure)
	assert.Equal(t, in.Result, got.Result)
	assert.Equal(t, in.Graph, got.Graph)
	assert.False(t, got.CreatedAt.IsZero(), "created_at should be populated")
}

func TestExperimentRepository_IDsIncrease(t *testing.T) {
	repo := sqlite.NewExperimentRepository(testDB(t))
	ctx := context.Background()

	var last int64
	for _, name := range []string{"first", "second", "third"} {
		id, err := repo.Create(ctx, sampleExperiment(name))
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "third", list[2].Name)
	assert.Less(t, list[0].ID, list[2].ID)
}

func TestExperimentRepository_ListEmpty(t *testing.T) {
	repo := sqlite.NewExperimentRepository(testDB(t))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExperimentRepository_NotFound(t *testing.T) {
	repo := sqlite.NewExperimentRepository(testDB(t))

	got, err := repo.GetByID(context.Background(), 42)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestOpen_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "experiments.db")

	db, err := sqlite.Open(ctx, sqlite.DriverSQLite, path)
	require.NoError(t, err)
	_, err = sqlite.NewExperimentRepository(db).Create(ctx, sampleExperiment("kept"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, sqlite.DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	list, err := sqlite.NewExperimentRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept", list[0].Name)

	version, dirty, err := migrate.NewRunner(db, nil).CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.False(t, dirty)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "postgres", filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}
