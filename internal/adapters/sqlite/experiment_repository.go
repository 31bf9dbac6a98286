package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/util"
)

type ExperimentRepository struct {
	db *sql.DB
}

func NewExperimentRepository(db *sql.DB) *ExperimentRepository {
	return &ExperimentRepository{db: db}
}

func (r *ExperimentRepository) Create(ctx context.Context, experiment *domain.Experiment) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO experiments (name, readings, aim, theory, procedure, result, graph)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		experiment.Name,
		experiment.Readings,
		experiment.Aim,
		experiment.Theory,
		experiment.Procedure,
		experiment.Result,
		experiment.Graph,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create experiment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read experiment id: %w", err)
	}
	return id, nil
}

func (r *ExperimentRepository) List(ctx context.Context) ([]domain.ExperimentSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM experiments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ExperimentSummary
	for rows.Next() {
		var (
			s         domain.ExperimentSummary
			createdAt string
		)
		if err := rows.Scan(&s.ID, &s.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan experiment: %w", err)
		}
		s.CreatedAt = util.ParseTimeSQLite(createdAt)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating experiments: %w", err)
	}
	return summaries, nil
}

func (r *ExperimentRepository) GetByID(ctx context.Context, id int64) (*domain.Experiment, error) {
	var (
		e         domain.Experiment
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, readings, aim, theory, procedure, result, graph, created_at
		FROM experiments
		WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.Readings, &e.Aim, &e.Theory, &e.Procedure, &e.Result, &e.Graph, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get experiment: %w", err)
	}

	e.CreatedAt = util.ParseTimeSQLite(createdAt)
	return &e, nil
}
