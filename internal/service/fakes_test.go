package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

type memoryRepo struct {
	mu        sync.Mutex
	rows      []domain.Experiment
	createErr error
	listErr   error
	getErr    error
}

func (m *memoryRepo) Create(ctx context.Context, e *domain.Experiment) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *e
	row.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, row)
	return row.ID, nil
}

func (m *memoryRepo) List(ctx context.Context) ([]domain.ExperimentSummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ExperimentSummary
	for _, r := range m.rows {
		out = append(out, domain.ExperimentSummary{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id int64) (*domain.Experiment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			row := r
			return &row, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubCharts struct {
	err    error
	title  string
	xLabel string
}

func (s *stubCharts) Render(readings []domain.Reading, title, xLabel, yLabel string) (string, error) {
	s.title, s.xLabel = title, xLabel
	if s.err != nil {
		return "", s.err
	}
	return "cG5n", nil
}

type stubExporter struct {
	err error
}

func (s *stubExporter) Export(e *domain.Experiment, format domain.ExportFormat, path string) error {
	if s.err != nil {
		_ = os.WriteFile(path, []byte("partial"), 0644)
		return s.err
	}
	return os.WriteFile(path, []byte(e.Name), 0644)
}

type dirStore struct {
	dir string
	n   int
}

func (d *dirStore) Reserve(format domain.ExportFormat) string {
	d.n++
	return filepath.Join(d.dir, string(rune('a'+d.n))+"."+string(format))
}

func (d *dirStore) Open(ctx context.Context, path string) (*os.File, error) {
	return os.Open(path)
}

func (d *dirStore) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

type countingMetrics struct {
	submissions map[string]int
	generations map[domain.RecordSource]int
	exports     map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		submissions: map[string]int{},
		generations: map[domain.RecordSource]int{},
		exports:     map[string]int{},
	}
}

func (c *countingMetrics) RecordSubmission(ctx context.Context, outcome string) {
	c.submissions[outcome]++
}

func (c *countingMetrics) RecordGeneration(ctx context.Context, source domain.RecordSource) {
	c.generations[source]++
}

func (c *countingMetrics) RecordExport(ctx context.Context, format domain.ExportFormat, outcome string) {
	c.exports[string(format)+"/"+outcome]++
}

func (c *countingMetrics) Close(ctx context.Context) error { return nil }
