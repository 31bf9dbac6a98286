package domain

import "time"

// Experiment is a persisted lab record. Rows are immutable once created.
type Experiment struct {
	ID        int64
	Name      string
	Readings  string // raw delimited input, stored verbatim
	Aim       string
	Theory    string
	Procedure string
	Result    string
	Graph     string // base64-encoded PNG
	CreatedAt time.Time
}

// ExperimentSummary is the dashboard projection of an Experiment.
type ExperimentSummary struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// NewExperiment assembles an unsaved Experiment from a generated record and
// its rendered chart.
func NewExperiment(name, readings string, record LabRecord, graph string) *Experiment {
	return &Experiment{
		Name:      name,
		Readings:  readings,
		Aim:       record.Aim,
		Theory:    record.Theory,
		Procedure: record.Procedure,
		Result:    record.Result,
		Graph:     graph,
	}
}
