package templates

import "github.com/emiliopalmerini/labgenie/internal/domain"

type Flash struct {
	Category string // "success" or "error"
	Message  string
}

// Layout is embedded by every page.
type Layout struct {
	Title   string
	Flashes []Flash
}

type IndexPage struct {
	Layout
}

type DashboardPage struct {
	Layout
	Experiments []domain.ExperimentSummary
}

type RecordPage struct {
	Layout
	Experiment *domain.Experiment
	GraphURL   string
}

// GraphDataURL turns a base64 PNG into an inline image source.
func GraphDataURL(graph string) string {
	if graph == "" {
		return ""
	}
	return "data:image/png;base64," + graph
}
