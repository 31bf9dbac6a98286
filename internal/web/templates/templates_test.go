package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRecord_EscapesAndLinks(t *testing.T) {
	exp := &domain.Experiment{
		ID:        7,
		Name:      "<b>Ohm's Law</b>",
		Readings:  "1,2;2,4",
		Aim:       "Measure resistance",
		Procedure: "1. Wire it\n2. Measure",
		Result:    "Linear",
		Graph:     "iVBORw0KGgo=",
		CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	html := renderString(t, Record(RecordPage{
		Layout:     Layout{Title: exp.Name, Flashes: []Flash{{Category: "success", Message: "saved"}}},
		Experiment: exp,
		GraphURL:   GraphDataURL(exp.Graph),
	}))

	for _, want := range []string{
		"<!doctype html>",
		"&lt;b&gt;Ohm&#39;s Law&lt;/b&gt;",
		`<div class="flash flash-success" role="alert">saved</div>`,
		"1. Wire it<br>2. Measure",
		"2024-03-01 09:30",
		`src="data:image/png;base64,iVBORw0KGgo="`,
		`href="/export/7/docx"`,
		`href="/export/7/pdf"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in record page", want)
		}
	}
	if strings.Contains(html, "<b>Ohm") {
		t.Error("experiment name was not escaped")
	}
}

func TestRecord_NoGraph(t *testing.T) {
	html := renderString(t, Record(RecordPage{Experiment: &domain.Experiment{ID: 1, Name: "x"}}))
	if strings.Contains(html, "<img") {
		t.Error("expected no image without a graph")
	}
}

func TestDashboard(t *testing.T) {
	empty := renderString(t, Dashboard(DashboardPage{}))
	if !strings.Contains(empty, "No experiments yet") {
		t.Error("expected empty state")
	}

	html := renderString(t, Dashboard(DashboardPage{
		Layout: Layout{Flashes: []Flash{{Category: "error", Message: "oops"}}},
		Experiments: []domain.ExperimentSummary{
			{ID: 1, Name: "Ohm"},
			{ID: 2, Name: "Hooke"},
		},
	}))
	for _, want := range []string{`href="/record/1"`, `href="/record/2"`, `href="/export/2/pdf"`, `flash-error`} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in dashboard", want)
		}
	}
	if strings.Index(html, "Ohm") > strings.Index(html, "Hooke") {
		t.Error("expected experiments in the given order")
	}
}

func TestIndex(t *testing.T) {
	html := renderString(t, Index(IndexPage{Layout: Layout{Title: "New experiment"}}))
	for _, want := range []string{"<title>New experiment | LabGenie</title>", `action="/submit"`, `name="experiment_description"`, `name="readings"`} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in index", want)
		}
	}
}
