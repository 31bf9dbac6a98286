package chart

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

func TestRender_Dimensions(t *testing.T) {
	readings := []domain.Reading{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}}

	encoded, err := NewRenderer().Render(readings, "Ohm's Law - Readings", "Current (A)", "Voltage (V)")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if encoded == "" {
		t.Fatal("expected non-empty encoding")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != Width || cfg.Height != Height {
		t.Errorf("expected %dx%d, got %dx%d", Width, Height, cfg.Width, cfg.Height)
	}
}

func TestRender_DegenerateAxes(t *testing.T) {
	tests := []struct {
		name     string
		readings []domain.Reading
	}{
		{"single point", []domain.Reading{{X: 5, Y: 5}}},
		{"constant y", []domain.Reading{{X: 1, Y: 3}, {X: 2, Y: 3}}},
		{"constant x", []domain.Reading{{X: 0, Y: 1}, {X: 0, Y: 2}}},
		{"negative values", []domain.Reading{{X: -1e6, Y: -2}, {X: 1e6, Y: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRenderer().RenderPNG(tt.readings, "t", "", ""); err != nil {
				t.Errorf("RenderPNG: %v", err)
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	if _, err := NewRenderer().Render(nil, "t", "x", "y"); err == nil {
		t.Error("expected error for empty readings")
	}
}

func TestAxisRange(t *testing.T) {
	r := axisRange([]float64{2, 2, 2})
	if r.Min != 1 || r.Max != 3 {
		t.Errorf("expected [1,3], got [%v,%v]", r.Min, r.Max)
	}

	r = axisRange([]float64{3, -1, 2})
	if r.Min != -1 || r.Max != 3 {
		t.Errorf("expected [-1,3], got [%v,%v]", r.Min, r.Max)
	}
}
