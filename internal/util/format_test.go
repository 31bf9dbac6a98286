package util

import (
	"math"
	"testing"
	"time"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integer", 1, "1.0"},
		{"negative integer", -3, "-3.0"},
		{"zero", 0, "0.0"},
		{"negative zero", math.Copysign(0, -1), "-0.0"},
		{"fraction", 2.5, "2.5"},
		{"shortest repr", 0.1, "0.1"},
		{"upper bound", 1e6, "1000000.0"},
		{"small but plain", 0.0001, "0.0001"},
		{"small exponent", 0.00001, "1e-05"},
		{"small exponent mantissa", 0.000015, "1.5e-05"},
		{"large exponent", 1e16, "1e+16"},
		{"just below large", 1e15, "1000000000000000.0"},
		{"nan", math.NaN(), "nan"},
		{"inf", math.Inf(1), "inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFloat(tt.in); got != tt.want {
				t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimeSQLite(t *testing.T) {
	want := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	if got := ParseTimeSQLite("2024-06-15 10:00:00"); !got.Equal(want) {
		t.Errorf("sqlite format: got %v", got)
	}
	if got := ParseTimeSQLite("2024-06-15T10:00:00Z"); !got.Equal(want) {
		t.Errorf("rfc3339 format: got %v", got)
	}
	if got := ParseTimeSQLite("garbage"); !got.IsZero() {
		t.Errorf("expected zero time, got %v", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	if got := FormatDateTime(time.Time{}); got != "" {
		t.Errorf("expected empty string for zero time, got %q", got)
	}
	tm := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	if got := FormatDateTime(tm); got != "2024-06-15 10:30" {
		t.Errorf("unexpected %q", got)
	}
}
