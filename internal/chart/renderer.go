// Package chart draws reading sets as PNG line charts.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

// Output dimensions in pixels.
const (
	Width  = 800
	Height = 600
)

var errNoReadings = errors.New("no readings to plot")

var (
	lineColor = drawing.ColorFromHex("1f77b4")
	gridColor = drawing.ColorFromHex("d9d9d9")
)

// Renderer renders connected line-and-marker plots.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render plots readings and returns the PNG as standard base64 text.
func (r *Renderer) Render(readings []domain.Reading, title, xLabel, yLabel string) (string, error) {
	png, err := r.RenderPNG(readings, title, xLabel, yLabel)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// RenderPNG plots readings and returns the raw PNG bytes.
func (r *Renderer) RenderPNG(readings []domain.Reading, title, xLabel, yLabel string) ([]byte, error) {
	if len(readings) == 0 {
		return nil, errNoReadings
	}
	if xLabel == "" {
		xLabel = "X"
	}
	if yLabel == "" {
		yLabel = "Y"
	}

	xs, ys := domain.Split(readings)
	grid := chart.Style{StrokeColor: gridColor, StrokeWidth: 1}

	ch := chart.Chart{
		Title:  title,
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           xLabel,
			Range:          axisRange(xs),
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           yLabel,
			Range:          axisRange(ys),
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    5,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// axisRange spans the values, widening an all-equal axis to ±1 since a zero
// delta cannot be drawn.
func axisRange(values []float64) *chart.ContinuousRange {
	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
