package ports

import "github.com/emiliopalmerini/labgenie/internal/domain"

// ChartRenderer draws readings and returns the image as base64 text.
type ChartRenderer interface {
	Render(readings []domain.Reading, title, xLabel, yLabel string) (string, error)
}
