package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ReadingBound is the absolute limit accepted for either coordinate.
const ReadingBound = 1e6

// maxEchoRunes caps how much of an offending token a message repeats.
const maxEchoRunes = 64

// Reading is one (x, y) measurement.
type Reading struct {
	X float64
	Y float64
}

// ParseReadings turns "x1,y1;x2,y2;..." into an ordered, non-empty slice of
// Readings. Empty tokens ("1,2;;3,4", a trailing ";") are skipped; every other
// token, whitespace-only ones included, must hold exactly two finite numbers
// within [-ReadingBound, ReadingBound].
func ParseReadings(raw string) ([]Reading, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, NewValidationError("Readings cannot be empty.")
	}

	var readings []Reading
	for _, token := range strings.Split(raw, ";") {
		if token == "" {
			continue
		}

		fields := strings.Split(token, ",")
		if len(fields) != 2 {
			return nil, invalidToken(token)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if errX != nil || errY != nil {
			return nil, invalidToken(token)
		}
		if !inBounds(x) || !inBounds(y) {
			return nil, NewValidationError("Reading values too large or too small: %s", echo(token))
		}

		readings = append(readings, Reading{X: x, Y: y})
	}

	if len(readings) == 0 {
		return nil, NewValidationError("No valid readings provided.")
	}
	return readings, nil
}

func invalidToken(token string) *ValidationError {
	return NewValidationError("Invalid readings format: %s. Use format x,y;x,y;...", echo(token))
}

// echo shortens a token to maxEchoRunes for display.
func echo(token string) string {
	if utf8.RuneCountInString(token) <= maxEchoRunes {
		return token
	}
	return string([]rune(token)[:maxEchoRunes]) + "..."
}

// NaN fails both comparisons, so it is rejected too.
func inBounds(v float64) bool {
	return v >= -ReadingBound && v <= ReadingBound
}

// Split returns the x and y coordinates as separate ordered slices.
func Split(readings []Reading) (xs, ys []float64) {
	xs = make([]float64, len(readings))
	ys = make([]float64, len(readings))
	for i, r := range readings {
		xs[i] = r.X
		ys[i] = r.Y
	}
	return xs, ys
}

// ValidateDescription trims and checks the experiment description.
func ValidateDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "", NewValidationError("Experiment description cannot be empty.")
	}
	return desc, nil
}
