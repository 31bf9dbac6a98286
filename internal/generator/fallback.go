package generator

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/util"
)

const (
	fallbackXLabel = "Independent variable (X)"
	fallbackYLabel = "Dependent variable (Y)"
)

// Fallback builds a LabRecord locally from the readings alone. The output is
// a pure function of its inputs. readings must be non-empty.
func Fallback(description string, readings []domain.Reading) domain.LabRecord {
	xs, ys := domain.Split(readings)
	linear := IsLinear(readings)

	relationship, trend := "a non-linear relationship", "a curved relationship"
	if linear {
		relationship, trend = "a linear relationship", "a linear trend"
	}

	// Extremes are taken per axis, so the two reported pairs need not be
	// actual readings.
	low := fmt.Sprintf("(%s, %s)", util.FormatFloat(slices.Min(xs)), util.FormatFloat(slices.Min(ys)))
	high := fmt.Sprintf("(%s, %s)", util.FormatFloat(slices.Max(xs)), util.FormatFloat(slices.Max(ys)))

	return domain.LabRecord{
		Aim: fmt.Sprintf("To conduct the %s experiment and analyze the relationship between the measured variables.", description),
		Theory: fmt.Sprintf("This experiment involves measuring two variables to understand their relationship. "+
			"Based on the data pattern, this appears to be studying %s between the independent and dependent variables. "+
			"The theoretical foundation depends on the specific nature of the experiment being conducted.", relationship),
		Procedure: fmt.Sprintf("1. Set up the experimental apparatus for %s\n"+
			"2. Take initial measurements and record baseline values\n"+
			"3. Vary the independent variable systematically\n"+
			"4. Record corresponding dependent variable values\n"+
			"5. Repeat measurements for accuracy\n"+
			"6. Plot the data and analyze the relationship", description),
		Result: fmt.Sprintf("The experiment yielded %d data points ranging from %s to %s. The data shows %s between the variables.",
			len(readings), low, high, trend),
		XLabel: fallbackXLabel,
		YLabel: fallbackYLabel,
	}
}

// IsLinear reports whether the y/x ratios, rounded to two decimals, take at
// most two distinct values. Readings with x == 0 are ignored.
func IsLinear(readings []domain.Reading) bool {
	ratios := make(map[string]struct{})
	for _, r := range readings {
		if r.X == 0 {
			continue
		}
		ratios[roundRatio(r.Y/r.X)] = struct{}{}
	}
	return len(ratios) <= 2
}

// roundRatio rounds half-to-even on the exact binary value and folds -0.00
// into 0.00 so both land in the same bucket.
func roundRatio(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}
