package generator

import (
	"fmt"
	"strings"

	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/ports"
	"github.com/emiliopalmerini/labgenie/internal/util"
)

// DefaultSampling keeps output close to deterministic and bounded in length.
var DefaultSampling = ports.GenerationConfig{
	Temperature:     0.3,
	TopP:            0.8,
	TopK:            40,
	MaxOutputTokens: 2048,
}

const promptTemplate = `
Generate a lab record for the experiment described as '%s' with readings: %s

Create a lab record with these sections:
- Aim: State the objective (1-2 sentences)
- Theory: Explain the scientific principle (150-200 words)
- Procedure: List the steps (numbered format)
- Result: Summarize findings (2-3 sentences)
- x_label: Describe what the x-axis represents (1 sentence)
- y_label: Describe what the y-axis represents (1 sentence)

IMPORTANT: Return ONLY a valid JSON object with no additional text, markdown, or formatting. Format exactly like this:

{"aim": "Your aim text here", "theory": "Your theory text here", "procedure": "1. Step one\n2. Step two\n3. Step three", "result": "Your result text here", "x_label": "Your x-axis description", "y_label": "Your y-axis description"}
`

// BuildPrompt renders the instruction sent to the text-generation service.
func BuildPrompt(description string, readings []domain.Reading) string {
	return fmt.Sprintf(promptTemplate, description, formatReadings(readings))
}

func formatReadings(readings []domain.Reading) string {
	parts := make([]string, len(readings))
	for i, r := range readings {
		parts[i] = fmt.Sprintf("(%s, %s)", util.FormatFloat(r.X), util.FormatFloat(r.Y))
	}
	return strings.Join(parts, "; ")
}
