package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

var (
	openFence  = regexp.MustCompile("(?m)^```json\\s*")
	closeFence = regexp.MustCompile("(?m)^```\\s*$")
	jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

	errEmptyResponse = errors.New("empty response from text-generation service")
)

// CleanResponse strips markdown code fences and surrounding prose, leaving
// the outermost brace-delimited span when one exists.
func CleanResponse(raw string) string {
	text := strings.TrimSpace(raw)
	text = openFence.ReplaceAllString(text, "")
	text = closeFence.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if m := jsonObject.FindString(text); m != "" {
		return m
	}
	return text
}

// ParseResponse decodes a service response into a LabRecord. Every key in
// domain.RecordKeys must be present.
func ParseResponse(raw string) (domain.LabRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.LabRecord{}, errEmptyResponse
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(CleanResponse(raw)), &fields); err != nil {
		return domain.LabRecord{}, fmt.Errorf("decode response: %w", err)
	}

	var missing []string
	values := make(map[string]string, len(domain.RecordKeys))
	for _, key := range domain.RecordKeys {
		v, ok := fields[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		values[key] = fieldText(v)
	}
	if len(missing) > 0 {
		return domain.LabRecord{}, fmt.Errorf("missing required keys in response: %s", strings.Join(missing, ", "))
	}

	return domain.LabRecord{
		Aim:       values["aim"],
		Theory:    values["theory"],
		Procedure: values["procedure"],
		Result:    values["result"],
		XLabel:    values["x_label"],
		YLabel:    values["y_label"],
	}, nil
}

// fieldText flattens a JSON value to text. Models sometimes return the
// procedure as a list of steps.
func fieldText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}

	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err == nil {
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = fieldText(item)
		}
		return strings.Join(lines, "\n")
	}

	return string(v)
}
