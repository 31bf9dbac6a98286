package domain

// LabRecord is the structured report content produced by the record
// generator, either from the text-generation service or the local fallback.
type LabRecord struct {
	Aim       string `json:"aim"`
	Theory    string `json:"theory"`
	Procedure string `json:"procedure"`
	Result    string `json:"result"`
	XLabel    string `json:"x_label"`
	YLabel    string `json:"y_label"`
}

// RecordKeys lists the JSON keys a generated record must carry.
var RecordKeys = []string{"aim", "theory", "procedure", "result", "x_label", "y_label"}

// RecordSource identifies where a LabRecord came from. It is used for logs
// and metrics only and is never persisted.
type RecordSource string

const (
	SourceModel    RecordSource = "model"
	SourceFallback RecordSource = "fallback"
)
