package domain

import "fmt"

// ExportFormat is a document format an Experiment can be rendered to.
type ExportFormat string

const (
	FormatDOCX ExportFormat = "docx"
	FormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat validates a user-supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatDOCX, FormatPDF:
		return ExportFormat(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type served for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// ExportFilename is the attachment name offered for a download.
func ExportFilename(id int64, f ExportFormat) string {
	return fmt.Sprintf("experiment_%d.%s", id, f)
}
