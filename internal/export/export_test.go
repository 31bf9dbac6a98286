package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/labgenie/internal/chart"
	"github.com/emiliopalmerini/labgenie/internal/domain"
)

func testExperiment(t *testing.T) *domain.Experiment {
	t.Helper()

	readings := []domain.Reading{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}}
	graph, err := chart.NewRenderer().Render(readings, "Ohm's Law - Readings", "I", "V")
	require.NoError(t, err)

	e := domain.NewExperiment("Ohm's Law", "1,2;2,4;3,6", domain.LabRecord{
		Aim:       "To verify Ohm's law.",
		Theory:    "V = IR",
		Procedure: "1. Connect the circuit\n2. Record readings",
		Result:    "Linear.",
	}, graph)
	e.ID = 1
	return e
}

// documentText concatenates the character data of word/document.xml.
func documentText(t *testing.T, path string) string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()

		var sb strings.Builder
		dec := xml.NewDecoder(rc)
		for {
			tok, err := dec.Token()
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
			if cd, ok := tok.(xml.CharData); ok {
				sb.Write(cd)
			}
		}
		return sb.String()
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func hasMedia(t *testing.T, path string) bool {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			return true
		}
	}
	return false
}

func TestExport_DOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")

	err := NewExporter(nil).Export(testExperiment(t), domain.FormatDOCX, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	text := documentText(t, path)
	assert.Contains(t, text, "Lab Record: Ohm's Law")
	for _, want := range []string{"Aim", "Theory", "Procedure", "Result", "Graph", "2. Record readings"} {
		assert.Contains(t, text, want)
	}
	assert.Less(t, strings.Index(text, "Aim"), strings.Index(text, "Graph"))
	assert.True(t, hasMedia(t, path), "expected embedded graph image")
}

func TestExport_PDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")

	err := NewExporter(nil).Export(testExperiment(t), domain.FormatPDF, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(data, []byte("(Lab Record: Ohm's Law)")), "expected title in document info")
}

func TestExport_IndependentFormats(t *testing.T) {
	dir := t.TempDir()
	e := testExperiment(t)
	ex := NewExporter(nil)

	require.NoError(t, ex.Export(e, domain.FormatPDF, filepath.Join(dir, "a.pdf")))
	require.NoError(t, ex.Export(e, domain.FormatDOCX, filepath.Join(dir, "a.docx")))
	require.NoError(t, ex.Export(e, domain.FormatPDF, filepath.Join(dir, "b.pdf")))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	err := NewExporter(nil).Export(testExperiment(t), domain.ExportFormat("txt"), filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExport_BadGraph(t *testing.T) {
	e := testExperiment(t)
	e.Graph = "not base64!"

	err := NewExporter(nil).Export(e, domain.FormatPDF, filepath.Join(t.TempDir(), "x.pdf"))
	assert.Error(t, err)
}

func TestExport_NoTempImageLeft(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	require.NoError(t, NewExporter(nil).Export(testExperiment(t), domain.FormatDOCX, filepath.Join(t.TempDir(), "x.docx")))

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
