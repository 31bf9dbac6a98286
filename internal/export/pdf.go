package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

const (
	graphImageName = "graph"
	graphWidthPt   = 400
	graphHeightPt  = 300
)

func writePDF(experiment *domain.Experiment, graph []byte, path string) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(Title(experiment), false)
	pdf.SetAutoPageBreak(true, 72)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 26, tr(Title(experiment)), "", "L", false)
	pdf.Ln(12)

	for _, s := range sections(experiment) {
		heading(pdf, tr(s.Heading))
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range lines(s.Body) {
			pdf.MultiCell(0, 15, tr(line), "", "L", false)
		}
		pdf.Ln(10)
	}

	heading(pdf, "Graph")
	if len(graph) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(graphImageName, opts, bytes.NewReader(graph))
		left, _, _, _ := pdf.GetMargins()
		pdf.ImageOptions(graphImageName, left, pdf.GetY(), graphWidthPt, graphHeightPt, true, opts, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 20, text, "", "L", false)
	pdf.Ln(4)
}
