package export

import (
	"fmt"
	"os"

	"baliance.com/gooxml/common"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

func writeDOCX(experiment *domain.Experiment, graph []byte, path string) error {
	doc := document.New()

	title := doc.AddParagraph()
	title.SetStyle("Title")
	title.AddRun().AddText(Title(experiment))

	for _, s := range sections(experiment) {
		heading := doc.AddParagraph()
		heading.SetStyle("Heading1")
		heading.AddRun().AddText(s.Heading)

		run := doc.AddParagraph().AddRun()
		for i, line := range lines(s.Body) {
			if i > 0 {
				run.AddBreak()
			}
			run.AddText(line)
		}
	}

	heading := doc.AddParagraph()
	heading.SetStyle("Heading1")
	heading.AddRun().AddText("Graph")

	if len(graph) > 0 {
		// gooxml copies images from disk when the package is saved, so the
		// staged file must outlive SaveToFile.
		imgPath, err := stageImage(graph)
		if err != nil {
			return err
		}
		defer os.Remove(imgPath)

		if err := addImage(doc, imgPath); err != nil {
			return err
		}
	}

	return doc.SaveToFile(path)
}

// stageImage writes the PNG to a uniquely named temp file.
func stageImage(graph []byte) (string, error) {
	tmp, err := os.CreateTemp("", "labgenie-graph-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}

	if _, err := tmp.Write(graph); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp image: %w", err)
	}
	return tmp.Name(), nil
}

func addImage(doc *document.Document, imgPath string) error {
	img, err := common.ImageFromFile(imgPath)
	if err != nil {
		return fmt.Errorf("failed to load graph image: %w", err)
	}
	ref, err := doc.AddImage(img)
	if err != nil {
		return fmt.Errorf("failed to add graph image: %w", err)
	}

	inline, err := doc.AddParagraph().AddRun().AddDrawingInline(ref)
	if err != nil {
		return fmt.Errorf("failed to inline graph image: %w", err)
	}
	inline.SetSize(6*measurement.Inch, 4.5*measurement.Inch)
	return nil
}
