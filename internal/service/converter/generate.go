package converter

import (
	"bytes"
	"fmt"
	"strings"

	"convertify/internal/domain/models"
	"convertify/internal/service/converter/docx"

	"github.com/jung-kurt/gofpdf"
)

// Text page geometry in points (ISO A4).
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	pageMargin = 50.0
	fontFamily = "Helvetica"
	fontSize   = 12.0
	lineHeight = 18.0
)

// splitLines splits on newlines, trims every line and drops blank ones.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func linesToDOCX(lines []string) (*models.ConversionResult, error) {
	doc := docx.NewWriter()
	for _, line := range lines {
		doc.AddParagraph(line)
	}
	out, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return &models.ConversionResult{Bytes: out, Kind: models.OutputGenericBinary}, nil
}

func (d *Dispatcher) textToDOCX(payload []byte) (*models.ConversionResult, error) {
	return linesToDOCX(splitLines(string(payload)))
}

// placement is one laid-out line. Baseline is measured from the bottom of
// the page, as in PDF user space.
type placement struct {
	Page     int
	Baseline float64
	Text     string
}

// layoutText places lines top to bottom starting at pageHeight-pageMargin.
// A line whose baseline would fall below the bottom margin starts a new page.
func layoutText(lines []string) []placement {
	out := make([]placement, 0, len(lines))
	page, y := 0, pageHeight-pageMargin
	for _, line := range lines {
		if y < pageMargin {
			page++
			y = pageHeight - pageMargin
		}
		out = append(out, placement{Page: page, Baseline: y, Text: line})
		y -= lineHeight
	}
	return out
}

// pageCount is the number of pages a layout occupies; empty text still
// produces one blank page.
func pageCount(layout []placement) int {
	if len(layout) == 0 {
		return 1
	}
	return layout[len(layout)-1].Page + 1
}

func (d *Dispatcher) textToPDF(payload []byte) (*models.ConversionResult, error) {
	layout := layoutText(splitLines(string(payload)))

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "", fontSize)
	pdf.SetTextColor(0, 0, 0)

	current := 0
	for _, p := range layout {
		for current < p.Page {
			pdf.AddPage()
			current++
		}
		// gofpdf measures y from the top edge.
		pdf.Text(pageMargin, pageHeight-p.Baseline, translate(p.Text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return &models.ConversionResult{Bytes: buf.Bytes(), Kind: models.OutputGenericBinary}, nil
}
