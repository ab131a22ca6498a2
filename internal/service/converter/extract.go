package converter

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"convertify/internal/domain"
	"convertify/internal/domain/models"
	"convertify/internal/service/converter/docx"

	"github.com/ledongthuc/pdf"
)

// baselineTolerance is how far two glyph baselines may differ, in points,
// and still belong to the same line.
const baselineTolerance = 1.0

// pageBreak separates pages in extracted text. The form feed line is blank
// after trimming, so line splitting drops it.
const pageBreak = "\n\f\n"

// extractPDFText returns the text layer of a PDF, one output line per glyph
// baseline and pages separated by a form feed. Scanned, image-only PDFs
// yield an empty string. The reader panics on some malformed inputs, so the
// panic is turned into an error.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		if i > 1 {
			b.WriteString(pageBreak)
		}
		writeGlyphLines(&b, page.Content().Text)
	}
	return b.String(), nil
}

// writeGlyphLines writes glyphs in content-stream order, starting a new line
// whenever the baseline moves.
func writeGlyphLines(b *strings.Builder, glyphs []pdf.Text) {
	for i, g := range glyphs {
		if i > 0 && math.Abs(g.Y-glyphs[i-1].Y) > baselineTolerance {
			b.WriteByte('\n')
		}
		b.WriteString(g.S)
	}
}

func (d *Dispatcher) pdfText(payload []byte) (string, error) {
	text, err := d.extractPDF(payload)
	if err != nil {
		return "", &domain.ParseError{Format: FormatPDF, Err: err}
	}
	return text, nil
}

func (d *Dispatcher) docxToText(payload []byte) (*models.ConversionResult, error) {
	text, err := docx.ExtractText(payload)
	if err != nil {
		return nil, &domain.ParseError{Format: FormatDOCX, Err: err}
	}
	return &models.ConversionResult{Bytes: []byte(text), Kind: models.OutputGenericBinary}, nil
}

func (d *Dispatcher) pdfToText(payload []byte) (*models.ConversionResult, error) {
	text, err := d.pdfText(payload)
	if err != nil {
		return nil, err
	}
	return &models.ConversionResult{Bytes: []byte(text), Kind: models.OutputGenericBinary}, nil
}

func (d *Dispatcher) pdfToDOCX(payload []byte) (*models.ConversionResult, error) {
	text, err := d.pdfText(payload)
	if err != nil {
		return nil, err
	}
	return linesToDOCX(splitLines(text))
}
