package converter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"convertify/internal/domain"
	"convertify/internal/domain/models"
	"convertify/internal/service/converter/docx"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	w := docx.NewWriter()
	for _, p := range paragraphs {
		w.AddParagraph(p)
	}
	data, err := w.Bytes()
	require.NoError(t, err)
	return data
}

func TestDOCXToText(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	result, err := d.Convert(context.Background(), buildDOCX(t, "Hello", "World"), "docx", "txt")
	require.NoError(t, err)
	assert.Equal(t, models.OutputGenericBinary, result.Kind)
	assert.Equal(t, "Hello\n\nWorld", string(result.Bytes))
}

func TestDocumentParseErrors(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	garbage := []byte("this is not a zip archive or a pdf")

	tests := []struct {
		source, target string
	}{
		{"docx", "txt"},
		{"pdf", "txt"},
		{"pdf", "docx"},
	}

	for _, tt := range tests {
		t.Run(tt.source+"->"+tt.target, func(t *testing.T) {
			_, err := d.Convert(context.Background(), garbage, tt.source, tt.target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrParse))

			var parseErr *domain.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.source, parseErr.Format)
		})
	}
}

func TestPDFToDOCX_SplitsExtractedText(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	d.extractPDF = func([]byte) (string, error) {
		return "Title\n\n  body line  \n\nend", nil
	}

	result, err := d.Convert(context.Background(), []byte("%PDF-stub"), "pdf", "docx")
	require.NoError(t, err)

	paragraphs, err := docx.ReadParagraphs(result.Bytes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "body line", "end"}, paragraphs)
}

func TestPDFToText_ReturnsRawText(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	d.extractPDF = func([]byte) (string, error) {
		return "  keep\n\nas is ", nil
	}

	result, err := d.Convert(context.Background(), []byte("%PDF-stub"), "pdf", "txt")
	require.NoError(t, err)
	assert.Equal(t, "  keep\n\nas is ", string(result.Bytes))
}

func buildTextPDF(t *testing.T, d *Dispatcher, text string) []byte {
	t.Helper()
	result, err := d.Convert(context.Background(), []byte(text), "txt", "pdf")
	require.NoError(t, err)
	return result.Bytes
}

func TestPDFToText_KeepsLineBreaks(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	src := buildTextPDF(t, d, "Hello world\nSecond line\ncafé")

	result, err := d.Convert(context.Background(), src, "pdf", "txt")
	require.NoError(t, err)
	assert.Contains(t, string(result.Bytes), "Hello world\nSecond line\n")
	assert.Equal(t, []string{"Hello world", "Second line", "café"}, splitLines(string(result.Bytes)))
}

func TestPDFToDOCX_OneParagraphPerLine(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	src := buildTextPDF(t, d, "Hello world\nSecond line\ncafé")

	result, err := d.Convert(context.Background(), src, "pdf", "docx")
	require.NoError(t, err)

	paragraphs, err := docx.ReadParagraphs(result.Bytes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello world", "Second line", "café"}, paragraphs)
}

func TestPDFToDOCX_MultiPage(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	lines := numberedLines(50)
	src := buildTextPDF(t, d, strings.Join(lines, "\n"))
	require.Equal(t, 2, pdfPageCount(src))

	text, err := d.Convert(context.Background(), src, "pdf", "txt")
	require.NoError(t, err)
	assert.Contains(t, string(text.Bytes), "line 42"+pageBreak+"line 43")

	result, err := d.Convert(context.Background(), src, "pdf", "docx")
	require.NoError(t, err)
	paragraphs, err := docx.ReadParagraphs(result.Bytes)
	require.NoError(t, err)
	assert.Equal(t, lines, paragraphs)
}

func TestWriteGlyphLines(t *testing.T) {
	glyphs := []pdf.Text{
		{S: "a", Y: 700}, {S: "b", Y: 700.4},
		{S: "c", Y: 682}, {S: " ", Y: 682}, {S: "d", Y: 682},
		{S: "e", Y: 664},
	}
	var b strings.Builder
	writeGlyphLines(&b, glyphs)
	assert.Equal(t, "ab\nc d\ne", b.String())
}
