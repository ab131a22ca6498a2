package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(b)
		}
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestWriter_ParagraphsRoundTrip(t *testing.T) {
	w := NewWriter()
	w.AddParagraph("first")
	w.AddParagraph("a < b & c > d")
	w.AddParagraph("")

	data, err := w.Bytes()
	require.NoError(t, err)

	paragraphs, err := ReadParagraphs(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "a < b & c > d", ""}, paragraphs)

	text, err := ExtractText(data)
	require.NoError(t, err)
	assert.Equal(t, "first\n\na < b & c > d\n\n", text)
}

func TestWriter_ImageParagraph(t *testing.T) {
	w := NewWriter()
	w.AddParagraph("caption")
	w.AddImageParagraph([]byte("fake-png"), ImagePNG, 500, 400)

	data, err := w.Bytes()
	require.NoError(t, err)

	doc := readPart(t, data, "word/document.xml")
	assert.Contains(t, doc, `<wp:extent cx="4762500" cy="3810000">`)
	assert.Contains(t, doc, `r:embed=`)

	rels := readPart(t, data, "word/_rels/document.xml.rels")
	assert.Contains(t, rels, `Target="media/image1.png"`)
	assert.Contains(t, readPart(t, data, "[Content_Types].xml"), "image/png")

	assert.Equal(t, "fake-png", readPart(t, data, "word/media/image1.png"))

	paragraphs, err := ReadParagraphs(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"caption", ""}, paragraphs)
}

func TestPixelsToInches_ExactEMU(t *testing.T) {
	for _, px := range []int{1, 200, 300, 400, 500, 749, 1000, 4096} {
		assert.Equal(t, int64(px)*EMUPerPixel, int64(pixelsToInches(px).ToEmu()), "px=%d", px)
	}
}

func TestWriter_RejectsBadImages(t *testing.T) {
	w := NewWriter()
	w.AddImageParagraph([]byte("x"), "bmp", 10, 10)
	_, err := w.Bytes()
	assert.Error(t, err)

	w = NewWriter()
	w.AddImageParagraph([]byte("x"), ImageJPEG, 0, 10)
	_, err = w.Bytes()
	assert.Error(t, err)
}

func TestReadParagraphs_TabsAndBreaks(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>one</w:t><w:tab/><w:t>two</w:t><w:br/><w:t>three</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve"> spaced </w:t></w:r></w:p>
</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	paragraphs, err := ReadParagraphs(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"one\ttwo\nthree", " spaced "}, paragraphs)
}

func TestReadParagraphs_Malformed(t *testing.T) {
	_, err := ReadParagraphs([]byte("not a zip archive"))
	assert.Error(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err = zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ReadParagraphs(buf.Bytes())
	assert.ErrorIs(t, err, ErrNoDocumentPart)
}

func TestReadParagraphs_TablesAndHyperlinks(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>
<w:p><w:r><w:t>see </w:t></w:r><w:hyperlink r:id="rId9"><w:r><w:t>the site</w:t></w:r></w:hyperlink></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell one</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>cell two</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	paragraphs, err := ReadParagraphs(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"see the site", "cell one", "cell two"}, paragraphs)
}

func TestReadParagraphs_StrictNamespace(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://purl.oclc.org/ooxml/wordprocessingml/main"><w:body>
<w:p><w:r><w:t>strict</w:t></w:r></w:p>
</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	paragraphs, err := ReadParagraphs(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"strict"}, paragraphs)
}
