package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

const (
	nsMain   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

// ErrNoDocumentPart is returned when the archive has no main document part.
var ErrNoDocumentPart = errors.New("docx: word/document.xml not found")

// ReadParagraphs returns the text of every top-level body paragraph in order,
// including empty ones. Tabs and line breaks inside a paragraph are kept.
func ReadParagraphs(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, ErrNoDocumentPart
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer func() { _ = rc.Close() }()

	return parseParagraphs(rc)
}

// ExtractText returns the raw text of the document with paragraphs separated
// by a blank line.
func ExtractText(data []byte) (string, error) {
	paragraphs, err := ReadParagraphs(data)
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

func isWordElement(name xml.Name, local string) bool {
	return name.Local == local && (name.Space == nsMain || name.Space == nsStrict)
}

func parseParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		depth      int // paragraph nesting (text boxes hold their own paragraphs)
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWordElement(t.Name, "p"):
				if depth == 0 {
					current.Reset()
				}
				depth++
			case isWordElement(t.Name, "t"):
				inText = true
			case isWordElement(t.Name, "tab") && depth > 0:
				current.WriteByte('\t')
			case (isWordElement(t.Name, "br") || isWordElement(t.Name, "cr")) && depth > 0:
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch {
			case isWordElement(t.Name, "p"):
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case isWordElement(t.Name, "t"):
				inText = false
			}
		case xml.CharData:
			if inText && depth > 0 {
				current.Write(t)
			}
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("parse %s: unbalanced paragraphs", documentPart)
	}
	return paragraphs, nil
}
