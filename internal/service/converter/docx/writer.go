// Package docx reads and writes the WordprocessingML (Office Open XML)
// subset used by the converters: plain paragraphs and inline images.
package docx

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	ooxml "github.com/gomutex/godocx/docx"
)

// EMUPerPixel converts pixels at 96 DPI to English Metric Units.
const EMUPerPixel = 9525

const emuPerInch = 914400

// Image types accepted by AddImageParagraph.
const (
	ImagePNG  = "png"
	ImageJPEG = "jpeg"
)

// Writer accumulates a single-section document built from the godocx
// default template. The first error is kept and returned by Bytes.
type Writer struct {
	doc *ooxml.RootDoc
	err error
}

// NewWriter creates an empty document.
func NewWriter() *Writer {
	doc, err := godocx.NewDocument()
	if err != nil {
		err = fmt.Errorf("create docx: %w", err)
	}
	return &Writer{doc: doc, err: err}
}

// AddParagraph appends a paragraph holding one text run.
func (w *Writer) AddParagraph(text string) {
	if w.err != nil {
		return
	}
	w.doc.AddParagraph(text)
}

// AddImageParagraph appends a paragraph whose only content is an inline image
// displayed at widthPx × heightPx.
func (w *Writer) AddImageParagraph(data []byte, imageType string, widthPx, heightPx int) {
	if w.err != nil {
		return
	}
	switch {
	case imageType != ImagePNG && imageType != ImageJPEG:
		w.err = fmt.Errorf("unsupported image type %q", imageType)
	case widthPx <= 0 || heightPx <= 0:
		w.err = fmt.Errorf("invalid image extent %dx%d", widthPx, heightPx)
	default:
		w.err = w.addPicture(data, imageType, widthPx, heightPx)
	}
}

// addPicture stages the image in a temp file because godocx only embeds
// pictures by path. The file is read during AddPicture and removed after.
func (w *Writer) addPicture(data []byte, imageType string, widthPx, heightPx int) error {
	f, err := os.CreateTemp("", "convertify-image-*."+imageType)
	if err != nil {
		return fmt.Errorf("stage image: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("stage image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("stage image: %w", err)
	}

	if _, err := w.doc.AddPicture(f.Name(), pixelsToInches(widthPx), pixelsToInches(heightPx)); err != nil {
		return fmt.Errorf("embed image: %w", err)
	}
	return nil
}

// pixelsToInches converts at 96 DPI. godocx truncates inches back to EMU, so
// half an EMU is added to land exactly on px*EMUPerPixel.
func pixelsToInches(px int) units.Inch {
	return units.Inch((float64(px)*EMUPerPixel + 0.5) / emuPerInch)
}

// Bytes packages the document as a .docx archive.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := w.doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("write docx archive: %w", err)
	}
	return buf.Bytes(), nil
}
