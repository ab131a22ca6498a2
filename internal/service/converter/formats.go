package converter

import "strings"

// FormatClass is the static family a format token belongs to.
type FormatClass int

const (
	ClassUnknown FormatClass = iota
	ClassImage
	ClassDocument
)

func (c FormatClass) String() string {
	switch c {
	case ClassImage:
		return "image"
	case ClassDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Format tokens accepted by the dispatcher.
const (
	FormatJPG  = "jpg"
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatWEBP = "webp"
	FormatTIFF = "tiff"
	FormatGIF  = "gif"
	FormatAVIF = "avif"
	FormatHEIF = "heif"
	FormatDOCX = "docx"
	FormatPDF  = "pdf"
	FormatTXT  = "txt"
)

var imageFormats = []string{FormatJPG, FormatJPEG, FormatPNG, FormatWEBP, FormatTIFF, FormatGIF, FormatAVIF, FormatHEIF}

var documentFormats = []string{FormatDOCX, FormatPDF, FormatTXT}

// NormalizeFormat lowercases a token and strips a leading dot.
func NormalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}

// Classify returns the family of a format token (case-insensitive).
func Classify(format string) FormatClass {
	f := NormalizeFormat(format)
	for _, img := range imageFormats {
		if f == img {
			return ClassImage
		}
	}
	for _, doc := range documentFormats {
		if f == doc {
			return ClassDocument
		}
	}
	return ClassUnknown
}

// KnownFormats returns every token the dispatcher understands, images first.
func KnownFormats() []string {
	out := make([]string, 0, len(imageFormats)+len(documentFormats))
	out = append(out, imageFormats...)
	return append(out, documentFormats...)
}
