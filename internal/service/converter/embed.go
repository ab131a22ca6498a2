package converter

import (
	"bytes"
	"fmt"
	"math"

	"convertify/internal/domain"
	"convertify/internal/domain/models"
	"convertify/internal/service/converter/docx"

	"github.com/jung-kurt/gofpdf"
)

// maxDOCXImageWidth keeps embedded images inside an A4 text column.
const maxDOCXImageWidth = 500

// imageToPDF draws the image on a single page sized to its pixel dimensions.
// The image is always normalized to 8-bit PNG before embedding.
func (d *Dispatcher) imageToPDF(payload []byte, source string) (*models.ConversionResult, error) {
	img, err := decodeImage(payload, source)
	if err != nil {
		return nil, err
	}

	data, err := encodePNG8(img)
	if err != nil {
		return nil, err
	}
	width, height, err := dimensions(data)
	if err != nil {
		return nil, err
	}
	w, h := float64(width), float64(height)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(data))
	pdf.ImageOptions("page", 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	if buf.Len() < minPlausibleBytes {
		return nil, &domain.EmptyOutputError{Route: RouteImageToPDF.String(), Size: buf.Len(), Min: minPlausibleBytes}
	}

	return &models.ConversionResult{Bytes: buf.Bytes(), Kind: models.OutputGenericBinary}, nil
}

// imageToDOCX embeds the image as the only content of a one-paragraph document.
// Sources that may carry transparency or a palette become PNG, the rest JPEG.
func (d *Dispatcher) imageToDOCX(payload []byte, source string) (*models.ConversionResult, error) {
	img, err := decodeImage(payload, source)
	if err != nil {
		return nil, err
	}

	var (
		data      []byte
		imageType string
	)
	switch source {
	case FormatPNG, FormatWEBP, FormatGIF:
		data, err = encodePNG8(img)
		imageType = docx.ImagePNG
	default:
		data, err = encodeJPEGBytes(img)
		imageType = docx.ImageJPEG
	}
	if err != nil {
		return nil, err
	}

	width, height, err := dimensions(data)
	if err != nil {
		return nil, err
	}
	width, height = scaleToWidth(width, height, maxDOCXImageWidth)

	doc := docx.NewWriter()
	doc.AddImageParagraph(data, imageType, width, height)
	out, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}

	return &models.ConversionResult{Bytes: out, Kind: models.OutputGenericBinary}, nil
}

// scaleToWidth shrinks (width, height) proportionally so width <= maxWidth.
// Height is rounded to the nearest pixel and never drops below one.
func scaleToWidth(width, height, maxWidth int) (int, int) {
	if width <= maxWidth {
		return width, height
	}
	ratio := float64(maxWidth) / float64(width)
	scaled := int(math.Round(float64(height) * ratio))
	if scaled < 1 {
		scaled = 1
	}
	return maxWidth, scaled
}
