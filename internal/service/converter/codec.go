package converter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"convertify/internal/domain"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/heic"
	"github.com/gen2brain/webp"
	"golang.org/x/image/tiff"
)

const (
	jpegQuality = 90
	webpQuality = 90
	avifQuality = 80
	avifSpeed   = 8
)

// imageCodec pairs a decoder with an in-process encoder. encode is nil when
// the format can only be written by an external tool.
type imageCodec struct {
	decode func(io.Reader) (image.Image, error)
	encode func(io.Writer, image.Image) error
}

var codecs = map[string]imageCodec{
	FormatJPG:  {decode: jpeg.Decode, encode: encodeJPEG},
	FormatJPEG: {decode: jpeg.Decode, encode: encodeJPEG},
	FormatPNG:  {decode: png.Decode, encode: png.Encode},
	FormatGIF:  {decode: gif.Decode, encode: encodeGIF},
	FormatTIFF: {decode: tiff.Decode, encode: encodeTIFF},
	FormatWEBP: {decode: webp.Decode, encode: encodeWEBP},
	FormatAVIF: {decode: avif.Decode, encode: encodeAVIF},
	FormatHEIF: {decode: heic.Decode},
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
}

// encodeGIF quantizes to the Plan 9 palette; only the first frame of an
// animated source survives decoding.
func encodeGIF(w io.Writer, img image.Image) error {
	return gif.Encode(w, img, nil)
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func encodeWEBP(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, webp.Options{Quality: webpQuality})
}

func encodeAVIF(w io.Writer, img image.Image) error {
	return avif.Encode(w, img, avif.Options{Quality: avifQuality, Speed: avifSpeed})
}

// decodeImage decodes payload with the codec of the claimed format. The bytes
// are never sniffed: a PNG uploaded as .jpg fails.
func decodeImage(payload []byte, format string) (img image.Image, err error) {
	codec, ok := codecs[format]
	if !ok {
		return nil, &domain.DecodeError{Format: format, Err: errors.New("no decoder registered")}
	}

	defer func() {
		if r := recover(); r != nil {
			img, err = nil, &domain.DecodeError{Format: format, Err: fmt.Errorf("decoder panic: %v", r)}
		}
	}()

	img, err = codec.decode(bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.DecodeError{Format: format, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &domain.DecodeError{Format: format, Err: errors.New("image has no pixels")}
	}
	return img, nil
}

// toNRGBA copies img into an 8-bit non-premultiplied buffer anchored at the
// origin. PDF embedding rejects 16-bit PNGs, so every embedded image goes
// through here first.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func encodePNG8(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, toNRGBA(img)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeJPEGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJPEG(&buf, img); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// dimensions reads the pixel size of an encoded png or jpeg.
func dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("read image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
