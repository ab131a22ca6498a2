package converter

import (
	"bytes"
	"context"
	"fmt"

	"convertify/internal/domain/models"
)

// reencode decodes an image and writes it in the target format at its
// intrinsic dimensions.
func (d *Dispatcher) reencode(ctx context.Context, payload []byte, source, target string) (*models.ConversionResult, error) {
	img, err := decodeImage(payload, source)
	if err != nil {
		return nil, err
	}

	codec := codecs[target]
	if codec.encode == nil {
		out, err := d.encodeExternally(ctx, img, target)
		if err != nil {
			return nil, err
		}
		return &models.ConversionResult{Bytes: out, Kind: models.OutputMedia}, nil
	}

	var buf bytes.Buffer
	if err := codec.encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %s: %w", target, err)
	}
	return &models.ConversionResult{Bytes: buf.Bytes(), Kind: models.OutputMedia}, nil
}
