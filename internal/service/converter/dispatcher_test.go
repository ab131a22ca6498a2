package converter

import (
	"context"
	"errors"
	"testing"

	"convertify/internal/domain"
	"convertify/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MissingInput(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	ctx := context.Background()

	_, err := d.Convert(ctx, nil, "png", "jpg")
	var missing *domain.MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "payload", missing.Field)

	_, err = d.Convert(ctx, []byte("x"), "txt", "  ")
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "target format", missing.Field)
}

func TestConvert_UnsupportedRoute(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	_, err := d.Convert(context.Background(), []byte("hello"), "txt", "png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedRoute))
}

func TestConvert_CaseInsensitiveFormats(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	result, err := d.Convert(context.Background(), []byte("hello"), "TXT", ".Docx")
	require.NoError(t, err)
	assert.Equal(t, models.OutputGenericBinary, result.Kind)
}

func TestConvert_EverySupportedPair(t *testing.T) {
	d, _ := newTestDispatcher(t, writingRunner(t, 200))
	d.extractPDF = func([]byte) (string, error) { return "extracted text", nil }
	ctx := context.Background()

	payloads := map[string][]byte{
		FormatTXT:  []byte("one\ntwo"),
		FormatDOCX: buildDOCX(t, "one", "two"),
		FormatPDF:  []byte("%PDF-stub"),
	}
	for _, format := range imageFormats {
		if codecs[format].encode != nil {
			payloads[format] = encodeTestImage(t, testImage(16, 12), format)
		}
	}

	for _, source := range KnownFormats() {
		payload, ok := payloads[source]
		if !ok {
			continue // no in-process encoder to build a fixture
		}
		for _, target := range SupportedTargets(source) {
			t.Run(source+"->"+target, func(t *testing.T) {
				result, err := d.Convert(ctx, payload, source, target)
				require.NoError(t, err)
				require.NotEmpty(t, result.Bytes)

				want := models.OutputGenericBinary
				if Classify(target) == ClassImage {
					want = models.OutputMedia
				}
				assert.Equal(t, want, result.Kind)
			})
		}
	}
}
