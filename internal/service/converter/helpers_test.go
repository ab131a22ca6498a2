package converter

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func encodeTestImage(t *testing.T, img image.Image, format string) []byte {
	t.Helper()
	codec, ok := codecs[format]
	require.True(t, ok, "no codec for %s", format)
	require.NotNil(t, codec.encode, "no in-process encoder for %s", format)

	var buf bytes.Buffer
	require.NoError(t, codec.encode(&buf, img))
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte, format string) (int, int) {
	t.Helper()
	img, err := decodeImage(data, format)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func docxPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("docx part %s not found", name)
	return ""
}

func pdfPageCount(data []byte) int {
	return strings.Count(string(data), "/Type /Page\n")
}

// argAfter returns the argument following flag, or "" when absent.
func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

// fakeRunner records invocations and delegates to fn.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	fn    func(name string, args []string) ([]byte, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	return f.fn(name, args)
}

// writingRunner simulates a converter that writes size bytes to its output file.
func writingRunner(t *testing.T, size int) *fakeRunner {
	return &fakeRunner{fn: func(name string, args []string) ([]byte, error) {
		var out string
		switch name {
		case "soffice":
			out = argAfter(args, "--outdir") + "/input.pdf"
		case "heif-enc":
			out = argAfter(args, "-o")
		default:
			t.Fatalf("unexpected tool %s", name)
		}
		return nil, os.WriteFile(out, bytes.Repeat([]byte{'%'}, size), 0o600)
	}}
}

func newTestDispatcher(t *testing.T, runner Runner) (*Dispatcher, string) {
	t.Helper()
	root := t.TempDir()
	d := NewDispatcher(Config{ScratchRoot: root, Runner: runner}, discardLogger())
	return d, root
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "scratch root should be empty")
}
