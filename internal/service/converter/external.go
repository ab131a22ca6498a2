package converter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"convertify/internal/domain"
	"convertify/internal/domain/models"

	"github.com/google/uuid"
)

// minPlausibleBytes is the smallest artifact accepted from a renderer.
// Anything shorter signals a silent failure rather than a real document.
const minPlausibleBytes = 100

const scratchPrefix = "convertify-"

// Runner executes an external converter and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// scratchDir is a request-scoped working directory. cleanup must be deferred
// right after creation.
type scratchDir struct {
	path   string
	logger *slog.Logger
}

func newScratchDir(root string, logger *slog.Logger) (*scratchDir, error) {
	path := filepath.Join(root, scratchPrefix+uuid.NewString())
	if err := os.Mkdir(path, 0o700); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	return &scratchDir{path: path, logger: logger}, nil
}

func (s *scratchDir) file(name string) string {
	return filepath.Join(s.path, name)
}

// cleanup removes the directory and everything in it. Failures never change
// the caller's result; anything other than "already gone" is logged.
func (s *scratchDir) cleanup() {
	err := os.RemoveAll(s.path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	s.logger.Error("failed to remove scratch directory",
		"path", s.path,
		"error", err,
	)
}

// renderDOCXToPDF hands the document to headless LibreOffice. Each call gets
// its own scratch directory and LibreOffice user profile so concurrent
// conversions never share state.
func (d *Dispatcher) renderDOCXToPDF(ctx context.Context, payload []byte) (*models.ConversionResult, error) {
	scratch, err := newScratchDir(d.cfg.ScratchRoot, d.logger)
	if err != nil {
		return nil, err
	}
	defer scratch.cleanup()

	input := scratch.file("input.docx")
	if err := os.WriteFile(input, payload, 0o600); err != nil {
		return nil, fmt.Errorf("write scratch input: %w", err)
	}

	args := []string{
		"-env:UserInstallation=file://" + filepath.ToSlash(scratch.file("profile")),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", scratch.path,
		input,
	}
	out, err := d.runner.Run(ctx, d.cfg.SofficePath, args...)
	if err != nil {
		return nil, &domain.RenderError{Tool: "libreoffice", Message: strings.TrimSpace(string(out)), Err: err}
	}

	return readRendered(scratch.file("input.pdf"), "libreoffice", RouteDOCXToPDF)
}

// encodeExternally writes formats that have no in-process encoder (HEIF).
func (d *Dispatcher) encodeExternally(ctx context.Context, img image.Image, target string) ([]byte, error) {
	if target != FormatHEIF {
		return nil, fmt.Errorf("no encoder for %s", target)
	}

	data, err := encodePNG8(img)
	if err != nil {
		return nil, err
	}

	scratch, err := newScratchDir(d.cfg.ScratchRoot, d.logger)
	if err != nil {
		return nil, err
	}
	defer scratch.cleanup()

	input, output := scratch.file("input.png"), scratch.file("output.heic")
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return nil, fmt.Errorf("write scratch input: %w", err)
	}

	out, err := d.runner.Run(ctx, d.cfg.HeifEncoderPath, "-q", fmt.Sprint(jpegQuality), "-o", output, input)
	if err != nil {
		return nil, &domain.RenderError{Tool: "heif-enc", Message: strings.TrimSpace(string(out)), Err: err}
	}

	result, err := readRendered(output, "heif-enc", RouteImageReencode)
	if err != nil {
		return nil, err
	}
	return result.Bytes, nil
}

func readRendered(path, tool string, route RouteKind) (*models.ConversionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.RenderError{Tool: tool, Message: "no output produced", Err: err}
	}
	if len(data) < minPlausibleBytes {
		return nil, &domain.EmptyOutputError{Route: route.String(), Size: len(data), Min: minPlausibleBytes}
	}
	return &models.ConversionResult{Bytes: data, Kind: models.OutputGenericBinary}, nil
}
