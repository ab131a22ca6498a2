// Package converter implements the format-conversion dispatcher: a fixed
// matrix of (source, target) pairs, each bound to one conversion routine.
package converter

import (
	"context"
	"log/slog"
	"os"
	"time"

	"convertify/internal/domain"
	"convertify/internal/domain/models"
	"convertify/internal/domain/services"
)

// Config configures the external tools and scratch space used by the
// process-backed routines. Zero values fall back to defaults.
type Config struct {
	SofficePath     string // LibreOffice binary; default "soffice"
	HeifEncoderPath string // libheif encoder; default "heif-enc"
	ScratchRoot     string // Parent of per-call scratch directories; default os.TempDir()
	Runner          Runner // External process runner; default os/exec
}

// Dispatcher resolves a route and runs its routine. It holds no per-request
// state and is safe for concurrent use.
type Dispatcher struct {
	cfg        Config
	runner     Runner
	extractPDF func([]byte) (string, error)
	logger     *slog.Logger
}

var _ services.Converter = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher with the given tool configuration.
func NewDispatcher(cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.SofficePath == "" {
		cfg.SofficePath = "soffice"
	}
	if cfg.HeifEncoderPath == "" {
		cfg.HeifEncoderPath = "heif-enc"
	}
	if cfg.ScratchRoot == "" {
		cfg.ScratchRoot = os.TempDir()
	}
	if logger == nil {
		logger = slog.Default()
	}

	runner := cfg.Runner
	if runner == nil {
		runner = execRunner{}
	}

	return &Dispatcher{
		cfg:        cfg,
		runner:     runner,
		extractPDF: extractPDFText,
		logger:     logger,
	}
}

// Convert converts payload from sourceFormat to targetFormat. Formats are
// matched case-insensitively. Routine failures are returned unchanged and
// never retried.
func (d *Dispatcher) Convert(ctx context.Context, payload []byte, sourceFormat, targetFormat string) (*models.ConversionResult, error) {
	if len(payload) == 0 {
		return nil, &domain.MissingInputError{Field: "payload"}
	}
	if NormalizeFormat(targetFormat) == "" {
		return nil, &domain.MissingInputError{Field: "target format"}
	}

	route, err := Resolve(sourceFormat, targetFormat)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := d.run(ctx, route, payload)
	if err != nil {
		d.logger.Warn("conversion failed",
			"route", route.Kind.String(),
			"source", route.Source,
			"target", route.Target,
			"input_bytes", len(payload),
			"error", err,
		)
		return nil, err
	}

	d.logger.Debug("conversion complete",
		"route", route.Kind.String(),
		"input_bytes", len(payload),
		"output_bytes", len(result.Bytes),
		"kind", result.Kind,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (d *Dispatcher) run(ctx context.Context, route Route, payload []byte) (*models.ConversionResult, error) {
	switch route.Kind {
	case RouteImageReencode:
		return d.reencode(ctx, payload, route.Source, route.Target)
	case RouteImageToPDF:
		return d.imageToPDF(payload, route.Source)
	case RouteImageToDOCX:
		return d.imageToDOCX(payload, route.Source)
	case RouteDOCXToPDF:
		return d.renderDOCXToPDF(ctx, payload)
	case RouteDOCXToText:
		return d.docxToText(payload)
	case RouteTextToDOCX:
		return d.textToDOCX(payload)
	case RoutePDFToText:
		return d.pdfToText(payload)
	case RoutePDFToDOCX:
		return d.pdfToDOCX(payload)
	case RouteTextToPDF:
		return d.textToPDF(payload)
	default:
		return nil, &domain.UnsupportedRouteError{Source: route.Source, Target: route.Target}
	}
}
