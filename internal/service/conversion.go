package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"convertify/internal/config"
	"convertify/internal/domain"
	"convertify/internal/domain/models"
	"convertify/internal/domain/repositories"
	"convertify/internal/domain/services"
	"convertify/internal/service/converter"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ConversionConfig configures the convert-and-store pipeline.
type ConversionConfig struct {
	Folder  string        // Storage folder for every artifact; default "convertify"
	Timeout time.Duration // Bound on the conversion step; zero means none
}

type conversionService struct {
	converter services.Converter
	storage   services.ObjectStorage
	records   repositories.ConversionRepository
	cfg       ConversionConfig
	logger    *slog.Logger
}

// NewConversionService creates a new conversion service
func NewConversionService(
	conv services.Converter,
	storage services.ObjectStorage,
	records repositories.ConversionRepository,
	cfg ConversionConfig,
	logger *slog.Logger,
) services.ConversionService {
	if cfg.Folder == "" {
		cfg.Folder = "convertify"
	}
	return &conversionService{
		converter: conv,
		storage:   storage,
		records:   records,
		cfg:       cfg,
		logger:    logger,
	}
}

// ConvertAndStore converts the upload, stores the artifact and records it
func (s *conversionService) ConvertAndStore(ctx context.Context, req *services.ConvertRequest) (*services.ConvertResponse, error) {
	if err := validateConvertRequest(req); err != nil {
		return nil, err
	}

	name := baseName(req.FileName)
	publicID := strings.TrimSuffix(name, path.Ext(name))
	if strings.TrimSpace(publicID) == "" {
		// ".jpg" has an extension but nothing to name the stored object after.
		return nil, &domain.MissingInputError{Field: "file name"}
	}
	source := sourceFormat(name)
	target := converter.NormalizeFormat(req.TargetFormat)

	convCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		convCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	result, err := s.converter.Convert(convCtx, req.Payload, source, target)
	if err != nil {
		return nil, err
	}

	// Same original name always maps to the same object, so re-converting replaces it.
	stored, err := s.storage.Upload(ctx, services.UploadObject{
		Folder:    s.cfg.Folder,
		PublicID:  publicID,
		Format:    target,
		Kind:      result.Kind,
		Content:   result.Bytes,
		Overwrite: true,
	})
	if err != nil {
		s.logger.Error("upload failed",
			"file_name", name,
			"target", target,
			"error", err,
		)
		return nil, &domain.UploadError{Err: err}
	}

	userID := req.UserID
	if userID == "" {
		userID = models.AnonymousUserID
	}
	record := &models.ConversionRecord{
		OriginalName: req.FileName,
		ConvertedURL: stored.URL,
		Format:       target,
		UserID:       userID,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record conversion: %w", err)
	}

	s.logger.Info("conversion stored",
		"record_id", record.ID,
		"source", source,
		"target", target,
		"kind", result.Kind,
		"bytes", len(result.Bytes),
		"user_id", userID,
	)

	return &services.ConvertResponse{
		Record: record,
		URL:    stored.URL,
		Kind:   result.Kind,
	}, nil
}

// ListConversions returns the user's history, newest first. The limit is
// clamped to [1, MaxHistoryLimit]; zero means DefaultHistoryLimit.
func (s *conversionService) ListConversions(ctx context.Context, userID string, limit int) ([]models.ConversionRecord, error) {
	if userID == "" {
		userID = models.AnonymousUserID
	}
	switch {
	case limit <= 0:
		limit = config.DefaultHistoryLimit
	case limit > config.MaxHistoryLimit:
		limit = config.MaxHistoryLimit
	}

	records, err := s.records.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	return records, nil
}

// validateConvertRequest reports the first absent field as a MissingInputError.
func validateConvertRequest(req *services.ConvertRequest) error {
	required := []struct {
		field string
		value interface{}
	}{
		{"file", req.Payload},
		{"file name", strings.TrimSpace(req.FileName)},
		{"target format", strings.TrimSpace(req.TargetFormat)},
	}
	for _, r := range required {
		if err := validation.Validate(r.value, validation.Required); err != nil {
			return &domain.MissingInputError{Field: r.field}
		}
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.FileName, validation.Length(1, config.MaxFileNameLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// baseName strips any client-side directory, including Windows separators.
func baseName(fileName string) string {
	return path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), `\`, "/"))
}

// sourceFormat is the lowercase extension without its dot. Content is never sniffed.
func sourceFormat(name string) string {
	return converter.NormalizeFormat(path.Ext(name))
}
