package services

import (
	"context"

	"convertify/internal/domain/models"
)

// Converter turns raw bytes in one format into another format.
// Implementations are stateless and safe for concurrent use.
type Converter interface {
	Convert(ctx context.Context, payload []byte, sourceFormat, targetFormat string) (*models.ConversionResult, error)
}

// ConvertRequest is the transport-agnostic input of a convert-and-store operation.
type ConvertRequest struct {
	FileName     string
	TargetFormat string
	Payload      []byte
	UserID       string // Empty means anonymous
}

// ConvertResponse is returned after the artifact is stored and recorded.
type ConvertResponse struct {
	Record *models.ConversionRecord
	URL    string
	Kind   models.OutputKind
}

// ConversionService orchestrates conversion, upload and record creation.
type ConversionService interface {
	// ConvertAndStore converts the payload, uploads it and records the result
	ConvertAndStore(ctx context.Context, req *ConvertRequest) (*ConvertResponse, error)

	// ListConversions returns the caller's conversion history, newest first
	ListConversions(ctx context.Context, userID string, limit int) ([]models.ConversionRecord, error)
}

// UploadObject describes an artifact handed to object storage.
type UploadObject struct {
	Folder    string
	PublicID  string // Deduplication key, the original file name without extension
	Format    string
	Kind      models.OutputKind
	Content   []byte
	Overwrite bool
}

// StoredObject describes where an uploaded artifact landed.
type StoredObject struct {
	URL      string
	PublicID string
	Bytes    int
}

// ObjectStorage uploads converted artifacts and returns their public location.
type ObjectStorage interface {
	Upload(ctx context.Context, obj UploadObject) (*StoredObject, error)
}
