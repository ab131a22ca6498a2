package models

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousUserID is recorded when a conversion is made without a verified token.
const AnonymousUserID = "anonymous"

// OutputKind classifies how a converted artifact is stored and served downstream.
type OutputKind string

const (
	// OutputMedia is an image served through the optimized asset path.
	OutputMedia OutputKind = "media"
	// OutputGenericBinary is an opaque blob (documents, text).
	OutputGenericBinary OutputKind = "generic-binary"
)

// ConversionResult is the artifact produced by a single conversion routine.
type ConversionResult struct {
	Bytes []byte
	Kind  OutputKind
}

// ConversionRecord is the persisted history entry for a stored conversion.
type ConversionRecord struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OriginalName string    `json:"originalName" db:"original_name"`
	ConvertedURL string    `json:"convertedUrl" db:"converted_url"`
	Format       string    `json:"format" db:"format"`
	UserID       string    `json:"userId" db:"user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// FillDefaults assigns a time-ordered ID, the anonymous user and timestamps
// to any of those fields left at their zero value.
func (r *ConversionRecord) FillDefaults(now time.Time) error {
	if r.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		r.ID = id
	}
	if r.UserID == "" {
		r.UserID = AnonymousUserID
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	return nil
}
