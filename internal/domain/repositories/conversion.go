package repositories

import (
	"context"

	"convertify/internal/domain/models"
)

// ConversionRepository defines data access operations for conversion records
type ConversionRepository interface {
	// Create persists a record, filling in ID and timestamps when unset
	Create(ctx context.Context, record *models.ConversionRecord) error

	// ListByUser returns a user's records ordered by created_at DESC.
	// limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversionRecord, error)

	// Close releases the underlying connection or file handle
	Close() error
}
