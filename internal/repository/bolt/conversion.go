// Package bolt stores conversion records in a single bbolt file for
// single-node and development deployments.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"convertify/internal/domain"
	"convertify/internal/domain/models"
	"convertify/internal/domain/repositories"

	bolt "go.etcd.io/bbolt"
)

// Records live in one nested bucket per user, keyed by the record's UUIDv7.
// Byte order of v7 IDs follows creation time, so a reverse cursor walk
// yields newest first.
var bucketName = []byte("converted_files")

// ConversionRepository is a bbolt-backed record store
type ConversionRepository struct {
	db     *bolt.DB
	logger *slog.Logger
}

var _ repositories.ConversionRepository = (*ConversionRepository)(nil)

// Open opens (or creates) the database file at path
func Open(path string, logger *slog.Logger) (*ConversionRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &ConversionRepository{db: db, logger: logger}, nil
}

// Create stores a record, filling in its ID, user and timestamps when unset
func (r *ConversionRepository) Create(ctx context.Context, record *models.ConversionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := record.FillDefaults(time.Now().UTC()); err != nil {
		return fmt.Errorf("generate record id: %w", err)
	}

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode conversion record: %w", err)
	}
	key := record.ID[:]

	err = r.db.Update(func(tx *bolt.Tx) error {
		users, err := tx.Bucket(bucketName).CreateBucketIfNotExists([]byte(record.UserID))
		if err != nil {
			return err
		}
		if users.Get(key) != nil {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("conversion record %s already exists", record.ID),
				ResourceType: "record",
				ResourceID:   record.ID.String(),
			}
		}
		return users.Put(key, value)
	})
	if err != nil {
		return fmt.Errorf("create conversion record: %w", err)
	}

	r.logger.Debug("conversion record created",
		"id", record.ID,
		"user_id", record.UserID,
		"format", record.Format,
	)
	return nil
}

// ListByUser returns up to limit records for a user, newest first
func (r *ConversionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]models.ConversionRecord, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		users := tx.Bucket(bucketName).Bucket([]byte(userID))
		if users == nil {
			return nil
		}
		c := users.Cursor()
		for k, v := c.Last(); k != nil && len(records) < limit; k, v = c.Prev() {
			var rec models.ConversionRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode record %x: %w", k, err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list conversion records: %w", err)
	}
	return records, nil
}

// Close closes the database file
func (r *ConversionRepository) Close() error {
	return r.db.Close()
}
