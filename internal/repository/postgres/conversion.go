package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"convertify/internal/domain"
	"convertify/internal/domain/models"
	"convertify/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConversionRepository stores conversion records in <prefix>converted_files
type PostgresConversionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

var _ repositories.ConversionRepository = (*PostgresConversionRepository)(nil)

// NewConversionRepository creates a new conversion record repository
func NewConversionRepository(config *RepositoryConfig) *PostgresConversionRepository {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresConversionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: logger,
	}
}

// EnsureSchema creates the records table and its user index if missing
func (r *PostgresConversionRepository) EnsureSchema(ctx context.Context) error {
	table := r.tables.ConvertedFiles
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id            UUID PRIMARY KEY,
				original_name VARCHAR(255) NOT NULL,
				converted_url TEXT NOT NULL,
				format        VARCHAR(16) NOT NULL,
				user_id       TEXT NOT NULL DEFAULT '%s',
				created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, table, models.AnonymousUserID),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_created_idx ON %s (user_id, created_at DESC)`, table, table),
	}

	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema %s: %w", table, err)
		}
	}
	return nil
}

// Create inserts a record. A zero ID is replaced by a time-ordered UUID and
// zero timestamps by the current time.
func (r *PostgresConversionRepository) Create(ctx context.Context, record *models.ConversionRecord) error {
	if err := record.FillDefaults(time.Now().UTC()); err != nil {
		return fmt.Errorf("generate record id: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, original_name, converted_url, format, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.ConvertedFiles)

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.OriginalName,
		record.ConvertedURL,
		record.Format,
		record.UserID,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("conversion record %s already exists", record.ID),
				ResourceType: "record",
				ResourceID:   record.ID.String(),
			}
		}
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
func (r *PostgresConversionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversionRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, original_name, converted_url, format, user_id, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, r.tables.ConvertedFiles)

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversion records: %w", err)
	}
	defer rows.Close()

	records := make([]models.ConversionRecord, 0)
	for rows.Next() {
		var rec models.ConversionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.OriginalName,
			&rec.ConvertedURL,
			&rec.Format,
			&rec.UserID,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan conversion record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversion records: %w", err)
	}

	return records, nil
}

// Close releases the pool
func (r *PostgresConversionRepository) Close() error {
	r.pool.Close()
	return nil
}

// DropSchema drops the records table. Used by the CLI's reset command.
func (r *PostgresConversionRepository) DropSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, r.tables.ConvertedFiles)); err != nil {
		return fmt.Errorf("drop %s: %w", r.tables.ConvertedFiles, err)
	}
	return nil
}
