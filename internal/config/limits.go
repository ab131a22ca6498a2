package config

import "time"

const (
	// DefaultMaxUploadBytes caps the multipart request body (25 MiB).
	// LibreOffice and the image codecs hold the whole file in memory.
	DefaultMaxUploadBytes = 25 << 20

	// DefaultConversionTimeout bounds a single conversion, including the
	// external LibreOffice process.
	DefaultConversionTimeout = 2 * time.Minute

	// DefaultHistoryLimit is the page size of the conversion history.
	DefaultHistoryLimit = 20

	// MaxHistoryLimit caps the limit a caller may request.
	MaxHistoryLimit = 100

	// MaxFileNameLength matches the VARCHAR(255) original_name column.
	MaxFileNameLength = 255
)
