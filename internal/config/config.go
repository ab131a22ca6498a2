package config

import (
	"os"
	"strconv"
	"time"
)

// Record store and object storage drivers
const (
	RecordStorePostgres = "postgres"
	RecordStoreBolt     = "bolt"

	StorageCloudinary = "cloudinary"
	StorageLocal      = "local"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Records
	RecordStore string // postgres | bolt
	DatabaseURL string
	TablePrefix string
	BoltPath    string

	// Object storage
	StorageDriver   string // cloudinary | local
	CloudinaryURL   string
	StorageFolder   string
	LocalStorageDir string
	PublicBaseURL   string

	// Auth: HMAC secret takes precedence over JWKS when both are set
	JWTSecret string
	JWKSURL   string

	// External converters
	SofficePath     string
	HeifEncoderPath string
	ScratchDir      string

	// Limits
	MaxUploadBytes    int64
	ConversionTimeout time.Duration

	// Log file tee, disabled when LogDir is empty
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	port := getEnv("PORT", "8080")

	return &Config{
		Port:        port,
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		RecordStore: getEnv("RECORD_STORE", RecordStorePostgres),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TablePrefix: getTablePrefix(env),
		BoltPath:    getEnv("BOLT_PATH", "convertify.db"),

		StorageDriver:   getEnv("STORAGE_DRIVER", StorageCloudinary),
		CloudinaryURL:   getEnv("CLOUDINARY_URL", ""),
		StorageFolder:   getEnv("STORAGE_FOLDER", "convertify"),
		LocalStorageDir: getEnv("LOCAL_STORAGE_DIR", "uploads"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),

		JWTSecret: getEnv("AUTH_JWT_SECRET", getEnv("ACCESS_TOKEN_SECRET", getEnv("JWT_SECRET", ""))),
		JWKSURL:   getEnv("AUTH_JWKS_URL", ""),

		SofficePath:     getEnv("SOFFICE_PATH", "soffice"),
		HeifEncoderPath: getEnv("HEIF_ENCODER_PATH", "heif-enc"),
		ScratchDir:      getEnv("SCRATCH_DIR", os.TempDir()),

		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		ConversionTimeout: getEnvDuration("CONVERSION_TIMEOUT", DefaultConversionTimeout),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to defaultValue when the variable is unset or not a positive integer.
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
