package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BlobBackendGCS = "gcs"
	BlobBackendS3  = "s3"

	MetadataBackendFirestore = "firestore"
	MetadataBackendBadger    = "badger"
)

type Config struct {
	ServerPort     string
	Environment    string
	RequestTimeout time.Duration

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	BlobBackend     string
	BucketName      string
	BucketPublicURL string

	GCPProjectID       string
	GCPCredentialsPath string

	AWSRegion          string
	S3Endpoint         string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	MetadataBackend string
	MetadataTable   string
	BadgerPath      string

	MaxImageBytes   int64
	MaxImagePixels  int64
	ThumbnailHeight int
	JPEGQuality     int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),

		BlobBackend:     strings.ToLower(getEnv("BLOB_BACKEND", BlobBackendS3)),
		BucketName:      getEnv("BUCKET_NAME", "photohive-storage"),
		BucketPublicURL: strings.TrimSuffix(getEnv("BUCKET_PUBLIC_URL", ""), "/"),

		GCPProjectID:       getEnv("GCP_PROJECT_ID", ""),
		GCPCredentialsPath: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:         strings.TrimSuffix(getEnv("S3_ENDPOINT", ""), "/"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		MetadataBackend: strings.ToLower(getEnv("METADATA_BACKEND", MetadataBackendFirestore)),
		MetadataTable:   getEnv("METADATA_TABLE", "photos"),
		BadgerPath:      getEnv("BADGER_PATH", "./data/photos"),

		MaxImageBytes:   getEnvAsInt64("MAX_IMAGE_BYTES", 10*1024*1024),
		MaxImagePixels:  getEnvAsInt64("MAX_IMAGE_PIXELS", 50_000_000),
		ThumbnailHeight: getEnvAsInt("THUMBNAIL_HEIGHT", 100),
		JPEGQuality:     getEnvAsInt("IMAGE_JPEG_QUALITY", 90),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.BlobBackend {
	case BlobBackendGCS, BlobBackendS3:
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q", c.BlobBackend)
	}
	switch c.MetadataBackend {
	case MetadataBackendFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("GCP_PROJECT_ID is required for the firestore metadata backend")
		}
	case MetadataBackendBadger:
		if c.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required for the badger metadata backend")
		}
	default:
		return fmt.Errorf("unknown METADATA_BACKEND %q", c.MetadataBackend)
	}
	if c.BucketName == "" {
		return fmt.Errorf("BUCKET_NAME is required")
	}
	if c.MaxImagePixels <= 0 {
		return fmt.Errorf("MAX_IMAGE_PIXELS must be positive, got %d", c.MaxImagePixels)
	}
	if c.ThumbnailHeight <= 0 {
		return fmt.Errorf("THUMBNAIL_HEIGHT must be positive, got %d", c.ThumbnailHeight)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("IMAGE_JPEG_QUALITY must be within 1..100, got %d", c.JPEGQuality)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
