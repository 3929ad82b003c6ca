package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Backend selects the object storage implementation.
type Backend string

const (
	BackendS3     Backend = "s3"
	BackendMinIO  Backend = "minio"
	BackendMemory Backend = "memory"
)

// Config holds the configuration of a single step invocation.
type Config struct {
	SourceBucket      string
	DestinationBucket string

	Backend Backend

	AWSRegion        string
	S3Endpoint       string
	S3ForcePathStyle bool

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool

	LogLevel slog.Level
}

// Requirements lists the buckets a step needs.
type Requirements struct {
	SourceBucket      bool
	DestinationBucket bool
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

type ErrInvalidEnvVar struct {
	Name  string
	Value string
}

func (e *ErrInvalidEnvVar) Error() string {
	return fmt.Sprintf("environment variable %q has invalid value %q", e.Name, e.Value)
}

// Load reads configuration from environment variables.
// Returns an error if a variable required by req is missing.
func Load(req Requirements) (*Config, error) {
	config := Config{}

	config.SourceBucket = os.Getenv("source_bucket")
	if req.SourceBucket && config.SourceBucket == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "source_bucket"}
	}
	config.DestinationBucket = os.Getenv("destination_bucket")
	if req.DestinationBucket && config.DestinationBucket == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "destination_bucket"}
	}

	config.Backend = Backend(getEnv("STORAGE_BACKEND", string(BackendS3)))
	switch config.Backend {
	case BackendS3:
		config.AWSRegion = os.Getenv("AWS_REGION")
		config.S3Endpoint = os.Getenv("S3_ENDPOINT")
		forcePathStyle, err := getBool("S3_FORCE_PATH_STYLE")
		if err != nil {
			return nil, err
		}
		config.S3ForcePathStyle = forcePathStyle
	case BackendMinIO:
		for _, v := range []struct {
			name string
			dst  *string
		}{
			{"MINIO_ENDPOINT", &config.MinIOEndpoint},
			{"MINIO_ACCESS_KEY", &config.MinIOAccessKey},
			{"MINIO_SECRET_KEY", &config.MinIOSecretKey},
		} {
			*v.dst = os.Getenv(v.name)
			if *v.dst == "" {
				return nil, &ErrMissingRequiredEnvVar{Name: v.name}
			}
		}
		useSSL, err := getBool("MINIO_USE_SSL")
		if err != nil {
			return nil, err
		}
		config.MinIOUseSSL = useSSL
	case BackendMemory:
	default:
		return nil, &ErrInvalidEnvVar{Name: "STORAGE_BACKEND", Value: string(config.Backend)}
	}

	level := getEnv("LOG_LEVEL", "info")
	if err := config.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, &ErrInvalidEnvVar{Name: "LOG_LEVEL", Value: level}
	}

	return &config, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &ErrInvalidEnvVar{Name: key, Value: v}
	}
	return b, nil
}
