package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Storage  StorageConfig
	MinIO    MinIOConfig
	Link     LinkConfig
	Scenario ScenarioConfig
}

type ServerConfig struct {
	Port         string
	AllowOrigins string
}

type DBConfig struct {
	// URL is a postgres DSN. When empty the panel runs against an in-memory
	// sqlite database, which is the normal demo mode.
	URL      string
	SeedDemo bool
}

type StorageConfig struct {
	// Driver selects the thumbnail store: "memory" or "minio".
	Driver string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type LinkConfig struct {
	Secret string
	TTL    time.Duration
}

type ScenarioConfig struct {
	// Default is the scenario selected at startup.
	Default string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3001,http://127.0.0.1:3001"),
		},
		DB: DBConfig{
			URL:      getEnv("DATABASE_URL", ""),
			SeedDemo: getEnvAsBool("SEED_DEMO_DATA", true),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "memory"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "assetdeck"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "assetdeck_secret"),
			Bucket:    getEnv("MINIO_BUCKET", "assetdeck"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		Link: LinkConfig{
			Secret: getEnv("LINK_SECRET", "change-me-in-production"),
			TTL:    getEnvAsDuration("LINK_TTL", 15*time.Minute),
		},
		Scenario: ScenarioConfig{
			Default: getEnv("SCENARIO_DEFAULT", "scenario-1"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
