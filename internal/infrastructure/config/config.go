package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Nozima-Rustamova/credit-ML/pkg/postgres"
)

// Config holds all configuration for the scoring service.
type Config struct {
	GRPCPort    string
	HTTPPort    string
	DatabaseURL string
	KafkaBroker string
	Environment string
	LogLevel    string
	LogFormat   string

	// Paths to optional model parameter files. An empty or missing path
	// means the corresponding applicant type is scored by rules alone.
	IndividualModelPath string
	CompanyModelPath    string

	JWTSecret string
	JWTIssuer string

	TLSCertFile string
	TLSKeyFile  string

	OTLPEndpoint   string
	TracingEnabled bool

	AuditRetention  time.Duration
	PurgeInterval   time.Duration
	RescoreInterval time.Duration
	RescoreBatch    int
	RefreshTTL      time.Duration
	RefreshInterval time.Duration
	RefreshBatch    int
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is merged in when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		GRPCPort:    getEnv("GRPC_PORT", "8094"),
		HTTPPort:    getEnv("HTTP_PORT", "9094"),
		DatabaseURL: databaseURL(),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		IndividualModelPath: getEnv("INDIVIDUAL_MODEL_PATH", ""),
		CompanyModelPath:    getEnv("COMPANY_MODEL_PATH", ""),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer: getEnv("JWT_ISSUER", "credit-scoring"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
		TracingEnabled: getBool("TRACING_ENABLED", false),

		AuditRetention:  getDuration("AUDIT_RETENTION", 90*24*time.Hour),
		PurgeInterval:   getDuration("PURGE_INTERVAL", 24*time.Hour),
		RescoreInterval: getDuration("RESCORE_INTERVAL", time.Hour),
		RescoreBatch:    getInt("RESCORE_BATCH", 100),
		RefreshTTL:      getDuration("REFRESH_TTL", 24*time.Hour),
		RefreshInterval: getDuration("REFRESH_INTERVAL", 6*time.Hour),
		RefreshBatch:    getInt("REFRESH_BATCH", 50),
	}
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// TLSEnabled reports whether a server certificate was configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// databaseURL prefers a full DATABASE_URL and otherwise assembles the DSN
// from the discrete DB_* variables.
func databaseURL() string {
	if dsn, exists := os.LookupEnv("DATABASE_URL"); exists {
		return dsn
	}
	return postgres.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "scoring"),
		Password: getEnv("DB_PASSWORD", "scoring"),
		Database: getEnv("DB_NAME", "scoring"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}.DSN()
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
