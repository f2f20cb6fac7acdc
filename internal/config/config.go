package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported values for AppConfig.StoreBackend.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MongoConfig holds the document store settings.
type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// MinIOConfig holds object storage settings for MinIO.
// Report export is disabled when Endpoint is empty.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLExpiry time.Duration
}

// Enabled reports whether object storage has been configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// AMQPConfig holds the broker settings used for expense events.
// Publishing is disabled when URL is empty.
type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// Enabled reports whether an AMQP broker has been configured.
func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port            string
	StoreBackend    string
	LogLevel        string
	CORSOrigins     string
	ShutdownTimeout time.Duration
	Database        DatabaseConfig
	Mongo           MongoConfig
	MinIO           MinIOConfig
	AMQP            AMQPConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:            getEnv("PORT", "8080"),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", BackendMongo)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     getEnv("CORS_ALLOW_ORIGINS", "*"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", ""),
			Database:       getEnv("MONGO_DATABASE", "finance_tracker"),
			Collection:     getEnv("MONGO_COLLECTION", "expenses"),
			ConnectTimeout: getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			URLExpiry: getEnvDuration("REPORT_URL_EXPIRY", 15*time.Minute),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "expenses"),
			Queue:    getEnv("AMQP_QUEUE", "expense_created"),
		},
	}
}

// Validate checks the configuration and reports every problem found at once.
func (c *AppConfig) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case BackendMongo:
		if c.Mongo.URI == "" {
			problems = append(problems, "MONGO_URI is required for the mongo backend")
		}
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			problems = append(problems, "mongo database and collection names cannot be empty")
		}
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			problems = append(problems, "DB_HOST, DB_USER and DB_NAME are required for the postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be one of [%s %s]", c.StoreBackend, BackendMongo, BackendPostgres))
	}

	if c.MinIO.Enabled() {
		if c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" || c.MinIO.Bucket == "" {
			problems = append(problems, "MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET are required when MINIO_ENDPOINT is set")
		}
		if c.MinIO.URLExpiry <= 0 {
			problems = append(problems, "REPORT_URL_EXPIRY must be positive")
		}
	}

	if c.AMQP.Enabled() && (c.AMQP.Exchange == "" || c.AMQP.Queue == "") {
		problems = append(problems, "AMQP_EXCHANGE and AMQP_QUEUE cannot be empty when AMQP_URL is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
