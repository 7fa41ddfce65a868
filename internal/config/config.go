package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendGCS      = "gcs"
)

// Backup sinks
const (
	SinkNone = "none"
	SinkS3   = "s3"
	SinkGCS  = "gcs"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Persistence
	StoreBackend string
	StoreKey     string
	StoreFile    string
	SQLitePath   string
	DatabaseURL  string
	S3           S3Config
	GCS          GCSConfig
	BackupSink   string

	// Notifications
	AMQP AMQPConfig

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Static API token; empty disables token auth
	APIToken string

	RateLimitPerMinute int

	// Ledger policy
	BillReminderDays int
	AlertCooldown    time.Duration
	ReminderInterval time.Duration
	ReverseOnDelete  bool
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// GCSConfig holds Google Cloud Storage configuration
type GCSConfig struct {
	Bucket          string
	Prefix          string
	CredentialsFile string // Empty = Application Default Credentials
}

// AMQPConfig holds RabbitMQ configuration. An empty URL disables publishing.
type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	rateLimit, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}
	reminderDays, err := getEnvInt("BILL_REMINDER_DAYS", 3)
	if err != nil {
		return nil, err
	}
	cooldown, err := getEnvDuration("ALERT_COOLDOWN", 0)
	if err != nil {
		return nil, err
	}
	interval, err := getEnvDuration("REMINDER_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	reverse, err := getEnvBool("REVERSE_ON_DELETE", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		CORSOrigins:  strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:          getEnv("ENV", "development"),
		StoreBackend: getEnv("STORE_BACKEND", BackendFile),
		StoreKey:     getEnv("STORE_KEY", "finance:05"),
		StoreFile:    getEnv("STORE_FILE", "data/pfd.json"),
		SQLitePath:   getEnv("SQLITE_PATH", "data/pfd.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "pfd-data"),
			Prefix:          getEnv("S3_PREFIX", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		GCS: GCSConfig{
			Bucket:          getEnv("GCS_BUCKET", ""),
			Prefix:          getEnv("GCS_PREFIX", ""),
			CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		},
		BackupSink: getEnv("BACKUP_SINK", SinkNone),
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "pfd"),
			Queue:    getEnv("AMQP_QUEUE", "pfd.alerts"),
		},
		Auth0Domain:        getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:      getEnv("AUTH0_AUDIENCE", ""),
		APIToken:           getEnv("API_TOKEN", ""),
		RateLimitPerMinute: rateLimit,
		BillReminderDays:   reminderDays,
		AlertCooldown:      cooldown,
		ReminderInterval:   interval,
		ReverseOnDelete:    reverse,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Auth0Enabled reports whether JWT authentication is configured
func (c *Config) Auth0Enabled() bool {
	return c.Auth0Domain != "" && c.Auth0Audience != ""
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendFile:
		if c.StoreFile == "" {
			return fmt.Errorf("STORE_FILE is required for the file backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	case BackendGCS:
		if c.GCS.Bucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.BackupSink {
	case SinkNone, SinkS3:
	case SinkGCS:
		if c.GCS.Bucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for the gcs backup sink")
		}
	default:
		return fmt.Errorf("unknown BACKUP_SINK %q", c.BackupSink)
	}

	if (c.Auth0Domain == "") != (c.Auth0Audience == "") {
		return fmt.Errorf("AUTH0_DOMAIN and AUTH0_AUDIENCE must be set together")
	}
	if c.APIToken != "" && !strings.HasPrefix(c.APIToken, "pfd_") {
		return fmt.Errorf("API_TOKEN must start with pfd_")
	}
	if c.StoreKey == "" {
		return fmt.Errorf("STORE_KEY must not be empty")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.BillReminderDays < 0 {
		return fmt.Errorf("BILL_REMINDER_DAYS must not be negative")
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
