package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AuthMode controls whether a role guard checks the token at all.
type AuthMode int

const (
	Enforced AuthMode = iota
	Bypassed
)

func (m AuthMode) String() string {
	if m == Bypassed {
		return "bypassed"
	}
	return "enforced"
}

// Config được đọc một lần lúc khởi động
type Config struct {
	Env        string
	Port       string
	LogLevel   string
	JWTSecret  string
	AdminAuth  AuthMode
	VendorAuth AuthMode

	StoreDriver string
	DatabaseURL string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	CloudinaryURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	GoogleClientID string

	AdminEmail    string
	AdminPassword string

	PropertyIDPrefix string
	PropertyIDOffset int64

	HoldReportCron string
	HoldStaleAfter time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// IsProduction turns on Secure cookies and JSON logs.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadEnv nạp biến môi trường từ tệp `.env` nếu có
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

// Load reads the environment. JWT_SECRET has no fallback.
func Load() (*Config, error) {
	cfg := &Config{
		Env:              getEnv("NODE_ENV", "development"),
		Port:             getEnv("PORT", "8083"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminAuth:        authMode("DISABLE_ADMIN_AUTH"),
		VendorAuth:       authMode("DISABLE_VENDOR_AUTH"),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisUser:        os.Getenv("REDIS_USER"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		GoogleClientID:   os.Getenv("GOOGLE_CLIENT_ID"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		PropertyIDPrefix: getEnv("PROPERTY_ID_PREFIX", "PG"),
		HoldReportCron:   getEnv("HOLD_REPORT_CRON", "0 2 * * *"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	offset, err := strconv.ParseInt(getEnv("PROPERTY_ID_OFFSET", "1000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("PROPERTY_ID_OFFSET: %w", err)
	}
	cfg.PropertyIDOffset = offset

	cfg.HoldStaleAfter, err = time.ParseDuration(getEnv("HOLD_STALE_AFTER", "72h"))
	if err != nil {
		return nil, fmt.Errorf("HOLD_STALE_AFTER: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func authMode(key string) AuthMode {
	if strings.EqualFold(os.Getenv(key), "true") {
		return Bypassed
	}
	return Enforced
}
