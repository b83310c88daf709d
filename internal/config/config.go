package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the full environment-driven configuration surface.
type Config struct {
	// Security.
	SecretKey    string
	Debug        bool
	AllowedHosts []string

	// HTTP.
	Port string

	// Relational store. DatabaseURL wins when set.
	DatabaseURL string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Object storage. When Bucket and keys are present the S3 backend
	// is used; otherwise files go to local disk.
	S3Endpoint        string
	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Base URL prefixed to locally stored media paths.
	MediaBaseURL string
}

// Load reads configuration from the environment. SECRET_KEY is
// required unless DEBUG is on, mirroring how the service refuses to
// boot half-configured in production.
func Load() (*Config, error) {
	cfg := &Config{
		SecretKey:    os.Getenv("SECRET_KEY"),
		Debug:        strings.EqualFold(os.Getenv("DEBUG"), "true"),
		AllowedHosts: splitHosts(os.Getenv("ALLOWED_HOSTS")),
		Port:         getEnv("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "real_estate_crm"),
		DBSSLMode:   getEnv("DB_SSLMODE", "prefer"),

		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnv("S3_REGION", "ru-1"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),

		MediaBaseURL: getEnv("MEDIA_BASE_URL", "http://localhost:8080"),
	}

	portStr := getEnv("DB_PORT", "5432")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT %q: %w", portStr, err)
	}
	cfg.DBPort = port

	if cfg.SecretKey == "" && !cfg.Debug {
		return nil, fmt.Errorf("SECRET_KEY environment variable is required")
	}

	return cfg, nil
}

// S3Enabled reports whether the object-storage backend is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

// ConnString builds the pgx connection string from the discrete DB_*
// variables when DATABASE_URL is not provided.
func (c *Config) ConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	parts := []string{
		fmt.Sprintf("host=%s", c.DBHost),
		fmt.Sprintf("port=%d", c.DBPort),
		fmt.Sprintf("user=%s", c.DBUser),
	}
	if c.DBPassword != "" {
		parts = append(parts, fmt.Sprintf("password=%s", c.DBPassword))
	}
	parts = append(parts,
		fmt.Sprintf("dbname=%s", c.DBName),
		fmt.Sprintf("sslmode=%s", c.DBSSLMode),
	)
	return strings.Join(parts, " ")
}

func splitHosts(raw string) []string {
	var hosts []string
	for _, h := range strings.Split(raw, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
