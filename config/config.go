package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting of the server and swissctl.
type Config struct {
	DatabaseDriver string
	DatabaseURL    string
	JWTSecretKey   string
	// OrganizerPasswordHash is a bcrypt hash; empty disables /auth/login.
	OrganizerPasswordHash string
	ServerPort            int
	LogLevel              slog.Level
	CORSAllowedOrigins    []string

	S3 S3Config
	// ExportDir receives exports when no bucket is configured.
	ExportDir string
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	UsePathStyle    bool
}

// Enabled reports whether enough is set to talk to a bucket.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Load reads the configuration from environment variables, after loading a
// .env file if one exists.
func Load() (*Config, error) {
	// Отсутствие .env не ошибка: в проде всё приходит из окружения.
	_ = godotenv.Load()

	driver := getEnvOrDefault("DATABASE_DRIVER", "postgres")
	if driver != "postgres" && driver != "sqlite3" {
		return nil, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite3, got %q", driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	s3, err := LoadS3()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseDriver:        driver,
		DatabaseURL:           dbURL,
		JWTSecretKey:          jwtKey,
		OrganizerPasswordHash: os.Getenv("ORGANIZER_PASSWORD_HASH"),
		ServerPort:            port,
		LogLevel:              level,
		CORSAllowedOrigins:    splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		S3:                    s3,
		ExportDir:             getEnvOrDefault("EXPORT_DIR", "exports"),
	}

	return cfg, nil
}

// LoadS3 reads only the S3_* variables. swissctl uses it without requiring
// the server-only settings.
func LoadS3() (S3Config, error) {
	usePathStyle := false
	if v := os.Getenv("S3_USE_PATH_STYLE"); v != "" {
		var err error
		usePathStyle, err = strconv.ParseBool(v)
		if err != nil {
			return S3Config{}, fmt.Errorf("invalid S3_USE_PATH_STYLE environment variable: %w", err)
		}
	}
	return S3Config{
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		Region:          os.Getenv("S3_REGION"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Bucket:          os.Getenv("S3_BUCKET"),
		PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
		UsePathStyle:    usePathStyle,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
