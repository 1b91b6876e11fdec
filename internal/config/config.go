package config

import (
	"os"
	"strconv"
	"strings"

	"backoffice-service/internal/pkg/jwt"
	"backoffice-service/internal/pkg/paging"
	"backoffice-service/internal/storage"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// JWT
	JWT jwt.Config

	// Pagination
	Paging paging.Config

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	SMTPFromName string
	SMTPSecure   bool

	// Uploads
	Storage     storage.Config
	MaxUploadMB int64

	// Accounts
	ActivationEmail bool

	// Super admin bootstrap
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
	SuperAdminSurname  string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8000"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		JWT: jwt.Config{
			Secret:      getEnv("TOKEN_SECRET", ""),
			Issuer:      getEnv("TOKEN_ISSUER", "backoffice"),
			ExpiresDays: getEnvInt("TOKEN_EXPIRES_DAYS", 7),
		},

		Paging: paging.Config{
			PerPage:    getEnvInt("PAGING_PER_PAGE", 15),
			MaxPerPage: getEnvInt("PAGING_MAX_PER_PAGE", 100),
		},

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "465"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Back Office"),
		SMTPSecure:   getEnvBool("SMTP_SECURE", true),

		Storage: storage.Config{
			Driver:             getEnv("STORAGE_DRIVER", "local"),
			UploadsPath:        getEnv("UPLOADS_PATH", "./uploads"),
			AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			AWSRegion:          getEnv("AWS_REGION", ""),
			AWSBucket:          getEnv("AWS_BUCKET", ""),
		},
		MaxUploadMB: int64(getEnvInt("MAX_UPLOAD_MB", 5)),

		ActivationEmail: getEnvBool("ACTIVATION_EMAIL", false),

		SuperAdminEmail:    getEnv("SUPER_ADMIN_EMAIL", ""),
		SuperAdminPassword: getEnv("SUPER_ADMIN_PASSWORD", ""),
		SuperAdminName:     getEnv("SUPER_ADMIN_NAME", "Super"),
		SuperAdminSurname:  getEnv("SUPER_ADMIN_SURNAME", "Admin"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.ToLower(v) == "true"
	}
	return fallback
}
