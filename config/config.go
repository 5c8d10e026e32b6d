package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL              string
	DatabaseName     string
	BaseURL          string
	Port             string
	PublicWebBaseURL string

	UploadDir       string
	MaxEvidenceSize int64

	AdminEmail         string
	EmailFromAddress   string
	EmailFromName      string
	UrgentEmailEnabled bool
	EmailDebug         bool
	EmailLogFile       string
	EmailLogMaxSize    int64

	JWTSecret string
	RedisAddr string

	GithubRepo        string
	AdminPanelBaseURL string
}

// AdminEmailPlaceholder is the shipped default recipient. Notifications are
// skipped until the operator replaces it with a real address.
const AdminEmailPlaceholder = "admin@jansuraksha.com"

// New sets up all config related services
func New() *Config {
	// optional .env for local development; real env vars win in production
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:              os.Getenv("DB_URI"),
		DatabaseName:     os.Getenv("DB_NAME"),
		BaseURL:          os.Getenv("BASE_URL"),
		Port:             os.Getenv("PORT"),
		PublicWebBaseURL: os.Getenv("PUBLIC_WEB_BASE_URL"),

		UploadDir:       envOrDefault("UPLOAD_DIR", "uploads"),
		MaxEvidenceSize: envInt64("MAX_EVIDENCE_SIZE", 20*1024*1024),

		AdminEmail:         envOrDefault("ADMIN_EMAIL", AdminEmailPlaceholder),
		EmailFromAddress:   envOrDefault("EMAIL_FROM_ADDRESS", "noreply@jansuraksha.com"),
		EmailFromName:      envOrDefault("EMAIL_FROM_NAME", "Jan Suraksha - Complaint Management System"),
		UrgentEmailEnabled: envBool("URGENT_EMAIL_ENABLED", true),
		EmailDebug:         envBool("EMAIL_DEBUG", true),
		EmailLogFile:       envOrDefault("EMAIL_LOG_FILE", "logs/email-log.txt"),
		EmailLogMaxSize:    envInt64("EMAIL_LOG_MAX_SIZE", 5*1024*1024),

		JWTSecret: os.Getenv("JWT_SECRET"),
		RedisAddr: os.Getenv("REDIS_ADDR"),

		GithubRepo:        envOrDefault("GITHUB_REPO", "Anjalijagta/jan_suraksha"),
		AdminPanelBaseURL: envOrDefault("ADMIN_PANEL_BASE_URL", "http://localhost/admin"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		zap.S().Warnf("invalid boolean for %v: %q, using default %v", key, v, def)
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		zap.S().Warnf("invalid integer for %v: %q, using default %v", key, v, def)
		return def
	}
	return n
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err. User-correctable errors only; the err text
// is echoed back to the client.
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"Response":{"Message":"%s","Error":"%v"}}`, message, err)))
}

// InternalStatus logs the full error but answers with a fixed generic body.
// Storage failures go through here so raw database errors never reach the client.
func InternalStatus(message string, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"Response":{"Message":"something went wrong, please try again later"}}`))
}
