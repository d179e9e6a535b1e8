package roamstay

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings, loaded once at startup.
type Config struct {
	Addr        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenTTL    time.Duration
	UploadDir   string
	LogDir      string
	FrontendURL string
}

// LoadConfig reads configuration from the environment, with a .env file
// honored when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        fallback(os.Getenv("ADDR"), ":8090"),
		MongoURI:    fallback(os.Getenv("MONGO_URI"), "mongodb://127.0.0.1:27017"),
		DBName:      fallback(os.Getenv("DB_NAME"), "roamstay"),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:    DefaultTokenTTL,
		UploadDir:   fallback(os.Getenv("UPLOAD_DIR"), "uploads"),
		LogDir:      fallback(os.Getenv("LOG_DIR"), "logs"),
		FrontendURL: fallback(os.Getenv("FRONTEND_URL"), "http://localhost:5173"),
	}

	if days := os.Getenv("TOKEN_TTL_DAYS"); days != "" {
		if d, err := strconv.Atoi(days); err == nil && d > 0 {
			cfg.TokenTTL = time.Duration(d) * 24 * time.Hour
		}
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
