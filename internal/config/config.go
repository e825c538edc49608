package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Config holds the runtime settings of the wish service.
type Config struct {
	Port            string
	DataFile        string
	StoreBackend    string
	MongoURI        string
	MongoDB         string
	LockTimeout     time.Duration
	SuccessRedirect string
	AllowedOrigins  []string
	LogLevel        string
	StatsSchedule   string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DataFile:        getEnv("DATA_FILE", "data/wishes.json"),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", "wishes"),
		SuccessRedirect: getEnv("SUCCESS_REDIRECT", "index.html"),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StatsSchedule:   getEnv("STATS_SCHEDULE", "@every 1m"),
	}

	if raw := os.Getenv("LOCK_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			logrus.WithField("LOCK_TIMEOUT", raw).Warn("Invalid lock timeout, waiting without limit")
		} else {
			cfg.LockTimeout = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
