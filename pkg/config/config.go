package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	JWTSecret   string

	ReminderScanInterval time.Duration
	ReminderSendTimeout  time.Duration
	ScanLeaseTTL         time.Duration
	RedisAddr            string

	FirebaseCredentials string
	GoogleProjectID     string
	GoogleCredentials   string
	EventsTopic         string

	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=taskflow port=5432 sslmode=disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "taskflow.db"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		ReminderScanInterval: getDuration("REMINDER_SCAN_INTERVAL", time.Minute),
		ReminderSendTimeout:  getDuration("REMINDER_SEND_TIMEOUT", 10*time.Second),
		ScanLeaseTTL:         getDuration("SCAN_LEASE_TTL", 30*time.Second),
		RedisAddr:            getEnv("REDIS_ADDR", ""),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		GoogleCredentials:   getEnv("GOOGLE_CREDENTIALS", ""),
		EventsTopic:         getEnv("EVENTS_TOPIC", "taskflow-events"),

		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a Go duration ("90s", "5m"); unparsable or non-positive
// values fall back to the default.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
