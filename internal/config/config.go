package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// SMTP
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	// EmailFrom is the sender shown on confirmation and reset emails.
	EmailFrom string

	// RateLimit is the number of requests allowed per client per minute.
	RateLimit int64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	env := getEnv("ENV", "development")

	// The original service allows 5 requests/minute in production and a
	// permissive 100 everywhere else.
	defaultLimit := "100"
	if env == "production" {
		defaultLimit = "5"
	}

	config := &Config{
		// Server
		Env:  env,
		Port: getEnv("PORT", "4000"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "cashtrackr"),
		DBPassword: getEnv("DB_PASSWORD", "cashtrackr"),
		DBName:     getEnv("DB_NAME", "cashtrackr"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// SMTP
		SMTPHost:  getEnv("EMAIL_HOST", "localhost"),
		SMTPUser:  getEnv("EMAIL_USER", ""),
		SMTPPass:  getEnv("EMAIL_PASS", ""),
		EmailFrom: getEnv("EMAIL_FROM", "CashTrackr <admin@cashtrackr.com>"),
	}

	smtpPort, err := strconv.Atoi(getEnv("EMAIL_PORT", "587"))
	if err != nil {
		log.Printf("Warning: invalid EMAIL_PORT value, falling back to 587\n")
		smtpPort = 587
	}
	config.SMTPPort = smtpPort

	limit, err := strconv.ParseInt(getEnv("RATE_LIMIT", defaultLimit), 10, 64)
	if err != nil {
		log.Printf("Warning: invalid RATE_LIMIT value, falling back to %s\n", defaultLimit)
		limit, _ = strconv.ParseInt(defaultLimit, 10, 64)
	}
	config.RateLimit = limit

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "720h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 720h\n", expStr)
		expDur = 720 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
