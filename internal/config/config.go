package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	Env                string // "production" enables the Secure cookie flag
	DatabaseURL        string
	RedisURL           string
	ClientURL          string        // Frontend origin (CORS, share links)
	JWTSecret          string        // Secret for access token signing
	JWTRefreshSecret   string        // Secret for refresh token signing
	JWTExpireTime      time.Duration // Access token lifetime
	JWTRefreshExpire   time.Duration // Refresh token lifetime
	RateLimitRPS       float64       // Rate limit for general API endpoints (requests per second)
	RateLimitBurst     int           // Burst size for rate limiting
	RateLimitAuthRPS   float64       // Rate limit for auth endpoints (stricter)
	RateLimitAuthBurst int           // Burst size for auth endpoints
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:               getEnv("PORT", "3000"),
		Env:                getEnv("APP_ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTRefreshSecret:   getEnv("JWT_REFRESH_SECRET", ""),
		JWTExpireTime:      getEnvDuration("JWT_EXPIRE_TIME", 15*time.Minute),
		JWTRefreshExpire:   getEnvDuration("JWT_REFRESH_EXPIRE_TIME", 7*24*time.Hour),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s: %q, using default %s", key, value, defaultValue)
	}
	return defaultValue
}
