package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values. Sensitive data
// has no in-code default and must come from the environment.
type AppConfig struct {
	AppPort       string
	GinMode       string
	JWTSecret     string
	TokenTTLHours int

	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	RateLimitPerMinute int
	AllowedOrigins     []string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// Load reads the application configuration from environment variables. It
// should be called once during boot and the result passed down explicitly.
func Load() AppConfig {
	cfg := AppConfig{
		AppPort:       envStr("APP_PORT", "8080"),
		GinMode:       envStr("GIN_MODE", "release"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTLHours: envInt("TOKEN_TTL_HOURS", 72),

		DatabaseURI: os.Getenv("DATABASE_URI"),
		DBHost:      envStr("DB_HOST", "127.0.0.1"),
		DBPort:      envStr("DB_PORT", "3306"),
		DBUser:      envStr("DB_USER", "failboard"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      envStr("DB_NAME", "failboard"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     envInt("REDIS_PORT", 6379),
		RedisDB:       envInt("REDIS_DB", 0),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:     envList("ALLOWED_ORIGINS", []string{"*"}),

		LogLevel:      envStr("LOG_LEVEL", "info"),
		LogPath:       envStr("LOG_PATH", "logs/failboard.log"),
		LogMaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: envInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:   envBool("LOG_COMPRESS", false),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	return cfg
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
