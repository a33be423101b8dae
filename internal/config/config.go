package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "secret_dev"

type Config struct {
	Env         string
	Port        int
	ServiceName string

	JWTSecret    string
	JWTExpiresIn time.Duration

	// STORE_DRIVER: memory | postgres | firestore
	StoreDriver              string
	DBURL                    string
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// CACHE_DRIVER: none | memory | redis
	CacheDriver   string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UploadMode     string
	UploadDir      string
	UploadMaxBytes int64

	CORSAllowedOrigins []string
	LoginRateLimit     int
	UploadRateLimit    int
	OTELEndpoint       string

	AdminEmail    string
	AdminPassword string
	AdminUsername string
}

func Load() (Config, error) {
	env := getEnv("APP_ENV", "development")

	expiresIn, err := getEnvDuration("JWT_EXPIRES_IN", 8*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cacheTTL, err := getEnvDuration("CACHE_TTL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if env == "production" {
			return Config{}, errors.New("config: JWT_SECRET is required in production")
		}
		secret = devJWTSecret
	}

	uploadMode := getEnv("UPLOAD_MODE", "")
	if uploadMode == "" {
		uploadMode = "disk"
		// serverless hosts have a read-only filesystem
		if os.Getenv("VERCEL") != "" {
			uploadMode = "memory"
		}
	}

	cfg := Config{
		Env:         env,
		Port:        getEnvInt("PORT", 3000),
		ServiceName: getEnv("SERVICE_NAME", "vallas-api"),

		JWTSecret:    secret,
		JWTExpiresIn: expiresIn,

		StoreDriver:              strings.ToLower(getEnv("STORE_DRIVER", "memory")),
		DBURL:                    buildDBURL(),
		FirestoreProjectID:       os.Getenv("FIRESTORE_PROJECT_ID"),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		CacheDriver:   strings.ToLower(getEnv("CACHE_DRIVER", "none")),
		CacheTTL:      cacheTTL,
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		UploadMode:     uploadMode,
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LoginRateLimit:     getEnvInt("LOGIN_RATE_LIMIT", 20),
		UploadRateLimit:    getEnvInt("UPLOAD_RATE_LIMIT", 30),
		OTELEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
	}

	switch cfg.StoreDriver {
	case "memory", "postgres":
	case "firestore":
		if cfg.FirestoreProjectID == "" {
			return Config{}, errors.New("config: FIRESTORE_PROJECT_ID is required for the firestore driver")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.CacheDriver {
	case "none", "memory", "redis":
	default:
		return Config{}, fmt.Errorf("config: unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func buildDBURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "vallas")
	pass := getEnv("DB_PASSWORD", "vallas")
	name := getEnv("DB_NAME", "vallas")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := parseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", key)
	}

	return d, nil
}

// parseDuration accepts Go durations ("8h"), whole days ("7d") and bare
// seconds ("3600"), the formats existing .env files use for JWT_EXPIRES_IN.
func parseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)

	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	if days, ok := strings.CutSuffix(v, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour, nil
		}
	}

	return time.ParseDuration(v)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
