package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("UPLOAD_MODE", "")
	t.Setenv("VERCEL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "development" {
		t.Fatalf("got env %q, want development", cfg.Env)
	}
	if cfg.Port != 3000 {
		t.Fatalf("got port %d, want 3000", cfg.Port)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Fatalf("got secret %q, want dev fallback", cfg.JWTSecret)
	}
	if cfg.JWTExpiresIn != 8*time.Hour {
		t.Fatalf("got expiry %s, want 8h", cfg.JWTExpiresIn)
	}
	if cfg.StoreDriver != "memory" || cfg.CacheDriver != "none" || cfg.UploadMode != "disk" {
		t.Fatalf("unexpected drivers: store=%q cache=%q upload=%q", cfg.StoreDriver, cfg.CacheDriver, cfg.UploadMode)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error when JWT_SECRET is missing in production")
	}
}

func TestLoad_VercelSwitchesUploadsToMemory(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("UPLOAD_MODE", "")
	t.Setenv("VERCEL", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UploadMode != "memory" {
		t.Fatalf("got upload mode %q, want memory", cfg.UploadMode)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad expiry", key: "JWT_EXPIRES_IN", val: "eight hours"},
		{name: "negative ttl", key: "CACHE_TTL", val: "-1s"},
		{name: "zero seconds", key: "JWT_EXPIRES_IN", val: "0"},
		{name: "days without number", key: "JWT_EXPIRES_IN", val: "xd"},
		{name: "unknown store", key: "STORE_DRIVER", val: "mongo"},
		{name: "unknown cache", key: "CACHE_DRIVER", val: "memcached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "")
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_ExpiryFormats(t *testing.T) {
	tests := map[string]time.Duration{
		"8h":    8 * time.Hour,
		"90m":   90 * time.Minute,
		"1d":    24 * time.Hour,
		"7d":    7 * 24 * time.Hour,
		"3600":  time.Hour,
		" 60 ":  time.Minute,
		"1h30m": 90 * time.Minute,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Setenv("APP_ENV", "")
			t.Setenv("JWT_EXPIRES_IN", in)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load with JWT_EXPIRES_IN=%q: %v", in, err)
			}
			if cfg.JWTExpiresIn != want {
				t.Fatalf("JWT_EXPIRES_IN=%q: got %s, want %s", in, cfg.JWTExpiresIn, want)
			}
		})
	}
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("LOGIN_RATE_LIMIT", "lots")

	if got := getEnvInt("LOGIN_RATE_LIMIT", 20); got != 20 {
		t.Fatalf("got %d, want fallback 20", got)
	}
}
