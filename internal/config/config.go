// README: Config loader with env defaults for HTTP, Firebase, DB, Redis, and bar settings.
package config

import (
	"os"
	"strconv"
)

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	DatabaseURL     string
}

type BarConfig struct {
	// AutoHideMinutes is the fallback when the settings document is absent.
	// 0 means orders never expire from the views.
	AutoHideMinutes int
	MasterPIN       string
	// PublicBaseURL is the address encoded into table QR codes.
	PublicBaseURL string
	// RefreshSeconds is the live-feed recompute interval.
	RefreshSeconds int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN is optional; empty disables the order event journal.
		DSN string
	}
	Redis struct {
		// Addr is optional; empty disables the popularity ranking.
		Addr string
	}
	Firebase FirebaseConfig
	Bar      BarConfig
	Log      struct {
		Level    string
		Encoding string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("BESTELL_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("BESTELL_DB_DSN")
	cfg.Redis.Addr = os.Getenv("BESTELL_REDIS_ADDR")
	cfg.Firebase.ProjectID = os.Getenv("BESTELL_FB_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("BESTELL_FB_CREDENTIALS")
	cfg.Firebase.DatabaseURL = os.Getenv("BESTELL_FB_DB_URL")
	cfg.Bar.AutoHideMinutes = envOrDefaultInt("BESTELL_AUTO_HIDE_MINUTES", 30)
	cfg.Bar.MasterPIN = envOrDefault("BESTELL_MASTER_PIN", "1234")
	cfg.Bar.PublicBaseURL = envOrDefault("BESTELL_PUBLIC_BASE_URL", "http://localhost:8080")
	cfg.Bar.RefreshSeconds = envOrDefaultInt("BESTELL_REFRESH_SECONDS", 10)
	cfg.Log.Level = envOrDefault("BESTELL_LOG_LEVEL", "info")
	cfg.Log.Encoding = envOrDefault("BESTELL_LOG_ENCODING", "json")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
