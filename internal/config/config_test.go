package config

import (
	"testing"
	"time"

	"github.com/gcamargo/footdata/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIFootballBaseURL != "https://v3.football.api-sports.io" {
		t.Fatalf("unexpected APIFootballBaseURL: %q", cfg.APIFootballBaseURL)
	}
	if cfg.APIFootballRatePerMinute != 240 {
		t.Fatalf("unexpected APIFootballRatePerMinute: %d", cfg.APIFootballRatePerMinute)
	}
	if cfg.APIFootballTimeout != 20*time.Second {
		t.Fatalf("unexpected APIFootballTimeout: %s", cfg.APIFootballTimeout)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if !cfg.DBDisablePreparedBinary {
		t.Fatalf("expected DBDisablePreparedBinary=true by default")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_RateLimitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APIFOOTBALL_RATE_PER_MINUTE", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for APIFOOTBALL_RATE_PER_MINUTE=0")
	}
}

func TestLoad_APIFootballOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APIFOOTBALL_BASE_URL", "  https://proxy.internal/api-football ")
	t.Setenv("APIFOOTBALL_KEY", "key-123")
	t.Setenv("APIFOOTBALL_TIMEOUT", "5s")
	t.Setenv("APIFOOTBALL_RATE_PER_MINUTE", "30")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIFootballBaseURL != "https://proxy.internal/api-football" {
		t.Fatalf("unexpected APIFootballBaseURL: %q", cfg.APIFootballBaseURL)
	}
	if cfg.APIFootballKey != "key-123" {
		t.Fatalf("unexpected APIFootballKey")
	}
	if cfg.APIFootballTimeout != 5*time.Second {
		t.Fatalf("unexpected APIFootballTimeout: %s", cfg.APIFootballTimeout)
	}
	if cfg.APIFootballRatePerMinute != 30 {
		t.Fatalf("unexpected APIFootballRatePerMinute: %d", cfg.APIFootballRatePerMinute)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}
