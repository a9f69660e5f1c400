package config

import (
	"testing"
	"time"
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
	if cfg.ServiceName != "totohockey-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%t ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.ScoringWorkers != 8 {
		t.Fatalf("unexpected scoring workers: %d", cfg.ScoringWorkers)
	}
	if cfg.GoTrueTimeout != 5*time.Second {
		t.Fatalf("unexpected gotrue timeout: %s", cfg.GoTrueTimeout)
	}
	if cfg.PostgRESTEnabled {
		t.Fatalf("postgrest must be disabled by default")
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

func TestLoad_PostgRESTRequiresBaseURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("POSTGREST_ENABLED", "true")
	t.Setenv("POSTGREST_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when POSTGREST_ENABLED=true without POSTGREST_BASE_URL")
	}
}

func TestLoad_PostgRESTConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("POSTGREST_ENABLED", "true")
	t.Setenv("POSTGREST_BASE_URL", "http://localhost:3000")
	t.Setenv("POSTGREST_SERVICE_KEY", "service-key")
	t.Setenv("POSTGREST_TIMEOUT", "10s")
	t.Setenv("POSTGREST_RETRIES", "3")
	t.Setenv("POSTGREST_CIRCUIT_FAILURE_COUNT", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.PostgRESTEnabled || cfg.PostgRESTBaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected postgrest config: %+v", cfg)
	}
	if cfg.PostgRESTTimeout != 10*time.Second || cfg.PostgRESTRetries != 3 {
		t.Fatalf("unexpected postgrest timeout/retries: %s/%d", cfg.PostgRESTTimeout, cfg.PostgRESTRetries)
	}
	if cfg.PostgRESTCircuitFailureCount != 4 {
		t.Fatalf("unexpected circuit failure count: %d", cfg.PostgRESTCircuitFailureCount)
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

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "totohockey-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "totohockey-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://totohockey.nl, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://totohockey.nl" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_ScoringWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("zero is rejected", func(t *testing.T) {
		t.Setenv("SCORING_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SCORING_WORKERS=0")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("SCORING_WORKERS", "many")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid SCORING_WORKERS")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "30s")
		t.Setenv("CACHE_ENABLED", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_ENABLED")
		}
	})
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel.String())
	}
}
