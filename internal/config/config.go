package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/totohockey/totohockey/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration

	GoTrueBaseURL string
	GoTrueAPIKey  string
	GoTrueTimeout time.Duration

	PostgRESTEnabled               bool
	PostgRESTBaseURL               string
	PostgRESTServiceKey            string
	PostgRESTTimeout               time.Duration
	PostgRESTRetries               int
	PostgRESTCircuitEnabled        bool
	PostgRESTCircuitFailureCount   int
	PostgRESTCircuitOpenTimeout    time.Duration
	PostgRESTCircuitHalfOpenMaxReq int

	ScoringWorkers   int
	InternalJobToken string

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	goTrueTimeout, err := time.ParseDuration(getEnv("GOTRUE_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_TIMEOUT: %w", err)
	}
	if goTrueTimeout <= 0 {
		return Config{}, fmt.Errorf("GOTRUE_TIMEOUT must be > 0")
	}

	postgrestEnabled, err := strconv.ParseBool(getEnv("POSTGREST_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POSTGREST_ENABLED: %w", err)
	}
	postgrestBaseURL := strings.TrimSpace(getEnv("POSTGREST_BASE_URL", ""))
	if postgrestEnabled && postgrestBaseURL == "" {
		return Config{}, fmt.Errorf("POSTGREST_BASE_URL is required when POSTGREST_ENABLED=true")
	}
	postgrestTimeout, err := time.ParseDuration(getEnv("POSTGREST_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POSTGREST_TIMEOUT: %w", err)
	}
	if postgrestTimeout <= 0 {
		return Config{}, fmt.Errorf("POSTGREST_TIMEOUT must be > 0")
	}
	postgrestRetries, err := getEnvAsInt("POSTGREST_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse POSTGREST_RETRIES: %w", err)
	}
	if postgrestRetries < 0 {
		return Config{}, fmt.Errorf("POSTGREST_RETRIES must be >= 0")
	}
	postgrestCircuitEnabled, err := strconv.ParseBool(getEnv("POSTGREST_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POSTGREST_CIRCUIT_ENABLED: %w", err)
	}
	postgrestCircuitFailureCount, err := getEnvAsInt("POSTGREST_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse POSTGREST_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if postgrestCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("POSTGREST_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	postgrestCircuitOpenTimeout, err := time.ParseDuration(getEnv("POSTGREST_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POSTGREST_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if postgrestCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("POSTGREST_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	postgrestCircuitHalfOpenMaxReq, err := getEnvAsInt("POSTGREST_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse POSTGREST_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if postgrestCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("POSTGREST_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	scoringWorkers, err := getEnvAsInt("SCORING_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_WORKERS: %w", err)
	}
	if scoringWorkers < 1 {
		return Config{}, fmt.Errorf("SCORING_WORKERS must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "totohockey-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                   getEnv("DB_URL", ""),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CacheEnabled:            cacheEnabled,
		CacheTTL:                cacheTTL,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,

		GoTrueBaseURL: strings.TrimSpace(getEnv("GOTRUE_BASE_URL", "http://localhost:9999")),
		GoTrueAPIKey:  strings.TrimSpace(getEnv("GOTRUE_API_KEY", "")),
		GoTrueTimeout: goTrueTimeout,

		PostgRESTEnabled:               postgrestEnabled,
		PostgRESTBaseURL:               postgrestBaseURL,
		PostgRESTServiceKey:            strings.TrimSpace(getEnv("POSTGREST_SERVICE_KEY", "")),
		PostgRESTTimeout:               postgrestTimeout,
		PostgRESTRetries:               postgrestRetries,
		PostgRESTCircuitEnabled:        postgrestCircuitEnabled,
		PostgRESTCircuitFailureCount:   postgrestCircuitFailureCount,
		PostgRESTCircuitOpenTimeout:    postgrestCircuitOpenTimeout,
		PostgRESTCircuitHalfOpenMaxReq: postgrestCircuitHalfOpenMaxReq,

		ScoringWorkers:   scoringWorkers,
		InternalJobToken: strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
