package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"resume-ats/internal/shared/telemetry"
)

// RateLimit is a token bucket setting: Rate tokens per second, Burst capacity.
type RateLimit struct {
	Rate  float64
	Burst int
}

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	SQLitePath      string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	RedisURL        string
	CacheTTL        time.Duration
	MaxUploadBytes  int64
	MinResumeChars  int
	LogJSON         bool
	LogDebug        bool
	AnalyzeLimit    RateLimit
	DefaultLimit    RateLimit
	AnalyzerVersion string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		SQLitePath:      getEnv("SQLITE_PATH", ""),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTL:        getDuration("CACHE_TTL", 10*time.Minute),
		MaxUploadBytes:  int64(getInt("MAX_UPLOAD_BYTES", 10<<20)),
		MinResumeChars:  getInt("MIN_RESUME_CHARS", 50),
		LogJSON:         getBool("LOG_JSON", true),
		LogDebug:        getBool("LOG_DEBUG", false),
		AnalyzeLimit:    getRateLimit("RATE_LIMIT_ANALYZE", RateLimit{Rate: 1, Burst: 5}),
		DefaultLimit:    getRateLimit("RATE_LIMIT_DEFAULT", RateLimit{Rate: 5, Burst: 20}),
		AnalyzerVersion: getEnv("ANALYZER_VERSION", "heuristic-v1"),
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		telemetry.Warn("config.invalid_bool", map[string]any{"key": key, "value": raw})
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw})
		return def
	}
	return v
}

// getRateLimit parses "rate:burst", e.g. "0.5:3".
func getRateLimit(key string, def RateLimit) RateLimit {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	rateRaw, burstRaw, ok := strings.Cut(raw, ":")
	if !ok {
		telemetry.Warn("config.invalid_rate_limit", map[string]any{"key": key, "value": raw})
		return def
	}
	rate, rerr := strconv.ParseFloat(strings.TrimSpace(rateRaw), 64)
	burst, berr := strconv.Atoi(strings.TrimSpace(burstRaw))
	if rerr != nil || berr != nil || rate <= 0 || burst <= 0 {
		telemetry.Warn("config.invalid_rate_limit", map[string]any{"key": key, "value": raw})
		return def
	}
	return RateLimit{Rate: rate, Burst: burst}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "none", "off", "":
		return "none"
	default:
		return "local"
	}
}
