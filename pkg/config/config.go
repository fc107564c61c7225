package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Optimizer
	Optimizer OptimizerConfig

	// Redis
	Redis RedisConfig

	// API
	API APIConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// OptimizerConfig holds defaults and limits for optimization runs
type OptimizerConfig struct {
	RulesFile        string // YAML rule set; empty = built-in US federal rules
	DefaultCount     int    // voluntary holidays when the caller gives none
	DefaultAlgorithm string // greedy | exhaustive
	MaxCombinations  uint64 // exhaustive searches above this are rejected
	CacheTTL         time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// APIConfig holds HTTP API throttling
type APIConfig struct {
	RateLimit        float64 // requests per second per process
	RateBurst        int
	ExhaustivePerMin int // shared across instances via Redis
}

// SchedulerConfig holds the cache warm-up schedule
type SchedulerConfig struct {
	WarmSchedule string // cron expression with seconds
	WarmCounts   []int
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	warmCounts, err := parseIntList(getEnv("WARM_COUNTS", "1,3,5"))
	if err != nil {
		return nil, fmt.Errorf("WARM_COUNTS: %w", err)
	}

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Optimizer
		Optimizer: OptimizerConfig{
			RulesFile:        getEnv("HOLIDAY_RULES_FILE", ""),
			DefaultCount:     getEnvAsInt("DEFAULT_VOLUNTARY_COUNT", 5),
			DefaultAlgorithm: getEnv("DEFAULT_ALGORITHM", "greedy"),
			MaxCombinations:  getEnvAsUint64("MAX_COMBINATIONS", 5_000_000),
			CacheTTL:         getEnvAsDuration("CACHE_TTL", "24h"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// API
		API: APIConfig{
			RateLimit:        getEnvAsFloat("API_RATE_LIMIT", 5),
			RateBurst:        getEnvAsInt("API_RATE_BURST", 10),
			ExhaustivePerMin: getEnvAsInt("API_EXHAUSTIVE_PER_MIN", 10),
		},

		// Scheduler
		Scheduler: SchedulerConfig{
			WarmSchedule: getEnv("WARM_SCHEDULE", "0 0 3 * * *"),
			WarmCounts:   warmCounts,
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Optimizer.DefaultCount < 0 {
		return fmt.Errorf("DEFAULT_VOLUNTARY_COUNT must be >= 0, got %d", c.Optimizer.DefaultCount)
	}

	switch strings.ToLower(c.Optimizer.DefaultAlgorithm) {
	case "greedy", "fast", "exhaustive", "optimal":
	default:
		return fmt.Errorf("DEFAULT_ALGORITHM must be greedy or exhaustive, got %q", c.Optimizer.DefaultAlgorithm)
	}

	if c.Optimizer.MaxCombinations == 0 {
		return fmt.Errorf("MAX_COMBINATIONS must be > 0")
	}

	if c.API.RateLimit <= 0 || c.API.RateBurst <= 0 {
		return fmt.Errorf("API_RATE_LIMIT and API_RATE_BURST must be > 0")
	}

	for _, n := range c.Scheduler.WarmCounts {
		if n < 0 {
			return fmt.Errorf("WARM_COUNTS must not contain negative values")
		}
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// parseIntList parses "1,3,5" into []int
func parseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}
