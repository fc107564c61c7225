package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8089" {
		t.Errorf("Expected Port to be 8089, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Optimizer.DefaultCount != 5 {
		t.Errorf("Expected DefaultCount to be 5, got %d", cfg.Optimizer.DefaultCount)
	}

	if cfg.Optimizer.DefaultAlgorithm != "greedy" {
		t.Errorf("Expected DefaultAlgorithm to be greedy, got %s", cfg.Optimizer.DefaultAlgorithm)
	}

	if cfg.Optimizer.MaxCombinations != 5_000_000 {
		t.Errorf("Expected MaxCombinations to be 5000000, got %d", cfg.Optimizer.MaxCombinations)
	}

	if cfg.Optimizer.CacheTTL != 24*time.Hour {
		t.Errorf("Expected CacheTTL to be 24h, got %v", cfg.Optimizer.CacheTTL)
	}

	if cfg.Redis.Enabled {
		t.Error("Expected Redis to be disabled by default")
	}

	if len(cfg.Scheduler.WarmCounts) != 3 {
		t.Errorf("Expected 3 warm counts, got %v", cfg.Scheduler.WarmCounts)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	// Set custom environment variables
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("DEFAULT_VOLUNTARY_COUNT", "2")
	os.Setenv("DEFAULT_ALGORITHM", "exhaustive")
	os.Setenv("MAX_COMBINATIONS", "1000")
	os.Setenv("CACHE_TTL", "30m")
	os.Setenv("WARM_COUNTS", "0, 2")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("DEFAULT_VOLUNTARY_COUNT")
		os.Unsetenv("DEFAULT_ALGORITHM")
		os.Unsetenv("MAX_COMBINATIONS")
		os.Unsetenv("CACHE_TTL")
		os.Unsetenv("WARM_COUNTS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Optimizer.DefaultCount != 2 {
		t.Errorf("Expected DefaultCount to be 2, got %d", cfg.Optimizer.DefaultCount)
	}

	if cfg.Optimizer.DefaultAlgorithm != "exhaustive" {
		t.Errorf("Expected DefaultAlgorithm to be exhaustive, got %s", cfg.Optimizer.DefaultAlgorithm)
	}

	if cfg.Optimizer.MaxCombinations != 1000 {
		t.Errorf("Expected MaxCombinations to be 1000, got %d", cfg.Optimizer.MaxCombinations)
	}

	if cfg.Optimizer.CacheTTL != 30*time.Minute {
		t.Errorf("Expected CacheTTL to be 30m, got %v", cfg.Optimizer.CacheTTL)
	}

	if got := cfg.Scheduler.WarmCounts; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Expected WarmCounts [0 2], got %v", got)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"invalid env", "ENV", "invalid"},
		{"negative count", "DEFAULT_VOLUNTARY_COUNT", "-1"},
		{"unknown algorithm", "DEFAULT_ALGORITHM", "annealing"},
		{"zero rate", "API_RATE_LIMIT", "0"},
		{"bad warm counts", "WARM_COUNTS", "1,x"},
		{"negative warm count", "WARM_COUNTS", "1,-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s, got nil", tt.key, tt.val)
			}
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	if got := getEnvAsDuration("TEST_DURATION", "1h"); got != 2*time.Hour {
		t.Errorf("Expected 2h, got %v", got)
	}

	os.Setenv("TEST_DURATION", "soon")
	if got := getEnvAsDuration("TEST_DURATION", "1h"); got != time.Hour {
		t.Errorf("Expected fallback 1h, got %v", got)
	}
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	os.Setenv("TEST_INT", "abc")
	defer os.Unsetenv("TEST_INT")

	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("Expected fallback 7, got %d", got)
	}
}
