package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      int
		expected int
	}{
		{
			name:     "valid integer",
			key:      "TEST_INT",
			value:    "42",
			def:      1,
			expected: 42,
		},
		{
			name:     "invalid integer uses default",
			key:      "TEST_INT_INVALID",
			value:    "not_a_number",
			def:      7,
			expected: 7,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_INT_MISSING",
			value:    "",
			def:      10,
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := getenvInt(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOOKINGDASH_API_URL", "http://localhost:8081")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.APITimeout != 10*time.Second || cfg.UndoWindow != 5*time.Second {
		t.Errorf("APITimeout = %v, UndoWindow = %v", cfg.APITimeout, cfg.UndoWindow)
	}
	if cfg.RefreshInterval != time.Minute || cfg.DefaultPageSize != 10 {
		t.Errorf("RefreshInterval = %v, DefaultPageSize = %d", cfg.RefreshInterval, cfg.DefaultPageSize)
	}
	if cfg.PrefsKey != "bookingdash:ui-prefs" {
		t.Errorf("PrefsKey = %q", cfg.PrefsKey)
	}
	if cfg.RedisEnabled() {
		t.Error("Redis should be disabled without BOOKINGDASH_REDIS_ADDR")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOKINGDASH_API_URL", "http://api:8081")
	t.Setenv("BOOKINGDASH_UNDO_WINDOW", "10s")
	t.Setenv("BOOKINGDASH_REFRESH_INTERVAL", "0")
	t.Setenv("BOOKINGDASH_DEFAULT_PAGE_SIZE", "25")
	t.Setenv("BOOKINGDASH_REDIS_ADDR", "redis:6379")
	t.Setenv("BOOKINGDASH_REDIS_DB", "2")

	cfg := Load()

	if cfg.UndoWindow != 10*time.Second || cfg.RefreshInterval != 0 || cfg.DefaultPageSize != 25 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.RedisEnabled() || cfg.RedisDB != 2 {
		t.Errorf("RedisAddr = %q, RedisDB = %d", cfg.RedisAddr, cfg.RedisDB)
	}
}

func TestLoadPanics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing api url",
			env:  map[string]string{},
		},
		{
			name: "zero page size",
			env:  map[string]string{"BOOKINGDASH_API_URL": "http://api", "BOOKINGDASH_DEFAULT_PAGE_SIZE": "0"},
		},
		{
			name: "negative refresh interval",
			env:  map[string]string{"BOOKINGDASH_API_URL": "http://api", "BOOKINGDASH_REFRESH_INTERVAL": "-1s"},
		},
		{
			name: "required redis password missing",
			env: map[string]string{
				"BOOKINGDASH_API_URL":                 "http://api",
				"BOOKINGDASH_REDIS_ADDR":              "redis:6379",
				"BOOKINGDASH_REDIS_PASSWORD_REQUIRED": "true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOOKINGDASH_API_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()
			Load()
		})
	}
}

func TestLoadBackend(t *testing.T) {
	t.Setenv("BOOKINGAPI_SEED_FILE", "/data/seed.yaml")

	cfg := LoadBackend()
	if cfg.ListenPort != ":8081" || cfg.SeedFile != "/data/seed.yaml" {
		t.Errorf("LoadBackend() = %+v", cfg)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
