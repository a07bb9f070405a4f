package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/rudolf/internal/config"
	"github.com/rohmanhakim/rudolf/internal/fetcher"
)

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestWithDefault(t *testing.T) {
	cfg := config.WithDefault()

	if cfg == nil {
		t.Fatal("WithDefault() returned nil")
	}

	builtCfg, err := cfg.Build()
	if err != nil {
		t.Fatalf("should not have any error, got %v", err)
	}

	if builtCfg.DBPath() != "rudolf.db" {
		t.Errorf("expected DBPath 'rudolf.db', got '%s'", builtCfg.DBPath())
	}
	if builtCfg.CookieFile() != "cookie.txt" {
		t.Errorf("expected CookieFile 'cookie.txt', got '%s'", builtCfg.CookieFile())
	}
	if builtCfg.URLTemplate() != "https://adventofcode.com/{year}/day/{day}/input" {
		t.Errorf("unexpected URLTemplate '%s'", builtCfg.URLTemplate())
	}
	if builtCfg.Timeout() != 30*time.Second {
		t.Errorf("expected Timeout 30s, got %v", builtCfg.Timeout())
	}
	if builtCfg.UserAgent() != fetcher.DefaultUserAgent {
		t.Errorf("expected default UserAgent, got '%s'", builtCfg.UserAgent())
	}
	if builtCfg.BaseDelay() != time.Second {
		t.Errorf("expected BaseDelay 1s, got %v", builtCfg.BaseDelay())
	}
	if builtCfg.Jitter() != 250*time.Millisecond {
		t.Errorf("expected Jitter 250ms, got %v", builtCfg.Jitter())
	}
	if builtCfg.RandomSeed() == 0 {
		t.Error("expected RandomSeed to be seeded from the clock")
	}
	if builtCfg.BackoffInitialDuration() != time.Second {
		t.Errorf("expected BackoffInitialDuration 1s, got %v", builtCfg.BackoffInitialDuration())
	}
	if builtCfg.BackoffMultiplier() != 2.0 {
		t.Errorf("expected BackoffMultiplier 2.0, got %v", builtCfg.BackoffMultiplier())
	}
	if builtCfg.BackoffMaxDuration() != 30*time.Second {
		t.Errorf("expected BackoffMaxDuration 30s, got %v", builtCfg.BackoffMaxDuration())
	}
	if builtCfg.LogLevel() != "warn" {
		t.Errorf("expected LogLevel 'warn', got '%s'", builtCfg.LogLevel())
	}
	if builtCfg.LogJSON() {
		t.Error("expected LogJSON false")
	}
}

func TestBuilderChain(t *testing.T) {
	cfg, err := config.WithDefault().
		WithDBPath("/var/cache/rudolf/inputs.db").
		WithCookieFile("/home/elf/.config/aoc/session").
		WithURLTemplate("http://localhost:8080/{year}/{day}").
		WithTimeout(5 * time.Second).
		WithUserAgent("elf/1.0").
		WithBaseDelay(2 * time.Second).
		WithJitter(0).
		WithRandomSeed(42).
		WithBackoffInitialDuration(500 * time.Millisecond).
		WithBackoffMultiplier(3).
		WithBackoffMaxDuration(time.Minute).
		WithLogLevel("debug").
		WithLogJSON(true).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DBPath() != "/var/cache/rudolf/inputs.db" {
		t.Errorf("unexpected DBPath %s", cfg.DBPath())
	}
	if cfg.RandomSeed() != 42 {
		t.Errorf("expected RandomSeed 42, got %d", cfg.RandomSeed())
	}
	if cfg.Jitter() != 0 {
		t.Errorf("expected zero Jitter, got %v", cfg.Jitter())
	}
	if !cfg.LogJSON() {
		t.Error("expected LogJSON true")
	}

	param := cfg.FetchParam()
	if param.URLTemplate() != "http://localhost:8080/{year}/{day}" {
		t.Errorf("unexpected fetch URL template %s", param.URLTemplate())
	}
	if param.CookieFile() != "/home/elf/.config/aoc/session" {
		t.Errorf("unexpected fetch cookie file %s", param.CookieFile())
	}
	if param.Timeout() != 5*time.Second || param.UserAgent() != "elf/1.0" {
		t.Errorf("unexpected fetch param %+v", param)
	}

	backoff := cfg.BackoffParam()
	if backoff.InitialDuration() != 500*time.Millisecond || backoff.Multiplier() != 3 || backoff.MaxDuration() != time.Minute {
		t.Errorf("unexpected backoff param %+v", backoff)
	}
}

func TestBuild_EmptyUserAgentFallsBackToDefault(t *testing.T) {
	cfg, err := config.WithDefault().WithUserAgent("  ").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UserAgent() != fetcher.DefaultUserAgent {
		t.Errorf("expected default UserAgent, got %s", cfg.UserAgent())
	}
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		builder *config.Config
	}{
		{name: "empty db path", builder: config.WithDefault().WithDBPath("")},
		{name: "empty cookie file", builder: config.WithDefault().WithCookieFile(" ")},
		{name: "template without placeholders", builder: config.WithDefault().WithURLTemplate("https://adventofcode.com/2023/day/1/input")},
		{name: "template with ftp scheme", builder: config.WithDefault().WithURLTemplate("ftp://adventofcode.com/{year}/day/{day}/input")},
		{name: "zero timeout", builder: config.WithDefault().WithTimeout(0)},
		{name: "negative base delay", builder: config.WithDefault().WithBaseDelay(-time.Second)},
		{name: "negative jitter", builder: config.WithDefault().WithJitter(-time.Millisecond)},
		{name: "shrinking backoff", builder: config.WithDefault().WithBackoffMultiplier(0.5)},
		{name: "negative backoff", builder: config.WithDefault().WithBackoffMaxDuration(-time.Second)},
		{name: "unknown log level", builder: config.WithDefault().WithLogLevel("chatty")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestWithConfigFile_JSON(t *testing.T) {
	path := writeFile(t, "rudolf.json", `{
  "dbPath": "inputs.db",
  "cookieFile": "session.txt",
  "timeout": "10s",
  "baseDelay": "1500ms",
  "backoffMultiplier": 1.5,
  "logLevel": "info",
  "logJson": true
}`)

	builder, err := config.WithConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := builder.Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	if cfg.DBPath() != "inputs.db" {
		t.Errorf("expected DBPath 'inputs.db', got '%s'", cfg.DBPath())
	}
	if cfg.CookieFile() != "session.txt" {
		t.Errorf("expected CookieFile 'session.txt', got '%s'", cfg.CookieFile())
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("expected Timeout 10s, got %v", cfg.Timeout())
	}
	if cfg.BaseDelay() != 1500*time.Millisecond {
		t.Errorf("expected BaseDelay 1.5s, got %v", cfg.BaseDelay())
	}
	if cfg.BackoffMultiplier() != 1.5 {
		t.Errorf("expected BackoffMultiplier 1.5, got %v", cfg.BackoffMultiplier())
	}
	if cfg.LogLevel() != "info" || !cfg.LogJSON() {
		t.Errorf("unexpected logging config %s %v", cfg.LogLevel(), cfg.LogJSON())
	}
	// untouched fields keep their defaults
	if cfg.Jitter() != 250*time.Millisecond {
		t.Errorf("expected default Jitter, got %v", cfg.Jitter())
	}
	if cfg.URLTemplate() != fetcher.DefaultURLTemplate {
		t.Errorf("expected default URLTemplate, got %s", cfg.URLTemplate())
	}
}

func TestWithConfigFile_YAML(t *testing.T) {
	for _, name := range []string{"rudolf.yaml", "rudolf.YML"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, `
dbPath: /tmp/aoc.db
urlTemplate: "http://mirror.local/{year}/{day}.txt"
jitter: 0s
timeout: 1m
logJson: false
randomSeed: 7
`)

			builder, err := config.WithConfigFile(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			cfg, err := builder.Build()
			if err != nil {
				t.Fatalf("unexpected build error: %v", err)
			}

			if cfg.DBPath() != "/tmp/aoc.db" {
				t.Errorf("expected DBPath '/tmp/aoc.db', got '%s'", cfg.DBPath())
			}
			if cfg.URLTemplate() != "http://mirror.local/{year}/{day}.txt" {
				t.Errorf("unexpected URLTemplate %s", cfg.URLTemplate())
			}
			if cfg.Jitter() != 0 {
				t.Errorf("expected Jitter 0, got %v", cfg.Jitter())
			}
			if cfg.Timeout() != time.Minute {
				t.Errorf("expected Timeout 1m, got %v", cfg.Timeout())
			}
			if cfg.RandomSeed() != 7 {
				t.Errorf("expected RandomSeed 7, got %d", cfg.RandomSeed())
			}
		})
	}
}

func TestWithConfigFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			wantErr: config.ErrFileDoesNotExist,
		},
		{
			name:    "malformed json",
			path:    func(t *testing.T) string { return writeFile(t, "bad.json", `{"dbPath": `) },
			wantErr: config.ErrConfigParsingFail,
		},
		{
			name:    "malformed yaml",
			path:    func(t *testing.T) string { return writeFile(t, "bad.yaml", "dbPath: [unclosed") },
			wantErr: config.ErrConfigParsingFail,
		},
		{
			name:    "bad duration",
			path:    func(t *testing.T) string { return writeFile(t, "bad.json", `{"timeout": "soon"}`) },
			wantErr: config.ErrConfigParsingFail,
		},
		{
			name:    "directory instead of file",
			path:    func(t *testing.T) string { return t.TempDir() },
			wantErr: config.ErrReadConfigFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.WithConfigFile(tt.path(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
