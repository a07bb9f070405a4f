package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohmanhakim/rudolf/internal/fetcher"
	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/rohmanhakim/rudolf/internal/storage"
	"github.com/rohmanhakim/rudolf/pkg/timeutil"
	"github.com/rohmanhakim/rudolf/pkg/urlutil"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//===============
	// Storage
	//===============
	// SQLite file holding every fetched input
	dbPath string

	//===============
	// Fetch
	//===============
	// File holding the session cookie for the puzzle site
	cookieFile string
	// Input URL with {year} and {day} placeholders
	urlTemplate string
	// Maximum time of a single fetch request
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Politeness
	//===============
	// Minimum, fixed waiting time between two HTTP requests to the same host.
	baseDelay time.Duration
	// Randomized variation added on top of the base delay.
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64
	// initial delay for backoff after a 429 or 5xx
	backoffInitialDuration time.Duration
	// multiplier during exponential backoff
	backoffMultiplier float64
	// capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration

	//===============
	// Logging
	//===============
	// zerolog level name
	logLevel string
	// Emit JSON lines instead of the console format
	logJSON bool
}

// configDTO is the on-disk shape. Durations are strings such as "30s".
type configDTO struct {
	DBPath                 string  `json:"dbPath,omitempty" yaml:"dbPath,omitempty"`
	CookieFile             string  `json:"cookieFile,omitempty" yaml:"cookieFile,omitempty"`
	URLTemplate            string  `json:"urlTemplate,omitempty" yaml:"urlTemplate,omitempty"`
	Timeout                string  `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent              string  `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	BaseDelay              string  `json:"baseDelay,omitempty" yaml:"baseDelay,omitempty"`
	Jitter                 string  `json:"jitter,omitempty" yaml:"jitter,omitempty"`
	RandomSeed             int64   `json:"randomSeed,omitempty" yaml:"randomSeed,omitempty"`
	BackoffInitialDuration string  `json:"backoffInitialDuration,omitempty" yaml:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64 `json:"backoffMultiplier,omitempty" yaml:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     string  `json:"backoffMaxDuration,omitempty" yaml:"backoffMaxDuration,omitempty"`
	LogLevel               string  `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogJSON                *bool   `json:"logJson,omitempty" yaml:"logJson,omitempty"`
}

// applyDTO overrides only the fields the file sets.
func (c *Config) applyDTO(dto configDTO) error {
	if dto.DBPath != "" {
		c.dbPath = dto.DBPath
	}
	if dto.CookieFile != "" {
		c.cookieFile = dto.CookieFile
	}
	if dto.URLTemplate != "" {
		c.urlTemplate = dto.URLTemplate
	}
	if dto.UserAgent != "" {
		c.userAgent = dto.UserAgent
	}
	if dto.RandomSeed != 0 {
		c.randomSeed = dto.RandomSeed
	}
	if dto.BackoffMultiplier != 0 {
		c.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.LogLevel != "" {
		c.logLevel = dto.LogLevel
	}
	if dto.LogJSON != nil {
		c.logJSON = *dto.LogJSON
	}

	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{name: "timeout", raw: dto.Timeout, target: &c.timeout},
		{name: "baseDelay", raw: dto.BaseDelay, target: &c.baseDelay},
		{name: "jitter", raw: dto.Jitter, target: &c.jitter},
		{name: "backoffInitialDuration", raw: dto.BackoffInitialDuration, target: &c.backoffInitialDuration},
		{name: "backoffMaxDuration", raw: dto.BackoffMaxDuration, target: &c.backoffMaxDuration},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.target = parsed
	}
	return nil
}

// WithConfigFile starts from the defaults and applies the file at path.
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
func WithConfigFile(path string) (*Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg := WithDefault()
	if err := cfg.applyDTO(cfgDTO); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values for all fields.
func WithDefault() *Config {
	defaultConfig := Config{
		dbPath:                 storage.DefaultPath,
		cookieFile:             fetcher.DefaultCookieFile,
		urlTemplate:            fetcher.DefaultURLTemplate,
		timeout:                fetcher.DefaultTimeout,
		userAgent:              fetcher.DefaultUserAgent,
		baseDelay:              time.Second,
		jitter:                 250 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		backoffInitialDuration: time.Second,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     30 * time.Second,
		logLevel:               metadata.DefaultLogLevel,
		logJSON:                false,
	}
	return &defaultConfig
}

func (c *Config) WithDBPath(path string) *Config {
	c.dbPath = path
	return c
}

func (c *Config) WithCookieFile(path string) *Config {
	c.cookieFile = path
	return c
}

func (c *Config) WithURLTemplate(template string) *Config {
	c.urlTemplate = template
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithBaseDelay(delay time.Duration) *Config {
	c.baseDelay = delay
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) WithLogJSON(logJSON bool) *Config {
	c.logJSON = logJSON
	return c
}

func (c *Config) Build() (Config, error) {
	if strings.TrimSpace(c.dbPath) == "" {
		return Config{}, fmt.Errorf("%w: dbPath cannot be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.cookieFile) == "" {
		return Config{}, fmt.Errorf("%w: cookieFile cannot be empty", ErrInvalidConfig)
	}
	if _, err := urlutil.ExpandTemplate(c.urlTemplate, puzzle.FirstYear, puzzle.FirstDay); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidConfig, c.timeout)
	}
	if c.baseDelay < 0 || c.jitter < 0 {
		return Config{}, fmt.Errorf("%w: baseDelay and jitter cannot be negative", ErrInvalidConfig)
	}
	if c.backoffMultiplier < 1 {
		return Config{}, fmt.Errorf("%w: backoffMultiplier must be at least 1, got %v", ErrInvalidConfig, c.backoffMultiplier)
	}
	if c.backoffInitialDuration < 0 || c.backoffMaxDuration < 0 {
		return Config{}, fmt.Errorf("%w: backoff durations cannot be negative", ErrInvalidConfig)
	}
	if _, err := metadata.ParseLevel(c.logLevel); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if strings.TrimSpace(c.userAgent) == "" {
		c.userAgent = fetcher.DefaultUserAgent
	}

	return *c, nil
}

func (c Config) DBPath() string {
	return c.dbPath
}

func (c Config) CookieFile() string {
	return c.cookieFile
}

func (c Config) URLTemplate() string {
	return c.urlTemplate
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) BaseDelay() time.Duration {
	return c.baseDelay
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) LogLevel() string {
	return c.logLevel
}

func (c Config) LogJSON() bool {
	return c.logJSON
}

// FetchParam is the fetcher's view of this config.
func (c Config) FetchParam() fetcher.FetchParam {
	return fetcher.NewFetchParam(c.urlTemplate, c.userAgent, c.timeout, c.cookieFile)
}

func (c Config) BackoffParam() timeutil.BackoffParam {
	return timeutil.NewBackoffParam(c.backoffInitialDuration, c.backoffMultiplier, c.backoffMaxDuration)
}
