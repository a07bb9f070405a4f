package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig lists the RUDOLF_* variables. Unset variables keep the current value.
type envConfig struct {
	DBPath      string        `env:"RUDOLF_DB_PATH"`
	CookieFile  string        `env:"RUDOLF_COOKIE_FILE"`
	URLTemplate string        `env:"RUDOLF_URL_TEMPLATE"`
	Timeout     time.Duration `env:"RUDOLF_TIMEOUT"`
	UserAgent   string        `env:"RUDOLF_USER_AGENT"`
	BaseDelay   time.Duration `env:"RUDOLF_BASE_DELAY"`
	Jitter      time.Duration `env:"RUDOLF_JITTER"`
	RandomSeed  int64         `env:"RUDOLF_RANDOM_SEED"`
	LogLevel    string        `env:"RUDOLF_LOG_LEVEL"`
	LogJSON     *bool         `env:"RUDOLF_LOG_JSON"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// WithEnv overlays RUDOLF_* environment variables on c.
func (c *Config) WithEnv() (*Config, error) {
	var vars envConfig
	if err := ParseEnv(&vars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvParsingFail, err.Error())
	}

	if vars.DBPath != "" {
		c.dbPath = vars.DBPath
	}
	if vars.CookieFile != "" {
		c.cookieFile = vars.CookieFile
	}
	if vars.URLTemplate != "" {
		c.urlTemplate = vars.URLTemplate
	}
	if vars.Timeout != 0 {
		c.timeout = vars.Timeout
	}
	if vars.UserAgent != "" {
		c.userAgent = vars.UserAgent
	}
	if vars.BaseDelay != 0 {
		c.baseDelay = vars.BaseDelay
	}
	if vars.Jitter != 0 {
		c.jitter = vars.Jitter
	}
	if vars.RandomSeed != 0 {
		c.randomSeed = vars.RandomSeed
	}
	if vars.LogLevel != "" {
		c.logLevel = vars.LogLevel
	}
	if vars.LogJSON != nil {
		c.logJSON = *vars.LogJSON
	}
	return c, nil
}
