package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/userfeed/internal/randomuser"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings shared by the CLI and the HTTP server.
//
// Units: ConnectTimeout and ReadTimeout are time.Duration values.
type Config struct {
	BaseURL        string        `env:"USERFEED_BASE_URL"`
	Results        int           `env:"USERFEED_RESULTS"`
	ConnectTimeout time.Duration `env:"USERFEED_CONNECT_TIMEOUT"`
	ReadTimeout    time.Duration `env:"USERFEED_READ_TIMEOUT"`
	ListenAddr     string        `env:"USERFEED_LISTEN_ADDR"`
	LogLevel       string        `env:"USERFEED_LOG_LEVEL"`
	LogFormat      string        `env:"USERFEED_LOG_FORMAT"`
}

const (
	DefaultBaseURL = "https://randomuser.me/"
	DefaultResults = 10
	DefaultTimeout = 15 * time.Second
)

// LoadDefaults populates c with the values the upstream client shipped with.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.Results = DefaultResults
	c.ConnectTimeout = DefaultTimeout
	c.ReadTimeout = DefaultTimeout
	c.ListenAddr = ":8080"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q", ErrInvalidConfig, c.BaseURL)
	}
	if c.Results <= 0 {
		return fmt.Errorf("%w: results must be positive, got %d", ErrInvalidConfig, c.Results)
	}
	if c.ConnectTimeout <= 0 || c.ReadTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	return nil
}

// Client maps the settings onto the random user client configuration.
func (c *Config) Client(hooks ...randomuser.ResponseHook) randomuser.Config {
	return randomuser.Config{
		BaseURL:        c.BaseURL,
		Results:        c.Results,
		ConnectTimeout: c.ConnectTimeout,
		ReadTimeout:    c.ReadTimeout,
		Hooks:          hooks,
	}
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment and finally the flags found in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
