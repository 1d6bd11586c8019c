// Package config loads matchday settings from defaults, an optional YAML
// file, a .env file and MATCHDAY_ prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/matchday/internal/football"
	"github.com/alexanderramin/matchday/internal/intelligence"
	"github.com/alexanderramin/matchday/internal/llm"
)

const (
	DefaultSeason     = 2022
	DefaultHistoryDB  = "matchday.db"
	DefaultServerAddr = ":8080"
)

type FootballConfig struct {
	BaseURL   string `koanf:"base_url"`
	APIKey    string `koanf:"api_key"`
	LastN     int    `koanf:"last_n"`
	H2HLast   int    `koanf:"h2h_last"`
	NextN     int    `koanf:"next_n"`
	TimeoutMs int    `koanf:"timeout_ms"` // 0 means no client-side deadline
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// Config is the full process configuration.
type Config struct {
	LogLevel      string         `koanf:"log_level"`
	LogFormat     string         `koanf:"log_format"`
	Season        int            `koanf:"season"`
	ReferenceDate string         `koanf:"reference_date"` // YYYY-MM-DD; empty means today
	LookbackDays  int            `koanf:"lookback_days"`
	HistoryDB     string         `koanf:"history_db"`
	SentryDSN     string         `koanf:"sentry_dsn"`
	Environment   string         `koanf:"environment"`
	Football      FootballConfig `koanf:"football"`
	LLM           llm.LLMConfig  `koanf:"llm"`
	Server        ServerConfig   `koanf:"server"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Season:       DefaultSeason,
		LookbackDays: intelligence.DefaultLookbackDays,
		HistoryDB:    DefaultHistoryDB,
		Environment:  "development",
		Football: FootballConfig{
			BaseURL: football.DefaultBaseURL,
			LastN:   football.DefaultLastN,
			H2HLast: football.DefaultH2HLast,
			NextN:   football.DefaultNextN,
		},
		LLM:    llm.DefaultConfig(),
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.Season <= 0 {
		return fmt.Errorf("%w: season must be positive", ErrInvalidConfig)
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("%w: lookback_days must be positive", ErrInvalidConfig)
	}
	if c.ReferenceDate != "" {
		if _, err := time.Parse(intelligence.DateLayout, c.ReferenceDate); err != nil {
			return fmt.Errorf("%w: reference_date must be YYYY-MM-DD: %v", ErrInvalidConfig, err)
		}
	}
	if c.Football.LastN <= 0 || c.Football.H2HLast <= 0 || c.Football.NextN <= 0 {
		return fmt.Errorf("%w: football last_n, h2h_last and next_n must be positive", ErrInvalidConfig)
	}
	if c.Football.TimeoutMs < 0 {
		return fmt.Errorf("%w: football timeout_ms must not be negative", ErrInvalidConfig)
	}
	if !llm.IsValidProvider(c.LLM.Provider) {
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalidConfig, c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("%w: llm model must not be empty", ErrInvalidConfig)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server addr must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Clock returns the reference clock used for relative dates. A configured
// reference date pins the calendar day and keeps the wall-clock time.
func (c *Config) Clock() func() time.Time {
	if c.ReferenceDate == "" {
		return time.Now
	}
	day, err := time.ParseInLocation(intelligence.DateLayout, c.ReferenceDate, time.Local)
	if err != nil {
		return time.Now
	}
	return func() time.Time {
		now := time.Now()
		return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local)
	}
}

// FootballClient maps the football section onto a gateway client config.
func (c *Config) FootballClient(observer football.Observer) football.ClientConfig {
	return football.ClientConfig{
		BaseURL:  c.Football.BaseURL,
		APIKey:   c.Football.APIKey,
		Timeout:  time.Duration(c.Football.TimeoutMs) * time.Millisecond,
		H2HLast:  c.Football.H2HLast,
		Observer: observer,
	}
}

// Extractor maps the question-parsing settings.
func (c *Config) Extractor(log logrus.FieldLogger) intelligence.ExtractorConfig {
	return intelligence.ExtractorConfig{
		Season:       c.Season,
		LookbackDays: c.LookbackDays,
		Now:          c.Clock(),
		Log:          log,
	}
}
