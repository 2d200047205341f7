package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/sells-group/indicator-cli/internal/fetcher"
)

// Config holds the full application configuration.
type Config struct {
	WorldBank WorldBankConfig `yaml:"worldbank" mapstructure:"worldbank"`
	HDI       HDIConfig       `yaml:"hdi" mapstructure:"hdi"`
	EPI       EPIConfig       `yaml:"epi" mapstructure:"epi"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// WorldBankConfig configures the World Bank API client.
type WorldBankConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Source  int    `yaml:"source" mapstructure:"source"`
	PerPage int    `yaml:"per_page" mapstructure:"per_page"`
}

// HDIConfig configures the HDR composite-index loader.
type HDIConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// EPIConfig configures the environmental-indicator loader.
type EPIConfig struct {
	Folder string `yaml:"folder" mapstructure:"folder"`
}

// FetchConfig configures the HTTP fetcher.
type FetchConfig struct {
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst       int     `yaml:"burst" mapstructure:"burst"`
}

// HTTPOptions converts the fetch config into fetcher options.
func (c FetchConfig) HTTPOptions() fetcher.HTTPOptions {
	return fetcher.HTTPOptions{
		UserAgent:  c.UserAgent,
		Timeout:    time.Duration(c.TimeoutSecs) * time.Second,
		MaxRetries: c.MaxRetries,
		RateLimiters: map[string]*rate.Limiter{
			"api.worldbank.org": rate.NewLimiter(rate.Limit(c.RatePerSec), c.Burst),
		},
	}
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INDICATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("worldbank.base_url", "https://api.worldbank.org")
	v.SetDefault("worldbank.source", 80)
	v.SetDefault("worldbank.per_page", 1000)
	v.SetDefault("epi.folder", "P5_Indicator")
	v.SetDefault("fetch.user_agent", "indicator-cli/1.0")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.rate_per_sec", 10)
	v.SetDefault("fetch.burst", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
