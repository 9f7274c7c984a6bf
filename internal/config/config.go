package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Resolve ResolveConfig `yaml:"resolve" mapstructure:"resolve"`
	Verify  VerifyConfig  `yaml:"verify" mapstructure:"verify"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourcesConfig holds per-provider credentials. An empty key silently
// disables that source; it is never an error.
type SourcesConfig struct {
	HunterKey      string `yaml:"hunter_api_key" mapstructure:"hunter_api_key"`
	ApolloKey      string `yaml:"apollo_api_key" mapstructure:"apollo_api_key"`
	RocketReachKey string `yaml:"rocketreach_api_key" mapstructure:"rocketreach_api_key"`
	ClearbitKey    string `yaml:"clearbit_api_key" mapstructure:"clearbit_api_key"`
	GitHubToken    string `yaml:"github_token" mapstructure:"github_token"`
}

// ResolveConfig tunes the orchestrator and confidence classification.
type ResolveConfig struct {
	Workers      int            `yaml:"workers" mapstructure:"workers"`
	TimeoutSecs  int            `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	ScoreHigh    int            `yaml:"score_high" mapstructure:"score_high"`
	ScoreMedium  int            `yaml:"score_medium" mapstructure:"score_medium"`
	RateLimitsMS map[string]int `yaml:"rate_limits_ms" mapstructure:"rate_limits_ms"`
}

// RateIntervals converts the configured per-source rate limits to durations.
func (r ResolveConfig) RateIntervals() map[string]time.Duration {
	out := make(map[string]time.Duration, len(r.RateLimitsMS))
	for source, ms := range r.RateLimitsMS {
		out[source] = time.Duration(ms) * time.Millisecond
	}
	return out
}

// Timeout returns the per-contact resolution deadline.
func (r ResolveConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSecs) * time.Second
}

// VerifyConfig configures the SMTP mailbox probe identity.
type VerifyConfig struct {
	HeloDomain string `yaml:"helo_domain" mapstructure:"helo_domain"`
	FromAddr   string `yaml:"from_addr" mapstructure:"from_addr"`
}

// StoreConfig configures the optional run audit store. An empty path
// disables persistence.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
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
	v.SetEnvPrefix("CONTACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("resolve.workers", 6)
	v.SetDefault("resolve.timeout_secs", 60)
	v.SetDefault("resolve.score_high", 80)
	v.SetDefault("resolve.score_medium", 50)
	v.SetDefault("resolve.rate_limits_ms", map[string]int{
		"hunter":      1000,
		"apollo":      500,
		"rocketreach": 1000,
		"google":      2000,
		"github":      1000,
		"generic":     500,
	})
	v.SetDefault("verify.helo_domain", "verify.local")
	v.SetDefault("verify.from_addr", "verify@verify.local")
	v.SetDefault("store.path", "")

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
