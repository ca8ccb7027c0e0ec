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
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Browser  BrowserConfig  `yaml:"browser" mapstructure:"browser"`
	Strategy StrategyConfig `yaml:"strategy" mapstructure:"strategy"`
	Extract  ExtractConfig  `yaml:"extract" mapstructure:"extract"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// FetchConfig configures static HTTP fetching. UserAgent is shared with the
// browser.
type FetchConfig struct {
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// Timeout returns the per-request timeout.
func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// BrowserConfig configures headless Chrome rendering.
type BrowserConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	ExecPath    string `yaml:"exec_path" mapstructure:"exec_path"`
	SettleMs    int    `yaml:"settle_ms" mapstructure:"settle_ms"`
	ScrollMs    int    `yaml:"scroll_ms" mapstructure:"scroll_ms"`
	FinalMs     int    `yaml:"final_ms" mapstructure:"final_ms"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DebugDir    string `yaml:"debug_dir" mapstructure:"debug_dir"`
}

// StrategyConfig configures the fallback page sequence.
type StrategyConfig struct {
	Paths   []string `yaml:"paths" mapstructure:"paths"`
	DelayMs int      `yaml:"delay_ms" mapstructure:"delay_ms"`
}

// Delay returns the pause between fallback candidates.
func (c StrategyConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// ExtractConfig configures the founder extraction engine.
type ExtractConfig struct {
	MinNameWords   int      `yaml:"min_name_words" mapstructure:"min_name_words"`
	MaxNameWords   int      `yaml:"max_name_words" mapstructure:"max_name_words"`
	Denylist       []string `yaml:"denylist" mapstructure:"denylist"`
	StructuredData bool     `yaml:"structured_data" mapstructure:"structured_data"`
	PatternsFile   string   `yaml:"patterns_file" mapstructure:"patterns_file"`
}

// StoreConfig configures run history and the page cache. An empty Path
// disables both.
type StoreConfig struct {
	Path          string `yaml:"path" mapstructure:"path"`
	CacheTTLHours int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// CacheTTL returns the page cache lifetime.
func (c StoreConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// OutputConfig configures the results artifact.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultPaths is the fallback path list tried after the home page.
var DefaultPaths = []string{
	"/about",
	"/founders",
	"/team",
	"/about-us",
	"/our-story",
	"/company",
	"/leadership",
}

// DefaultUserAgent identifies the fetcher in both render modes.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FOUNDERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.max_body_bytes", 5*1024*1024)
	v.SetDefault("browser.enabled", true)
	v.SetDefault("browser.settle_ms", 5000)
	v.SetDefault("browser.scroll_ms", 2000)
	v.SetDefault("browser.final_ms", 1000)
	v.SetDefault("browser.timeout_secs", 60)
	v.SetDefault("strategy.paths", DefaultPaths)
	v.SetDefault("strategy.delay_ms", 1000)
	v.SetDefault("extract.min_name_words", 2)
	v.SetDefault("extract.max_name_words", 4)
	v.SetDefault("extract.structured_data", true)
	v.SetDefault("output.format", "json")

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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "csv":
	default:
		return eris.Errorf("config: unsupported output format %q", c.Output.Format)
	}
	if c.Extract.MaxNameWords > 0 && c.Extract.MinNameWords > c.Extract.MaxNameWords {
		return eris.Errorf("config: extract.min_name_words (%d) exceeds max_name_words (%d)",
			c.Extract.MinNameWords, c.Extract.MaxNameWords)
	}
	if c.Fetch.TimeoutSecs <= 0 {
		return eris.New("config: fetch.timeout_secs must be positive")
	}
	return nil
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
