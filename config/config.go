package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/webcli/internal/util"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by [LoadConfigOverrideEnv]
const EnvPrefix = "WEBCLI"

// CLI style log verbosity levels accepted by [ConfigOverride.LogLvl]
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	DefaultUser     = "user"
	DefaultHostname = "webcli"
	DefaultHome     = "/home/user"
	DefaultTheme    = "matrix"

	DefaultAddr        = "127.0.0.1:8080"
	DefaultRateLimit   = 20.0
	DefaultRateBurst   = 40
	DefaultMaxSessions = 256
	DefaultMetrics     = true

	DefaultFsName = "webcli"
	DefaultName   = "webcli"

	// DefaultAttrTimeout is the attribute cache timeout in seconds
	DefaultAttrTimeout = 1.0

	// DefaultEntryTimeout is the directory entry cache timeout in seconds
	DefaultEntryTimeout = 1.0
)

// DefaultAllowedOrigins is the CORS allow list used when none is configured
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Config contains runtime configuration values for the shell and its surfaces.
type Config struct {
	MountOptions
	ShellOptions
	ServerOptions

	LogLvl  util.LogLevel // Internal log level derived from CLI verbosity (Default Info)
	LogFile string        // Optional rotating log file; empty logs to stderr only

	AttrTimeout  float64 // FUSE attribute cache timeout in seconds (Default 1.0)
	EntryTimeout float64 // FUSE directory entry cache timeout in seconds (Default 1.0)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	LogLvl  *int    `yaml:"log_level,omitempty" json:"log_level,omitempty" toml:"log_level,omitempty" split_words:"true"` // CLI verbosity 1 (error) - 5 (trace)
	LogFile *string `yaml:"log_file,omitempty" json:"log_file,omitempty" toml:"log_file,omitempty" split_words:"true"`

	User     *string `yaml:"user,omitempty" json:"user,omitempty" toml:"user,omitempty" split_words:"true"`
	Hostname *string `yaml:"hostname,omitempty" json:"hostname,omitempty" toml:"hostname,omitempty" split_words:"true"`
	Home     *string `yaml:"home,omitempty" json:"home,omitempty" toml:"home,omitempty" split_words:"true"`
	Theme    *string `yaml:"theme,omitempty" json:"theme,omitempty" toml:"theme,omitempty" split_words:"true"`
	SeedFile *string `yaml:"seed_file,omitempty" json:"seed_file,omitempty" toml:"seed_file,omitempty" split_words:"true"`

	Addr           *string   `yaml:"addr,omitempty" json:"addr,omitempty" toml:"addr,omitempty" split_words:"true"`
	AllowedOrigins *[]string `yaml:"allowed_origins,omitempty" json:"allowed_origins,omitempty" toml:"allowed_origins,omitempty" split_words:"true"`
	RateLimit      *float64  `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty" toml:"rate_limit,omitempty" split_words:"true"`
	RateBurst      *int      `yaml:"rate_burst,omitempty" json:"rate_burst,omitempty" toml:"rate_burst,omitempty" split_words:"true"`
	MaxSessions    *int      `yaml:"max_sessions,omitempty" json:"max_sessions,omitempty" toml:"max_sessions,omitempty" split_words:"true"`
	Metrics        *bool     `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty" split_words:"true"`

	Debug  *bool   `yaml:"debug,omitempty" json:"debug,omitempty" toml:"debug,omitempty" split_words:"true"`
	FsName *string `yaml:"fs_name,omitempty" json:"fs_name,omitempty" toml:"fs_name,omitempty" split_words:"true"`
	Name   *string `yaml:"name,omitempty" json:"name,omitempty" toml:"name,omitempty" split_words:"true"`

	AttrTimeout  *float64 `yaml:"attr_timeout,omitempty" json:"attr_timeout,omitempty" toml:"attr_timeout,omitempty" split_words:"true"`
	EntryTimeout *float64 `yaml:"entry_timeout,omitempty" json:"entry_timeout,omitempty" toml:"entry_timeout,omitempty" split_words:"true"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		ShellOptions: ShellOptions{
			User:     DefaultUser,
			Hostname: DefaultHostname,
			Home:     DefaultHome,
			Theme:    DefaultTheme,
		},
		ServerOptions: ServerOptions{
			Addr:           DefaultAddr,
			AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
			RateLimit:      DefaultRateLimit,
			RateBurst:      DefaultRateBurst,
			MaxSessions:    DefaultMaxSessions,
			Metrics:        DefaultMetrics,
		},
		LogLvl:       DefaultLogLvl,
		AttrTimeout:  DefaultAttrTimeout,
		EntryTimeout: DefaultEntryTimeout,
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override returns the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerbosityToLogLevel(*override.LogLvl)
	}
	if override.LogFile != nil {
		c.LogFile = *override.LogFile
	}
	if override.User != nil {
		c.User = *override.User
	}
	if override.Hostname != nil {
		c.Hostname = *override.Hostname
	}
	if override.Home != nil {
		c.Home = *override.Home
	}
	if override.Theme != nil {
		c.Theme = *override.Theme
	}
	if override.SeedFile != nil {
		c.SeedFile = *override.SeedFile
	}
	if override.Addr != nil {
		c.Addr = *override.Addr
	}
	if override.AllowedOrigins != nil {
		c.AllowedOrigins = append([]string(nil), (*override.AllowedOrigins)...)
	}
	if override.RateLimit != nil {
		c.RateLimit = *override.RateLimit
	}
	if override.RateBurst != nil {
		c.RateBurst = *override.RateBurst
	}
	if override.MaxSessions != nil {
		c.MaxSessions = *override.MaxSessions
	}
	if override.Metrics != nil {
		c.Metrics = *override.Metrics
	}
	if override.Debug != nil {
		c.Debug = *override.Debug
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
	if override.AttrTimeout != nil {
		c.AttrTimeout = *override.AttrTimeout
	}
	if override.EntryTimeout != nil {
		c.EntryTimeout = *override.EntryTimeout
	}
}

// VerbosityToLogLevel clamps a CLI verbosity to 1..5 and maps it to the
// internal log level (1 = error ... 5 = trace)
func VerbosityToLogLevel(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(TraceVerbose, verbose))
	lvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return lvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports YAML (.yaml, .yml), JSON (.json) and TOML (.toml) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// LoadConfigOverrideEnv reads WEBCLI_* environment variables (e.g. WEBCLI_RATE_BURST) into an
// override.
// Unset variables leave their fields nil.
func LoadConfigOverrideEnv() (*ConfigOverride, error) {
	var override ConfigOverride
	if err := envconfig.Process(EnvPrefix, &override); err != nil {
		return nil, fmt.Errorf("failed to read config env: %w", err)
	}
	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}

// Load builds the runtime Config: defaults, then the optional file, then the
// environment. Later sources win.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		override, err := LoadConfigOverrideFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(override)
	}
	envOverride, err := LoadConfigOverrideEnv()
	if err != nil {
		return nil, err
	}
	cfg.Merge(envOverride)
	return cfg, nil
}
