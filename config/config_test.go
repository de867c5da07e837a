package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/webcli/internal/util"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestNewConfig_WithNilOverride tests that NewConfig creates a config with all default values
// when no override is provided.
func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values when no config provided")
}

// TestNewConfig_WithAllOverride tests that NewConfig properly applies overrides while
// preserving defaults for unset fields.
func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	override := createOverride()
	// hack for bad log verbosity vs internal log level pattern
	override.LogLvl = util.Pointer(TraceVerbose)
	cfg := NewConfig(override)

	expCfg := &Config{
		MountOptions: MountOptions{
			Debug:  true,
			FsName: "test_fs",
			Name:   "test_name",
		},
		ShellOptions: ShellOptions{
			User:     "neo",
			Hostname: "nebuchadnezzar",
			Home:     "/home/neo",
			Theme:    "retro",
			SeedFile: "seed.yaml",
		},
		ServerOptions: ServerOptions{
			Addr:           ":9999",
			AllowedOrigins: []string{"https://example.com"},
			RateLimit:      DefaultRateLimit + 1,
			RateBurst:      DefaultRateBurst + 1,
			MaxSessions:    DefaultMaxSessions + 1,
			Metrics:        !DefaultMetrics,
		},
		LogLvl:       util.TraceLevel,
		LogFile:      "webcli.log",
		AttrTimeout:  *override.AttrTimeout,
		EntryTimeout: *override.EntryTimeout,
	}
	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields")
}

func TestConfig_Merge_LogLvlConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verboseValue  int
		expectedLevel util.LogLevel
	}{
		{"verbose_1_error", 1, util.ErrorLevel},
		{"verbose_2_warn", 2, util.WarnLevel},
		{"verbose_3_info", 3, util.InfoLevel},
		{"verbose_4_debug", 4, util.DebugLevel},
		{"verbose_5_trace", 5, util.TraceLevel},
		{"verbose_0_clamped_to_1", 0, util.ErrorLevel},     // clamped to 1
		{"verbose_100_clamped_to_5", 100, util.TraceLevel}, // clamped to 5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override := &ConfigOverride{
				LogLvl: &tt.verboseValue,
			}

			cfg := NewConfig(override)

			assert.Equal(t, tt.expectedLevel, cfg.LogLvl,
				"CLI verbose %d should map to util.LogLevel %v", tt.verboseValue, tt.expectedLevel)
		})
	}
}

func TestConfig_Merge_NilOverrideVals(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{}

	cfg := NewConfig(override)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values for nil override fields")
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{
		FsName: util.Pointer("test_fs"),
		Theme:  util.Pointer("ocean"),
	}
	cfg := NewConfig(override)

	expCfg := createDefaultCfg()
	expCfg.FsName = "test_fs"
	expCfg.Theme = "ocean"

	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields and leave rest default")
}

func TestConfig_Merge_OriginsAreCopied(t *testing.T) {
	t.Parallel()

	origins := []string{"https://a.example"}
	cfg := NewConfig(&ConfigOverride{AllowedOrigins: &origins})
	origins[0] = "https://mutated.example"

	assert.Equal(t, []string{"https://a.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigOverrideFile_Valid(t *testing.T) {
	t.Parallel()

	type tc struct {
		ext   string
		build func() (*ConfigOverride, []byte)
	}

	cases := []tc{
		{
			ext: ".yaml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := yaml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".yml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := yaml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".json",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := json.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".toml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := toml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
	}

	for _, c := range cases {
		name := "valid" + c.ext
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			override, data := c.build()
			dir := t.TempDir()
			path := filepath.Join(dir, "override"+c.ext)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			loaded, err := LoadConfigOverrideFile(path)

			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, *override, *loaded)
		})
	}
}

// TestLoadConfigOverrideFile_NonExistentFile tests error handling
// when trying to load a file that doesn't exist.
func TestLoadConfigOverrideFile_NonExistentFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does_not_exist.yaml")

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
}

// TestLoadConfigOverrideFile_UnsupportedExtension tests error handling
// for file extensions that aren't supported (.txt, .xml, etc).
func TestLoadConfigOverrideFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.txt")
	require.NoError(t, os.WriteFile(path, []byte("theme: retro"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config file extension")
}

func TestLoadConfigOverrideFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config file")
}

// TestNewConfigFromFile_FileError tests that file loading errors
// are properly propagated by the convenience function.
func TestNewConfigFromFile_FileError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := NewConfigFromFile(path)
	require.Error(t, err)
}

// Env tests mutate process state so they do not run in parallel.
func TestLoadConfigOverrideEnv(t *testing.T) {
	t.Setenv("WEBCLI_THEME", "cyberpunk")
	t.Setenv("WEBCLI_RATE_BURST", "7")
	t.Setenv("WEBCLI_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	override, err := LoadConfigOverrideEnv()
	require.NoError(t, err)

	require.NotNil(t, override.Theme)
	assert.Equal(t, "cyberpunk", *override.Theme)
	require.NotNil(t, override.RateBurst)
	assert.Equal(t, 7, *override.RateBurst)
	require.NotNil(t, override.AllowedOrigins)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, *override.AllowedOrigins)
	assert.Nil(t, override.Home, "unset variables must stay nil")
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webcli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: ocean\nhostname: filehost\n"), 0o600))
	t.Setenv("WEBCLI_THEME", "retro")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "retro", cfg.Theme)
	assert.Equal(t, "filehost", cfg.Hostname)
}

func createDefaultCfg() *Config {
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
			AllowedOrigins: DefaultAllowedOrigins,
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

// createOverride makes a ConfigOverride with all non-default values
func createOverride() *ConfigOverride {
	testLogVerbose := TraceVerbose
	if DefaultLogLvl == util.TraceLevel {
		testLogVerbose = DebugVerbose
	}
	return &ConfigOverride{
		LogLvl:         util.Pointer(testLogVerbose),
		LogFile:        util.Pointer("webcli.log"),
		User:           util.Pointer("neo"),
		Hostname:       util.Pointer("nebuchadnezzar"),
		Home:           util.Pointer("/home/neo"),
		Theme:          util.Pointer("retro"),
		SeedFile:       util.Pointer("seed.yaml"),
		Addr:           util.Pointer(":9999"),
		AllowedOrigins: util.Pointer([]string{"https://example.com"}),
		RateLimit:      util.Pointer(DefaultRateLimit + 1),
		RateBurst:      util.Pointer(DefaultRateBurst + 1),
		MaxSessions:    util.Pointer(DefaultMaxSessions + 1),
		Metrics:        util.Pointer(!DefaultMetrics),
		Debug:          util.Pointer(true),
		FsName:         util.Pointer("test_fs"),
		Name:           util.Pointer("test_name"),
		AttrTimeout:    util.Pointer(float64(DefaultAttrTimeout + 1)),
		EntryTimeout:   util.Pointer(float64(DefaultEntryTimeout + 1)),
	}
}
