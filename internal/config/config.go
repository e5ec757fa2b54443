package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Keys understood by the loader. Environment variables use the upper-cased
// key with dots replaced by underscores, e.g. GITPILOT_OUTPUT_FORMAT.
const (
	KeyGitExecutable = "git.executable"
	KeyGitAsync      = "git.async"
	KeyLogFile       = "log.file"
	KeyLogDebug      = "log.debug"
	KeyOutputFormat  = "output.format"
	KeyOutputColor   = "output.color"
	KeyTrace         = "trace"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GITPILOT"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	validFormats = []string{FormatText, FormatJSON, FormatYAML}
	validColors  = []string{ColorAuto, ColorAlways, ColorNever}
)

// Config holds all configuration options for gitpilot.
type Config struct {
	Git    GitConfig    `mapstructure:"git" json:"git" yaml:"git"`
	Log    LogConfig    `mapstructure:"log" json:"log" yaml:"log"`
	Output OutputConfig `mapstructure:"output" json:"output" yaml:"output"`
	// Trace prints an OpenTelemetry span for every git invocation to stderr.
	Trace bool `mapstructure:"trace" json:"trace" yaml:"trace"`
}

// GitConfig selects the git executable and how it is driven.
type GitConfig struct {
	// Executable is a name looked up on PATH or an absolute path.
	Executable string `mapstructure:"executable" json:"executable" yaml:"executable"`
	// Async runs commands through the non-blocking repository handle.
	Async bool `mapstructure:"async" json:"async" yaml:"async"`
}

// LogConfig controls console verbosity and the optional log file.
type LogConfig struct {
	File  string `mapstructure:"file" json:"file,omitempty" yaml:"file,omitempty"`
	Debug bool   `mapstructure:"debug" json:"debug" yaml:"debug"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	// Format is one of "text", "json" or "yaml".
	Format string `mapstructure:"format" json:"format" yaml:"format"`
	// Color is one of "auto", "always" or "never".
	Color string `mapstructure:"color" json:"color" yaml:"color"`
}

// Dir returns the gitpilot configuration directory, honouring XDG_CONFIG_HOME.
// It returns "" when no home directory can be determined.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitpilot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gitpilot")
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyGitExecutable, "git")
	v.SetDefault(KeyGitAsync, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogDebug, false)
	v.SetDefault(KeyOutputFormat, FormatText)
	v.SetDefault(KeyOutputColor, ColorAuto)
	v.SetDefault(KeyTrace, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile, or config.yaml from Dir() when configFile is empty,
// and returns the merged configuration. A missing default file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Output.Color = strings.ToLower(cfg.Output.Color)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}
	if !slices.Contains(validColors, c.Output.Color) {
		return fmt.Errorf("invalid color mode %q (want one of %s)", c.Output.Color, strings.Join(validColors, ", "))
	}
	if c.Git.Executable == "" {
		return errors.New("git executable must not be empty")
	}
	return nil
}
