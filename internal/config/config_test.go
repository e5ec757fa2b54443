package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, &Config{
		Git:    GitConfig{Executable: "git"},
		Output: OutputConfig{Format: FormatText, Color: ColorAuto},
	}, cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeConfig(t, `
git:
  executable: /usr/local/bin/git
  async: true
log:
  debug: true
output:
  format: JSON
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	require.Equal(t, "/usr/local/bin/git", cfg.Git.Executable)
	require.True(t, cfg.Git.Async)
	require.True(t, cfg.Log.Debug)
	require.Equal(t, FormatJSON, cfg.Output.Format)
	require.Equal(t, ColorAuto, cfg.Output.Color)
}

func TestLoadFromConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "gitpilot"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "gitpilot", "config.yaml"), []byte("output:\n  color: never\n"), 0o600))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, ColorNever, cfg.Output.Color)
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeConfig(t, "output:\n  format: yaml\nlog:\n  file: /tmp/from-file.log\n")

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("GITPILOT_OUTPUT_FORMAT", "json")
		cfg, err := Load(New(), path)
		require.NoError(t, err)
		require.Equal(t, FormatJSON, cfg.Output.Format)
		require.Equal(t, "/tmp/from-file.log", cfg.Log.File)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("GITPILOT_OUTPUT_FORMAT", "json")
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("format", "text", "")
		require.NoError(t, flags.Parse([]string{"--format", "text"}))

		v := New()
		require.NoError(t, v.BindPFlag(KeyOutputFormat, flags.Lookup("format")))
		cfg, err := Load(v, path)
		require.NoError(t, err)
		require.Equal(t, FormatText, cfg.Output.Format)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "bad format", content: "output:\n  format: xml\n", errText: `invalid output format "xml"`},
		{name: "bad color", content: "output:\n  color: sometimes\n", errText: `invalid color mode "sometimes"`},
		{name: "empty executable", content: "git:\n  executable: \"\"\n", errText: "git executable must not be empty"},
		{name: "malformed yaml", content: "output: [\n", errText: "failed to read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(), writeConfig(t, tt.content))
			require.ErrorContains(t, err, tt.errText)
		})
	}

	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorContains(t, err, "failed to read config")
	})
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	require.Equal(t, filepath.Join("/xdg", "gitpilot"), Dir())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")
	require.Equal(t, filepath.Join("/home/tester", ".config", "gitpilot"), Dir())
}
