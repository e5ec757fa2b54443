package tui

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplogConsole(t *testing.T) {
	t.Run("info without prefixes", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplog(SplogConfig{Writer: &buf})
		require.NoError(t, err)

		splog.Info("hello %s", "world")
		splog.Info("100% literal")
		require.Equal(t, "hello world\n100% literal\n", buf.String())
	})

	t.Run("debug hidden unless enabled", func(t *testing.T) {
		t.Setenv("DEBUG", "")
		var buf bytes.Buffer
		splog, err := NewSplog(SplogConfig{Writer: &buf})
		require.NoError(t, err)

		splog.Debug("secret")
		splog.Logger().Debug("git", "args", []string{"status"})
		require.Empty(t, buf.String())
	})

	t.Run("debug shows attributes", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplog(SplogConfig{Writer: &buf, Debug: true})
		require.NoError(t, err)

		splog.Logger().With("dir", "/repo").Debug("git", "exit_code", 0)
		require.Equal(t, "git dir=/repo exit_code=0\n", buf.String())
	})

	t.Run("quiet suppresses console", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplog(SplogConfig{Writer: &buf})
		require.NoError(t, err)

		splog.SetQuiet(true)
		require.True(t, splog.IsQuiet())
		splog.Warn("ignored")
		require.Empty(t, buf.String())
	})

	t.Run("warn and error prefixes", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplog(SplogConfig{Writer: &buf})
		require.NoError(t, err)

		splog.Warn("careful")
		splog.Error("failed: %d", 2)
		splog.Tip("try again")
		require.Equal(t, "⚠️  careful\n❌ failed: 2\n💡 try again\n", buf.String())
	})
}

func TestSplogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "gitpilot.log")
	var buf bytes.Buffer
	splog, err := NewSplog(SplogConfig{Writer: &buf, LogFile: logFile})
	require.NoError(t, err)

	splog.Logger().Debug("git", slog.Int("exit_code", 128))
	splog.Info("done")
	require.NoError(t, splog.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "level=DEBUG msg=git exit_code=128")
	require.Contains(t, string(content), "level=INFO msg=done")
	require.Equal(t, "done\n", buf.String())
}

func TestCreateLumberjackLogger(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("GITPILOT_LOG_MAX_SIZE", "")
		t.Setenv("GITPILOT_LOG_MAX_BACKUPS", "")
		t.Setenv("GITPILOT_LOG_MAX_AGE", "")
		l := createLumberjackLogger("x.log")
		require.Equal(t, 1, l.MaxSize)
		require.Equal(t, 2, l.MaxBackups)
		require.Equal(t, 30, l.MaxAge)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("GITPILOT_LOG_MAX_SIZE", "10")
		t.Setenv("GITPILOT_LOG_MAX_BACKUPS", "0")
		t.Setenv("GITPILOT_LOG_MAX_AGE", "bogus")
		l := createLumberjackLogger("x.log")
		require.Equal(t, 10, l.MaxSize)
		require.Equal(t, 0, l.MaxBackups)
		require.Equal(t, 30, l.MaxAge)
	})
}

func TestDefaultLogFilePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	require.Equal(t, filepath.Join("/home/tester", ".gitpilot", "logs", "gitpilot.log"), DefaultLogFilePath())
}
