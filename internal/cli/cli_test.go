package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	giterrors "gitpilot.dev/gitpilot/errors"
	"gitpilot.dev/gitpilot/internal/cli"
	"gitpilot.dev/gitpilot/internal/output"
	"gitpilot.dev/gitpilot/testhelpers"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the command tree in dir with an isolated config file.
func execute(t *testing.T, dir string, args ...string) result {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("output:\n  color: never\n"), 0o600))

	root := cli.NewRootCmd("test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"-C", dir, "--config", configFile}, args...))

	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func twoCommitScene(t *testing.T) *testhelpers.Scene {
	t.Helper()
	testhelpers.RequireGit(t)
	return testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if _, err := s.Repo.CreateChangeAndCommit("1", "1"); err != nil {
			return err
		}
		_, err := s.Repo.CreateChangeAndCommit("2", "2")
		return err
	})
}

func TestStatusCommand(t *testing.T) {
	t.Parallel()

	t.Run("json lists untracked files", func(t *testing.T) {
		t.Parallel()
		scene := twoCommitScene(t)
		require.NoError(t, scene.Repo.WriteFile("new.txt", "new"))

		res := execute(t, scene.Dir, "--format", "json", "status")
		require.NoError(t, res.err, res.stderr)

		var status struct {
			Branch string `json:"branch"`
			Files  []struct {
				Path   string `json:"path"`
				Status string `json:"status"`
			} `json:"files"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &status))
		require.Equal(t, "main", status.Branch)
		require.Len(t, status.Files, 1)
		require.Equal(t, "new.txt", status.Files[0].Path)
		require.Equal(t, "untracked", status.Files[0].Status)
	})

	t.Run("async yaml on a clean tree", func(t *testing.T) {
		t.Parallel()
		scene := twoCommitScene(t)

		res := execute(t, scene.Dir, "--async", "--format", "yaml", "status")
		require.NoError(t, res.err, res.stderr)
		require.Contains(t, res.stdout, "branch: main")
		require.Contains(t, res.stdout, "merging: false")
	})

	t.Run("text on a clean tree", func(t *testing.T) {
		t.Parallel()
		scene := twoCommitScene(t)

		res := execute(t, scene.Dir, "st")
		require.NoError(t, res.err, res.stderr)
		require.Contains(t, res.stdout, "On branch main")
		require.Contains(t, res.stdout, "nothing to commit, working tree clean")
	})

	t.Run("outside a repository", func(t *testing.T) {
		t.Parallel()
		res := execute(t, t.TempDir(), "status")
		require.Error(t, res.err)
		require.Equal(t, output.ExitUserError, output.GetExitCode(res.err))
	})
}

func TestCommitCommands(t *testing.T) {
	t.Parallel()
	scene := twoCommitScene(t)
	head, err := scene.Repo.HeadSHA()
	require.NoError(t, err)

	t.Run("show", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "show")
		require.NoError(t, res.err, res.stderr)
		require.Contains(t, res.stdout, "commit "+head)
		require.Contains(t, res.stdout, "Test User <test@example.com>")
		require.Contains(t, res.stdout, "    2")
	})

	t.Run("show an older ref", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "show", "HEAD~1")
		require.NoError(t, res.err, res.stderr)

		var commit map[string]any
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &commit))
		require.Equal(t, "1", commit["message"])
	})

	t.Run("log with a limit", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "log", "-n", "1")
		require.NoError(t, res.err, res.stderr)

		var commits []map[string]any
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &commits))
		require.Len(t, commits, 1)
		require.Equal(t, head, commits[0]["hash"])
	})

	t.Run("log rejects a negative limit", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "log", "-n", "-1")
		require.Error(t, res.err)
		require.Equal(t, output.ExitUserError, output.GetExitCode(res.err))
		require.Contains(t, res.stdout, "--max-count must not be negative")
	})

	t.Run("hash", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "hash")
		require.NoError(t, res.err, res.stderr)
		require.Equal(t, head+"\n", res.stdout)

		res = execute(t, scene.Dir, "--async", "hash", "--short")
		require.NoError(t, res.err, res.stderr)
		short := strings.TrimSpace(res.stdout)
		require.GreaterOrEqual(t, len(short), 7)
		require.True(t, strings.HasPrefix(head, short))
	})

	t.Run("unknown ref", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "show", "no-such-ref")
		require.ErrorIs(t, res.err, giterrors.ErrCommandFailed)
		require.Contains(t, res.stdout, `"kind": "command-failed"`)
	})
}

func TestRefCommands(t *testing.T) {
	t.Parallel()
	scene := twoCommitScene(t)
	require.NoError(t, scene.Repo.CreateBranch("topic"))
	require.NoError(t, scene.Repo.CreateTag("v1.0.0"))

	t.Run("branches", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "branches")
		require.NoError(t, res.err, res.stderr)

		var branches []struct {
			Name   string `json:"name"`
			IsHead bool   `json:"is_head"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &branches))
		require.Len(t, branches, 2)
		require.Equal(t, "main", branches[0].Name)
		require.True(t, branches[0].IsHead)
		require.Equal(t, "topic", branches[1].Name)
		require.False(t, branches[1].IsHead)
	})

	t.Run("tags", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "yaml", "tags")
		require.NoError(t, res.err, res.stderr)
		require.Contains(t, res.stdout, "name: v1.0.0")
		require.Contains(t, res.stdout, "annotated: false")
	})

	t.Run("no remotes", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "remotes")
		require.NoError(t, res.err, res.stderr)
		require.Equal(t, "[]\n", res.stdout)
	})

	t.Run("remote url with an invalid name", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "remote-url", "bad..name")
		require.ErrorIs(t, res.err, giterrors.ErrInvalidFormat)
		require.Equal(t, output.ExitUserError, output.GetExitCode(res.err))
		require.Contains(t, res.stdout, `"kind": "invalid-format"`)
	})

	t.Run("empty stash list", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "stashes")
		require.NoError(t, res.err, res.stderr)
		require.Equal(t, "[]\n", res.stdout)
	})

	t.Run("worktrees", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "worktrees")
		require.NoError(t, res.err, res.stderr)
		require.Contains(t, res.stdout, `"is_main": true`)
	})
}

func TestDiffCommand(t *testing.T) {
	t.Parallel()
	scene := twoCommitScene(t)
	require.NoError(t, scene.Repo.WriteFile("1_test.txt", "one\ntwo\n"))
	require.NoError(t, scene.Repo.CreateChange("staged", "staged", false))

	t.Run("working tree", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "diff")
		require.NoError(t, res.err, res.stderr)

		var summary struct {
			Files []struct {
				Path    string `json:"path"`
				Added   int    `json:"added"`
				Removed int    `json:"removed"`
			} `json:"files"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &summary))
		require.Len(t, summary.Files, 1)
		require.Equal(t, "1_test.txt", summary.Files[0].Path)
		require.Equal(t, 2, summary.Files[0].Added)
		require.Equal(t, 1, summary.Files[0].Removed)
	})

	t.Run("cached", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "diff", "--cached")
		require.NoError(t, res.err, res.stderr)
		require.Contains(t, res.stdout, `"path": "staged_test.txt"`)
		require.NotContains(t, res.stdout, "1_test.txt")
	})

	t.Run("revisions and paths", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "diff", "HEAD~1", "HEAD", "--", "2_test.txt")
		require.NoError(t, res.err, res.stderr)
		require.Contains(t, res.stdout, `"path": "2_test.txt"`)
		require.NotContains(t, res.stdout, "1_test.txt")
	})
}

func TestExecCommand(t *testing.T) {
	t.Parallel()
	scene := twoCommitScene(t)

	t.Run("prints output lines", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "exec", "--", "rev-list", "--count", "HEAD")
		require.NoError(t, res.err, res.stderr)
		require.Equal(t, "2\n", res.stdout)
	})

	t.Run("json wraps lines", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--format", "json", "exec", "--", "ls-files")
		require.NoError(t, res.err, res.stderr)

		var out map[string][]string
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
		require.Equal(t, []string{"1_test.txt", "2_test.txt"}, out["lines"])
	})

	t.Run("git failure", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "exec", "--", "no-such-subcommand")
		require.ErrorIs(t, res.err, giterrors.ErrCommandFailed)
	})

	t.Run("missing executable is a system error", func(t *testing.T) {
		t.Parallel()
		res := execute(t, scene.Dir, "--git", "gitpilot-no-such-executable", "exec", "--", "status")
		require.ErrorIs(t, res.err, giterrors.ErrExecutableNotFound)
		require.Equal(t, output.ExitSystemError, output.GetExitCode(res.err))
	})
}

func TestPassthroughArgs(t *testing.T) {
	t.Parallel()
	root := cli.NewRootCmd("test")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "empty", args: nil, want: nil},
		{name: "allowlisted git command", args: []string{"rev-parse", "HEAD"}, want: []string{"exec", "--", "rev-parse", "HEAD"}},
		{name: "gitpilot command", args: []string{"status"}, want: []string{"status"}},
		{name: "not allowlisted", args: []string{"push", "--force"}, want: []string{"push", "--force"}},
		{name: "flag first", args: []string{"--format", "json"}, want: []string{"--format", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, cli.PassthroughArgs(root, tt.args))
		})
	}
}

func TestSetupCommands(t *testing.T) {
	t.Parallel()
	testhelpers.RequireGit(t)

	t.Run("init relative to -C", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		res := execute(t, base, "init", "fresh")
		require.NoError(t, res.err, res.stderr)
		require.Equal(t, filepath.Join(base, "fresh")+"\n", res.stdout)
		require.DirExists(t, filepath.Join(base, "fresh", ".git"))
	})

	t.Run("async init", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		res := execute(t, base, "--async", "init", "fresh")
		require.NoError(t, res.err, res.stderr)
		require.DirExists(t, filepath.Join(base, "fresh", ".git"))
	})

	t.Run("clone rejects a bare path", func(t *testing.T) {
		t.Parallel()
		res := execute(t, t.TempDir(), "clone", "/srv/repo.git", "copy")
		require.ErrorIs(t, res.err, giterrors.ErrInvalidFormat)
	})
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	t.Run("effective config", func(t *testing.T) {
		t.Parallel()
		res := execute(t, t.TempDir(), "--format", "json", "--async", "config")
		require.NoError(t, res.err, res.stderr)

		var cfg struct {
			Git struct {
				Executable string `json:"executable"`
				Async      bool   `json:"async"`
			} `json:"git"`
			Output struct {
				Format string `json:"format"`
				Color  string `json:"color"`
			} `json:"output"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &cfg))
		require.Equal(t, "git", cfg.Git.Executable)
		require.True(t, cfg.Git.Async)
		require.Equal(t, "json", cfg.Output.Format)
		require.Equal(t, "never", cfg.Output.Color)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		res := execute(t, t.TempDir(), "config")
		require.NoError(t, res.err, res.stderr)
		require.Contains(t, res.stdout, "output.format: text")
		require.Contains(t, res.stdout, "git.executable: git")
	})

	t.Run("unusable log file is a system error", func(t *testing.T) {
		t.Parallel()
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))

		res := execute(t, t.TempDir(), "--log-file", filepath.Join(blocker, "logs", "gitpilot.log"), "config")
		require.Error(t, res.err)
		require.Equal(t, output.ExitSystemError, output.GetExitCode(res.err))
		require.Contains(t, res.err.Error(), "failed to create log directory")
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()
		res := execute(t, t.TempDir(), "--format", "xml", "config")
		require.Error(t, res.err)
		require.Contains(t, res.err.Error(), "invalid output format")
	})
}

func TestTraceFlag(t *testing.T) {
	t.Parallel()
	scene := twoCommitScene(t)

	res := execute(t, scene.Dir, "--trace", "hash")
	require.NoError(t, res.err, res.stderr)
	require.Contains(t, res.stderr, `"Name": "git rev-parse"`)
	require.Contains(t, res.stderr, "git.exit_code")
}
