package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/types"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <path>",
		Short: "Create an empty repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				path := resolvePath(rc, args[0])

				var root string
				if rc.Config.Git.Async {
					repo, err := git.InitAsync(ctx, path, rc.GitOptions()...).Await(ctx)
					if err != nil {
						return err
					}
					root = repo.Root()
				} else {
					repo, err := git.Init(ctx, path, rc.GitOptions()...)
					if err != nil {
						return err
					}
					root = repo.Root()
				}

				rc.Splog.Debug("initialized repository at %s", root)
				return rc.Printer.Value("path", root)
			})
		},
	}
}

// newCloneCmd creates the clone command
func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <url> <path>",
		Short: "Clone a remote repository",
		Long: `Clone a remote repository.

The URL must use one of the git, ssh, http or https schemes, or the
user@host:path form, and end in .git.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				url, err := types.ParseRemoteURL(args[0])
				if err != nil {
					return err
				}
				path := resolvePath(rc, args[1])

				var root string
				if rc.Config.Git.Async {
					repo, err := git.CloneAsync(ctx, url, path, rc.GitOptions()...).Await(ctx)
					if err != nil {
						return err
					}
					root = repo.Root()
				} else {
					repo, err := git.Clone(ctx, url, path, rc.GitOptions()...)
					if err != nil {
						return err
					}
					root = repo.Root()
				}

				rc.Splog.Info("Cloned %s into %s", url, root)
				return rc.Printer.Value("path", root)
			})
		},
	}
}

// resolvePath interprets a relative path against the -C directory.
func resolvePath(rc *runtime.Context, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rc.WorkDir, path)
}
