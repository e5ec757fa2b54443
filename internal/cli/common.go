package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// run provides the runtime context to a command's execution function and
// closes it afterwards. Structured formats also report a failure on stdout.
func run(cmd *cobra.Command, fn func(ctx context.Context, rc *runtime.Context) error) (err error) {
	rc, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(context.WithoutCancel(cmd.Context())); err == nil {
			err = closeErr
		}
	}()

	err = fn(cmd.Context(), rc)
	if err != nil && rc.Printer.IsStructured() {
		rc.Printer.Error(err)
	}
	return err
}

// repoQuery runs a read against the repository enclosing the working directory,
// through the non-blocking handle when git.async is set.
func repoQuery[T any](
	ctx context.Context,
	rc *runtime.Context,
	blocking func(*git.Repository) (T, error),
	async func(*git.AsyncRepository) *git.Future[T],
) (T, error) {
	var zero T
	if rc.Config.Git.Async {
		repo, err := rc.AsyncRepository()
		if err != nil {
			return zero, err
		}
		rc.Splog.Debug("awaiting asynchronous result")
		return async(repo).Await(ctx)
	}

	repo, err := rc.Repository()
	if err != nil {
		return zero, err
	}
	return blocking(repo)
}

// completeBranches is a cobra.ValidArgsFunction returning local branch names.
func completeBranches(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	dir, _ := cmd.Root().PersistentFlags().GetString(flagDir)
	repo, err := git.Discover(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := repo.ListBranches(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
