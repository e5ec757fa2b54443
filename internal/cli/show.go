package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/output"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newShowCmd creates the show command
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show [ref]",
		Short:             "Describe a single commit (HEAD by default)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := firstArg(args)
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				commit, err := repoQuery(ctx, rc,
					func(r *git.Repository) (*git.Commit, error) { return r.GetCommit(ctx, ref) },
					func(r *git.AsyncRepository) *git.Future[*git.Commit] { return r.GetCommit(ctx, ref) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Commit(commit)
			})
		},
	}
}

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:               "log [ref]",
		Short:             "List commits reachable from a ref (HEAD by default)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := firstArg(args)
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if limit < 0 {
					return output.NewUserError("--max-count must not be negative")
				}
				commits, err := repoQuery(ctx, rc,
					func(r *git.Repository) ([]git.Commit, error) { return r.Log(ctx, ref, limit) },
					func(r *git.AsyncRepository) *git.Future[[]git.Commit] { return r.Log(ctx, ref, limit) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Log(commits)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "Limit the number of commits (0 for all)")

	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
