package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   "Show the current branch, changed files and any operation in progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				status, err := repoQuery(ctx, rc,
					func(r *git.Repository) (*git.Status, error) { return r.Status(ctx) },
					func(r *git.AsyncRepository) *git.Future[*git.Status] { return r.Status(ctx) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Status(status)
			})
		},
	}
}
