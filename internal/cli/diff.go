package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newDiffCmd creates the diff command
func newDiffCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "diff [rev...] [-- path...]",
		Short: "Summarize added and removed lines per file",
		Long: `Summarize added and removed lines per file.

Without revisions the working tree is compared with the index; --cached
compares the index with HEAD. Arguments after -- limit the diff to paths.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := git.DiffOptions{Cached: cached, Revisions: args}
			if at := cmd.ArgsLenAtDash(); at >= 0 {
				opts.Revisions, opts.Paths = args[:at], args[at:]
			}
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				summary, err := repoQuery(ctx, rc,
					func(r *git.Repository) (*git.DiffSummary, error) { return r.DiffStat(ctx, opts) },
					func(r *git.AsyncRepository) *git.Future[*git.DiffSummary] { return r.DiffStat(ctx, opts) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Diff(summary)
			})
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Compare the index with HEAD")

	return cmd
}
