package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/types"
)

// newHashCmd creates the hash command
func newHashCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the commit hash of HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				hash, err := repoQuery(ctx, rc,
					func(r *git.Repository) (types.CommitHash, error) { return r.GetHash(ctx, short) },
					func(r *git.AsyncRepository) *git.Future[types.CommitHash] { return r.GetHash(ctx, short) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Value("hash", hash.String())
			})
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print the abbreviated hash")

	return cmd
}
