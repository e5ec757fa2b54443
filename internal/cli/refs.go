package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/types"
)

// newBranchesCmd creates the branches command
func newBranchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "branches",
		Aliases: []string{"br"},
		Short:   "List local branches with their commits and upstreams",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				branches, err := repoQuery(ctx, rc,
					func(r *git.Repository) ([]git.Branch, error) { return r.ListBranchesInfo(ctx) },
					func(r *git.AsyncRepository) *git.Future[[]git.Branch] { return r.ListBranchesInfo(ctx) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Branches(branches)
			})
		},
	}
}

// newRemotesCmd creates the remotes command
func newRemotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remotes",
		Short: "List configured remotes and their URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				remotes, err := repoQuery(ctx, rc,
					func(r *git.Repository) ([]git.Remote, error) { return r.ListRemoteInfo(ctx) },
					func(r *git.AsyncRepository) *git.Future[[]git.Remote] { return r.ListRemoteInfo(ctx) },
				)
				if err != nil {
					return err
				}
				if len(remotes) == 0 {
					rc.Splog.Tip("add one with: gitpilot exec -- remote add origin <url>")
				}
				return rc.Printer.Remotes(remotes)
			})
		},
	}
}

// newRemoteURLCmd creates the remote-url command
func newRemoteURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remote-url <name>",
		Short: "Print the validated fetch URL of a remote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				name, err := types.ParseRemoteName(args[0])
				if err != nil {
					return err
				}
				url, err := repoQuery(ctx, rc,
					func(r *git.Repository) (types.RemoteURL, error) { return r.ShowRemoteURI(ctx, name) },
					func(r *git.AsyncRepository) *git.Future[types.RemoteURL] { return r.ShowRemoteURI(ctx, name) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Value("url", url.String())
			})
		},
	}
}

// newTagsCmd creates the tags command
func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with their target commits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				tags, err := repoQuery(ctx, rc,
					func(r *git.Repository) ([]git.TagInfo, error) { return r.ListTags(ctx) },
					func(r *git.AsyncRepository) *git.Future[[]git.TagInfo] { return r.ListTags(ctx) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Tags(tags)
			})
		},
	}
}

// newStashesCmd creates the stashes command
func newStashesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stashes",
		Short: "List stash entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				entries, err := repoQuery(ctx, rc,
					func(r *git.Repository) ([]git.StashEntry, error) { return r.ListStashes(ctx) },
					func(r *git.AsyncRepository) *git.Future[[]git.StashEntry] { return r.ListStashes(ctx) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Stashes(entries)
			})
		},
	}
}

// newWorktreesCmd creates the worktrees command
func newWorktreesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worktrees",
		Short: "List linked worktrees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				worktrees, err := repoQuery(ctx, rc,
					func(r *git.Repository) ([]git.Worktree, error) { return r.ListWorktrees(ctx) },
					func(r *git.AsyncRepository) *git.Future[[]git.Worktree] { return r.ListWorktrees(ctx) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Worktrees(worktrees)
			})
		},
	}
}
