package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// Discover walks up from path to the enclosing working tree and returns a handle on its root.
func Discover(path string, opts ...Option) (*Repository, error) {
	root, err := DiscoverRoot(path)
	if err != nil {
		return nil, err
	}
	return New(root, opts...), nil
}

// DiscoverRoot returns the root of the working tree containing path.
func DiscoverRoot(path string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}
