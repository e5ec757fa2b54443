package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const textFileName = "test.txt"

// GitRepo is a throwaway repository built with go-git so fixtures do not
// depend on the git binary under test.
type GitRepo struct {
	Dir  string
	repo *gogit.Repository
	when time.Time
}

// NewGitRepo initializes a repository in dir with main as the default branch
// and a local committer identity.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName("main"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	if err := repo.SetConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to write repo config: %w", err)
	}

	return &GitRepo{
		Dir:  dir,
		repo: repo,
		when: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

// WriteFile writes content to a path relative to the repository root.
func (r *GitRepo) WriteFile(name, content string) error {
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// CreateChange writes textValue to <prefix>_test.txt and stages it unless unstaged is set.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	if err := r.WriteFile(fileName, textValue); err != nil {
		return err
	}
	if unstaged {
		return nil
	}
	return r.Stage(fileName)
}

// Stage adds a path to the index.
func (r *GitRepo) Stage(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := wt.Add(name); err != nil {
		return fmt.Errorf("failed to stage %s: %w", name, err)
	}
	return nil
}

// CreateChangeAndCommit creates a file change and commits it, returning the commit hash.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) (string, error) {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return "", err
	}
	return r.Commit(textValue)
}

// Commit commits the index with a fixed author and a clock that advances one minute per commit.
func (r *GitRepo) Commit(message string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	r.when = r.when.Add(time.Minute)
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  r.when,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

// CreateBranch creates a branch at HEAD without checking it out.
func (r *GitRepo) CreateBranch(name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// CreateAndCheckoutBranch creates a branch at HEAD and checks it out.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.checkout(name, true)
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.checkout(name, false)
}

func (r *GitRepo) checkout(name string, create bool) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: create,
	}); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", name, err)
	}
	return nil
}

// CreateTag creates a lightweight tag at HEAD.
func (r *GitRepo) CreateTag(name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewTagReferenceName(name), head.Hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// CreateAnnotatedTag creates an annotated tag at HEAD.
func (r *GitRepo) CreateAnnotatedTag(name, message string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	r.when = r.when.Add(time.Second)
	if _, err := r.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  r.when,
		},
		Message: message,
	}); err != nil {
		return fmt.Errorf("failed to create annotated tag %s: %w", name, err)
	}
	return nil
}

// AddRemote configures a remote without contacting it.
func (r *GitRepo) AddRemote(name, url string) error {
	if _, err := r.repo.CreateRemote(&gogitconfig.RemoteConfig{
		Name: name,
		URLs: []string{url},
	}); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// CreateBareRemote creates a bare repository next to the fixture and adds it
// as remote name. It returns the bare repository's path.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"
	if _, err := gogit.PlainInit(bareDir, true); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}
	if err := r.AddRemote(name, bareDir); err != nil {
		return "", err
	}
	return bareDir, nil
}

// HeadSHA returns the hash HEAD points to.
func (r *GitRepo) HeadSHA() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// LocalBranches returns the short names of all local branches.
func (r *GitRepo) LocalBranches() ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	return names, err
}

// WriteControlFile creates a file under .git, e.g. to fake an in-progress merge.
func (r *GitRepo) WriteControlFile(name, content string) error {
	return r.WriteFile(filepath.Join(".git", name), content)
}

// RunGitCommand runs the git binary for states go-git cannot produce.
// GIT_CONFIG_GLOBAL=/dev/null keeps the user's configuration out of the fixture.
func (r *GitRepo) RunGitCommand(args ...string) error {
	_, err := r.RunGitCommandAndGetOutput(args...)
	return err
}

// RunGitCommandAndGetOutput runs the git binary and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w, output: %s", strings.Join(args, " "), err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}
