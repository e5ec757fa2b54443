package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	giterrors "gitpilot.dev/gitpilot/errors"
	"gitpilot.dev/gitpilot/types"
)

// Marker files under the control directory that flag an operation in progress.
var (
	mergeHeadMarker      = filepath.Join(".git", "MERGE_HEAD")
	rebaseApplyMarker    = filepath.Join(".git", "rebase-apply")
	rebaseMergeMarker    = filepath.Join(".git", "rebase-merge")
	cherryPickHeadMarker = filepath.Join(".git", "CHERRY_PICK_HEAD")
	nonInteractiveEditor = []string{"-c", "core.editor=true"}
)

// Repository is a handle on a working tree. It holds only a path and an
// invoker, so it is safe to share between goroutines.
type Repository struct {
	root    string
	invoker Invoker
	logger  *slog.Logger
}

// New returns a handle on the working tree at root. The path is not checked;
// an invalid repository surfaces as an error from the first operation.
func New(root string, opts ...Option) *Repository {
	s := newSettings(opts)
	inv := s.invoker
	if inv == nil {
		inv = &ExecInvoker{settings: s}
	}
	return &Repository{root: root, invoker: inv, logger: s.logger}
}

// Init runs git init at path and returns a handle on it.
func Init(ctx context.Context, path string, opts ...Option) (*Repository, error) {
	if !utf8.ValidString(path) {
		return nil, giterrors.NewPathNotUTF8Error(path)
	}
	r := New(path, opts...)
	if _, err := r.invoker.Run(ctx, "", "init", path); err != nil {
		return nil, fmt.Errorf("failed to init repository at %s: %w", path, err)
	}
	return r, nil
}

// Clone runs git clone url path from the current directory and returns a handle on path.
func Clone(ctx context.Context, url types.RemoteURL, path string, opts ...Option) (*Repository, error) {
	if !utf8.ValidString(path) {
		return nil, giterrors.NewPathNotUTF8Error(path)
	}
	r := New(path, opts...)
	if _, err := r.invoker.Run(ctx, "", "clone", url.String(), path); err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return r, nil
}

// Root returns the working tree path the handle was created with.
func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	return r.invoker.Run(ctx, r.root, args...)
}

func (r *Repository) exec(ctx context.Context, args ...string) error {
	_, err := r.run(ctx, args...)
	return err
}

// CreateLocalBranch creates name and checks it out.
func (r *Repository) CreateLocalBranch(ctx context.Context, name types.RefName) error {
	return r.exec(ctx, "checkout", "-b", name.String())
}

// SwitchBranch checks out an existing branch.
func (r *Repository) SwitchBranch(ctx context.Context, name types.RefName) error {
	return r.exec(ctx, "checkout", name.String())
}

// Add stages pathspecs.
func (r *Repository) Add(ctx context.Context, pathspecs ...string) error {
	if err := checkPaths(pathspecs); err != nil {
		return err
	}
	return r.exec(ctx, append([]string{"add"}, pathspecs...)...)
}

// Remove removes pathspecs from the working tree and the index.
func (r *Repository) Remove(ctx context.Context, force bool, pathspecs ...string) error {
	if err := checkPaths(pathspecs); err != nil {
		return err
	}
	args := []string{"rm"}
	if force {
		args = append(args, "-f")
	}
	return r.exec(ctx, append(args, pathspecs...)...)
}

// StageAndCommitAllModified commits every tracked change (git commit -am).
func (r *Repository) StageAndCommitAllModified(ctx context.Context, message string) error {
	return r.exec(ctx, "commit", "-am", message)
}

// CommitStaged commits the index.
func (r *Repository) CommitStaged(ctx context.Context, message string) error {
	return r.exec(ctx, "commit", "-m", message)
}

// Push pushes the current branch to its upstream.
func (r *Repository) Push(ctx context.Context) error {
	return r.exec(ctx, "push")
}

// PushToUpstream pushes branch to remote and records it as the upstream.
func (r *Repository) PushToUpstream(ctx context.Context, remote types.RemoteName, branch types.RefName) error {
	return r.exec(ctx, "push", "-u", remote.String(), branch.String())
}

// AddRemote configures a new remote.
func (r *Repository) AddRemote(ctx context.Context, name types.RemoteName, url types.RemoteURL) error {
	return r.exec(ctx, "remote", "add", name.String(), url.String())
}

// FetchRemote fetches from remote.
func (r *Repository) FetchRemote(ctx context.Context, remote types.RemoteName) error {
	return r.exec(ctx, "fetch", remote.String())
}

// CreateBranchFromStartpoint creates name at startpoint and checks it out.
func (r *Repository) CreateBranchFromStartpoint(ctx context.Context, name types.RefName, startpoint string) error {
	return r.exec(ctx, "checkout", "-b", name.String(), startpoint)
}

// ListBranches returns the names of all local branches.
func (r *Repository) ListBranches(ctx context.Context) ([]types.RefName, error) {
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) ([]types.RefName, error) {
		return parseBranchNames(out, r.logger.Warn), nil
	}, "branch", "--list", "--format=%(refname:short)")
}

// ListBranchesInfo returns every local branch with its commit and upstream.
func (r *Repository) ListBranchesInfo(ctx context.Context) ([]Branch, error) {
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) ([]Branch, error) {
		return parseBranches(out, r.logger.Warn), nil
	}, "branch", "--list", "--format="+BranchFormat)
}

// ListTracked returns the paths of all tracked files.
func (r *Repository) ListTracked(ctx context.Context) ([]string, error) {
	return r.CmdOut(ctx, "ls-files")
}

// ShowRemoteURI returns the configured URL of remote.
func (r *Repository) ShowRemoteURI(ctx context.Context, remote types.RemoteName) (types.RemoteURL, error) {
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) (types.RemoteURL, error) {
		return types.ParseRemoteURL(strings.TrimSpace(out))
	}, "config", "--get", "remote."+remote.String()+".url")
}

// ListRemotes returns the names of the configured remotes.
// It fails with errors.ErrNoRemoteConfigured when there are none.
func (r *Repository) ListRemotes(ctx context.Context) ([]types.RemoteName, error) {
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) ([]types.RemoteName, error) {
		names := parseRemoteNames(out, r.logger.Warn)
		if len(names) == 0 {
			return nil, giterrors.ErrNoRemoteConfigured
		}
		return names, nil
	}, "remote")
}

// ListRemoteInfo returns the configured remotes with their fetch and push URLs.
func (r *Repository) ListRemoteInfo(ctx context.Context) ([]Remote, error) {
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) ([]Remote, error) {
		return parseRemotes(out, r.logger.Warn), nil
	}, "remote", "-v")
}

// GetHash returns the hash of HEAD, abbreviated when short is set.
func (r *Repository) GetHash(ctx context.Context, short bool) (types.CommitHash, error) {
	args := []string{"rev-parse", "HEAD"}
	if short {
		args = []string{"rev-parse", "--short", "HEAD"}
	}
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) (types.CommitHash, error) {
		return types.ParseCommitHash(strings.TrimSpace(out))
	}, args...)
}

// Cmd runs an arbitrary git command and discards its output.
func (r *Repository) Cmd(ctx context.Context, args ...string) error {
	return r.exec(ctx, args...)
}

// CmdOut runs an arbitrary git command and returns its output lines.
func (r *Repository) CmdOut(ctx context.Context, args ...string) ([]string, error) {
	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseLines(out), nil
}

// GetCommit describes ref, or HEAD when ref is empty.
func (r *Repository) GetCommit(ctx context.Context, ref string) (*Commit, error) {
	args := []string{"show", "--no-patch", "--format=" + CommitFormat}
	if ref != "" {
		args = append(args, ref)
	}
	return RunAndDecode(ctx, r.invoker, r.root, ParseCommit, args...)
}

// Log returns up to limit commits reachable from ref (HEAD when empty).
// A limit of zero or less returns the full history.
func (r *Repository) Log(ctx context.Context, ref string, limit int) ([]Commit, error) {
	args := []string{"log", "-z", "--format=" + CommitFormat}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	if ref != "" {
		args = append(args, ref)
	}
	return RunAndDecode(ctx, r.invoker, r.root, ParseLog, args...)
}

// Status reports the working tree state and any operation in progress.
func (r *Repository) Status(ctx context.Context) (*Status, error) {
	out, err := r.run(ctx, StatusArgs...)
	if err != nil {
		return nil, err
	}
	s := parseStatus(out, r.logger.Warn)
	s.Merging = r.markerExists(mergeHeadMarker)
	s.Rebasing = r.markerExists(rebaseApplyMarker) || r.markerExists(rebaseMergeMarker)
	s.CherryPicking = r.markerExists(cherryPickHeadMarker)
	return s, nil
}

// markerExists treats any stat failure as absence.
func (r *Repository) markerExists(rel string) bool {
	_, err := os.Stat(filepath.Join(r.root, rel))
	return err == nil
}

// DiffStat returns per-file added and removed line counts.
func (r *Repository) DiffStat(ctx context.Context, opts DiffOptions) (*DiffSummary, error) {
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) (*DiffSummary, error) {
		return parseNumstat(out, r.logger.Warn), nil
	}, opts.args()...)
}

// Rebase rebases the current branch onto target.
func (r *Repository) Rebase(ctx context.Context, target string) error {
	return r.exec(ctx, "rebase", target)
}

// RebaseContinue resumes a stopped rebase without opening an editor.
func (r *Repository) RebaseContinue(ctx context.Context) error {
	return r.exec(ctx, append(nonInteractive(), "rebase", "--continue")...)
}

// RebaseAbort abandons the rebase in progress.
func (r *Repository) RebaseAbort(ctx context.Context) error {
	return r.exec(ctx, "rebase", "--abort")
}

// CherryPick applies commits onto the current branch.
func (r *Repository) CherryPick(ctx context.Context, commits ...string) error {
	return r.exec(ctx, append([]string{"cherry-pick"}, commits...)...)
}

// CherryPickContinue resumes a stopped cherry-pick without opening an editor.
func (r *Repository) CherryPickContinue(ctx context.Context) error {
	return r.exec(ctx, append(nonInteractive(), "cherry-pick", "--continue")...)
}

// CherryPickAbort abandons the cherry-pick in progress.
func (r *Repository) CherryPickAbort(ctx context.Context) error {
	return r.exec(ctx, "cherry-pick", "--abort")
}

// ListTags returns all tags, dereferencing annotated tags to their commits.
func (r *Repository) ListTags(ctx context.Context) ([]TagInfo, error) {
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) ([]TagInfo, error) {
		return parseTags(out, r.logger.Warn), nil
	}, "for-each-ref", "--format="+TagFormat, "refs/tags")
}

// CreateTag tags target (HEAD when empty). A non-empty message makes an annotated tag.
func (r *Repository) CreateTag(ctx context.Context, tag types.Tag, target, message string) error {
	args := []string{"tag"}
	if message != "" {
		args = append(args, "-a", "-m", message)
	}
	args = append(args, tag.String())
	if target != "" {
		args = append(args, target)
	}
	return r.exec(ctx, args...)
}

// ListStashes returns the stash entries, newest first.
func (r *Repository) ListStashes(ctx context.Context) ([]StashEntry, error) {
	return RunAndDecode(ctx, r.invoker, r.root, func(out string) ([]StashEntry, error) {
		return parseStashes(out, r.logger.Warn), nil
	}, "stash", "list", "--format="+StashFormat)
}

// StashPush stashes local changes, with message when it is not empty.
func (r *Repository) StashPush(ctx context.Context, message string) error {
	args := []string{"stash", "push"}
	if message != "" {
		args = append(args, "-m", message)
	}
	return r.exec(ctx, args...)
}

// StashPop applies and drops ref, or the latest entry when ref is the zero value.
func (r *Repository) StashPop(ctx context.Context, ref types.StashRef) error {
	args := []string{"stash", "pop"}
	if ref.String() != "" {
		args = append(args, ref.String())
	}
	return r.exec(ctx, args...)
}

// ListWorktrees returns the main worktree followed by any linked ones.
func (r *Repository) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	return RunAndDecode(ctx, r.invoker, r.root, ParseWorktrees, "worktree", "list", "--porcelain")
}

func nonInteractive() []string {
	return append([]string(nil), nonInteractiveEditor...)
}

func checkPaths(paths []string) error {
	for _, p := range paths {
		if !utf8.ValidString(p) {
			return giterrors.NewPathNotUTF8Error(p)
		}
	}
	return nil
}
