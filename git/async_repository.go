package git

import (
	"context"
	"os"
	"path/filepath"

	"gitpilot.dev/gitpilot/types"
)

// AsyncRepository mirrors Repository with every operation returning a Future.
// Each call owns its subprocess; any number may be in flight at once.
type AsyncRepository struct {
	repo    *Repository
	invoker *AsyncInvoker
}

// NewAsync returns a non-blocking handle on the working tree at root.
func NewAsync(root string, opts ...Option) *AsyncRepository {
	s := newSettings(opts)
	inv := &AsyncInvoker{settings: s}
	return &AsyncRepository{
		repo:    &Repository{root: root, invoker: inv, logger: s.logger},
		invoker: inv,
	}
}

// InitAsync runs git init at path.
func InitAsync(ctx context.Context, path string, opts ...Option) *Future[*AsyncRepository] {
	return Spawn(func() (*AsyncRepository, error) {
		a := NewAsync(path, opts...)
		if _, err := Init(ctx, path, WithInvoker(a.invoker)); err != nil {
			return nil, err
		}
		return a, nil
	})
}

// CloneAsync clones url into path.
func CloneAsync(ctx context.Context, url types.RemoteURL, path string, opts ...Option) *Future[*AsyncRepository] {
	return Spawn(func() (*AsyncRepository, error) {
		a := NewAsync(path, opts...)
		if _, err := Clone(ctx, url, path, WithInvoker(a.invoker)); err != nil {
			return nil, err
		}
		return a, nil
	})
}

// Root returns the working tree path the handle was created with.
func (a *AsyncRepository) Root() string {
	return a.repo.root
}

// Blocking returns a Repository sharing this handle's root and invoker.
func (a *AsyncRepository) Blocking() *Repository {
	return a.repo
}

func spawnErr(fn func() error) *Future[struct{}] {
	return Spawn(func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// CreateLocalBranch is the asynchronous form of Repository.CreateLocalBranch.
func (a *AsyncRepository) CreateLocalBranch(ctx context.Context, name types.RefName) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.CreateLocalBranch(ctx, name) })
}

// SwitchBranch is the asynchronous form of Repository.SwitchBranch.
func (a *AsyncRepository) SwitchBranch(ctx context.Context, name types.RefName) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.SwitchBranch(ctx, name) })
}

// Add is the asynchronous form of Repository.Add.
func (a *AsyncRepository) Add(ctx context.Context, pathspecs ...string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.Add(ctx, pathspecs...) })
}

// Remove is the asynchronous form of Repository.Remove.
func (a *AsyncRepository) Remove(ctx context.Context, force bool, pathspecs ...string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.Remove(ctx, force, pathspecs...) })
}

// StageAndCommitAllModified is the asynchronous form of Repository.StageAndCommitAllModified.
func (a *AsyncRepository) StageAndCommitAllModified(ctx context.Context, message string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.StageAndCommitAllModified(ctx, message) })
}

// CommitStaged is the asynchronous form of Repository.CommitStaged.
func (a *AsyncRepository) CommitStaged(ctx context.Context, message string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.CommitStaged(ctx, message) })
}

// Push is the asynchronous form of Repository.Push.
func (a *AsyncRepository) Push(ctx context.Context) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.Push(ctx) })
}

// PushToUpstream is the asynchronous form of Repository.PushToUpstream.
func (a *AsyncRepository) PushToUpstream(ctx context.Context, remote types.RemoteName, branch types.RefName) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.PushToUpstream(ctx, remote, branch) })
}

// AddRemote is the asynchronous form of Repository.AddRemote.
func (a *AsyncRepository) AddRemote(ctx context.Context, name types.RemoteName, url types.RemoteURL) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.AddRemote(ctx, name, url) })
}

// FetchRemote is the asynchronous form of Repository.FetchRemote.
func (a *AsyncRepository) FetchRemote(ctx context.Context, remote types.RemoteName) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.FetchRemote(ctx, remote) })
}

// CreateBranchFromStartpoint is the asynchronous form of Repository.CreateBranchFromStartpoint.
func (a *AsyncRepository) CreateBranchFromStartpoint(ctx context.Context, name types.RefName, startpoint string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.CreateBranchFromStartpoint(ctx, name, startpoint) })
}

// ListBranches is the asynchronous form of Repository.ListBranches.
func (a *AsyncRepository) ListBranches(ctx context.Context) *Future[[]types.RefName] {
	return Spawn(func() ([]types.RefName, error) { return a.repo.ListBranches(ctx) })
}

// ListBranchesInfo is the asynchronous form of Repository.ListBranchesInfo.
func (a *AsyncRepository) ListBranchesInfo(ctx context.Context) *Future[[]Branch] {
	return Spawn(func() ([]Branch, error) { return a.repo.ListBranchesInfo(ctx) })
}

// ListTracked is the asynchronous form of Repository.ListTracked.
func (a *AsyncRepository) ListTracked(ctx context.Context) *Future[[]string] {
	return Spawn(func() ([]string, error) { return a.repo.ListTracked(ctx) })
}

// ShowRemoteURI is the asynchronous form of Repository.ShowRemoteURI.
func (a *AsyncRepository) ShowRemoteURI(ctx context.Context, remote types.RemoteName) *Future[types.RemoteURL] {
	return Spawn(func() (types.RemoteURL, error) { return a.repo.ShowRemoteURI(ctx, remote) })
}

// ListRemotes is the asynchronous form of Repository.ListRemotes.
func (a *AsyncRepository) ListRemotes(ctx context.Context) *Future[[]types.RemoteName] {
	return Spawn(func() ([]types.RemoteName, error) { return a.repo.ListRemotes(ctx) })
}

// ListRemoteInfo is the asynchronous form of Repository.ListRemoteInfo.
func (a *AsyncRepository) ListRemoteInfo(ctx context.Context) *Future[[]Remote] {
	return Spawn(func() ([]Remote, error) { return a.repo.ListRemoteInfo(ctx) })
}

// GetHash is the asynchronous form of Repository.GetHash.
func (a *AsyncRepository) GetHash(ctx context.Context, short bool) *Future[types.CommitHash] {
	return Spawn(func() (types.CommitHash, error) { return a.repo.GetHash(ctx, short) })
}

// Cmd is the asynchronous form of Repository.Cmd.
func (a *AsyncRepository) Cmd(ctx context.Context, args ...string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.Cmd(ctx, args...) })
}

// CmdOut is the asynchronous form of Repository.CmdOut.
func (a *AsyncRepository) CmdOut(ctx context.Context, args ...string) *Future[[]string] {
	return Spawn(func() ([]string, error) { return a.repo.CmdOut(ctx, args...) })
}

// GetCommit is the asynchronous form of Repository.GetCommit.
func (a *AsyncRepository) GetCommit(ctx context.Context, ref string) *Future[*Commit] {
	return Spawn(func() (*Commit, error) { return a.repo.GetCommit(ctx, ref) })
}

// Log is the asynchronous form of Repository.Log.
func (a *AsyncRepository) Log(ctx context.Context, ref string, limit int) *Future[[]Commit] {
	return Spawn(func() ([]Commit, error) { return a.repo.Log(ctx, ref, limit) })
}

// Status runs git status while probing the marker files concurrently.
func (a *AsyncRepository) Status(ctx context.Context) *Future[*Status] {
	out := a.invoker.Go(ctx, a.repo.root, StatusArgs...)
	merging := a.probe(mergeHeadMarker)
	rebasing := a.probe(rebaseApplyMarker, rebaseMergeMarker)
	cherryPicking := a.probe(cherryPickHeadMarker)

	return Spawn(func() (*Status, error) {
		text, err := out.Await(ctx)
		if err != nil {
			return nil, err
		}
		s := parseStatus(text, a.repo.logger.Warn)
		s.Merging, _ = merging.Await(ctx)
		s.Rebasing, _ = rebasing.Await(ctx)
		s.CherryPicking, _ = cherryPicking.Await(ctx)
		return s, nil
	})
}

// probe checks whether any of the markers exists. Failures read as absent.
func (a *AsyncRepository) probe(markers ...string) *Future[bool] {
	return Spawn(func() (bool, error) {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(a.repo.root, m)); err == nil {
				return true, nil
			}
		}
		return false, nil
	})
}

// DiffStat is the asynchronous form of Repository.DiffStat.
func (a *AsyncRepository) DiffStat(ctx context.Context, opts DiffOptions) *Future[*DiffSummary] {
	return Spawn(func() (*DiffSummary, error) { return a.repo.DiffStat(ctx, opts) })
}

// Rebase is the asynchronous form of Repository.Rebase.
func (a *AsyncRepository) Rebase(ctx context.Context, target string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.Rebase(ctx, target) })
}

// RebaseContinue is the asynchronous form of Repository.RebaseContinue.
func (a *AsyncRepository) RebaseContinue(ctx context.Context) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.RebaseContinue(ctx) })
}

// RebaseAbort is the asynchronous form of Repository.RebaseAbort.
func (a *AsyncRepository) RebaseAbort(ctx context.Context) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.RebaseAbort(ctx) })
}

// CherryPick is the asynchronous form of Repository.CherryPick.
func (a *AsyncRepository) CherryPick(ctx context.Context, commits ...string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.CherryPick(ctx, commits...) })
}

// CherryPickContinue is the asynchronous form of Repository.CherryPickContinue.
func (a *AsyncRepository) CherryPickContinue(ctx context.Context) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.CherryPickContinue(ctx) })
}

// CherryPickAbort is the asynchronous form of Repository.CherryPickAbort.
func (a *AsyncRepository) CherryPickAbort(ctx context.Context) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.CherryPickAbort(ctx) })
}

// ListTags is the asynchronous form of Repository.ListTags.
func (a *AsyncRepository) ListTags(ctx context.Context) *Future[[]TagInfo] {
	return Spawn(func() ([]TagInfo, error) { return a.repo.ListTags(ctx) })
}

// CreateTag is the asynchronous form of Repository.CreateTag.
func (a *AsyncRepository) CreateTag(ctx context.Context, tag types.Tag, target, message string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.CreateTag(ctx, tag, target, message) })
}

// ListStashes is the asynchronous form of Repository.ListStashes.
func (a *AsyncRepository) ListStashes(ctx context.Context) *Future[[]StashEntry] {
	return Spawn(func() ([]StashEntry, error) { return a.repo.ListStashes(ctx) })
}

// StashPush is the asynchronous form of Repository.StashPush.
func (a *AsyncRepository) StashPush(ctx context.Context, message string) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.StashPush(ctx, message) })
}

// StashPop is the asynchronous form of Repository.StashPop.
func (a *AsyncRepository) StashPop(ctx context.Context, ref types.StashRef) *Future[struct{}] {
	return spawnErr(func() error { return a.repo.StashPop(ctx, ref) })
}

// ListWorktrees is the asynchronous form of Repository.ListWorktrees.
func (a *AsyncRepository) ListWorktrees(ctx context.Context) *Future[[]Worktree] {
	return Spawn(func() ([]Worktree, error) { return a.repo.ListWorktrees(ctx) })
}
