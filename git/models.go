package git

import (
	"time"

	"gitpilot.dev/gitpilot/types"
)

// Commit is one commit as reported by git show.
type Commit struct {
	Hash        types.CommitHash   `json:"hash" yaml:"hash"`
	ShortHash   types.CommitHash   `json:"short_hash" yaml:"short_hash"`
	AuthorName  string             `json:"author_name" yaml:"author_name"`
	AuthorEmail string             `json:"author_email" yaml:"author_email"`
	Timestamp   int64              `json:"timestamp" yaml:"timestamp"`
	Message     string             `json:"message" yaml:"message"`
	Parents     []types.CommitHash `json:"parents" yaml:"parents"`
}

// Time returns the commit timestamp.
func (c *Commit) Time() time.Time {
	return time.Unix(c.Timestamp, 0)
}

// IsMerge reports whether the commit has more than one parent.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// FileStatus is the state of one path in the working tree or index.
type FileStatus int

const (
	Unmodified FileStatus = iota
	Modified
	Added
	DeletedWorkingTree
	DeletedStaged
	Renamed
	Copied
	UnmergedConflict
	Untracked
	Ignored
)

var fileStatusNames = [...]string{
	Unmodified:         "unmodified",
	Modified:           "modified",
	Added:              "added",
	DeletedWorkingTree: "deleted",
	DeletedStaged:      "deleted (staged)",
	Renamed:            "renamed",
	Copied:             "copied",
	UnmergedConflict:   "unmerged",
	Untracked:          "untracked",
	Ignored:            "ignored",
}

func (s FileStatus) String() string {
	if s < 0 || int(s) >= len(fileStatusNames) {
		return "unknown"
	}
	return fileStatusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s FileStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusEntry is one path reported by git status.
// OriginalPath is only set for renames and copies.
type StatusEntry struct {
	Path         string     `json:"path" yaml:"path"`
	Status       FileStatus `json:"status" yaml:"status"`
	OriginalPath string     `json:"original_path,omitempty" yaml:"original_path,omitempty"`
}

// Status is a snapshot of the working tree.
type Status struct {
	// Branch is nil when HEAD is detached or the name could not be validated.
	Branch        *types.RefName `json:"branch" yaml:"branch"`
	Files         []StatusEntry  `json:"files" yaml:"files"`
	Merging       bool           `json:"merging" yaml:"merging"`
	Rebasing      bool           `json:"rebasing" yaml:"rebasing"`
	CherryPicking bool           `json:"cherry_picking" yaml:"cherry_picking"`

	HeadOID  string `json:"head_oid,omitempty" yaml:"head_oid,omitempty"`
	Upstream string `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	Ahead    int    `json:"ahead" yaml:"ahead"`
	Behind   int    `json:"behind" yaml:"behind"`
}

// IsClean reports whether every entry is Unmodified or Ignored.
func (s *Status) IsClean() bool {
	for _, f := range s.Files {
		if f.Status != Unmodified && f.Status != Ignored {
			return false
		}
	}
	return true
}

// IsCleanExcludingUntracked is IsClean with untracked files also ignored.
func (s *Status) IsCleanExcludingUntracked() bool {
	for _, f := range s.Files {
		switch f.Status {
		case Unmodified, Ignored, Untracked:
		default:
			return false
		}
	}
	return true
}

// InProgress reports whether a merge, rebase or cherry-pick is underway.
func (s *Status) InProgress() bool {
	return s.Merging || s.Rebasing || s.CherryPicking
}

// Branch is one local branch.
type Branch struct {
	Name     types.RefName    `json:"name" yaml:"name"`
	Commit   types.CommitHash `json:"commit" yaml:"commit"`
	IsHead   bool             `json:"is_head" yaml:"is_head"`
	Upstream string           `json:"upstream,omitempty" yaml:"upstream,omitempty"`
}

// DiffStat is one line of git diff --numstat.
// Binary files report zero counts.
type DiffStat struct {
	Path    string `json:"path" yaml:"path"`
	Added   int    `json:"added" yaml:"added"`
	Removed int    `json:"removed" yaml:"removed"`
	Binary  bool   `json:"binary,omitempty" yaml:"binary,omitempty"`
}

// DiffSummary is the per-file summary of a diff.
type DiffSummary struct {
	Files []DiffStat `json:"files" yaml:"files"`
}

// Totals sums the added and removed counts over all files.
func (d *DiffSummary) Totals() (added, removed int) {
	for _, f := range d.Files {
		added += f.Added
		removed += f.Removed
	}
	return added, removed
}

// Remote is a configured remote and its URLs.
// URLs are kept as text since local paths are valid remotes.
type Remote struct {
	Name     types.RemoteName `json:"name" yaml:"name"`
	FetchURL string           `json:"fetch_url" yaml:"fetch_url"`
	PushURL  string           `json:"push_url,omitempty" yaml:"push_url,omitempty"`
}

// URL validates the fetch URL.
func (r *Remote) URL() (types.RemoteURL, error) {
	return types.ParseRemoteURL(r.FetchURL)
}

// TagInfo describes a tag.
type TagInfo struct {
	Name types.Tag `json:"name" yaml:"name"`
	// Target is the commit the tag points to, dereferenced for annotated tags.
	Target    types.CommitHash `json:"target" yaml:"target"`
	Annotated bool             `json:"annotated" yaml:"annotated"`
	Message   string           `json:"message,omitempty" yaml:"message,omitempty"`
}

// StashEntry is one entry of git stash list.
type StashEntry struct {
	Ref     types.StashRef `json:"ref" yaml:"ref"`
	Branch  string         `json:"branch,omitempty" yaml:"branch,omitempty"`
	Message string         `json:"message" yaml:"message"`
}

// Worktree is one entry of git worktree list.
type Worktree struct {
	Path     string `json:"path" yaml:"path"`
	Head     string `json:"head,omitempty" yaml:"head,omitempty"`
	Branch   string `json:"branch,omitempty" yaml:"branch,omitempty"`
	IsMain   bool   `json:"is_main" yaml:"is_main"`
	IsBare   bool   `json:"is_bare" yaml:"is_bare"`
	Detached bool   `json:"detached" yaml:"detached"`
	Locked   bool   `json:"locked" yaml:"locked"`
	Prunable bool   `json:"prunable" yaml:"prunable"`
}
