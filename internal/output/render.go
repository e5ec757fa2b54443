package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitpilot.dev/gitpilot/git"
)

const shortHashLen = 7

// Status prints a working tree summary in the spirit of git status.
func (p *Printer) Status(s *git.Status) error {
	return p.Emit(s, func() {
		if s.Branch != nil {
			p.Println("On branch " + p.styles.Current.Render(s.Branch.String()))
		} else {
			p.Println(p.styles.Warning.Render("HEAD detached"))
		}
		if s.Upstream != "" {
			p.Println(upstreamLine(s))
		}

		for _, op := range []struct {
			active bool
			name   string
		}{
			{s.Merging, "merge"},
			{s.Rebasing, "rebase"},
			{s.CherryPicking, "cherry-pick"},
		} {
			if op.active {
				p.Println(p.styles.Warning.Render(op.name + " in progress"))
			}
		}

		if s.IsClean() {
			p.Println(p.styles.Success.Render("nothing to commit, working tree clean"))
			return
		}
		p.Println()
		for _, f := range s.Files {
			p.Println("  " + p.fileStatusStyle(f.Status).Render(padRight(f.Status.String()+":", 18)) + describePath(f))
		}
	})
}

func upstreamLine(s *git.Status) string {
	switch {
	case s.Ahead > 0 && s.Behind > 0:
		return fmt.Sprintf("Your branch and '%s' have diverged (%d ahead, %d behind)", s.Upstream, s.Ahead, s.Behind)
	case s.Ahead > 0:
		return fmt.Sprintf("Your branch is ahead of '%s' by %d commit(s)", s.Upstream, s.Ahead)
	case s.Behind > 0:
		return fmt.Sprintf("Your branch is behind '%s' by %d commit(s)", s.Upstream, s.Behind)
	default:
		return fmt.Sprintf("Your branch is up to date with '%s'", s.Upstream)
	}
}

func describePath(f git.StatusEntry) string {
	if f.OriginalPath != "" {
		return f.OriginalPath + " -> " + f.Path
	}
	return f.Path
}

func (p *Printer) fileStatusStyle(status git.FileStatus) lipgloss.Style {
	switch status {
	case git.Added, git.Renamed, git.Copied, git.DeletedStaged:
		return p.styles.Success
	case git.UnmergedConflict:
		return p.styles.Error
	case git.Untracked, git.Ignored:
		return p.styles.Dim
	default:
		return p.styles.Warning
	}
}

// Commit prints one commit in the layout of git show --no-patch.
func (p *Printer) Commit(c *git.Commit) error {
	return p.Emit(c, func() {
		p.Println(p.styles.Hash.Render("commit " + c.Hash.String()))
		if c.IsMerge() {
			parents := make([]string, len(c.Parents))
			for i, h := range c.Parents {
				parents[i] = h.Short(shortHashLen)
			}
			p.KeyValue("Merge", strings.Join(parents, " "))
		}
		p.KeyValue("Author", fmt.Sprintf("%s <%s>", c.AuthorName, c.AuthorEmail))
		p.KeyValue("Date", c.Time().Format(time.RFC1123Z))
		p.Println()
		p.Println("    " + c.Message)
	})
}

// Log prints one line per commit.
func (p *Printer) Log(commits []git.Commit) error {
	return p.Emit(commits, func() {
		for _, c := range commits {
			p.Println(p.styles.Hash.Render(c.ShortHash.String()) + " " + c.Message + " " + p.styles.Dim.Render("("+c.AuthorName+")"))
		}
	})
}

// Branches prints local branches, marking the current one.
func (p *Printer) Branches(branches []git.Branch) error {
	return p.Emit(branches, func() {
		for i, b := range branches {
			marker := "  "
			name := p.branchStyle(i).Render(b.Name.String())
			if b.IsHead {
				marker = "* "
				name = p.styles.Current.Render(b.Name.String() + " (current)")
			}
			line := marker + name + " " + p.styles.Hash.Render(b.Commit.Short(shortHashLen))
			if b.Upstream != "" {
				line += " " + p.styles.Dim.Render("["+b.Upstream+"]")
			}
			p.Println(line)
		}
	})
}

// Diff prints a numstat table and totals.
func (p *Printer) Diff(d *git.DiffSummary) error {
	return p.Emit(d, func() {
		rows := make([][]string, 0, len(d.Files))
		for _, f := range d.Files {
			if f.Binary {
				rows = append(rows, []string{"-", "-", f.Path})
				continue
			}
			rows = append(rows, []string{"+" + strconv.Itoa(f.Added), "-" + strconv.Itoa(f.Removed), f.Path})
		}
		p.Table([]string{"ADDED", "REMOVED", "FILE"}, rows)
		added, removed := d.Totals()
		p.Println(p.styles.Dim.Render(fmt.Sprintf("%d file(s) changed, %d insertion(s), %d deletion(s)", len(d.Files), added, removed)))
	})
}

// Remotes prints configured remotes.
func (p *Printer) Remotes(remotes []git.Remote) error {
	return p.Emit(remotes, func() {
		rows := make([][]string, 0, len(remotes))
		for _, r := range remotes {
			rows = append(rows, []string{r.Name.String(), r.FetchURL, r.PushURL})
		}
		p.Table([]string{"NAME", "FETCH", "PUSH"}, rows)
	})
}

// Tags prints tags with their targets.
func (p *Printer) Tags(tags []git.TagInfo) error {
	return p.Emit(tags, func() {
		rows := make([][]string, 0, len(tags))
		for _, t := range tags {
			kind := "lightweight"
			if t.Annotated {
				kind = "annotated"
			}
			rows = append(rows, []string{t.Name.String(), t.Target.Short(shortHashLen), kind, t.Message})
		}
		p.Table([]string{"TAG", "TARGET", "TYPE", "MESSAGE"}, rows)
	})
}

// Stashes prints stash entries.
func (p *Printer) Stashes(entries []git.StashEntry) error {
	return p.Emit(entries, func() {
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{e.Ref.String(), e.Branch, e.Message})
		}
		p.Table([]string{"REF", "BRANCH", "MESSAGE"}, rows)
	})
}

// Worktrees prints linked worktrees.
func (p *Printer) Worktrees(worktrees []git.Worktree) error {
	return p.Emit(worktrees, func() {
		rows := make([][]string, 0, len(worktrees))
		for _, w := range worktrees {
			var flags []string
			for _, f := range []struct {
				set  bool
				name string
			}{
				{w.IsMain, "main"},
				{w.IsBare, "bare"},
				{w.Detached, "detached"},
				{w.Locked, "locked"},
				{w.Prunable, "prunable"},
			} {
				if f.set {
					flags = append(flags, f.name)
				}
			}
			head := w.Head
			if len(head) > shortHashLen {
				head = head[:shortHashLen]
			}
			rows = append(rows, []string{w.Path, w.Branch, head, strings.Join(flags, ",")})
		}
		p.Table([]string{"PATH", "BRANCH", "HEAD", "FLAGS"}, rows)
	})
}

// Value prints a single scalar, e.g. a hash or URL.
func (p *Printer) Value(key string, value string) error {
	return p.Emit(map[string]string{key: value}, func() {
		p.Println(value)
	})
}

// Strings prints a list of lines.
func (p *Printer) Strings(key string, lines []string) error {
	return p.Emit(map[string][]string{key: lines}, func() {
		p.Lines(lines)
	})
}
