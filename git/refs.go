package git

import (
	"strings"

	"gitpilot.dev/gitpilot/types"
)

// TagFormat is the for-each-ref --format template understood by ParseTags.
const TagFormat = "%(refname:short)%09%(objecttype)%09%(objectname)%09%(*objectname)%09%(contents:subject)"

// StashFormat is the stash list --format template understood by ParseStashes.
const StashFormat = "%gd%x09%gs"

// ParseRemotes decodes git remote -v.
func ParseRemotes(out string) ([]Remote, error) {
	return parseRemotes(out, defaultWarn), nil
}

func parseRemotes(out string, warn warnFunc) []Remote {
	remotes := []Remote{}
	index := map[string]int{}

	for _, line := range ParseLines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			warn("skipping malformed remote line", "line", line)
			continue
		}
		name, err := types.ParseRemoteName(fields[0])
		if err != nil {
			warn("skipping remote with invalid name", "line", line, "error", err)
			continue
		}

		i, seen := index[fields[0]]
		if !seen {
			i = len(remotes)
			index[fields[0]] = i
			remotes = append(remotes, Remote{Name: name})
		}

		kind := ""
		if len(fields) > 2 {
			kind = fields[2]
		}
		switch kind {
		case "(push)":
			remotes[i].PushURL = fields[1]
		default:
			remotes[i].FetchURL = fields[1]
		}
	}

	return remotes
}

// parseRemoteNames decodes git remote.
func parseRemoteNames(out string, warn warnFunc) []types.RemoteName {
	names := []types.RemoteName{}
	for _, line := range ParseLines(out) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, err := types.ParseRemoteName(line)
		if err != nil {
			warn("skipping remote with invalid name", "line", line, "error", err)
			continue
		}
		names = append(names, name)
	}
	return names
}

// ParseTags decodes git for-each-ref refs/tags --format=TagFormat.
func ParseTags(out string) ([]TagInfo, error) {
	return parseTags(out, defaultWarn), nil
}

func parseTags(out string, warn warnFunc) []TagInfo {
	tags := []TagInfo{}

	for _, line := range ParseLines(out) {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 5)
		if len(parts) < 3 {
			warn("skipping malformed tag line", "line", line)
			continue
		}
		for len(parts) < 5 {
			parts = append(parts, "")
		}

		name, err := types.ParseTag(parts[0])
		if err != nil {
			warn("skipping tag with invalid name", "line", line, "error", err)
			continue
		}

		info := TagInfo{Name: name, Annotated: parts[1] == "tag"}
		target := parts[2]
		if info.Annotated {
			if parts[3] != "" {
				target = parts[3]
			}
			info.Message = parts[4]
		}
		hash, err := types.ParseCommitHash(target)
		if err != nil {
			warn("skipping tag with invalid target", "line", line, "error", err)
			continue
		}
		info.Target = hash
		tags = append(tags, info)
	}

	return tags
}

// ParseStashes decodes git stash list --format=StashFormat.
func ParseStashes(out string) ([]StashEntry, error) {
	return parseStashes(out, defaultWarn), nil
}

func parseStashes(out string, warn warnFunc) []StashEntry {
	entries := []StashEntry{}

	for _, line := range ParseLines(out) {
		if line == "" {
			continue
		}
		refText, subject, ok := strings.Cut(line, "\t")
		if !ok {
			warn("skipping malformed stash line", "line", line)
			continue
		}
		ref, err := types.ParseStashRef(refText)
		if err != nil {
			warn("skipping stash with invalid reference", "line", line, "error", err)
			continue
		}

		entry := StashEntry{Ref: ref, Message: subject}
		for _, prefix := range []string{"WIP on ", "On "} {
			if rest, found := strings.CutPrefix(subject, prefix); found {
				if branch, msg, ok := strings.Cut(rest, ": "); ok {
					entry.Branch = branch
					entry.Message = msg
				}
				break
			}
		}
		entries = append(entries, entry)
	}

	return entries
}

// ParseWorktrees decodes git worktree list --porcelain. The first entry is the main worktree.
func ParseWorktrees(out string) ([]Worktree, error) {
	worktrees := []Worktree{}
	var cur *Worktree

	flush := func() {
		if cur != nil {
			cur.IsMain = len(worktrees) == 0
			worktrees = append(worktrees, *cur)
			cur = nil
		}
	}

	for _, line := range ParseLines(out) {
		if line == "" {
			flush()
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		if key == "worktree" {
			flush()
			cur = &Worktree{Path: value}
			continue
		}
		if cur == nil {
			continue
		}
		switch key {
		case "HEAD":
			cur.Head = value
		case "branch":
			cur.Branch = strings.TrimPrefix(value, "refs/heads/")
		case "bare":
			cur.IsBare = true
		case "detached":
			cur.Detached = true
		case "locked":
			cur.Locked = true
		case "prunable":
			cur.Prunable = true
		}
	}
	flush()

	return worktrees, nil
}
