package git

import (
	"strconv"
	"strings"
)

// ParseNumstat decodes git diff --numstat. Non-numeric counts, which git
// prints as "-" for binary files, are read as zero.
func ParseNumstat(out string) (*DiffSummary, error) {
	return parseNumstat(out, defaultWarn), nil
}

func parseNumstat(out string, warn warnFunc) *DiffSummary {
	summary := &DiffSummary{Files: []DiffStat{}}

	for _, line := range ParseLines(out) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var added, removed, path string
		if parts := strings.SplitN(line, "\t", 3); len(parts) == 3 {
			added, removed, path = parts[0], parts[1], parts[2]
		} else {
			fields := strings.Fields(line)
			if len(fields) < 3 {
				warn("skipping malformed numstat line", "line", line)
				continue
			}
			added, removed, path = fields[0], fields[1], strings.Join(fields[2:], " ")
		}

		stat := DiffStat{Path: path}
		var addedOK, removedOK bool
		stat.Added, addedOK = parseCount(added)
		stat.Removed, removedOK = parseCount(removed)
		stat.Binary = !addedOK && !removedOK
		summary.Files = append(summary.Files, stat)
	}

	return summary
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// DiffOptions selects what DiffStat compares.
type DiffOptions struct {
	// Cached compares the index instead of the working tree.
	Cached bool
	// Revisions are passed before "--", e.g. "main" or "HEAD~2..HEAD".
	Revisions []string
	// Paths limit the diff, passed after "--".
	Paths []string
}

func (o DiffOptions) args() []string {
	args := []string{"diff", "--numstat"}
	if o.Cached {
		args = append(args, "--cached")
	}
	args = append(args, o.Revisions...)
	args = append(args, "--")
	return append(args, o.Paths...)
}
