package git

import (
	"fmt"
	"strconv"
	"strings"

	"gitpilot.dev/gitpilot/types"
)

// StatusArgs are the arguments Repository.Status passes to git.
var StatusArgs = []string{"status", "--porcelain=v2", "--branch"}

// statusRecord describes the field layout of one porcelain v2 record type.
// fields is the SplitN count; the path is always the last field.
type statusRecord struct {
	fields int
	// code is the index of the XY field, or -1 when the status is fixed.
	code int
	// fixed is used when code is -1, and always for unmerged records.
	fixed FileStatus
	// renamed records carry "path<TAB>origPath" in the last field.
	renamed bool
}

var statusRecords = map[string]statusRecord{
	"1": {fields: 9, code: 1},
	"2": {fields: 10, code: 1, renamed: true},
	"u": {fields: 11, code: -1, fixed: UnmergedConflict},
	"?": {fields: 2, code: -1, fixed: Untracked},
	"!": {fields: 2, code: -1, fixed: Ignored},
}

// ParseStatus decodes git status --porcelain=v2 --branch output.
// Porcelain v1 "XY path" lines are also understood. The in-progress flags
// are left false; they come from the repository's control directory.
func ParseStatus(out string) (*Status, error) {
	return parseStatus(out, defaultWarn), nil
}

func parseStatus(out string, warn warnFunc) *Status {
	s := &Status{Files: []StatusEntry{}}

	for _, line := range ParseLines(out) {
		if line == "" {
			continue
		}

		token, _, _ := strings.Cut(line, " ")
		switch token {
		case "#":
			parseStatusHeader(s, line)
			continue
		case "##":
			parseShortBranchHeader(s, line)
			continue
		}

		var (
			entry StatusEntry
			err   error
		)
		if rec, ok := statusRecords[token]; ok {
			entry, err = rec.parse(line)
		} else {
			entry, err = parseShortStatusLine(line)
		}
		if err != nil {
			warn("skipping malformed status line", "line", line, "error", err)
			continue
		}
		s.Files = append(s.Files, entry)
	}

	return s
}

func (r statusRecord) parse(line string) (StatusEntry, error) {
	parts := strings.SplitN(line, " ", r.fields)
	if len(parts) != r.fields {
		return StatusEntry{}, fmt.Errorf("expected %d fields, got %d", r.fields, len(parts))
	}

	var entry StatusEntry
	last := parts[len(parts)-1]
	if r.renamed {
		path, orig, ok := strings.Cut(last, "\t")
		if !ok {
			return StatusEntry{}, fmt.Errorf("rename record without original path")
		}
		entry.Path = unquotePath(path)
		entry.OriginalPath = unquotePath(orig)
	} else {
		entry.Path = unquotePath(last)
	}
	if entry.Path == "" {
		return StatusEntry{}, fmt.Errorf("empty path")
	}

	if r.code < 0 {
		entry.Status = r.fixed
		return entry, nil
	}
	xy := parts[r.code]
	if len(xy) != 2 {
		return StatusEntry{}, fmt.Errorf("invalid status code %q", xy)
	}
	entry.Status = fileStatusFromCode(xy[0], xy[1])
	return entry, nil
}

// parseShortStatusLine reads a porcelain v1 line: "XY path" or "XY orig -> path".
// A single status letter followed by a space is accepted as "X path".
func parseShortStatusLine(line string) (StatusEntry, error) {
	var x, y byte
	var rest string

	if line[0] == ' ' {
		if len(line) < 3 {
			return StatusEntry{}, fmt.Errorf("line too short")
		}
		x, y = ' ', line[1]
		rest = line[2:]
	} else {
		code, tail, ok := strings.Cut(line, " ")
		if !ok || len(code) > 2 {
			return StatusEntry{}, fmt.Errorf("invalid status code %q", code)
		}
		x, y = code[0], ' '
		if len(code) == 2 {
			y = code[1]
		}
		rest = tail
	}

	path := strings.TrimLeft(rest, " ")
	if path == "" {
		return StatusEntry{}, fmt.Errorf("empty path")
	}

	entry := StatusEntry{Status: fileStatusFromCode(x, y)}
	if orig, renamed, ok := strings.Cut(path, " -> "); ok && (entry.Status == Renamed || entry.Status == Copied) {
		entry.Path = unquotePath(renamed)
		entry.OriginalPath = unquotePath(orig)
	} else {
		entry.Path = unquotePath(path)
	}
	return entry, nil
}

func parseStatusHeader(s *Status, line string) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return
	}
	value := strings.Join(fields[2:], " ")

	switch fields[1] {
	case "branch.oid":
		if value != "(initial)" {
			s.HeadOID = value
		}
	case "branch.head":
		s.Branch = branchOrNil(value)
	case "branch.upstream":
		s.Upstream = value
	case "branch.ab":
		var ahead, behind int
		if _, err := fmt.Sscanf(value, "+%d -%d", &ahead, &behind); err == nil {
			s.Ahead, s.Behind = ahead, behind
		}
	}
}

// parseShortBranchHeader reads the porcelain v1 "## branch...upstream" line.
func parseShortBranchHeader(s *Status, line string) {
	value := strings.TrimPrefix(line, "## ")
	value = strings.TrimPrefix(value, "No commits yet on ")
	value = strings.TrimPrefix(value, "Initial commit on ")
	if strings.HasPrefix(value, "HEAD (no branch)") {
		return
	}
	name, upstream, _ := strings.Cut(value, "...")
	if upstream != "" {
		upstream, _, _ = strings.Cut(upstream, " ")
		s.Upstream = upstream
	}
	name, _, _ = strings.Cut(name, " ")
	s.Branch = branchOrNil(name)
}

func branchOrNil(name string) *types.RefName {
	if name == "(detached)" {
		return nil
	}
	ref, err := types.ParseRefName(name)
	if err != nil {
		return nil
	}
	return &ref
}

// fileStatusFromCode maps an index/worktree code pair. '.' means unchanged.
func fileStatusFromCode(x, y byte) FileStatus {
	if x == '.' {
		x = ' '
	}
	if y == '.' {
		y = ' '
	}

	switch string([]byte{x, y}) {
	case "DD", "AU", "UD", "UA", "DU", "AA", "UU":
		return UnmergedConflict
	case " M", " T":
		return Modified
	case "??":
		return Untracked
	case "!!":
		return Ignored
	}

	switch x {
	case 'M', 'A':
		return Added
	case 'D':
		return DeletedStaged
	case 'R':
		return Renamed
	case 'C':
		return Copied
	case 'U':
		return UnmergedConflict
	case 'T':
		return Modified
	}

	if y == 'D' {
		return DeletedWorkingTree
	}
	return Unmodified
}

// unquotePath undoes git's C-style quoting of unusual paths.
func unquotePath(p string) string {
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		if s, err := strconv.Unquote(p); err == nil {
			return s
		}
	}
	return p
}
