package git

import (
	"strings"

	"gitpilot.dev/gitpilot/types"
)

// BranchFormat is the --format template understood by ParseBranches.
// Fields are tab separated: name, object name, HEAD marker, upstream.
const BranchFormat = "%(refname:short)%09%(objectname)%09%(HEAD)%09%(upstream:short)"

// ParseBranches decodes git branch --list --format=BranchFormat.
// Whitespace-separated lines are also accepted. Lines whose name or hash
// fails validation are dropped with a warning.
func ParseBranches(out string) ([]Branch, error) {
	return parseBranches(out, defaultWarn), nil
}

func parseBranches(out string, warn warnFunc) []Branch {
	branches := []Branch{}

	for _, line := range ParseLines(out) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, hash, head, upstream, ok := splitBranchLine(line)
		if !ok {
			warn("skipping malformed branch line", "line", line)
			continue
		}

		ref, err := types.ParseRefName(name)
		if err != nil {
			warn("skipping branch with invalid name", "line", line, "error", err)
			continue
		}
		commit, err := types.ParseCommitHash(hash)
		if err != nil {
			warn("skipping branch with invalid hash", "line", line, "error", err)
			continue
		}

		branches = append(branches, Branch{
			Name:     ref,
			Commit:   commit,
			IsHead:   head == "*",
			Upstream: upstream,
		})
	}

	return branches
}

func splitBranchLine(line string) (name, hash, head, upstream string, ok bool) {
	if strings.Contains(line, "\t") {
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			return "", "", "", "", false
		}
		name, hash, head = parts[0], parts[1], strings.TrimSpace(parts[2])
		if len(parts) > 3 {
			upstream = strings.TrimSpace(parts[3])
		}
		return name, hash, head, upstream, true
	}

	fields := strings.Fields(line)
	switch len(fields) {
	case 2:
		return fields[0], fields[1], "", "", true
	case 3:
		if fields[2] == "*" {
			return fields[0], fields[1], "*", "", true
		}
		return fields[0], fields[1], "", fields[2], true
	case 4:
		return fields[0], fields[1], fields[2], fields[3], true
	}
	return "", "", "", "", false
}

// parseBranchNames decodes git branch --list --format=%(refname:short).
func parseBranchNames(out string, warn warnFunc) []types.RefName {
	names := []types.RefName{}
	for _, line := range ParseLines(out) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ref, err := types.ParseRefName(line)
		if err != nil {
			warn("skipping branch with invalid name", "line", line, "error", err)
			continue
		}
		names = append(names, ref)
	}
	return names
}
