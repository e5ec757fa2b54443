package git

import (
	"strconv"
	"strings"

	giterrors "gitpilot.dev/gitpilot/errors"
	"gitpilot.dev/gitpilot/types"
)

// CommitFormat is the --format template understood by ParseCommit.
const CommitFormat = "%H%n" +
	"shortcommit %h%n" +
	"author_name %an%n" +
	"author_email %ae%n" +
	"timestamp %at%n" +
	"%P%n" +
	"message %s"

const (
	shortHashLabel   = "shortcommit "
	authorNameLabel  = "author_name "
	authorEmailLabel = "author_email "
	timestampLabel   = "timestamp "
	messageLabel     = "message "
)

// ParseCommit decodes the output of git show --no-patch --format=CommitFormat.
// The hash, the short hash and a numeric timestamp are required.
func ParseCommit(out string) (*Commit, error) {
	var (
		hash, short  string
		timestamp    string
		hasTimestamp bool
		parents      string
		hasParents   bool
		c            Commit
	)

	for _, line := range ParseLines(out) {
		switch {
		case hash == "":
			if line == "" {
				continue
			}
			hash = line
		case strings.HasPrefix(line, shortHashLabel):
			short = strings.TrimPrefix(line, shortHashLabel)
		case strings.HasPrefix(line, authorNameLabel):
			c.AuthorName = strings.TrimPrefix(line, authorNameLabel)
		case strings.HasPrefix(line, authorEmailLabel):
			c.AuthorEmail = strings.TrimPrefix(line, authorEmailLabel)
		case strings.HasPrefix(line, timestampLabel):
			timestamp = strings.TrimPrefix(line, timestampLabel)
			hasTimestamp = true
		case strings.HasPrefix(line, messageLabel):
			c.Message = strings.TrimPrefix(line, messageLabel)
		case !hasParents && hasTimestamp:
			parents = line
			hasParents = true
		}
	}

	if hash == "" {
		return nil, giterrors.NewParseError("commit", "missing commit hash", out)
	}
	h, err := types.ParseCommitHash(hash)
	if err != nil {
		return nil, giterrors.NewParseError("commit", "invalid commit hash "+strconv.Quote(hash), out)
	}
	c.Hash = h

	if short == "" {
		return nil, giterrors.NewParseError("commit", "missing short hash", out)
	}
	sh, err := types.ParseCommitHash(short)
	if err != nil {
		return nil, giterrors.NewParseError("commit", "invalid short hash "+strconv.Quote(short), out)
	}
	c.ShortHash = sh

	if !hasTimestamp {
		return nil, giterrors.NewParseError("commit", "missing timestamp", out)
	}
	ts, err := strconv.ParseUint(strings.TrimSpace(timestamp), 10, 63)
	if err != nil {
		return nil, giterrors.NewParseError("commit", "invalid timestamp "+strconv.Quote(timestamp), out)
	}
	c.Timestamp = int64(ts)

	c.Parents = []types.CommitHash{}
	for _, p := range strings.Fields(parents) {
		ph, err := types.ParseCommitHash(p)
		if err != nil {
			return nil, giterrors.NewParseError("commit", "invalid parent hash "+strconv.Quote(p), out)
		}
		c.Parents = append(c.Parents, ph)
	}

	return &c, nil
}

// ParseLog decodes git log -z --format=CommitFormat, one commit per NUL-separated record.
func ParseLog(out string) ([]Commit, error) {
	commits := []Commit{}
	for _, record := range strings.Split(out, "\x00") {
		if strings.TrimSpace(record) == "" {
			continue
		}
		c, err := ParseCommit(record)
		if err != nil {
			return nil, err
		}
		commits = append(commits, *c)
	}
	return commits, nil
}
