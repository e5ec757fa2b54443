package types

import (
	"regexp"
	"strings"

	giterrors "gitpilot.dev/gitpilot/errors"
)

// commitHashRegex covers abbreviated names (git never abbreviates below 4)
// up to full SHA-256 object names.
var commitHashRegex = regexp.MustCompile(`^[0-9a-fA-F]{4,64}$`)

// CommitHash is a validated hexadecimal object name.
type CommitHash struct {
	value string
}

// ParseCommitHash validates raw as a commit hash.
func ParseCommitHash(raw string) (CommitHash, error) {
	if !commitHashRegex.MatchString(raw) {
		return CommitHash{}, giterrors.NewInvalidFormatError(giterrors.IdentifierCommitHash, raw)
	}
	return CommitHash{value: raw}, nil
}

// MustParseCommitHash is like ParseCommitHash but panics on invalid input.
func MustParseCommitHash(raw string) CommitHash {
	h, err := ParseCommitHash(raw)
	if err != nil {
		panic(err)
	}
	return h
}

func (h CommitHash) String() string {
	return h.value
}

// IsZero reports whether h was never parsed.
func (h CommitHash) IsZero() bool {
	return h.value == ""
}

// IsFull reports whether h is a complete SHA-1 or SHA-256 name.
func (h CommitHash) IsFull() bool {
	return len(h.value) == 40 || len(h.value) == 64
}

// Short returns the first n characters of the hash.
func (h CommitHash) Short(n int) string {
	if n <= 0 || n >= len(h.value) {
		return h.value
	}
	return h.value[:n]
}

// HasPrefix reports whether h abbreviates or equals other, ignoring case.
func (h CommitHash) HasPrefix(other CommitHash) bool {
	return strings.HasPrefix(strings.ToLower(h.value), strings.ToLower(other.value))
}

// Compare orders hashes by their text.
func (h CommitHash) Compare(other CommitHash) int {
	return strings.Compare(h.value, other.value)
}

// MarshalText implements encoding.TextMarshaler.
func (h CommitHash) MarshalText() ([]byte, error) {
	return []byte(h.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (h *CommitHash) UnmarshalText(text []byte) error {
	parsed, err := ParseCommitHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
