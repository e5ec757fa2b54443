package types

import (
	"regexp"
	"strings"

	giterrors "gitpilot.dev/gitpilot/errors"
)

// gitURLRegex accepts git, ssh, http(s) and scp-like user@host: URLs ending in .git,
// optionally followed by a trailing slash or a #fragment.
// Local paths and file:// URLs are rejected on purpose.
var gitURLRegex = regexp.MustCompile(`^(?:git|ssh|https?|[\w.-]+@[-\w.]+):(//)?(.*?)(\.git)(/?|#[-\d\w._]+?)$`)

// RemoteURL is a validated git remote URL.
type RemoteURL struct {
	value string
}

// ParseRemoteURL validates raw as a remote URL.
func ParseRemoteURL(raw string) (RemoteURL, error) {
	if !gitURLRegex.MatchString(raw) {
		return RemoteURL{}, giterrors.NewInvalidFormatError(giterrors.IdentifierURL, raw)
	}
	return RemoteURL{value: raw}, nil
}

// MustParseRemoteURL is like ParseRemoteURL but panics on invalid input.
// Intended for constants and tests.
func MustParseRemoteURL(raw string) RemoteURL {
	u, err := ParseRemoteURL(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func (u RemoteURL) String() string {
	return u.value
}

// IsZero reports whether u was never parsed.
func (u RemoteURL) IsZero() bool {
	return u.value == ""
}

// Compare orders URLs by their text.
func (u RemoteURL) Compare(other RemoteURL) int {
	return strings.Compare(u.value, other.value)
}

// MarshalText implements encoding.TextMarshaler.
func (u RemoteURL) MarshalText() ([]byte, error) {
	return []byte(u.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (u *RemoteURL) UnmarshalText(text []byte) error {
	parsed, err := ParseRemoteURL(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
