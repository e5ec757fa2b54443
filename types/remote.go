package types

import (
	"strings"

	giterrors "gitpilot.dev/gitpilot/errors"
)

// RemoteName is a validated remote name such as "origin".
// Remote names follow the reference name rules, since git stores them
// under refs/remotes/<name>/.
type RemoteName struct {
	value string
}

// ParseRemoteName validates raw as a remote name.
func ParseRemoteName(raw string) (RemoteName, error) {
	if !isValidRefName(raw) {
		return RemoteName{}, giterrors.NewInvalidFormatError(giterrors.IdentifierRemoteName, raw)
	}
	return RemoteName{value: raw}, nil
}

// MustParseRemoteName is like ParseRemoteName but panics on invalid input.
func MustParseRemoteName(raw string) RemoteName {
	r, err := ParseRemoteName(raw)
	if err != nil {
		panic(err)
	}
	return r
}

func (r RemoteName) String() string {
	return r.value
}

// IsZero reports whether r was never parsed.
func (r RemoteName) IsZero() bool {
	return r.value == ""
}

// Compare orders remote names by their text.
func (r RemoteName) Compare(other RemoteName) int {
	return strings.Compare(r.value, other.value)
}

// MarshalText implements encoding.TextMarshaler.
func (r RemoteName) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (r *RemoteName) UnmarshalText(text []byte) error {
	parsed, err := ParseRemoteName(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
