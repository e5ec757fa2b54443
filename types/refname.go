package types

import (
	"strings"

	giterrors "gitpilot.dev/gitpilot/errors"
)

const (
	invalidRefChars  = " ~^:\\?[]*"
	invalidRefPrefix = "-"
	invalidRefSuffix = "."
)

var invalidRefSequences = []string{"..", "/.", "@{", "//", "/*"}

// isValidRefName approximates git check-ref-format. It is a safety floor
// rather than a full reimplementation: per-component rules beyond the ones
// below are left to git itself.
func isValidRefName(name string) bool {
	if name == "" || name == "@" {
		return false
	}
	if strings.HasPrefix(name, invalidRefPrefix) || strings.HasSuffix(name, invalidRefSuffix) {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return false
	}
	if strings.HasSuffix(name, ".lock") {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x20 || c == 0x7f {
			return false
		}
		if strings.IndexByte(invalidRefChars, c) >= 0 {
			return false
		}
	}
	for _, seq := range invalidRefSequences {
		if strings.Contains(name, seq) {
			return false
		}
	}
	return true
}

// RefName is a validated reference name such as a branch.
type RefName struct {
	value string
}

// ParseRefName validates raw as a reference name.
func ParseRefName(raw string) (RefName, error) {
	if !isValidRefName(raw) {
		return RefName{}, giterrors.NewInvalidFormatError(giterrors.IdentifierRefName, raw)
	}
	return RefName{value: raw}, nil
}

// MustParseRefName is like ParseRefName but panics on invalid input.
func MustParseRefName(raw string) RefName {
	n, err := ParseRefName(raw)
	if err != nil {
		panic(err)
	}
	return n
}

func (n RefName) String() string {
	return n.value
}

// IsZero reports whether n was never parsed.
func (n RefName) IsZero() bool {
	return n.value == ""
}

// Compare orders names by their text.
func (n RefName) Compare(other RefName) int {
	return strings.Compare(n.value, other.value)
}

// MarshalText implements encoding.TextMarshaler.
func (n RefName) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (n *RefName) UnmarshalText(text []byte) error {
	parsed, err := ParseRefName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
