package types

import (
	"regexp"
	"strconv"
	"strings"

	giterrors "gitpilot.dev/gitpilot/errors"
)

// Tag is a validated tag name.
type Tag struct {
	value string
}

// ParseTag validates raw as a tag name.
func ParseTag(raw string) (Tag, error) {
	if !isValidRefName(raw) {
		return Tag{}, giterrors.NewInvalidFormatError(giterrors.IdentifierTag, raw)
	}
	return Tag{value: raw}, nil
}

// MustParseTag is like ParseTag but panics on invalid input.
func MustParseTag(raw string) Tag {
	t, err := ParseTag(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tag) String() string {
	return t.value
}

// Compare orders tags by their text.
func (t Tag) Compare(other Tag) int {
	return strings.Compare(t.value, other.value)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

var stashRefRegex = regexp.MustCompile(`^stash@\{(\d+)\}$`)

// StashRef is a validated stash reference of the form stash@{N}.
type StashRef struct {
	value string
	index int
}

// ParseStashRef validates raw as a stash reference.
func ParseStashRef(raw string) (StashRef, error) {
	m := stashRefRegex.FindStringSubmatch(raw)
	if m == nil {
		return StashRef{}, giterrors.NewInvalidFormatError(giterrors.IdentifierStashRef, raw)
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return StashRef{}, giterrors.NewInvalidFormatError(giterrors.IdentifierStashRef, raw)
	}
	return StashRef{value: raw, index: idx}, nil
}

// StashRefAt returns the reference for the stash entry at index.
func StashRefAt(index int) StashRef {
	if index < 0 {
		index = 0
	}
	return StashRef{value: "stash@{" + strconv.Itoa(index) + "}", index: index}
}

func (s StashRef) String() string {
	return s.value
}

// Index returns N in stash@{N}.
func (s StashRef) Index() int {
	return s.index
}

// MarshalText implements encoding.TextMarshaler.
func (s StashRef) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (s *StashRef) UnmarshalText(text []byte) error {
	parsed, err := ParseStashRef(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
