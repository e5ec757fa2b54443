package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	giterrors "gitpilot.dev/gitpilot/errors"
	"gitpilot.dev/gitpilot/types"
)

func TestParseCommitHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "full sha1", input: "4b825dc642cb6eb9a060e54bf8d69288fbee4904", valid: true},
		{name: "abbreviated", input: "4b825dc", valid: true},
		{name: "minimum length", input: "abcd", valid: true},
		{name: "uppercase", input: "ABCDEF12", valid: true},
		{name: "sha256", input: "6ef19b41225c5369f1c104d45d8d85efa9b057b53b14b4b9b939dd74decc5321", valid: true},
		{name: "too short", input: "abc", valid: false},
		{name: "too long", input: "6ef19b41225c5369f1c104d45d8d85efa9b057b53b14b4b9b939dd74decc53210", valid: false},
		{name: "non hex", input: "xyz1234", valid: false},
		{name: "empty", input: "", valid: false},
		{name: "flag", input: "--all", valid: false},
		{name: "whitespace", input: " 4b825dc", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, err := types.ParseCommitHash(tt.input)
			if !tt.valid {
				require.ErrorIs(t, err, giterrors.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.input, h.String())
		})
	}
}

func TestCommitHashHelpers(t *testing.T) {
	t.Parallel()

	full := types.MustParseCommitHash("4b825dc642cb6eb9a060e54bf8d69288fbee4904")
	short := types.MustParseCommitHash("4B825DC")

	require.True(t, full.IsFull())
	require.False(t, short.IsFull())
	require.True(t, full.HasPrefix(short))
	require.Equal(t, "4b825dc", full.Short(7))
	require.Equal(t, "4B825DC", short.Short(40))
}

func TestParseRemoteName(t *testing.T) {
	t.Parallel()

	name, err := types.ParseRemoteName("origin")
	require.NoError(t, err)
	require.Equal(t, "origin", name.String())

	for _, raw := range []string{"", "-f", "with space", "bad..name"} {
		_, err := types.ParseRemoteName(raw)
		var formatErr *giterrors.InvalidFormatError
		require.ErrorAs(t, err, &formatErr, raw)
		require.Equal(t, giterrors.IdentifierRemoteName, formatErr.Identifier)
	}
}

func TestParseStashRef(t *testing.T) {
	t.Parallel()

	ref, err := types.ParseStashRef("stash@{3}")
	require.NoError(t, err)
	require.Equal(t, 3, ref.Index())
	require.Equal(t, "stash@{3}", ref.String())
	require.Equal(t, ref, types.StashRefAt(3))

	for _, raw := range []string{"stash", "stash@{}", "stash@{-1}", "refs/stash", "stash@{0} "} {
		_, err := types.ParseStashRef(raw)
		require.ErrorIs(t, err, giterrors.ErrInvalidFormat, raw)
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tag, err := types.ParseTag("v1.2.3")
	require.NoError(t, err)
	require.Equal(t, "v1.2.3", tag.String())

	_, err = types.ParseTag("-d")
	var formatErr *giterrors.InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
	require.Equal(t, giterrors.IdentifierTag, formatErr.Identifier)
}
