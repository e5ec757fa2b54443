package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	giterrors "gitpilot.dev/gitpilot/errors"
	"gitpilot.dev/gitpilot/types"
)

func TestParseRefName(t *testing.T) {
	t.Parallel()

	valid := []string{
		"avalidreference",
		"a/valid/ref",
		"a-valid-ref",
		"v1.0.0",
		"HEAD",
		"feature/new_stuff",
		"fix_123",
		"user@host",
	}
	for _, raw := range valid {
		t.Run("accepts "+raw, func(t *testing.T) {
			t.Parallel()
			name, err := types.ParseRefName(raw)
			require.NoError(t, err)
			require.Equal(t, raw, name.String())
		})
	}

	invalid := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "double dot", input: "double..dot"},
		{name: "caret", input: "inavlid^character"},
		{name: "tilde", input: "invalid~character"},
		{name: "colon", input: "invalid:character"},
		{name: "backslash", input: "invalid\\character"},
		{name: "lone at", input: "@"},
		{name: "at brace", input: "inavlid@{sequence"},
		{name: "leading dot", input: ".start"},
		{name: "trailing dot", input: "end."},
		{name: "leading slash", input: "/start"},
		{name: "trailing slash", input: "end/"},
		{name: "space", input: "with space"},
		{name: "tab", input: "with\tcontrol"},
		{name: "delete char", input: "with\x7fdel"},
		{name: "double slash", input: "with//double"},
		{name: "slash dot", input: "path/./dotslash"},
		{name: "slash star", input: "path/*"},
		{name: "question mark", input: "what?"},
		{name: "open bracket", input: "a[b"},
		{name: "close bracket", input: "a]b"},
		{name: "leading dash", input: "-startwithdash"},
		{name: "flag injection", input: "--upload-pack=evil"},
		{name: "lock suffix", input: "main.lock"},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := types.ParseRefName(tt.input)
			require.ErrorIs(t, err, giterrors.ErrInvalidFormat)

			var formatErr *giterrors.InvalidFormatError
			require.ErrorAs(t, err, &formatErr)
			require.Equal(t, giterrors.IdentifierRefName, formatErr.Identifier)
		})
	}
}

func TestRefNameCompare(t *testing.T) {
	t.Parallel()

	a := types.MustParseRefName("alpha")
	b := types.MustParseRefName("beta")
	require.Negative(t, a.Compare(b))
	require.Positive(t, b.Compare(a))
	require.Zero(t, a.Compare(types.MustParseRefName("alpha")))
	require.Equal(t, a, types.MustParseRefName("alpha"))
}

func TestProperty_AcceptedRefNamesAreSafe(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")

		name, err := types.ParseRefName(raw)
		if err != nil {
			return
		}

		s := name.String()
		if s != raw {
			t.Fatalf("display %q differs from input %q", s, raw)
		}
		if strings.HasPrefix(s, "-") {
			t.Fatalf("accepted name %q starts with a dash", s)
		}
		if strings.HasSuffix(s, ".") {
			t.Fatalf("accepted name %q ends with a dot", s)
		}
		if strings.Contains(s, "..") {
			t.Fatalf("accepted name %q contains ..", s)
		}
		for i := 0; i < len(s); i++ {
			if s[i] < 0x20 || s[i] == 0x7f {
				t.Fatalf("accepted name %q contains a control character", s)
			}
		}
	})
}

func TestProperty_RefNameValidationIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.StringMatching(`[-a-z./@{~^: ]{0,12}`).Draw(t, "raw")

		_, first := types.ParseRefName(raw)
		_, second := types.ParseRefName(raw)
		if (first == nil) != (second == nil) {
			t.Fatalf("validation of %q changed between calls", raw)
		}
	})
}

func TestProperty_RefNameRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.StringMatching(`[a-z][a-z0-9_-]{0,8}(/[a-z][a-z0-9_-]{0,8}){0,3}`).Draw(t, "raw")

		name, err := types.ParseRefName(raw)
		if err != nil {
			t.Fatalf("expected %q to be valid: %v", raw, err)
		}
		text, err := name.MarshalText()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back types.RefName
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if back != name || back.String() != raw {
			t.Fatalf("round trip of %q gave %q", raw, back.String())
		}
	})
}
