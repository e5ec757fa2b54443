package git_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitpilot.dev/gitpilot/git"
)

func TestParseNumstat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []git.DiffStat
	}{
		{
			name:     "text file",
			input:    "3\t0\tsrc/lib.rs\n",
			expected: []git.DiffStat{{Path: "src/lib.rs", Added: 3, Removed: 0}},
		},
		{
			name:     "binary file counts as zero",
			input:    "-\t-\tbinary.png\n",
			expected: []git.DiffStat{{Path: "binary.png", Binary: true}},
		},
		{
			name:  "path with spaces",
			input: "1\t2\tdocs/read me.md\n10\t0\tmain.go\n",
			expected: []git.DiffStat{
				{Path: "docs/read me.md", Added: 1, Removed: 2},
				{Path: "main.go", Added: 10},
			},
		},
		{
			name:     "space separated fallback",
			input:    "4 5 a file.txt\n",
			expected: []git.DiffStat{{Path: "a file.txt", Added: 4, Removed: 5}},
		},
		{
			name:     "malformed lines are skipped",
			input:    "oops\n7\t1\tkept.go\n",
			expected: []git.DiffStat{{Path: "kept.go", Added: 7, Removed: 1}},
		},
		{
			name:     "empty output",
			input:    "",
			expected: []git.DiffStat{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			summary, err := git.ParseNumstat(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, summary.Files)
		})
	}
}

func TestDiffSummaryTotals(t *testing.T) {
	t.Parallel()

	summary, err := git.ParseNumstat("3\t1\ta.go\n-\t-\tb.png\n2\t4\tc.go\n")
	require.NoError(t, err)

	added, removed := summary.Totals()
	require.Equal(t, 5, added)
	require.Equal(t, 5, removed)
}
