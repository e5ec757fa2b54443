package git

import (
	"errors"
	"io/fs"
	"os/exec"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	giterrors "gitpilot.dev/gitpilot/errors"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	args := []string{"status"}

	tests := []struct {
		name     string
		outcome  outcome
		wantKind giterrors.Kind
		wantOut  string
	}{
		{
			name:     "lookup failure",
			outcome:  outcome{startErr: &exec.Error{Name: "git", Err: exec.ErrNotFound}},
			wantKind: giterrors.KindExecutableNotFound,
		},
		{
			name:     "missing explicit path",
			outcome:  outcome{startErr: &exec.Error{Name: "/opt/git/bin/git", Err: fs.ErrNotExist}},
			wantKind: giterrors.KindExecutableNotFound,
		},
		{
			name:     "explicit path without execute permission",
			outcome:  outcome{startErr: &exec.Error{Name: "/usr/bin/git", Err: fs.ErrPermission}},
			wantKind: giterrors.KindExecutionFailed,
		},
		{
			name:     "executable is a directory",
			outcome:  outcome{startErr: &exec.Error{Name: "/usr/bin", Err: syscall.EISDIR}},
			wantKind: giterrors.KindExecutionFailed,
		},
		{
			name:     "relative lookup in current directory",
			outcome:  outcome{startErr: &exec.Error{Name: "git", Err: exec.ErrDot}},
			wantKind: giterrors.KindExecutionFailed,
		},
		{
			name:     "other spawn failure",
			outcome:  outcome{startErr: &fs.PathError{Op: "fork/exec", Path: "/usr/bin/git", Err: syscall.EACCES}},
			wantKind: giterrors.KindExecutionFailed,
		},
		{
			name:     "wait failure without exit status",
			outcome:  outcome{waitErr: errors.New("i/o error")},
			wantKind: giterrors.KindExecutionFailed,
		},
		{
			name:     "undecodable stdout",
			outcome:  outcome{stdout: []byte{0xff, 0xfe}},
			wantKind: giterrors.KindUndecodableOutput,
		},
		{
			name:     "undecodable stderr on success is ignored",
			outcome:  outcome{stdout: []byte("ok\n"), stderr: []byte{0xff}},
			wantKind: giterrors.KindUnknown,
			wantOut:  "ok\n",
		},
		{
			name:     "success keeps stdout verbatim",
			outcome:  outcome{stdout: []byte(" M file.txt\n")},
			wantKind: giterrors.KindUnknown,
			wantOut:  " M file.txt\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, _, err := classify("git", args, tt.outcome)
			require.Equal(t, tt.wantKind, giterrors.KindOf(err))
			require.Equal(t, tt.wantOut, out)
		})
	}
}

func TestDecodeStream(t *testing.T) {
	t.Parallel()

	require.Equal(t, "fatal: bad", decodeStream([]byte("fatal: bad\n\n"), stderrPlaceholder))
	require.Equal(t, "line1\nline2", decodeStream([]byte("line1\nline2\r\n"), stdoutPlaceholder))
	require.Equal(t, stderrPlaceholder, decodeStream([]byte{0xc3, 0x28}, stderrPlaceholder))
}

func TestSpanName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "git status", spanName([]string{"status", "--porcelain=v2"}))
	require.Equal(t, "git rebase", spanName([]string{"-c", "core.editor=true", "rebase", "--continue"}))
	require.Equal(t, "git log", spanName([]string{"-C", "/tmp", "--no-pager", "log"}))
	require.Equal(t, "git", spanName(nil))
}
