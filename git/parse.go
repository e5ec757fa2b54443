package git

import (
	"log/slog"
	"strings"
)

// warnFunc reports a skipped record. Parsers never log through anything else.
type warnFunc func(msg string, args ...any)

func defaultWarn(msg string, args ...any) {
	slog.Default().Warn(msg, args...)
}

// ParseLines splits output into lines, dropping the final newline.
func ParseLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return []string{}
	}
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
