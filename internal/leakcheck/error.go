package leakcheck

import (
	"fmt"
	"strings"

	"github.com/twoertwein/pandas/internal/warnings"
)

// LeakError reports everything a checked scope leaked: offending
// warnings, file handles, and connections. Each slice may independently
// be empty.
type LeakError struct {
	// Warnings are the recorded warnings that count as violations:
	// resource warnings not mentioning ssl, plus every other warning
	// under strict mode.
	Warnings []warnings.Record

	// LeakedFiles are (path, fd) pairs open at Stop but not at Start;
	// ClosedFiles the reverse.
	LeakedFiles []string
	ClosedFiles []string

	// LeakedConns and ClosedConns are the connection-set differences.
	LeakedConns []string
	ClosedConns []string
}

func (e *LeakError) any() bool {
	return len(e.Warnings) > 0 ||
		len(e.LeakedFiles) > 0 || len(e.ClosedFiles) > 0 ||
		len(e.LeakedConns) > 0 || len(e.ClosedConns) > 0
}

func (e *LeakError) Error() string {
	var buf strings.Builder
	buf.WriteString("resource leak check failed")

	if len(e.Warnings) > 0 {
		fmt.Fprintf(&buf, "\n  warnings (%d):", len(e.Warnings))
		for _, w := range e.Warnings {
			fmt.Fprintf(&buf, "\n    %s", w)
		}
	}
	section := func(label string, entries []string) {
		if len(entries) == 0 {
			return
		}
		fmt.Fprintf(&buf, "\n  %s:", label)
		for _, entry := range entries {
			fmt.Fprintf(&buf, "\n    %s", entry)
		}
	}
	section("files left open", e.LeakedFiles)
	section("files closed under the scope", e.ClosedFiles)
	section("connections left open", e.LeakedConns)
	section("connections closed under the scope", e.ClosedConns)

	return buf.String()
}
