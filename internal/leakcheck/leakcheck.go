// Package leakcheck wraps a test body in a resource-leak assertion.
//
// A Guard snapshots the process's open files and network connections on
// Start and compares them on Stop, while intercepting warnings emitted in
// between. Stop always restores the warning handler and re-emits every
// recorded warning before asserting anything, so no diagnostic is
// swallowed even when the guard ultimately fails.
//
// Snapshots need process introspection; when that capability is absent
// the guard still checks warnings and the resource comparison is skipped.
package leakcheck

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/twoertwein/pandas/internal/optdep"
	"github.com/twoertwein/pandas/internal/testcfg"
	"github.com/twoertwein/pandas/internal/warnings"
)

// procReader is the slice of the procinfo capability's handle the guard
// needs.
type procReader interface {
	OpenFiles() ([]process.OpenFilesStat, error)
	Connections() ([]net.ConnectionStat, error)
}

// Option adjusts a guard.
type Option func(*Guard)

// IgnoreConnections suppresses the connection-set comparison. Some suites
// run against backends that pool connections across tests.
func IgnoreConnections() Option {
	return func(g *Guard) { g.ignoreConns = true }
}

// Guard is a scoped leak checker. Obtain one with Start and release it
// with Stop, exactly once, on every exit path (defer, or Check which
// arms Stop as a test cleanup).
type Guard struct {
	rec         *warnings.Recorder
	proc        procReader
	files       map[string]struct{}
	conns       map[string]struct{}
	ignoreConns bool
	strict      bool
	stopped     bool
}

// Start begins a checked scope: warnings are recorded from here on, and
// the current open files and connections are snapshotted.
func Start(opts ...Option) *Guard {
	g := &Guard{
		ignoreConns: testcfg.Bool(testcfg.IgnoreConnections),
		strict:      testcfg.Bool(testcfg.StrictWarnings),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.rec = warnings.Capture()

	if res := optdep.Probe(optdep.ProcInfo); res.Ok() {
		if proc, ok := res.Handle.(procReader); ok {
			files, err := proc.OpenFiles()
			if err != nil {
				// Introspection that cannot enumerate files is as good
				// as absent; warnings are still checked.
				return g
			}
			conns, connErr := proc.Connections()
			if connErr != nil {
				return g
			}
			g.proc = proc
			g.files = fileSet(files)
			g.conns = connSet(conns)
		}
	}
	return g
}

// Stop ends the scope: restores the warning handler, re-emits everything
// recorded, then reports leaks. A second Stop is a no-op returning nil.
func (g *Guard) Stop() error {
	if g.stopped {
		return nil
	}
	g.stopped = true

	records := g.rec.Stop()
	for _, r := range records {
		warnings.Emit(r)
	}

	leak := &LeakError{}
	for _, r := range records {
		switch {
		case r.Category == warnings.Resource:
			// Resource warnings mentioning ssl are a known false
			// positive from the object-storage client; ignore them.
			if !strings.Contains(strings.ToLower(r.Message), "ssl") {
				leak.Warnings = append(leak.Warnings, r)
			}
		case g.strict:
			leak.Warnings = append(leak.Warnings, r)
		}
	}

	if g.proc != nil {
		after, err := g.proc.OpenFiles()
		if err != nil {
			return fmt.Errorf("re-reading open files: %w", err)
		}
		leak.LeakedFiles, leak.ClosedFiles = diff(g.files, fileSet(after))

		if !g.ignoreConns {
			conns, err := g.proc.Connections()
			if err != nil {
				return fmt.Errorf("re-reading connections: %w", err)
			}
			leak.LeakedConns, leak.ClosedConns = diff(g.conns, connSet(conns))
		}
	}

	if leak.any() {
		return leak
	}
	return nil
}

// Check starts a guard for the remainder of the test and fails the test
// on violation. The release runs as a test cleanup, after the body, on
// both passing and failing paths.
func Check(t testing.TB, opts ...Option) {
	t.Helper()
	g := Start(opts...)
	t.Cleanup(func() {
		if err := g.Stop(); err != nil {
			t.Error(err)
		}
	})
}

// Do runs fn inside a checked scope and returns the guard's verdict.
func Do(fn func(), opts ...Option) error {
	g := Start(opts...)
	defer g.Stop()
	fn()
	return g.Stop()
}

// fileSet keys open files by (path, fd); file position metadata is
// deliberately excluded, it changes on ordinary reads.
func fileSet(files []process.OpenFilesStat) map[string]struct{} {
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[fmt.Sprintf("%s (fd %d)", f.Path, f.Fd)] = struct{}{}
	}
	return set
}

// connSet keys connections by everything except status, which flips on
// its own (half-closed sockets and the like).
func connSet(conns []net.ConnectionStat) map[string]struct{} {
	set := make(map[string]struct{}, len(conns))
	for _, c := range conns {
		key := fmt.Sprintf("fd %d family %d type %d %s:%d->%s:%d",
			c.Fd, c.Family, c.Type,
			c.Laddr.IP, c.Laddr.Port, c.Raddr.IP, c.Raddr.Port)
		set[key] = struct{}{}
	}
	return set
}

// diff returns sorted entries only in after (appeared, i.e. leaked) and
// only in before (disappeared, i.e. closed underneath the scope).
func diff(before, after map[string]struct{}) (appeared, disappeared []string) {
	for k := range after {
		if _, ok := before[k]; !ok {
			appeared = append(appeared, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			disappeared = append(disappeared, k)
		}
	}
	sort.Strings(appeared)
	sort.Strings(disappeared)
	return appeared, disappeared
}
