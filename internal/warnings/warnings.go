// Package warnings is the library's warning facility.
//
// Warnings are advisory diagnostics emitted by library code: a file handle
// finalized while still open, a deprecated option, and so on. They are
// delivered to a single process-wide handler, which by default logs them
// via slog. Test infrastructure swaps the handler to record warnings
// (see Capture) or to drop known-noisy ones (see Suppress).
//
// Handler swaps nest: each guard remembers the handler it replaced and
// restores it on Stop. Guards must be stopped in reverse order of
// installation, which falls out naturally from defer.
package warnings

import (
	"fmt"
	"log/slog"
	"sync"
)

// Category classifies a warning.
type Category string

const (
	// Resource flags a resource (file, socket) that was not released
	// before it became unreachable.
	Resource Category = "resource"

	// Deprecation flags use of a deprecated option or code path.
	Deprecation Category = "deprecation"

	// User is the catch-all category for library-level advisories.
	User Category = "user"
)

// Record is a single emitted warning.
type Record struct {
	Category Category
	Message  string

	// Origin names the component that emitted the warning, when known.
	// Used by suppression filters to target a specific noisy source.
	Origin string
}

func (r Record) String() string {
	if r.Origin != "" {
		return fmt.Sprintf("%s [%s]: %s", r.Category, r.Origin, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Category, r.Message)
}

// Handler receives emitted warnings.
type Handler func(Record)

var (
	mu      sync.Mutex
	handler Handler = defaultHandler
)

func defaultHandler(r Record) {
	slog.Warn("warning", "category", string(r.Category), "origin", r.Origin, "message", r.Message)
}

// Emit delivers a record to the current handler.
func Emit(r Record) {
	mu.Lock()
	h := handler
	mu.Unlock()
	h(r)
}

// Warn builds a record from a format string and delivers it.
func Warn(cat Category, format string, args ...any) {
	Emit(Record{Category: cat, Message: fmt.Sprintf(format, args...)})
}

// WarnFrom is Warn with an explicit origin component.
func WarnFrom(origin string, cat Category, format string, args ...any) {
	Emit(Record{Category: cat, Origin: origin, Message: fmt.Sprintf(format, args...)})
}

// swap installs h and returns the handler it replaced.
func swap(h Handler) Handler {
	mu.Lock()
	defer mu.Unlock()
	prev := handler
	handler = h
	return prev
}

// Recorder intercepts warnings emitted between Capture and Stop.
//
// While active, records are accumulated instead of reaching the previous
// handler. Stop restores the previous handler and returns everything
// recorded; it does not re-emit. Callers that must not swallow diagnostics
// (the leak checker) re-emit the returned records themselves, through the
// handler Stop restored.
type Recorder struct {
	mu      sync.Mutex
	records []Record
	prev    Handler
	stopped bool
}

// Capture installs a recording handler and returns the guard.
func Capture() *Recorder {
	rec := &Recorder{}
	rec.prev = swap(func(r Record) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.records = append(rec.records, r)
	})
	return rec
}

// Stop restores the previous handler and returns the recorded warnings.
// Calling Stop more than once returns the same records without touching
// the handler again.
func (rec *Recorder) Stop() []Record {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if !rec.stopped {
		rec.stopped = true
		swap(rec.prev)
	}
	return rec.records
}

// Suppress installs a handler that drops records matched by pred and
// forwards everything else. The returned stop function restores the
// previous handler.
//
// Used around optional-capability probes whose self-checks are known to
// emit deprecation noise the caller can do nothing about.
func Suppress(pred func(Record) bool) (stop func()) {
	var prev Handler
	prev = swap(func(r Record) {
		if pred(r) {
			return
		}
		prev(r)
	})
	var once sync.Once
	return func() {
		once.Do(func() { swap(prev) })
	}
}
