// Package optdep tracks the library's optional capabilities.
//
// A capability is a feature backed by something that may be absent at
// runtime: a storage driver, a plotting backend, process introspection.
// Integrations register themselves here (usually from an init function),
// and callers probe by name. A probe never fails hard; absence is an
// ordinary, expected outcome reported through Result.Ok.
//
// # Versions
//
// A capability publishes its version through its attribute map. Probe
// looks the version up under "version" and falls back to the legacy
// all-caps "VERSION" key; that fallback exists solely for the spreadsheet
// reader integration, which publishes the capitalized form, and should not
// be treated as a general convention. Version floors are compared with
// hashicorp/go-version, which tolerates loosely formed dotted versions.
package optdep

import (
	"fmt"
	"sort"
	"sync"

	goversion "github.com/hashicorp/go-version"

	"github.com/twoertwein/pandas/internal/warnings"
)

// Capability names registered by this module or by the wider library.
const (
	// SQLite is the SQL storage backend driver.
	SQLite = "sqlite"

	// ProcInfo is process introspection (open files, connections).
	ProcInfo = "procinfo"

	// LeakDetect is goroutine-leak verification support for tests.
	LeakDetect = "leakdetect"

	// Numeric is the numeric kernel the frame types are built on.
	Numeric = "numeric"

	// Plot is the plotting backend.
	Plot = "plot"

	// FastEval is the accelerated expression-evaluation engine.
	FastEval = "fastexpr"
)

// SciStack lists the scientific-stack submodules that must all be present
// for tests gated on the full stack.
var SciStack = []string{
	"scistack/stats",
	"scistack/sparse",
	"scistack/interpolate",
	"scistack/signal",
}

// Capability is a registered optional integration.
type Capability struct {
	// Name identifies the capability in probes.
	Name string

	// Handle is the integration's entry point, exposed to callers that
	// probe successfully. Its concrete type is capability-specific.
	Handle any

	// Attrs carries capability metadata. The version, if published,
	// lives under "version" (or legacy "VERSION", see package doc).
	Attrs map[string]string

	// Check, when set, is run at probe time; a non-nil error marks the
	// capability unavailable. Used by integrations whose presence can
	// only be confirmed by exercising them (opening a database, reading
	// the current process).
	Check func() error
}

// Result is the outcome of a probe: either the capability with its
// resolved version, or an absence marker.
//
// Err is set when a version floor was requested but the published or
// requested version could not be parsed, or no version was published at
// all. Such results are not Ok, and the underlying comparator's error is
// carried rather than swallowed.
type Result struct {
	Name    string
	Handle  any
	Version string
	Err     error

	ok bool
}

// Ok reports whether the capability is available (and meets the version
// floor, when one was requested).
func (r Result) Ok() bool { return r.ok }

// ProbeOption adjusts a probe.
type ProbeOption func(*probeConfig)

type probeConfig struct {
	minVersion string
}

// WithMinVersion requires the capability's published version to be at
// least min.
func WithMinVersion(min string) ProbeOption {
	return func(c *probeConfig) { c.minVersion = min }
}

// Registry holds registered capabilities. The zero value is not usable;
// use NewRegistry.
type Registry struct {
	mu   sync.RWMutex
	caps map[string]Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caps: make(map[string]Capability)}
}

// Register adds or replaces a capability.
func (r *Registry) Register(c Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caps[c.Name] = c
}

// Deregister removes a capability. Removing an unknown name is a no-op.
func (r *Registry) Deregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.caps, name)
}

// Names returns all registered capability names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.caps))
	for name := range r.caps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Probe looks up a capability and runs its check.
//
// While the check runs, deprecation warnings originating from the probed
// capability are suppressed: integrations whose self-check exercises
// deprecated code paths would otherwise spam every probe, and the caller
// can do nothing about them.
func (r *Registry) Probe(name string, opts ...ProbeOption) Result {
	var cfg probeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r.mu.RLock()
	c, found := r.caps[name]
	r.mu.RUnlock()
	if !found {
		return Result{Name: name}
	}

	if c.Check != nil {
		stop := warnings.Suppress(func(rec warnings.Record) bool {
			return rec.Category == warnings.Deprecation && rec.Origin == name
		})
		err := c.Check()
		stop()
		if err != nil {
			return Result{Name: name}
		}
	}

	version := lookupVersion(c.Attrs)
	if cfg.minVersion == "" {
		return Result{Name: name, Handle: c.Handle, Version: version, ok: true}
	}

	if version == "" {
		return Result{Name: name, Err: fmt.Errorf("capability %q publishes no version (floor %s requested)", name, cfg.minVersion)}
	}
	have, err := goversion.NewVersion(version)
	if err != nil {
		return Result{Name: name, Err: fmt.Errorf("capability %q version %q: %w", name, version, err)}
	}
	want, err := goversion.NewVersion(cfg.minVersion)
	if err != nil {
		return Result{Name: name, Err: fmt.Errorf("requested floor %q: %w", cfg.minVersion, err)}
	}
	if have.LessThan(want) {
		return Result{Name: name}
	}
	return Result{Name: name, Handle: c.Handle, Version: version, ok: true}
}

// lookupVersion resolves the published version from the attribute map.
// The capitalized fallback covers exactly one known integration; see the
// package doc.
func lookupVersion(attrs map[string]string) string {
	if v := attrs["version"]; v != "" {
		return v
	}
	return attrs["VERSION"]
}

// Default is the process-wide registry used by the package-level helpers.
var Default = NewRegistry()

// Register adds a capability to the default registry.
func Register(c Capability) { Default.Register(c) }

// Deregister removes a capability from the default registry.
func Deregister(name string) { Default.Deregister(name) }

// Names lists the default registry's capabilities, sorted.
func Names() []string { return Default.Names() }

// Probe probes the default registry.
func Probe(name string, opts ...ProbeOption) Result { return Default.Probe(name, opts...) }
