package testskip

import (
	"fmt"
	"testing"

	"github.com/twoertwein/pandas/internal/optdep"
)

// Condition is a deferred skip decision: a predicate evaluated when the
// condition is applied to a test, and the reason reported on skip.
type Condition struct {
	// When reports whether the test should be skipped. Evaluated at
	// Apply time, never at construction. A nil When never skips.
	When func() bool

	// Reason is the message passed to t.Skip.
	Reason string
}

// Active evaluates the predicate now.
func (c Condition) Active() bool {
	return c.When != nil && c.When()
}

// Apply skips t when the condition holds.
func (c Condition) Apply(t testing.TB) {
	t.Helper()
	if c.Active() {
		t.Skip(c.Reason)
	}
}

// Not inverts the condition. The reason should be rephrased by the
// caller when it matters; by default it is prefixed accordingly.
func Not(c Condition, reason string) Condition {
	return Condition{
		When:   func() bool { return !c.Active() },
		Reason: reason,
	}
}

// IfNo skips when the named capability is not available.
func IfNo(name string) Condition {
	return Condition{
		When:   func() bool { return !optdep.Probe(name).Ok() },
		Reason: fmt.Sprintf("could not find capability %q", name),
	}
}

// IfBelow skips when the named capability is absent or its version is
// below minVersion.
func IfBelow(name, minVersion string) Condition {
	return Condition{
		When: func() bool {
			return !optdep.Probe(name, optdep.WithMinVersion(minVersion)).Ok()
		},
		Reason: fmt.Sprintf("could not find capability %q satisfying a minimum version of %s", name, minVersion),
	}
}

// IfInstalled skips when the named capability IS available. Used by tests
// that exercise the fallback path a capability would otherwise shadow.
func IfInstalled(name string) Condition {
	return Condition{
		When:   func() bool { return optdep.Probe(name).Ok() },
		Reason: fmt.Sprintf("skipping because capability %q is installed", name),
	}
}
