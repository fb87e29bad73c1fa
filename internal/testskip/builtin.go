package testskip

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/twoertwein/pandas/internal/optdep"
	"github.com/twoertwein/pandas/internal/testcfg"
)

// offscreenBackend is implemented by plotting backends that can render
// without a display. Probing the plot capability switches an available
// backend offscreen so suite runs never open windows.
type offscreenBackend interface {
	UseOffscreen()
}

func probePlot() bool {
	res := optdep.Probe(optdep.Plot)
	if !res.Ok() {
		return false
	}
	if backend, ok := res.Handle.(offscreenBackend); ok {
		backend.UseOffscreen()
	}
	return true
}

// NoPlot skips tests that need the plotting backend.
var NoPlot = Condition{
	When:   func() bool { return !probePlot() },
	Reason: "missing plotting backend",
}

// Plot skips tests that exercise the no-plotting fallback path.
var Plot = Condition{
	When:   probePlot,
	Reason: "plotting backend is present",
}

// Not64Bit skips tests that assume 64-bit integer and pointer widths.
var Not64Bit = Condition{
	When:   func() bool { return strconv.IntSize != 64 },
	Reason: "skipping on non-64-bit platform",
}

// Windows skips tests that do not apply on Windows.
var Windows = Condition{
	When:   func() bool { return runtime.GOOS == "windows" },
	Reason: "running on Windows",
}

// HasLocale skips tests that require no specific locale to be set.
var HasLocale = Condition{
	When:   func() bool { return CurrentLocale() != "" },
	Reason: "a specific locale is set",
}

// NotUSLocale skips tests whose expected output assumes the en_US locale.
var NotUSLocale = Condition{
	When:   func() bool { return !IsUSLocale() },
	Reason: "requires the en_US locale",
}

// NoSciStack skips tests needing the full scientific stack: every
// submodule must probe available.
var NoSciStack = Condition{
	When: func() bool {
		for _, name := range optdep.SciStack {
			if !optdep.Probe(name).Ok() {
				return true
			}
		}
		return false
	},
	Reason: "missing scientific-stack requirement",
}

// NoFastEval skips tests that need accelerated expression evaluation,
// either because the engine is absent or because the suite disabled it.
var NoFastEval = Condition{
	When: func() bool {
		return !testcfg.Bool(testcfg.UseFastExpr) || !optdep.Probe(optdep.FastEval).Ok()
	},
	Reason: "accelerated expression evaluation is disabled or not installed",
}

// NumericBelow skips tests that need the numeric kernel at minVersion or
// newer.
func NumericBelow(minVersion string) Condition {
	return Condition{
		When: func() bool {
			return !optdep.Probe(optdep.Numeric, optdep.WithMinVersion(minVersion)).Ok()
		},
		Reason: fmt.Sprintf("numeric kernel %s or greater required", minVersion),
	}
}

// The alt-storage conditions read the suite configuration when applied,
// not when this package initializes: the option is set by the suite entry
// point well after init.

// AltStorageNotYetImplemented marks tests for features the columnar
// storage backend does not cover yet.
var AltStorageNotYetImplemented = Condition{
	When:   func() bool { return testcfg.Bool(testcfg.AltStorage) },
	Reason: "JSON codec relies on the block storage layout",
}

// AltStorageInvalidTest marks tests that poke block-storage internals and
// are meaningless against the columnar backend.
var AltStorageInvalidTest = Condition{
	When:   func() bool { return testcfg.Bool(testcfg.AltStorage) },
	Reason: "test relies on block storage internals or specific behaviour",
}
