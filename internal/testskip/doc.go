// Package testskip provides conditional skip helpers for the test suite.
//
// A sample use case is detecting that the plotting backend is absent: any
// test that needs it applies the NoPlot condition and is skipped instead
// of failing on machines without it.
//
// # Conditions
//
// A Condition pairs a predicate with a human-readable reason. Applying it
// to a test evaluates the predicate at that moment and skips when it
// holds:
//
//	func TestPlotFrame(t *testing.T) {
//		testskip.NoPlot.Apply(t)
//		// ...
//	}
//
// Factories build conditions from optional-capability probes:
//
//	testskip.IfNo("scistack/stats").Apply(t)
//	testskip.IfBelow(optdep.SQLite, "3.40").Apply(t)
//	testskip.IfInstalled(optdep.FastEval).Apply(t)
//
// Predicates are deferred: nothing is probed until Apply runs. Conditions
// reading the suite configuration (AltStorageNotYetImplemented,
// AltStorageInvalidTest) therefore honor options set after package init,
// and the locale conditions reflect the locale at test-run time.
package testskip
