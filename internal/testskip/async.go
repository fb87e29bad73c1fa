package testskip

import (
	"testing"

	"github.com/twoertwein/pandas/internal/optdep"
)

// AsyncTest marks a test that exercises the library's asynchronous I/O
// paths. When goroutine-leak verification is available it is armed for
// the test, so goroutines leaked by the async machinery fail it;
// otherwise the test is skipped rather than run unverified.
func AsyncTest(t testing.TB) {
	t.Helper()
	res := optdep.Probe(optdep.LeakDetect)
	if !res.Ok() {
		t.Skip("missing dependency leakdetect")
		return
	}
	verifier, ok := res.Handle.(optdep.GoroutineVerifier)
	if !ok {
		t.Skip("missing dependency leakdetect")
		return
	}
	t.Cleanup(func() { verifier.VerifyNone(t) })
}
