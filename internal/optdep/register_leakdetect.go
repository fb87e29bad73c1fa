package optdep

import (
	"testing"

	"go.uber.org/goleak"
)

// GoroutineVerifier fails a test when goroutines leaked during it.
// The leakdetect capability's handle implements it.
type GoroutineVerifier interface {
	VerifyNone(t testing.TB)
}

type goleakVerifier struct{}

func (goleakVerifier) VerifyNone(t testing.TB) {
	goleak.VerifyNone(t)
}

func init() {
	Register(Capability{
		Name:   LeakDetect,
		Handle: goleakVerifier{},
	})
}
