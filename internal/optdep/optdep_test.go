package optdep

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoertwein/pandas/internal/warnings"
)

func TestProbe_UnknownName(t *testing.T) {
	reg := NewRegistry()
	res := reg.Probe("definitely_not_a_real_capability_xyz")
	assert.False(t, res.Ok())
	assert.Nil(t, res.Handle)
	assert.NoError(t, res.Err)
}

func TestProbe_RegisteredWithoutFloor(t *testing.T) {
	reg := NewRegistry()
	handle := &struct{ n int }{n: 7}
	reg.Register(Capability{Name: "frobnicator", Handle: handle})

	res := reg.Probe("frobnicator")
	require.True(t, res.Ok())
	assert.Same(t, handle, res.Handle)
	assert.Empty(t, res.Version)
}

func TestProbe_VersionFloor(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Capability{
		Name:  "frobnicator",
		Attrs: map[string]string{"version": "1.9.0"},
	})

	// 1.9.0 < 1.10.0 under dotted-component ordering, not lexically.
	assert.False(t, reg.Probe("frobnicator", WithMinVersion("1.10.0")).Ok())
	assert.True(t, reg.Probe("frobnicator", WithMinVersion("1.9.0")).Ok())
	assert.True(t, reg.Probe("frobnicator", WithMinVersion("1.2.3")).Ok())
}

func TestProbe_LegacyCapitalizedVersionKey(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Capability{
		Name:  "sheetreader",
		Attrs: map[string]string{"VERSION": "2.0.1"},
	})

	res := reg.Probe("sheetreader", WithMinVersion("1.0.0"))
	require.True(t, res.Ok())
	assert.Equal(t, "2.0.1", res.Version)

	// The lowercase key wins when both are present.
	reg.Register(Capability{
		Name:  "sheetreader",
		Attrs: map[string]string{"version": "3.0.0", "VERSION": "2.0.1"},
	})
	assert.Equal(t, "3.0.0", reg.Probe("sheetreader").Version)
}

func TestProbe_NoVersionWithFloor(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Capability{Name: "frobnicator"})

	res := reg.Probe("frobnicator", WithMinVersion("1.0.0"))
	assert.False(t, res.Ok())
	assert.Error(t, res.Err)
}

func TestProbe_UnparsableVersionCarriesError(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Capability{
		Name:  "frobnicator",
		Attrs: map[string]string{"version": "not a version at all"},
	})

	res := reg.Probe("frobnicator", WithMinVersion("1.0.0"))
	assert.False(t, res.Ok())
	assert.Error(t, res.Err)
}

func TestProbe_CheckFailureMeansUnavailable(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Capability{
		Name:  "flaky",
		Check: func() error { return errors.New("backend gone") },
	})
	assert.False(t, reg.Probe("flaky").Ok())
}

func TestProbe_SuppressesOwnDeprecationNoise(t *testing.T) {
	rec := warnings.Capture()
	defer rec.Stop()

	reg := NewRegistry()
	reg.Register(Capability{
		Name: "noisy",
		Check: func() error {
			warnings.WarnFrom("noisy", warnings.Deprecation, "self-check noise")
			warnings.WarnFrom("noisy", warnings.User, "kept")
			warnings.WarnFrom("other", warnings.Deprecation, "kept too")
			return nil
		},
	})
	require.True(t, reg.Probe("noisy").Ok())

	got := rec.Stop()
	require.Len(t, got, 2)
	assert.Equal(t, "kept", got[0].Message)
	assert.Equal(t, "kept too", got[1].Message)
}

func TestDefaultRegistrations(t *testing.T) {
	// Wired by init functions in this package.
	assert.Contains(t, Names(), SQLite)
	assert.Contains(t, Names(), Numeric)
	assert.Contains(t, Names(), LeakDetect)

	res := Probe(Numeric)
	require.True(t, res.Ok())
	assert.NotEmpty(t, res.Version)

	leak := Probe(LeakDetect)
	require.True(t, leak.Ok())
	_, isVerifier := leak.Handle.(GoroutineVerifier)
	assert.True(t, isVerifier)
}

func TestRegistry_DeregisterAndNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Capability{Name: "b"})
	reg.Register(Capability{Name: "a"})
	assert.Equal(t, []string{"a", "b"}, reg.Names())

	reg.Deregister("a")
	reg.Deregister("never-registered")
	assert.Equal(t, []string{"b"}, reg.Names())
	assert.False(t, reg.Probe("a").Ok())
}
