package cli

import (
	"bytes"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoertwein/pandas/internal/testcfg"
)

func TestBuildEnvReport(t *testing.T) {
	testcfg.Reset()
	t.Cleanup(testcfg.Reset)

	t.Setenv("LC_ALL", "en_US.UTF-8")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")

	report := BuildEnvReport()
	assert.Equal(t, runtime.GOOS, report.OS)
	assert.Equal(t, runtime.GOARCH, report.Arch)
	assert.Equal(t, strconv.IntSize == 64, report.Is64Bit)
	assert.Equal(t, "en_US", report.Locale)
	assert.True(t, report.USLocale)
	assert.False(t, report.AltStorage)
	assert.True(t, report.FastExpr)
}

func TestEnvReport_RenderText(t *testing.T) {
	report := &EnvReport{
		OS:      "linux",
		Arch:    "amd64",
		Is64Bit: true,
	}

	buf := &bytes.Buffer{}
	require.NoError(t, report.RenderText(buf, false))
	assert.Contains(t, buf.String(), "os: linux")
	assert.Contains(t, buf.String(), "locale: (none)")
	assert.NotContains(t, buf.String(), "alt storage")

	buf.Reset()
	require.NoError(t, report.RenderText(buf, true))
	assert.Contains(t, buf.String(), "alt storage: false")
}
