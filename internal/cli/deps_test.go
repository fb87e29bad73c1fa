package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoertwein/pandas/internal/optdep"
)

// fixedRegistry builds a registry with known contents for deterministic
// report output.
func fixedRegistry() *optdep.Registry {
	reg := optdep.NewRegistry()
	reg.Register(optdep.Capability{
		Name:  "alpha",
		Attrs: map[string]string{"version": "1.2.3"},
	})
	reg.Register(optdep.Capability{Name: "beta"})
	reg.Register(optdep.Capability{
		Name:  "gamma",
		Check: func() error { return errors.New("backend gone") },
	})
	return reg
}

func TestBuildDepsReport(t *testing.T) {
	report := BuildDepsReport(fixedRegistry(), "run-1")

	require.Len(t, report.Capabilities, 3)
	assert.Equal(t, 1, report.Missing)

	// Sorted by name.
	assert.Equal(t, "alpha", report.Capabilities[0].Name)
	assert.True(t, report.Capabilities[0].Available)
	assert.Equal(t, "1.2.3", report.Capabilities[0].Version)

	assert.True(t, report.Capabilities[1].Available)
	assert.Empty(t, report.Capabilities[1].Version)

	assert.False(t, report.Capabilities[2].Available)
}

func TestDepsReport_RenderTextGolden(t *testing.T) {
	report := BuildDepsReport(fixedRegistry(), "fixed-run-id")

	buf := &bytes.Buffer{}
	require.NoError(t, report.RenderText(buf, false))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "deps_report", buf.Bytes())
}

func TestDepsReport_RenderTextVerbose(t *testing.T) {
	report := BuildDepsReport(fixedRegistry(), "run-42")

	buf := &bytes.Buffer{}
	require.NoError(t, report.RenderText(buf, true))
	assert.Contains(t, buf.String(), "run run-42")
	assert.Contains(t, buf.String(), "1 missing")
}

func TestDepsCommand_JSON(t *testing.T) {
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--format", "json", "deps"})

	err := cmd.Execute()
	// The default registry has capabilities without Go backends on some
	// platforms; only the response shape is asserted.
	if err != nil {
		assert.Equal(t, ExitFailure, GetExitCode(err))
	}

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotNil(t, resp.Data)
}

func TestEnvCommand_Text(t *testing.T) {
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"env"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "os: ")
	assert.Contains(t, buf.String(), "64-bit: ")
}
