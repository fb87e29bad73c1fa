package testcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testcfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBool_Defaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.False(t, Bool(AltStorage))
	assert.False(t, Bool(IgnoreConnections))
	assert.False(t, Bool(StrictWarnings))
	// FastExpr is opt-out, not opt-in.
	assert.True(t, Bool(UseFastExpr))
}

func TestSet_OverridesDefault(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Set(UseFastExpr, false)
	assert.False(t, Bool(UseFastExpr))

	Set(AltStorage, true)
	assert.True(t, Bool(AltStorage))
}

func TestLoad_ValidFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := writeConfig(t, "alt_storage: true\nuse_fastexpr: false\n")
	require.NoError(t, Load(path))

	assert.True(t, Bool(AltStorage))
	assert.False(t, Bool(UseFastExpr))
	assert.False(t, Bool(StrictWarnings))
}

func TestLoad_RejectsUnknownOption(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := writeConfig(t, "no_such_option: true\n")
	err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid test config")
}

func TestLoad_RejectsNonBoolean(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := writeConfig(t, "alt_storage: \"yes\"\n")
	assert.Error(t, Load(path))
}

func TestLoad_MissingFile(t *testing.T) {
	assert.Error(t, Load(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestLoadEnv(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("PANDAS_TEST_ALT_STORAGE", "1")
	t.Setenv("PANDAS_TEST_USE_FASTEXPR", "false")
	require.NoError(t, LoadEnv())

	assert.True(t, Bool(AltStorage))
	assert.False(t, Bool(UseFastExpr))
}

func TestLoadEnv_Unparsable(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("PANDAS_TEST_ALT_STORAGE", "definitely")
	assert.Error(t, LoadEnv())
}
