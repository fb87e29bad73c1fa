// Package testcfg holds runtime configuration for the test suite.
//
// Options are set by the suite's entry point after packages initialize:
// from a YAML file (Load), from PANDAS_TEST_* environment variables
// (LoadEnv), or programmatically (Set). Skip conditions that depend on an
// option read it through Bool at test-run time, never at package init, so
// a value set after init is always respected.
package testcfg

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Option names understood by the suite.
const (
	// AltStorage runs the suite against the experimental columnar
	// storage backend instead of the default block layout.
	AltStorage = "alt_storage"

	// UseFastExpr enables the accelerated expression-evaluation engine.
	UseFastExpr = "use_fastexpr"

	// IgnoreConnections sets the leak checker's default for skipping
	// the connection-set comparison.
	IgnoreConnections = "ignore_connections"

	// StrictWarnings makes the leak checker fail on every captured
	// warning, not only resource warnings.
	StrictWarnings = "strict_warnings"
)

//go:embed schema.json
var schemaJSON string

var schema = mustCompileSchema(schemaJSON, "testcfg.schema.json")

func mustCompileSchema(raw, name string) *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		panic(fmt.Sprintf("parsing embedded %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("adding %s resource: %v", name, err))
	}
	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compiling %s: %v", name, err))
	}
	return sch
}

var (
	mu     sync.RWMutex
	values = map[string]bool{}
)

// Bool returns the current value of a boolean option. Unset options are
// false, except UseFastExpr which defaults to on.
func Bool(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := values[name]
	if !ok {
		return name == UseFastExpr
	}
	return v
}

// Set assigns an option. Unknown names are accepted; the schema only
// constrains file-based configuration.
func Set(name string, value bool) {
	mu.Lock()
	defer mu.Unlock()
	values[name] = value
}

// Reset clears all options back to defaults. Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	values = map[string]bool{}
}

// Load reads a YAML configuration file, validates it against the embedded
// schema, and applies every option in it.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading test config: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing test config %s: %w", path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid test config %s: %w", path, err)
	}

	for name, raw := range doc {
		v, ok := raw.(bool)
		if !ok {
			// The schema already rejects non-boolean values; this is
			// unreachable for validated input.
			return fmt.Errorf("option %q: expected boolean, got %T", name, raw)
		}
		Set(name, v)
	}
	return nil
}

// LoadEnv applies PANDAS_TEST_* environment overrides: for example
// PANDAS_TEST_ALT_STORAGE=1 sets the alt_storage option. Values are
// parsed with strconv.ParseBool; unparsable values are reported.
func LoadEnv() error {
	const prefix = "PANDAS_TEST_"
	for _, kv := range os.Environ() {
		name, raw, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(name, prefix) {
			continue
		}
		opt := strings.ToLower(strings.TrimPrefix(name, prefix))
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("environment override %s=%q: %w", name, raw, err)
		}
		Set(opt, v)
	}
	return nil
}
