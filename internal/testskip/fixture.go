package testskip

import (
	"fmt"
	"strings"
)

// Fixture is parametrized-fixture metadata: a name and a doc template.
type Fixture struct {
	Name string

	// Doc may contain positional placeholders {0}, {1}, ... filled in
	// by FixtureDoc.
	Doc string
}

// FixtureDoc returns a decorator that formats a fixture's doc template
// with the given positional values. The fixture is otherwise returned
// unchanged; this is a pure metadata transform with no effect on test
// execution.
func FixtureDoc(values ...any) func(Fixture) Fixture {
	return func(f Fixture) Fixture {
		f.Doc = formatDoc(f.Doc, values...)
		return f
	}
}

// formatDoc substitutes {i} placeholders. Placeholders without a
// corresponding value are left as-is.
func formatDoc(template string, values ...any) string {
	pairs := make([]string, 0, 2*len(values))
	for i, v := range values {
		pairs = append(pairs, fmt.Sprintf("{%d}", i), fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
