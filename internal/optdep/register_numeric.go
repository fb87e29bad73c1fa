package optdep

// numericVersion is the version of the bundled numeric kernel. Tests gate
// on it via testskip.NumericBelow.
const numericVersion = "2.3.1"

func init() {
	Register(Capability{
		Name:  Numeric,
		Attrs: map[string]string{"version": numericVersion},
	})
}
