// Package config loads dspcc's runtime settings, following
// tphakala-birdnet-go's internal/conf.Settings + cmd/root.go pattern: a
// plain struct populated by spf13/cobra flags bound through
// spf13/viper, rather than the teacher's hand-rolled os.Args parsing
// (cmd/sentra/main.go).
package config

// Settings holds the knobs that configure the two cores' runtime
// behavior. Core A and Core B themselves take no dependency on this
// package; cmd/dspcc wires Settings into the packages that need it.
type Settings struct {
	// MaxBlockSize bounds dispatch.Wrapper's caller-facing block size
	// passed to NewWrapper (spec §4.B.1).
	MaxBlockSize int

	// Precision is the complex precision (32 or 64) of the operands in
	// cmd/dspcc's lower demo module, used only by that demo driver, never
	// by internal/lowering itself (spec §3.1 types are always resolved
	// before the pass runs).
	Precision int

	// LibraryAliasPrefix overrides the "complex_lib" namespace prefix the
	// Type Remapper specializes (spec §4.A.5); exposed for tooling that
	// wants to inspect generated aliases under a distinct name.
	LibraryAliasPrefix string

	// FIFOCapacity bounds dispatch.Wrapper's internal input/output queues.
	FIFOCapacity int

	Debug bool
}

// Defaults returns the settings dspcc starts with before flags or
// environment variables are applied.
func Defaults() *Settings {
	return &Settings{
		MaxBlockSize:       512,
		Precision:          32,
		LibraryAliasPrefix: "complex_lib",
		FIFOCapacity:       256,
	}
}
