// Command dspcc is the CLI front-end driving Core A (the complex-number
// lowering pass) and Core B (the realtime dispatch core) for diagnostic
// and demonstration purposes. Structured the way tphakala-birdnet-go's
// cmd/root.go wires its RootCommand, enriching the teacher's hand-rolled
// os.Args parsing (cmd/sentra/main.go) with spf13/cobra + spf13/viper.
package main

import (
	"fmt"
	"os"

	"dspcc/cmd/dspcc/commands"
	"dspcc/internal/config"
)

func main() {
	settings := config.Defaults()
	root := commands.RootCommand(settings)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
