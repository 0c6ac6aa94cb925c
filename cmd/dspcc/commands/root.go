// Package commands holds dspcc's cobra subcommands (spec §2 "Configuration").
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dspcc/internal/config"
)

// RootCommand builds the dspcc root command and wires every subcommand,
// following tphakala-birdnet-go's cmd.RootCommand shape.
func RootCommand(settings *config.Settings) *cobra.Command {
	root := &cobra.Command{
		Use:   "dspcc",
		Short: "Complex-number lowering pass and realtime dispatch core driver",
	}

	setupFlags(root, settings)

	root.AddCommand(
		lowerCommand(settings),
		renderCommand(settings),
	)

	return root
}

func setupFlags(cmd *cobra.Command, settings *config.Settings) {
	cmd.PersistentFlags().IntVar(&settings.MaxBlockSize, "max-block-size", settings.MaxBlockSize,
		"maximum frames per dispatch.Wrapper render call")
	cmd.PersistentFlags().IntVar(&settings.Precision, "precision", settings.Precision,
		"complex precision (32 or 64) of the lower command's demo operands")
	cmd.PersistentFlags().StringVar(&settings.LibraryAliasPrefix, "alias-prefix", settings.LibraryAliasPrefix,
		"namespace prefix the Type Remapper specializes (default complex_lib)")
	cmd.PersistentFlags().IntVar(&settings.FIFOCapacity, "fifo-capacity", settings.FIFOCapacity,
		"capacity of dispatch.Wrapper's internal input/output queues")
	cmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "enable debug logging")

	_ = viper.BindPFlags(cmd.PersistentFlags())
}
