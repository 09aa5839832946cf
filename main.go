package main

import (
	"os"

	"github.com/cottand/rebank/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	settings := &cmd.Settings{}
	root := &cobra.Command{
		Use:               "rebank [subcommand]",
		Short:             "rebank\n combine, edit and check CCG derivations",
		Args:              cobra.MinimumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: settings.Load,
	}
	settings.Flags(root.PersistentFlags())

	root.AddCommand(cmd.CombineCmd(settings))
	root.AddCommand(cmd.ReplaceCmd(settings))
	root.AddCommand(cmd.CheckCmd(settings))
	root.AddCommand(cmd.LexiconCmd(settings))
	return root
}
