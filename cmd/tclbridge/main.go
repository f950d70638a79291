// Command tclbridge exercises the value bridge from the command line.
//
//	tclbridge load data.yaml   # load arrays and lists, print them back
//	tclbridge repl             # interactive list and array shell
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/feather-lang/tclbridge"
)

// app carries state shared by the subcommands.
type app struct {
	verbose bool
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "tclbridge",
		Short:         "Work with TCL lists and arrays from Go",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = newLogger(cmd.ErrOrStderr(), a.verbose)
			tclbridge.SetLogger(a.log.Named("bridge"))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newLoadCmd(a), newReplCmd(a))
	return cmd
}

func main() {
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())

	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
