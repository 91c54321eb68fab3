// Package commands implements the teds-edit CLI commands.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the teds-edit root command against os.Args.
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).Execute()
}

// NewRootCmd builds the command tree writing results to out and
// diagnostics to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "teds-edit",
		Short: "IEEE 1451.0 TEDS editor",
		Long: `teds-edit creates, inspects and edits Transducer Electronic Data Sheets
stored as framed binary files (.bin).

Field paths are '/'-separated field names, type tags or #indexes, for
example PhyUnits/Meters, 12/53 or #2/#3.

Use "teds-edit [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "Config file (.yaml or .toml)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVarP(&a.flags.output, "output", "o", "", "Output format (table|json|yaml)")
	pf.StringVar(&a.flags.policy, "policy", "", "Decode policy for unknown records (strict|skip)")
	pf.StringVar(&a.flags.protocolLog, "protocol-log", "", "Write editor events to a .tlog file")
	pf.StringVar(&a.flags.defs, "defs", "", "Directory of record definitions (default: built-in)")
	pf.StringVar(&a.flags.stateFile, "state-file", "", "Editor state file")
	pf.Bool("no-color", false, "Disable colored output")

	root.AddCommand(
		newNewCmd(a),
		newShowCmd(a),
		newFieldsCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newIncludeCmd(a),
		newUUIDCmd(a),
		newDumpCmd(a),
		newExportCmd(a),
		newSchemasCmd(a),
		newRecentCmd(a),
		newShellCmd(a),
		newLogCmd(a),
		newVersionCmd(a),
	)
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}
