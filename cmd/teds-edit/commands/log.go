package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ieee1451/teds-go/internal/cli/output"
	"github.com/ieee1451/teds-go/internal/logview"
)

func newLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect .tlog event files",
		Long: `Inspect event logs written with --protocol-log. Each event records a
frame, a TLV record, a field edit, a state change or an error of one
editing session.`,
	}
	cmd.AddCommand(newLogViewCmd(a), newLogFilterCmd(a), newLogExportCmd(a), newLogStatsCmd(a))
	return cmd
}

func addFilterFlags(cmd *cobra.Command, o *logview.FilterOptions) {
	f := cmd.Flags()
	f.StringVar(&o.SessionID, "session", "", "Filter by session ID")
	f.StringVar(&o.Schema, "schema", "", "Filter by schema")
	f.StringVar(&o.Layer, "layer", "", "Filter by layer (frame, record, field)")
	f.StringVar(&o.Direction, "direction", "", "Filter by direction (in, out)")
	f.StringVar(&o.Category, "category", "", "Filter by category (codec, edit, state, error)")
	f.StringVar(&o.TimeStart, "time-start", "", "Events at or after this RFC 3339 time")
	f.StringVar(&o.TimeEnd, "time-end", "", "Events before this RFC 3339 time")
}

func newLogViewCmd(a *app) *cobra.Command {
	var opts logview.FilterOptions
	cmd := &cobra.Command{
		Use:   "view <file.tlog>",
		Short: "View events in human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.Build()
			if err != nil {
				return err
			}
			n, err := logview.View(a.out, args[0], filter)
			if err != nil {
				return err
			}
			a.logger.Debug("viewed events", "count", n)
			return nil
		},
	}
	addFilterFlags(cmd, &opts)
	return cmd
}

func newLogFilterCmd(a *app) *cobra.Command {
	var (
		opts logview.FilterOptions
		out  string
	)
	cmd := &cobra.Command{
		Use:   "filter <file.tlog>",
		Short: "Copy matching events to a new .tlog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--write is required")
			}
			filter, err := opts.Build()
			if err != nil {
				return err
			}
			n, err := logview.Filter(args[0], out, filter)
			if err != nil {
				return err
			}
			a.printer.Success(fmt.Sprintf("Filtered %d events to %s", n, out))
			return nil
		},
	}
	addFilterFlags(cmd, &opts)
	cmd.Flags().StringVarP(&out, "write", "w", "", "Output .tlog file")
	return cmd
}

func newLogExportCmd(a *app) *cobra.Command {
	var (
		opts   logview.FilterOptions
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export <file.tlog>",
		Short: "Export events as JSON lines or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.Build()
			if err != nil {
				return err
			}
			var w io.Writer = a.out
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return logview.Export(w, args[0], format, filter)
		},
	}
	addFilterFlags(cmd, &opts)
	cmd.Flags().StringVar(&format, "format", logview.ExportJSONL, "Export format (jsonl|csv)")
	cmd.Flags().StringVarP(&out, "write", "w", "", "Write to a file instead of stdout")
	return cmd
}

func newLogStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file.tlog>",
		Short: "Summarize an event log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := logview.Stats(args[0])
			if err != nil {
				return err
			}
			if a.printer.Format() != output.FormatTable {
				return a.printer.Print(s)
			}
			return logview.PrintStats(a.out, s)
		},
	}
}
