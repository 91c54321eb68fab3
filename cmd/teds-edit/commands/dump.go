package commands

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ieee1451/teds-go/pkg/inspect"
	"github.com/ieee1451/teds-go/pkg/persistence"
	"github.com/ieee1451/teds-go/pkg/snapshot"
	"github.com/ieee1451/teds-go/pkg/teds"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex dump the records of a TEDS file",
		Long: `Print the frame header and every TLV record with its offset. Records are
named after the fields of the detected schema; unknown records print as
type_N. The dump does not decode values, so it also works on files that
fail to load.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := persistence.ReadFile(args[0])
			if err != nil {
				return err
			}
			payload, err := teds.Unframe(data)
			if err != nil {
				return err
			}
			sum := binary.BigEndian.Uint16(data[len(data)-teds.ChecksumSize:])
			fmt.Fprintf(a.out, "%s: %d octets, payload %d, checksum 0x%04x\n",
				args[0], len(data), len(payload), sum)

			var b *teds.Block
			if schema, err := a.reg.Detect(payload); err == nil {
				b, _ = a.reg.New(schema)
				fmt.Fprintf(a.out, "schema: %s\n", schema)
			} else {
				a.logger.Warn("schema not detected", "error", err)
			}
			text, err := inspect.NewFormatter().FormatDump(payload, b)
			fmt.Fprint(a.out, text)
			return err
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a TEDS file as JSON, YAML or CBOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := snapshot.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			data, err := snapshot.Marshal(s.Block(), f)
			if err != nil {
				return err
			}
			if out == "" {
				if f == snapshot.CBOR {
					return fmt.Errorf("cbor export needs --write")
				}
				if len(data) > 0 && data[len(data)-1] != '\n' {
					data = append(data, '\n')
				}
				_, err = a.out.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			a.printer.Success(fmt.Sprintf("Exported %s", out))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Export format (json|yaml|cbor)")
	cmd.Flags().StringVarP(&out, "write", "w", "", "Write to a file instead of stdout")
	return cmd
}
