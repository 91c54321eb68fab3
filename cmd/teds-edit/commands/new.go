package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ieee1451/teds-go/pkg/editor"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		out  string
		sets []string
		id   string
	)
	cmd := &cobra.Command{
		Use:   "new <schema>",
		Short: "Create a TEDS file with default values",
		Long: `Create a new top-level TEDS block, apply any --set assignments and save it.

Without --file the block is saved in the configured output directory under
its default name: <uuid>.bin for a Meta-TEDS, <schema>-<session>.bin otherwise.`,
		Example: `  teds-edit new meta --set MaxChan=4
  teds-edit new channel --set PhyUnits/Meters=130 --set LowRange=-10 --file chan1.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := editor.New(args[0], a.options())
			if err != nil {
				return err
			}
			if id != "" {
				if err := s.SetUUID(id); err != nil {
					return err
				}
			}
			if err := applySets(s, sets); err != nil {
				return err
			}
			if out == "" {
				out = a.cfg.OutputDir
			}
			written, err := a.save(s, out)
			if err != nil {
				return err
			}
			a.printer.Success(fmt.Sprintf("Created %s (%s, %s)", written, s.Block().Name(), s.Block().State()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "file", "f", "", "Output file or directory")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment path=value (repeatable)")
	cmd.Flags().StringVar(&id, "uuid", "", "Meta-TEDS UUID in hex (default: random)")
	return cmd
}

// applySets applies "path=value" assignments in order.
func applySets(s *editor.Session, sets []string) error {
	for _, kv := range sets {
		path, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q: want path=value", kv)
		}
		if err := s.Set(strings.TrimSpace(path), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
