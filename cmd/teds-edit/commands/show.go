package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ieee1451/teds-go/internal/cli/output"
	"github.com/ieee1451/teds-go/pkg/inspect"
	"github.com/ieee1451/teds-go/pkg/snapshot"
)

func newShowCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show a TEDS file as a tree",
		Long: `Decode a TEDS file and print every field. Table output renders an
indented tree; json and yaml print a structured snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			if a.printer.Format() != output.FormatTable {
				return a.printer.Print(snapshot.Take(s.Block()))
			}
			f := inspect.NewFormatter()
			f.ShowExcluded = all
			fmt.Fprint(a.out, f.FormatTree(s.Block()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include excluded optional fields")
	return cmd
}

// fieldList renders FieldInfo rows as a table.
type fieldList []inspect.FieldInfo

func (l fieldList) Headers() []string {
	return []string{"#", "Tag", "Name", "Type", "Value", "Flags"}
}

func (l fieldList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, info := range l {
		value := info.Value
		if info.Nested {
			value = "{...}"
		}
		rows[i] = []string{
			fmt.Sprint(info.Index),
			fmt.Sprint(info.Tag),
			info.Name,
			inspect.FormatType(info),
			value,
			inspect.FormatFlags(info),
		}
	}
	return rows
}

func newFieldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <file> [path]",
		Short: "List the fields of a block or nested block",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			insp := s.Inspector()
			if len(args) == 2 {
				p, err := inspect.ParsePath(args[1])
				if err != nil {
					return err
				}
				f, err := insp.Lookup(p)
				if err != nil {
					return err
				}
				if !f.IsNested() {
					return fmt.Errorf("%w: %s", inspect.ErrNotNested, f.Name())
				}
				insp = inspect.NewInspector(f.Nested())
			}
			return a.printer.Print(fieldList(insp.ListFields()))
		},
	}
}
