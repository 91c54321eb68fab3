package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ieee1451/teds-go/cmd/teds-edit/interactive"
	"github.com/ieee1451/teds-go/internal/cli/output"
	"github.com/ieee1451/teds-go/pkg/editor"
	"github.com/ieee1451/teds-go/pkg/persistence"
	"github.com/ieee1451/teds-go/pkg/version"
)

// schemaRow describes one registered schema.
type schemaRow struct {
	Schema   string `json:"schema" yaml:"schema"`
	Name     string `json:"name" yaml:"name"`
	Class    string `json:"class,omitempty" yaml:"class,omitempty"`
	Fields   int    `json:"fields" yaml:"fields"`
	TopLevel bool   `json:"topLevel" yaml:"topLevel"`
}

type schemaList []schemaRow

func (l schemaList) Headers() []string {
	return []string{"Schema", "Name", "Class", "Fields", "Top-level"}
}

func (l schemaList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, r := range l {
		top := ""
		if r.TopLevel {
			top = "yes"
		}
		rows[i] = []string{r.Schema, r.Name, r.Class, fmt.Sprint(r.Fields), top}
	}
	return rows
}

func newSchemasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the record schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			top := make(map[string]bool)
			for _, s := range a.reg.TopLevel() {
				top[s] = true
			}
			var list schemaList
			for _, s := range a.reg.Schemas() {
				def, _ := a.reg.Def(s)
				list = append(list, schemaRow{
					Schema:   s,
					Name:     def.Name,
					Class:    def.Class,
					Fields:   len(def.Fields),
					TopLevel: top[s],
				})
			}
			return a.printer.Print(list)
		},
	}
}

// recentRow is a recent file with its verification status.
type recentRow struct {
	persistence.RecentFile `yaml:",inline"`
	Status                 string `json:"status" yaml:"status"`
}

type recentList []recentRow

func (l recentList) Headers() []string {
	return []string{"Path", "Schema", "UUID", "Size", "Used", "Status"}
}

func (l recentList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, r := range l {
		rows[i] = []string{r.Path, r.Schema, r.UUID, fmt.Sprint(r.Size), r.UsedAt.Format(time.DateTime), r.Status}
	}
	return rows
}

func newRecentCmd(a *app) *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened and saved files",
		Long: `List the files recorded in the editor state, most recent first. Each
file is checked against its recorded fingerprint: "changed" means it was
modified outside teds-edit since it was last used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear {
				return a.state.Clear()
			}
			st, err := a.state.Load()
			if err != nil {
				return err
			}
			if st == nil || len(st.Recent) == 0 {
				fmt.Fprintln(a.out, "No recent files.")
				return nil
			}
			list := make(recentList, len(st.Recent))
			for i, r := range st.Recent {
				list[i] = recentRow{RecentFile: r, Status: verifyStatus(r)}
			}
			return a.printer.Print(list)
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "Forget all recent files")
	return cmd
}

func verifyStatus(r persistence.RecentFile) string {
	err := persistence.Verify(r)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, persistence.ErrFileChanged):
		return "changed"
	case errors.Is(err, os.ErrNotExist):
		return "missing"
	default:
		return "error"
	}
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [file]",
		Short: "Edit interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := interactive.New(interactive.Config{
				Options:   a.options(),
				OutputDir: a.cfg.OutputDir,
				Touch: func(s *editor.Session, data []byte) {
					if err := a.state.Update(func(st *persistence.EditorState) {
						st.Touch(s.RecentEntry(data))
					}); err != nil {
						a.logger.Warn("updating editor state", "error", err)
					}
				},
			})
			if err != nil {
				return err
			}
			if len(args) == 1 {
				sh.Exec("open " + args[0])
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			sh.Run(ctx)
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if short {
				fmt.Fprintln(a.out, info.Version)
				return nil
			}
			if a.printer.Format() != output.FormatTable {
				return a.printer.Print(info)
			}
			fmt.Fprintln(a.out, "teds-edit "+info.String())
			return output.SimpleTable(a.out, info.Pairs())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Show only the version number")
	return cmd
}
