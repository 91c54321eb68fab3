package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get <file> <path>...",
		Short:   "Print field values",
		Example: `  teds-edit get channel.bin PhyUnits/Meters LowRange`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				v, err := s.Get(path)
				if err != nil {
					return err
				}
				if len(args) == 2 {
					fmt.Fprintln(a.out, v)
				} else {
					fmt.Fprintf(a.out, "%s = %s\n", path, v)
				}
			}
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "set <file> <path>=<value>...",
		Short: "Write field values and save",
		Long: `Write one or more fields and save the file. Setting an optional field
includes it. Array values are written as [a, b]; enumerated fields accept
member names.`,
		Example: `  teds-edit set channel.bin ChanType=ACTUATOR "DAngles=[0.5, 1]"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			if err := applySets(s, args[1:]); err != nil {
				return err
			}
			if out == "" {
				out = args[0]
			}
			written, err := a.save(s, out)
			if err != nil {
				return err
			}
			a.printer.Success(fmt.Sprintf("Saved %s", written))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "file", "f", "", "Write to this file instead of in place")
	return cmd
}

func newIncludeCmd(a *app) *cobra.Command {
	var exclude bool
	cmd := &cobra.Command{
		Use:   "include <file> <path>...",
		Short: "Include or exclude optional fields and save",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				if err := s.Include(path, !exclude); err != nil {
					return err
				}
			}
			if _, err := a.save(s, args[0]); err != nil {
				return err
			}
			verb := "Included"
			if exclude {
				verb = "Excluded"
			}
			a.printer.Success(fmt.Sprintf("%s %d field(s) in %s", verb, len(args)-1, args[0]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&exclude, "exclude", false, "Exclude instead of include")
	return cmd
}

func newUUIDCmd(a *app) *cobra.Command {
	var (
		regen bool
		set   string
	)
	cmd := &cobra.Command{
		Use:   "uuid <file>",
		Short: "Show or change the Meta-TEDS UUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			switch {
			case regen && set != "":
				return fmt.Errorf("--regen and --set are mutually exclusive")
			case regen:
				err = s.RegenerateUUID()
			case set != "":
				err = s.SetUUID(set)
			}
			if err != nil {
				return err
			}
			if s.Dirty() {
				if _, err := a.save(s, args[0]); err != nil {
					return err
				}
			}
			id, err := s.UUID()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&regen, "regen", false, "Generate a new random UUID")
	cmd.Flags().StringVar(&set, "set", "", "Set the UUID (20 hex digits)")
	return cmd
}
