// Package interactive provides the teds-edit interactive shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ieee1451/teds-go/internal/cli/output"
	"github.com/ieee1451/teds-go/pkg/editor"
	"github.com/ieee1451/teds-go/pkg/inspect"
	"github.com/ieee1451/teds-go/pkg/records"
	"github.com/ieee1451/teds-go/pkg/snapshot"
	"github.com/ieee1451/teds-go/pkg/teds"
)

// Config configures a Shell.
type Config struct {
	// Session options used by new and open.
	Options editor.Options

	// OutputDir receives files saved without an explicit path.
	OutputDir string

	// Touch is called with the session and the framed file content after
	// every open and save. May be nil.
	Touch func(s *editor.Session, data []byte)
}

// Shell is an interactive editor over one session at a time.
type Shell struct {
	cfg       Config
	reg       *records.Registry
	session   *editor.Session
	formatter *inspect.Formatter
	out       io.Writer
	rl        *readline.Instance
}

var commandNames = []string{
	"help", "schemas", "new", "open", "ls", "tree", "get", "set",
	"include", "exclude", "uuid", "save", "dump", "export", "status", "quit",
}

// New creates a shell reading commands through readline.
func New(cfg Config) (*Shell, error) {
	items := make([]readline.PrefixCompleterInterface, len(commandNames))
	for i, name := range commandNames {
		items[i] = readline.PcItem(name)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "teds> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    readline.NewPrefixCompleter(items...),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(cfg, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(cfg Config, out io.Writer) *Shell {
	reg := cfg.Options.Registry
	if reg == nil {
		reg = records.Default()
		cfg.Options.Registry = reg
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &Shell{
		cfg:       cfg,
		reg:       reg,
		formatter: inspect.NewFormatter(),
		out:       out,
	}
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Shell) Stdout() io.Writer { return s.out }

// Session returns the current session, or nil.
func (s *Shell) Session() *editor.Session { return s.session }

// Run reads and executes commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()
	s.printHelp()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.rl.SetPrompt(s.prompt())
		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
		if s.Exec(line) {
			return
		}
	}
}

func (s *Shell) prompt() string {
	if s.session == nil {
		return "teds> "
	}
	mark := ""
	if s.session.Dirty() {
		mark = "*"
	}
	return fmt.Sprintf("teds(%s%s)> ", s.session.Schema(), mark)
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "schemas":
		s.cmdSchemas()
	case "new":
		err = s.cmdNew(args)
	case "open", "o":
		err = s.cmdOpen(args)
	case "ls", "l":
		err = s.cmdList(args)
	case "tree", "t":
		err = s.cmdTree()
	case "get", "g":
		err = s.cmdGet(args)
	case "set", "s":
		err = s.cmdSet(args)
	case "include":
		err = s.cmdInclude(args, true)
	case "exclude":
		err = s.cmdInclude(args, false)
	case "uuid":
		err = s.cmdUUID(args)
	case "save", "w":
		err = s.cmdSave(args)
	case "dump":
		err = s.cmdDump()
	case "export":
		err = s.cmdExport(args)
	case "status":
		err = s.cmdStatus()
	case "quit", "exit", "q":
		if s.session != nil && s.session.Dirty() && !(len(args) == 1 && args[0] == "!") {
			fmt.Fprintln(s.out, "Unsaved changes. Use 'save' or 'quit !' to discard them.")
			return false
		}
		fmt.Fprintln(s.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `
TEDS Editor Commands:
  Files:
    new <schema>         - Start a new block (see 'schemas')
    open <file>          - Open a framed TEDS file
    save [path]          - Save (default: current file or <uuid>.bin)
    export <fmt> [file]  - Export as json, yaml or cbor

  Inspection:
    ls [path]            - List fields of the block or a nested block
    tree                 - Show the whole block
    get <path>           - Read a field
    dump                 - Hex dump of the encoded records
    status               - Show session status

  Editing:
    set <path> <value>   - Write a field (optional fields become included)
    include <path>       - Include an optional field
    exclude <path>       - Exclude an optional field
    uuid [regen|<hex>]   - Show, regenerate or set the Meta-TEDS UUID

  Paths are '/'-separated field names, tags or #indexes, e.g. PhyUnits/Meters.

    help                 - Show this help
    quit [!]             - Exit (! discards unsaved changes)
`)
}

var errNoSession = errors.New("no block open (use 'new' or 'open')")

func (s *Shell) current() (*editor.Session, error) {
	if s.session == nil {
		return nil, errNoSession
	}
	return s.session, nil
}

func (s *Shell) cmdSchemas() {
	top := make(map[string]bool)
	for _, schema := range s.reg.TopLevel() {
		top[schema] = true
	}
	table := output.NewTableData("Schema", "Name", "Class", "Top-level")
	for _, schema := range s.reg.Schemas() {
		def, _ := s.reg.Def(schema)
		yes := ""
		if top[schema] {
			yes = "yes"
		}
		table.AddRow(schema, def.Name, def.Class, yes)
	}
	_ = output.PrintTable(s.out, table)
}

func (s *Shell) cmdNew(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: new <schema>")
	}
	sess, err := editor.New(args[0], s.cfg.Options)
	if err != nil {
		return err
	}
	s.session = sess
	fmt.Fprintf(s.out, "New %s block\n", sess.Block().Name())
	return nil
}

func (s *Shell) cmdOpen(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: open <file>")
	}
	sess, err := editor.Open(args[0], s.cfg.Options)
	if err != nil {
		return err
	}
	s.session = sess
	s.touch(sess.File())
	fmt.Fprintf(s.out, "Opened %s as %s [%s]\n", args[0], sess.Schema(), sess.Block().State())
	return nil
}

// inspector returns an inspector over the block at the optional path.
func (s *Shell) inspector(args []string) (*inspect.Inspector, error) {
	sess, err := s.current()
	if err != nil {
		return nil, err
	}
	insp := sess.Inspector()
	if len(args) == 0 {
		return insp, nil
	}
	p, err := inspect.ParsePath(args[0])
	if err != nil {
		return nil, err
	}
	f, err := insp.Lookup(p)
	if err != nil {
		return nil, err
	}
	if !f.IsNested() {
		return nil, fmt.Errorf("%w: %s", inspect.ErrNotNested, f.Name())
	}
	return inspect.NewInspector(f.Nested()), nil
}

func (s *Shell) cmdList(args []string) error {
	insp, err := s.inspector(args)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatFieldTable(insp.ListFields()))
	return nil
}

func (s *Shell) cmdTree() error {
	sess, err := s.current()
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatTree(sess.Block()))
	return nil
}

func (s *Shell) cmdGet(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get <path>")
	}
	sess, err := s.current()
	if err != nil {
		return err
	}
	v, err := sess.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s = %s\n", args[0], v)
	return nil
}

func (s *Shell) cmdSet(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: set <path> <value>")
	}
	sess, err := s.current()
	if err != nil {
		return err
	}
	value := strings.Join(args[1:], " ")
	if err := sess.Set(args[0], value); err != nil {
		return err
	}
	v, _ := sess.Get(args[0])
	fmt.Fprintf(s.out, "%s = %s\n", args[0], v)
	return nil
}

func (s *Shell) cmdInclude(args []string, include bool) error {
	if len(args) != 1 {
		return errors.New("usage: include|exclude <path>")
	}
	sess, err := s.current()
	if err != nil {
		return err
	}
	return sess.Include(args[0], include)
}

func (s *Shell) cmdUUID(args []string) error {
	sess, err := s.current()
	if err != nil {
		return err
	}
	switch {
	case len(args) == 0:
	case args[0] == "regen":
		err = sess.RegenerateUUID()
	default:
		err = sess.SetUUID(args[0])
	}
	if err != nil {
		return err
	}
	id, err := sess.UUID()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "UUID = %s\n", id)
	return nil
}

func (s *Shell) cmdSave(args []string) error {
	sess, err := s.current()
	if err != nil {
		return err
	}
	path := sess.File()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = s.cfg.OutputDir
	}
	written, err := sess.Save(path)
	if err != nil {
		return err
	}
	s.touch(written)
	fmt.Fprintf(s.out, "Saved %s\n", written)
	return nil
}

func (s *Shell) touch(path string) {
	if s.cfg.Touch == nil {
		return
	}
	if data, err := os.ReadFile(path); err == nil {
		s.cfg.Touch(s.session, data)
	}
}

func (s *Shell) cmdDump() error {
	sess, err := s.current()
	if err != nil {
		return err
	}
	payload, err := sess.Block().EncodeAll()
	if err != nil {
		return err
	}
	text, err := s.formatter.FormatDump(payload, sess.Block())
	fmt.Fprint(s.out, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d octets, checksum 0x%04x\n", len(payload), teds.Checksum(payload))
	return nil
}

func (s *Shell) cmdExport(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: export <json|yaml|cbor> [file]")
	}
	sess, err := s.current()
	if err != nil {
		return err
	}
	format, err := snapshot.ParseFormat(args[0])
	if err != nil {
		return err
	}
	data, err := snapshot.Marshal(sess.Block(), format)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Exported %s\n", args[1])
		return nil
	}
	if format == snapshot.CBOR {
		return errors.New("cbor export needs a file")
	}
	_, err = s.out.Write(data)
	return err
}

func (s *Shell) cmdStatus() error {
	sess, err := s.current()
	if err != nil {
		return err
	}
	file := sess.File()
	if file == "" {
		file = "(unsaved)"
	}
	pairs := [][2]string{
		{"Session", sess.ID()},
		{"Schema", sess.Schema()},
		{"State", sess.Block().State().String()},
		{"File", file},
		{"Dirty", fmt.Sprint(sess.Dirty())},
	}
	if id, err := sess.UUID(); err == nil {
		pairs = append(pairs, [2]string{"UUID", id})
	}
	return output.SimpleTable(s.out, pairs)
}
