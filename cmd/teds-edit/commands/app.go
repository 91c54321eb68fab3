package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ieee1451/teds-go/internal/cli/output"
	"github.com/ieee1451/teds-go/pkg/config"
	"github.com/ieee1451/teds-go/pkg/editor"
	"github.com/ieee1451/teds-go/pkg/log"
	"github.com/ieee1451/teds-go/pkg/persistence"
	"github.com/ieee1451/teds-go/pkg/records"
	"github.com/ieee1451/teds-go/pkg/teds"
)

type globalFlags struct {
	config      string
	logLevel    string
	output      string
	policy      string
	protocolLog string
	defs        string
	stateFile   string
}

// app carries the resolved configuration shared by all commands.
type app struct {
	flags  globalFlags
	out    io.Writer
	errOut io.Writer

	cfg     *config.Config
	logger  *slog.Logger
	events  log.Logger
	tlog    *log.FileLogger
	reg     *records.Registry
	policy  teds.DecodePolicy
	state   *persistence.EditorStateStore
	printer *output.Printer
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.flags.config != "" {
		loaded, err := config.Load(a.flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.LogLevel, a.flags.logLevel)
	override(&cfg.OutputFormat, a.flags.output)
	override(&cfg.DecodePolicy, a.flags.policy)
	override(&cfg.ProtocolLog, a.flags.protocolLog)
	override(&cfg.DefsDir, a.flags.defs)
	override(&cfg.StateFile, a.flags.stateFile)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := cfg.SlogLevel()
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	sinks := []log.Logger{log.NewSlogAdapter(a.logger)}
	if cfg.ProtocolLog != "" {
		fl, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return fmt.Errorf("opening protocol log: %w", err)
		}
		a.tlog = fl
		sinks = append(sinks, fl)
		a.logger.Debug("protocol logging enabled", "path", cfg.ProtocolLog)
	}
	a.events = log.NewMultiLogger(sinks...)

	a.reg = records.Default()
	if cfg.DefsDir != "" {
		reg, err := records.Load(os.DirFS(cfg.DefsDir))
		if err != nil {
			return fmt.Errorf("loading definitions from %s: %w", cfg.DefsDir, err)
		}
		a.reg = reg
		a.logger.Debug("loaded record definitions", "dir", cfg.DefsDir, "schemas", len(reg.Schemas()))
	}

	a.policy, _ = cfg.Policy()
	a.state = persistence.NewEditorStateStore(cfg.StateFile)

	format, err := output.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	a.printer = output.NewPrinter(a.out, format, !noColor)
	return nil
}

func (a *app) close() error {
	if a.tlog == nil {
		return nil
	}
	err := a.tlog.Close()
	a.tlog = nil
	return err
}

func (a *app) options() editor.Options {
	return editor.Options{Registry: a.reg, Logger: a.events, Policy: a.policy}
}

func (a *app) open(path string) (*editor.Session, error) {
	s, err := editor.Open(path, a.options())
	if err != nil {
		return nil, err
	}
	a.touch(s, path)
	return s, nil
}

// save writes s to path and records it as a recent file.
func (a *app) save(s *editor.Session, path string) (string, error) {
	written, err := s.Save(path)
	if err != nil {
		return "", err
	}
	a.touch(s, written)
	return written, nil
}

// touch records path in the editor state. Failures are logged, not returned.
func (a *app) touch(s *editor.Session, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		a.logger.Warn("recording recent file", "path", path, "error", err)
		return
	}
	if err := a.state.Update(func(st *persistence.EditorState) {
		st.Touch(s.RecentEntry(data))
	}); err != nil {
		a.logger.Warn("updating editor state", "path", a.state.Path(), "error", err)
	}
}
