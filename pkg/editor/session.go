// Package editor implements TEDS editing sessions. A Session owns one
// top-level data block, applies user edits through pkg/inspect, and saves
// or loads framed .bin files while reporting events to a log.Logger.
package editor

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ieee1451/teds-go/pkg/inspect"
	"github.com/ieee1451/teds-go/pkg/log"
	"github.com/ieee1451/teds-go/pkg/persistence"
	"github.com/ieee1451/teds-go/pkg/records"
	"github.com/ieee1451/teds-go/pkg/teds"
)

// UUIDLength is the length of the Meta-TEDS UUID field.
const UUIDLength = 10

// ErrNoUUID is returned by UUID operations on schemas without a UUID field.
var ErrNoUUID = errors.New("schema has no UUID field")

// Options configures a Session.
type Options struct {
	// Registry resolves schemas. Nil uses records.Default().
	Registry *records.Registry

	// Logger receives events. Nil disables event logging.
	Logger log.Logger

	// Policy is the decode policy used by Load.
	Policy teds.DecodePolicy

	// Now is the clock for event timestamps. Nil uses time.Now.
	Now func() time.Time
}

// Session is one editing session over a top-level block.
type Session struct {
	id     string
	reg    *records.Registry
	logger log.Logger
	policy teds.DecodePolicy
	now    func() time.Time

	block *teds.Block
	file  string
	dirty bool
}

func newSession(opts Options) *Session {
	s := &Session{
		id:     uuid.New().String(),
		reg:    opts.Registry,
		logger: opts.Logger,
		policy: opts.Policy,
		now:    opts.Now,
	}
	if s.reg == nil {
		s.reg = records.Default()
	}
	if s.logger == nil {
		s.logger = log.NoopLogger{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// New starts a session on a default block of schema. Schemas with a UUID
// field get a freshly generated UUID.
func New(schema string, opts Options) (*Session, error) {
	s := newSession(opts)
	b, err := s.reg.New(schema)
	if err != nil {
		return nil, err
	}
	s.block = b
	s.logState("", "created")
	if s.hasUUID() {
		if err := s.RegenerateUUID(); err != nil {
			return nil, err
		}
	}
	s.dirty = false
	return s, nil
}

// Open starts a session on the framed TEDS file at path. The schema is
// detected from the identifier.
func Open(path string, opts Options) (*Session, error) {
	s := newSession(opts)
	data, err := persistence.ReadFile(path)
	if err != nil {
		return nil, err
	}
	payload, err := teds.Unframe(data)
	if err != nil {
		s.logError(log.LayerFrame, err, "open "+path)
		return nil, err
	}
	schema, err := s.reg.Detect(payload)
	if err != nil {
		s.logError(log.LayerRecord, err, "open "+path)
		return nil, err
	}
	b, err := s.reg.New(schema)
	if err != nil {
		return nil, err
	}
	s.block = b
	s.file = path
	if _, err := s.Load(data); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Block returns the edited block.
func (s *Session) Block() *teds.Block { return s.block }

// Schema returns the schema of the edited block.
func (s *Session) Schema() string { return s.block.Schema() }

// File returns the path last loaded or saved, if any.
func (s *Session) File() string { return s.file }

// Dirty reports whether the block changed since it was last loaded or saved.
func (s *Session) Dirty() bool { return s.dirty }

// Inspector returns an inspector over the edited block.
func (s *Session) Inspector() *inspect.Inspector {
	return inspect.NewInspector(s.block)
}

// Get returns the display value of the field at path.
func (s *Session) Get(path string) (string, error) {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return "", err
	}
	return s.Inspector().ReadPath(p)
}

// Set parses text into the field at path. Setting an optional field
// includes it in the encoding.
func (s *Session) Set(path string, text string) error {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return err
	}
	insp := s.Inspector()
	f, err := insp.Lookup(p)
	if err != nil {
		return err
	}
	before := s.block.State()
	old := f.ValueString()
	if err := insp.WritePath(p, text); err != nil {
		s.logError(log.LayerField, err, "set "+path)
		return err
	}
	if f.Optional() {
		f.SetIncluded(true)
	}
	if err := s.includeParents(insp, p); err != nil {
		return err
	}
	s.dirty = true
	s.logField(p, f, old)
	s.logTransition(before, "set "+p.String())
	return nil
}

// Include sets the inclusion flag of the optional field at path.
func (s *Session) Include(path string, included bool) error {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return err
	}
	insp := s.Inspector()
	f, err := insp.Lookup(p)
	if err != nil {
		return err
	}
	if err := insp.Include(p, included); err != nil {
		return err
	}
	if included {
		if err := s.includeParents(insp, p); err != nil {
			return err
		}
	}
	s.dirty = true
	s.logField(p, f, f.ValueString())
	return nil
}

// includeParents includes every optional block field enclosing p, so an
// edit inside an excluded sub-block reaches the encoding.
func (s *Session) includeParents(insp *inspect.Inspector, p *inspect.Path) error {
	for q := p.Parent(); q != nil; q = q.Parent() {
		f, err := insp.Lookup(q)
		if err != nil {
			return err
		}
		if f.Optional() && !f.Included() {
			f.SetIncluded(true)
			s.logField(q, f, f.ValueString())
		}
	}
	return nil
}

// hasUUID reports whether the block has a Meta-TEDS style UUID field.
func (s *Session) hasUUID() bool {
	f, ok := s.block.FieldByName("UUID")
	return ok && f.Type().Kind == teds.KindBytes && f.Length() == UUIDLength
}

// UUID returns the hex UUID of the block.
func (s *Session) UUID() (string, error) {
	if !s.hasUUID() {
		return "", fmt.Errorf("%w: %s", ErrNoUUID, s.Schema())
	}
	f, _ := s.block.FieldByName("UUID")
	return f.ValueString(), nil
}

// RegenerateUUID stores a new random UUID, truncated to UUIDLength octets.
func (s *Session) RegenerateUUID() error {
	if !s.hasUUID() {
		return fmt.Errorf("%w: %s", ErrNoUUID, s.Schema())
	}
	f, _ := s.block.FieldByName("UUID")
	id := uuid.New()
	old := f.ValueString()
	if err := f.SetValue(id[:UUIDLength]); err != nil {
		return err
	}
	s.dirty = true
	s.logField(&inspect.Path{Segments: []string{f.Name()}}, f, old)
	return nil
}

// SetUUID stores a UUID given in hex.
func (s *Session) SetUUID(text string) error {
	if !s.hasUUID() {
		return fmt.Errorf("%w: %s", ErrNoUUID, s.Schema())
	}
	b, err := UUIDFromHex(text)
	if err != nil {
		return err
	}
	f, _ := s.block.FieldByName("UUID")
	old := f.ValueString()
	if err := f.SetValue(b); err != nil {
		return err
	}
	s.dirty = true
	s.logField(&inspect.Path{Segments: []string{f.Name()}}, f, old)
	return nil
}

// DefaultFileName returns the file name a new block is saved under:
// the UUID in hex when the schema has one, otherwise the schema and the
// first characters of the session ID.
func (s *Session) DefaultFileName() string {
	if id, err := s.UUID(); err == nil {
		return id + persistence.FileExt
	}
	return s.Schema() + "-" + s.id[:8] + persistence.FileExt
}

// Encode returns the framed encoding of the block.
func (s *Session) Encode() ([]byte, error) {
	data, err := s.block.EncodeFramed()
	if err != nil {
		s.logError(log.LayerField, err, "encode")
		return nil, err
	}
	return data, nil
}

// Save writes the framed block to path. A directory path (or empty path
// with a dir) receives DefaultFileName. Save returns the written path.
func (s *Session) Save(path string) (string, error) {
	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, s.DefaultFileName())
	}
	data, err := s.Encode()
	if err != nil {
		return "", err
	}
	if err := persistence.WriteFile(path, data); err != nil {
		s.logError(log.LayerFrame, err, "save "+path)
		return "", err
	}
	s.file = path
	s.dirty = false
	s.logFrame(log.DirectionOut, data)
	return path, nil
}

// Load decodes framed data into a fresh block of the session's schema and
// replaces the edited block only if the whole decode succeeds.
func (s *Session) Load(data []byte) (teds.DecodeReport, error) {
	payload, err := teds.Unframe(data)
	if err != nil {
		s.logError(log.LayerFrame, err, "load")
		return teds.DecodeReport{}, err
	}
	s.logFrame(log.DirectionIn, data)

	fresh, err := s.reg.New(s.Schema())
	if err != nil {
		return teds.DecodeReport{}, err
	}
	report, err := fresh.Decode(payload, s.policy)
	for _, u := range report.Unknown {
		s.emit(log.Event{
			Direction: log.DirectionIn,
			Layer:     log.LayerRecord,
			Category:  log.CategoryCodec,
			Record:    &log.RecordEvent{Path: u.Path, Type: u.Record.Type, Length: u.Record.Length},
		})
	}
	if err != nil {
		s.logError(log.LayerRecord, err, "load")
		return report, err
	}
	before := s.block.State()
	s.block = fresh
	s.dirty = false
	s.logTransition(before, "load")
	return report, nil
}

// RecentEntry returns the recent-file entry describing the session's file
// with data as its current content.
func (s *Session) RecentEntry(data []byte) persistence.RecentFile {
	entry := persistence.RecentFile{
		Path:        s.file,
		Schema:      s.Schema(),
		Size:        len(data),
		Fingerprint: persistence.Fingerprint(data),
		UsedAt:      s.now(),
	}
	if abs, err := filepath.Abs(s.file); err == nil {
		entry.Path = abs
	}
	if id, err := s.UUID(); err == nil {
		entry.UUID = id
	}
	return entry
}

func (s *Session) emit(ev log.Event) {
	ev.Timestamp = s.now()
	ev.SessionID = s.id
	if s.block != nil {
		ev.Schema = s.block.Schema()
	}
	ev.File = s.file
	s.logger.Log(ev)
}

func (s *Session) logFrame(dir log.Direction, data []byte) {
	var sum uint16
	if len(data) >= teds.ChecksumSize {
		sum = binary.BigEndian.Uint16(data[len(data)-teds.ChecksumSize:])
	}
	s.emit(log.Event{
		Direction: dir,
		Layer:     log.LayerFrame,
		Category:  log.CategoryCodec,
		Frame:     log.NewFrameEvent(data, sum),
	})
}

func (s *Session) logField(p *inspect.Path, f *teds.Field, old string) {
	s.emit(log.Event{
		Layer:    log.LayerField,
		Category: log.CategoryEdit,
		Field: &log.FieldEvent{
			Path:     s.block.Name() + "/" + p.String(),
			Tag:      f.Tag(),
			OldValue: old,
			NewValue: f.ValueString(),
			Included: f.Included(),
		},
	})
}

func (s *Session) logState(old, reason string) {
	s.emit(log.Event{
		Category: log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntitySession,
			OldState: old,
			NewState: s.block.State().String(),
			Reason:   reason,
		},
	})
}

func (s *Session) logTransition(before teds.State, reason string) {
	after := s.block.State()
	if after == before {
		return
	}
	s.emit(log.Event{
		Category: log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityBlock,
			OldState: before.String(),
			NewState: after.String(),
			Reason:   reason,
		},
	})
}

func (s *Session) logError(layer log.Layer, err error, context string) {
	s.emit(log.Event{
		Layer:    layer,
		Category: log.CategoryError,
		Error:    &log.ErrorEventData{Layer: layer, Message: err.Error(), Context: context},
	})
}

// UUIDFromHex parses a hex UUID as printed by Session.UUID.
func UUIDFromHex(text string) ([]byte, error) {
	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, err
	}
	if len(b) != UUIDLength {
		return nil, fmt.Errorf("%w: %d octets, want %d", teds.ErrLengthMismatch, len(b), UUIDLength)
	}
	return b, nil
}
