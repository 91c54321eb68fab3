package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// MaxRecent is the number of recent files kept in the state.
const MaxRecent = 10

// EditorState contains the runtime state of the TEDS editor.
type EditorState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// LastDir is the directory of the last file opened or saved.
	LastDir string `json:"last_dir,omitempty"`

	// Recent lists recently used files, most recent first.
	Recent []RecentFile `json:"recent,omitempty"`
}

// RecentFile describes a TEDS file the editor opened or saved.
type RecentFile struct {
	// Path is the absolute file path.
	Path string `json:"path"`

	// Schema is the record schema the file decoded as.
	Schema string `json:"schema"`

	// UUID is the hex Meta-TEDS UUID, if the schema has one.
	UUID string `json:"uuid,omitempty"`

	// Size is the framed file size in bytes.
	Size int `json:"size"`

	// Fingerprint is the xxhash of the framed file content.
	Fingerprint uint64 `json:"fingerprint"`

	// UsedAt is when the file was last opened or saved.
	UsedAt time.Time `json:"used_at"`
}

// Touch moves entry to the front of the recent list, replacing an older
// entry with the same path, and trims the list to MaxRecent.
func (s *EditorState) Touch(entry RecentFile) {
	if entry.UsedAt.IsZero() {
		entry.UsedAt = time.Now()
	}
	out := make([]RecentFile, 0, len(s.Recent)+1)
	out = append(out, entry)
	for _, r := range s.Recent {
		if r.Path != entry.Path {
			out = append(out, r)
		}
	}
	if len(out) > MaxRecent {
		out = out[:MaxRecent]
	}
	s.Recent = out
	s.LastDir = filepath.Dir(entry.Path)
}

// Find returns the recent entry for path.
func (s *EditorState) Find(path string) (RecentFile, bool) {
	for _, r := range s.Recent {
		if r.Path == path {
			return r, true
		}
	}
	return RecentFile{}, false
}

// EditorStateStore manages persistence of editor state to a JSON file.
type EditorStateStore struct {
	mu   sync.Mutex
	path string
}

// NewEditorStateStore creates a new editor state store.
func NewEditorStateStore(path string) *EditorStateStore {
	return &EditorStateStore{path: path}
}

// Path returns the state file path.
func (s *EditorStateStore) Path() string { return s.path }

// Save persists the editor state to disk.
func (s *EditorStateStore) Save(state *EditorState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the editor state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *EditorStateStore) Load() (*EditorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &EditorState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Update loads the state (or starts an empty one), applies fn and saves it.
func (s *EditorStateStore) Update(fn func(*EditorState)) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	if state == nil {
		state = &EditorState{}
	}
	fn(state)
	return s.Save(state)
}

// Clear removes the state file.
func (s *EditorStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
