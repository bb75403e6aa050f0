// Package viewstate persists which groups are collapsed, keyed by task id so
// the state survives inserts, deletes and reordering.
package viewstate

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/afero"
)

const stateFile = "view.json"

// State is the persisted collapse state of one plan.
type State struct {
	Collapsed []int     `json:"collapsed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store reads and writes the state file of one plan directory.
type Store struct {
	fs       afero.Fs
	basePath string
}

// NewStore creates a Store rooted at basePath on fsys.
func NewStore(fsys afero.Fs, basePath string) *Store {
	return &Store{fs: fsys, basePath: basePath}
}

func (s *Store) path() string {
	return filepath.Join(s.basePath, stateFile)
}

// Exists checks if a state file exists.
func (s *Store) Exists() bool {
	ok, err := afero.Exists(s.fs, s.path())
	return err == nil && ok
}

// Load reads the state from disk. A missing file is an empty state.
func (s *Store) Load() (*State, error) {
	data, err := afero.ReadFile(s.fs, s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}

	var st State
	if unmarshalErr := json.Unmarshal(data, &st); unmarshalErr != nil {
		return nil, unmarshalErr
	}
	return &st, nil
}

// Save writes the state to disk.
func (s *Store) Save(st *State) error {
	//nolint:gosec // G301: 0755 is appropriate for user-accessible plan directory
	if mkdirErr := s.fs.MkdirAll(s.basePath, 0o755); mkdirErr != nil {
		return mkdirErr
	}

	st.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	//nolint:gosec // G306: 0644 is appropriate for user-readable state files
	return afero.WriteFile(s.fs, s.path(), data, 0o644)
}

// Delete removes the state file.
func (s *Store) Delete() error {
	err := s.fs.Remove(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Set returns the collapsed ids as a lookup set.
func (st *State) Set() map[int]bool {
	set := make(map[int]bool, len(st.Collapsed))
	for _, id := range st.Collapsed {
		set[id] = true
	}
	return set
}

// Collapse marks id collapsed. It reports false if it already was.
func (st *State) Collapse(id int) bool {
	if slices.Contains(st.Collapsed, id) {
		return false
	}
	st.Collapsed = append(st.Collapsed, id)
	slices.Sort(st.Collapsed)
	return true
}

// Expand clears the collapsed mark on id. It reports false if it was not set.
func (st *State) Expand(id int) bool {
	n := len(st.Collapsed)
	st.Collapsed = slices.DeleteFunc(st.Collapsed, func(c int) bool { return c == id })
	return len(st.Collapsed) != n
}

// Prune drops ids that are no longer in the plan and reports how many went.
func (st *State) Prune(existing map[int]bool) int {
	n := len(st.Collapsed)
	st.Collapsed = slices.DeleteFunc(st.Collapsed, func(c int) bool { return !existing[c] })
	return n - len(st.Collapsed)
}
