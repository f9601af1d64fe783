// Package localstore keeps the planner's namespaced key/value state on disk.
// It is the always-available backend: every read falls back to it and every
// write lands here first, with cloud sync layered on top.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

const stateFile = "state.json"

// Store is a file-backed string KV store. Values are JSON-serialized by
// callers of SetJSON/GetJSON; Snapshot hands the raw map to the sync layer.
type Store struct {
	mu       sync.Mutex
	path     string
	data     map[string]string
	onChange func()
}

// DefaultDir resolves the planner's home directory: THISLIFE_HOME when set,
// otherwise ~/.this-life.
func DefaultDir() (string, error) {
	if dir := os.Getenv("THISLIFE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".this-life"), nil
}

// Open loads (or creates) the store under dir. Missing or corrupt state is
// replaced with an empty map rather than surfaced as an error; the planner
// must come up even when the file was damaged.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	s := &Store{
		path: filepath.Join(dir, stateFile),
		data: map[string]string{},
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read state file: %w", err)
		}
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("corrupt local state, starting empty")
		s.data = map[string]string{}
	}
	return s, nil
}

// OnChange registers the hook fired after every successful Set/Remove/Replace.
// The sync scheduler uses it to debounce cloud pushes.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Get returns the raw value for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// GetJSON decodes the value for key into out. A missing key or a value that
// no longer parses yields fallbackUsed=true and leaves out untouched by the
// caller's zero value.
func (s *Store) GetJSON(key string, out interface{}) (fallbackUsed bool) {
	raw, ok := s.Get(key)
	if !ok {
		return true
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("corrupt local value, using fallback")
		return true
	}
	return false
}

// Set stores a raw value and persists.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	s.data[key] = value
	err := s.persistLocked()
	hook := s.onChange
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if hook != nil {
		hook()
	}
	return nil
}

// SetJSON serializes v and stores it under key.
func (s *Store) SetJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// Remove deletes a key and persists.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	err := s.persistLocked()
	hook := s.onChange
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if hook != nil {
		hook()
	}
	return nil
}

// Snapshot returns a copy of the whole state for a cloud push.
func (s *Store) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Replace swaps in a pulled snapshot wholesale. The change hook is not fired:
// applying a pull must not immediately push the same state back.
func (s *Store) Replace(state map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == nil {
		state = map[string]string{}
	}
	s.data = make(map[string]string, len(state))
	for k, v := range state {
		s.data[k] = v
	}
	return s.persistLocked()
}

// persistLocked writes atomically: temp file then rename.
func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
