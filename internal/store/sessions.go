package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const sessionsFileName = "sessions.json"

// SavedSession stores small, user-facing state for restoring a labeling
// session on relaunch, keyed by image directory.
//
// It is intentionally "best effort": callers should tolerate missing or
// invalid data.
type SavedSession struct {
	Cursor    int       `json:"cursor"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Store) sessionsPath() string {
	return filepath.Join(s.Dir, sessionsFileName)
}

func (s Store) loadSessions() map[string]SavedSession {
	b, err := os.ReadFile(s.sessionsPath())
	if err != nil {
		return map[string]SavedSession{}
	}
	var out map[string]SavedSession
	if err := json.Unmarshal(b, &out); err != nil || out == nil {
		return map[string]SavedSession{}
	}
	return out
}

// LoadSession returns the saved state for dir, if any.
func (s Store) LoadSession(dir string) (SavedSession, bool) {
	dir = sessionKey(dir)
	if dir == "" {
		return SavedSession{}, false
	}
	st, ok := s.loadSessions()[dir]
	return st, ok
}

// SaveSession upserts the saved state for dir.
func (s Store) SaveSession(dir string, st SavedSession) error {
	dir = sessionKey(dir)
	if dir == "" {
		return errors.New("save session: empty directory")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	all := s.loadSessions()
	st.UpdatedAt = time.Now().UTC()
	all[dir] = st
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.sessionsPath(), b)
}

func sessionKey(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return filepath.Clean(dir)
}
