// ABOUTME: Persists the bearer token in the XDG config directory
// ABOUTME: Holds at most one token with an absolute expiry timestamp

package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const fileName = "credentials.json"

// Store holds at most one bearer token on disk. The token is opaque: it is
// never parsed or validated here, only stored and expired.
type Store struct {
	dir string
}

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// New creates a store rooted at the given directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the default config directory following the XDG spec.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "helpdesk")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "helpdesk")
}

func (s *Store) file() string {
	return filepath.Join(s.dir, fileName)
}

// Set writes the token with an expiry ttl from now, replacing any prior token.
func (s *Store) Set(token string, ttl time.Duration) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(storedToken{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.file(), data, 0600)
}

// Get returns the stored token, or false when none is stored. An expired
// token counts as absent and is removed on read.
func (s *Store) Get() (string, bool) {
	data, err := os.ReadFile(s.file())
	if err != nil {
		return "", false
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		// Unreadable file, treat as absent
		s.Clear()
		return "", false
	}

	if st.Token == "" || time.Now().After(st.ExpiresAt) {
		s.Clear()
		return "", false
	}

	return st.Token, true
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.file())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
