// Package client is a small API client for the roamstay backend. It keeps
// the last successful login's profile and raw token in a file-backed
// session cache, read before each call to decide whether the caller is
// authenticated. The cache is a rendering hint only; the server trusts
// nothing but the bearer token attached to requests.
package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Session is the cached result of the last successful register or login.
type Session struct {
	Profile json.RawMessage `json:"profile"`
	Token   string          `json:"token"`
}

// Authenticated reports whether a token is cached. It says nothing about
// whether the server still accepts it.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SessionCache persists a Session as a single JSON file.
type SessionCache struct {
	path string
}

func NewSessionCache(path string) *SessionCache {
	return &SessionCache{path: path}
}

// Load returns the cached session, or an empty one when nothing is cached.
func (c *SessionCache) Load() (Session, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}

	s := Session{}
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (c *SessionCache) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

// Clear removes the cached session entirely.
func (c *SessionCache) Clear() error {
	err := os.Remove(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
