package client

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCache_RoundTrip(t *testing.T) {
	cache := NewSessionCache(filepath.Join(t.TempDir(), "cache", "session.json"))

	s := Session{Profile: json.RawMessage(`{"_id":"u1","name":"Ann"}`), Token: "tok123"}
	assert.Nil(t, cache.Save(s))

	loaded, err := cache.Load()
	assert.Nil(t, err)
	assert.Equal(t, s, loaded)
	assert.True(t, loaded.Authenticated())
}

func TestSessionCache_LoadWithoutFileIsAnonymous(t *testing.T) {
	cache := NewSessionCache(filepath.Join(t.TempDir(), "session.json"))

	s, err := cache.Load()
	assert.Nil(t, err)
	assert.False(t, s.Authenticated())
}

func TestSessionCache_ClearIsIdempotent(t *testing.T) {
	cache := NewSessionCache(filepath.Join(t.TempDir(), "session.json"))
	assert.Nil(t, cache.Save(Session{Token: "tok123"}))

	assert.Nil(t, cache.Clear())
	assert.Nil(t, cache.Clear())

	s, err := cache.Load()
	assert.Nil(t, err)
	assert.False(t, s.Authenticated())
}
