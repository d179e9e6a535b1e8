package client

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newFakeBackend(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	lastAuth := new(string)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ann","token":"tok123"}`))
	})
	mux.HandleFunc("/api/users/u1", func(w http.ResponseWriter, r *http.Request) {
		*lastAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ann"}`))
	})
	mux.HandleFunc("/api/users/logout", func(w http.ResponseWriter, r *http.Request) {
		*lastAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Logout successful. Please clear token on client."}`))
	})
	mux.HandleFunc("/api/users/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Email already exists"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, lastAuth
}

func TestClient_LoginCachesSessionAndAttachesBearer(t *testing.T) {
	srv, lastAuth := newFakeBackend(t)
	cache := NewSessionCache(filepath.Join(t.TempDir(), "session.json"))
	c := New(srv.URL, "users", cache)

	s, err := c.Login("ann@b.com", "secret123")
	assert.Nil(t, err)
	assert.Equal(t, "tok123", s.Token)

	cached, err := cache.Load()
	assert.Nil(t, err)
	assert.True(t, cached.Authenticated())

	_, err = c.Profile("u1")
	assert.Nil(t, err)
	assert.Equal(t, "Bearer tok123", *lastAuth)
}

func TestClient_LogoutClearsCache(t *testing.T) {
	srv, _ := newFakeBackend(t)
	cache := NewSessionCache(filepath.Join(t.TempDir(), "session.json"))
	c := New(srv.URL, "users", cache)

	_, err := c.Login("ann@b.com", "secret123")
	assert.Nil(t, err)

	assert.Nil(t, c.Logout())

	s, err := cache.Load()
	assert.Nil(t, err)
	assert.False(t, s.Authenticated())
}

func TestClient_SurfacesAPIErrorMessage(t *testing.T) {
	srv, _ := newFakeBackend(t)
	cache := NewSessionCache(filepath.Join(t.TempDir(), "session.json"))
	c := New(srv.URL, "users", cache)

	_, err := c.Register(map[string]string{"name": "Ann"})

	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "Email already exists")

	s, loadErr := cache.Load()
	assert.Nil(t, loadErr)
	assert.False(t, s.Authenticated())
}
