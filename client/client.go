package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client calls one principal kind's endpoints ("users" or "owners"),
// caching the session on register/login and attaching it as a bearer
// token afterwards.
type Client struct {
	base  string
	kind  string
	http  *http.Client
	cache *SessionCache
}

func New(base string, kind string, cache *SessionCache) *Client {
	return &Client{base: base, kind: kind, http: http.DefaultClient, cache: cache}
}

// Register creates an account and caches the returned profile and token.
func (c *Client) Register(payload interface{}) (Session, error) {
	return c.authenticate("register", payload)
}

// Login exchanges credentials for a fresh token and caches it.
func (c *Client) Login(email, password string) (Session, error) {
	return c.authenticate("login", map[string]string{"email": email, "password": password})
}

func (c *Client) authenticate(op string, payload interface{}) (Session, error) {
	body, err := c.do(http.MethodPost, op, payload, false)
	if err != nil {
		return Session{}, err
	}

	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return Session{}, err
	}

	s := Session{Profile: body, Token: res.Token}
	if err := c.cache.Save(s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Profile fetches the profile with the given id.
func (c *Client) Profile(id string) (json.RawMessage, error) {
	return c.do(http.MethodGet, id, nil, true)
}

// Update applies a partial profile update to the given id.
func (c *Client) Update(id string, updates interface{}) (json.RawMessage, error) {
	return c.do(http.MethodPut, id, updates, true)
}

// Delete removes the account with the given id and clears the cache.
func (c *Client) Delete(id string) error {
	if _, err := c.do(http.MethodDelete, id, nil, true); err != nil {
		return err
	}
	return c.cache.Clear()
}

// Logout tells the server goodbye and clears the cached session. The
// token itself stays valid until expiry; discarding it is the client's
// half of the contract.
func (c *Client) Logout() error {
	if _, err := c.do(http.MethodPost, "logout", nil, true); err != nil {
		return err
	}
	return c.cache.Clear()
}

func (c *Client) do(method, op string, payload interface{}, authed bool) (json.RawMessage, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, fmt.Sprintf("%s/api/%s/%s", c.base, c.kind, op), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		s, err := c.cache.Load()
		if err != nil {
			return nil, err
		}
		if s.Token != "" {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return nil, fmt.Errorf("%s: %s", op, apiErr.Message)
	}
	return raw, nil
}
