package scoreapi

import "sync/atomic"

// Credentials holds at most one bearer token. The zero value is an empty,
// unauthenticated holder and is safe for concurrent use.
type Credentials struct {
	token atomic.Pointer[string]
}

func NewCredentials(token string) *Credentials {
	c := &Credentials{}
	c.Set(token)
	return c
}

// Set replaces the held token as given. An empty token clears the holder.
func (c *Credentials) Set(token string) {
	if token == "" {
		c.token.Store(nil)
		return
	}
	c.token.Store(&token)
}

func (c *Credentials) Clear() {
	c.token.Store(nil)
}

// Current returns the held token and whether one is present.
func (c *Credentials) Current() (string, bool) {
	if c == nil {
		return "", false
	}
	p := c.token.Load()
	if p == nil {
		return "", false
	}
	return *p, true
}
