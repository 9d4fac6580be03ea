package store

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

// CookieName is the name of the portal's browser cookie.
const CookieName = "campus-session"

// NewCookieStore builds the gorilla cookie store shared by all requests.
// hashKey signs the cookie; blockKey (16, 24 or 32 bytes, optional) encrypts it.
func NewCookieStore(hashKey, blockKey []byte, maxAge int, secure bool) *sessions.CookieStore {
	cs := sessions.NewCookieStore(hashKey, blockKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	cs.MaxAge(maxAge)
	return cs
}

// Cookie is a request-scoped KV persisted in the browser's session cookie.
// Every write saves the cookie immediately, so writes must happen before the
// response body is written.
type Cookie struct {
	store sessions.Store
	r     *http.Request
	w     http.ResponseWriter
}

// NewCookie binds store to one request/response pair.
func NewCookie(store sessions.Store, r *http.Request, w http.ResponseWriter) *Cookie {
	return &Cookie{store: store, r: r, w: w}
}

func (c *Cookie) session() (*sessions.Session, error) {
	// A cookie that fails to decode yields a fresh session plus an error;
	// treat it as empty so a rotated key does not lock users out.
	sess, err := c.store.Get(c.r, CookieName)
	if sess == nil {
		return nil, err
	}
	return sess, nil
}

// Get reads key from the cookie.
func (c *Cookie) Get(_ context.Context, key string) ([]byte, error) {
	sess, err := c.session()
	if err != nil {
		return nil, err
	}
	v, ok := sess.Values[key].(string)
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

// Set writes key and saves the cookie.
func (c *Cookie) Set(_ context.Context, key string, value []byte) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	sess.Values[key] = string(value)
	return sess.Save(c.r, c.w)
}

// Delete removes key and saves the cookie.
func (c *Cookie) Delete(_ context.Context, key string) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	delete(sess.Values, key)
	return sess.Save(c.r, c.w)
}

// SessionID returns a stable id kept in the cookie, creating it with newID on first use.
// The Redis backend keys its entries by this id.
func (c *Cookie) SessionID(newID func() string) (string, error) {
	sess, err := c.session()
	if err != nil {
		return "", err
	}
	if id, ok := sess.Values["sid"].(string); ok && id != "" {
		return id, nil
	}
	id := newID()
	sess.Values["sid"] = id
	if err := sess.Save(c.r, c.w); err != nil {
		return "", err
	}
	return id, nil
}
