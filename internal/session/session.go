// Package session owns the signed-in user for one portal client.
//
// A Context moves through Init (restore from durable storage), Activate (login),
// Merge (profile edits) and TearDown (logout). The durable entry is always
// written before the in-memory copy so both stay in step.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"campusintelli/internal/auth"
	"campusintelli/internal/store"
)

// StorageKey is the fixed durable-storage key of the session entry.
const StorageKey = "campus_user"

// ErrNoSession is returned by operations that need a signed-in user.
var ErrNoSession = errors.New("session: not signed in")

// User is the authenticated identity, stored together with its bearer token.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       auth.Role `json:"role"`
	Department string    `json:"department,omitempty"`
	Token      string    `json:"token,omitempty"`
}

// Patch holds the profile fields a user may change. Nil fields are left untouched.
type Patch struct {
	Name       *string
	Department *string
}

// Context is the explicit session object handed to the controller and admin manager.
type Context struct {
	kv  store.KV
	now func() time.Time

	mu        sync.RWMutex
	user      *User
	perms     auth.Permissions
	listeners []func(User, bool)
}

// New creates an uninitialised session backed by kv.
func New(kv store.KV) *Context {
	return &Context{kv: kv, now: time.Now}
}

// WithClock overrides the clock used for token expiry checks.
func (c *Context) WithClock(now func() time.Time) *Context {
	c.now = now
	return c
}

// Init restores the session from durable storage. A missing, malformed or expired
// entry leaves the session signed out; only storage failures are returned.
func (c *Context) Init(ctx context.Context) (bool, error) {
	u, err := c.stored(ctx)
	if err != nil {
		return false, err
	}
	if u == nil {
		c.set(nil)
		return false, nil
	}
	c.set(u)
	return true, nil
}

func (c *Context) stored(ctx context.Context) (*User, error) {
	raw, err := c.kv.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read: %w", err)
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, nil
	}
	if u.ID == "" && u.Email == "" {
		return nil, nil
	}
	if auth.TokenExpired(u.Token, c.now()) {
		return nil, nil
	}
	u.Role = auth.ParseRole(string(u.Role))
	return &u, nil
}

// Activate signs u in, persisting it durably first.
func (c *Context) Activate(ctx context.Context, u User) error {
	u.Role = auth.ParseRole(string(u.Role))
	if err := c.persist(ctx, u); err != nil {
		return err
	}
	c.set(&u)
	return nil
}

// Merge applies p on top of the current user.
func (c *Context) Merge(ctx context.Context, p Patch) (User, error) {
	cur, ok := c.User()
	if !ok {
		return User{}, ErrNoSession
	}
	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Department != nil {
		cur.Department = *p.Department
	}
	if err := c.persist(ctx, cur); err != nil {
		return User{}, err
	}
	c.set(&cur)
	return cur, nil
}

// TearDown removes the durable entry and clears the in-memory user.
func (c *Context) TearDown(ctx context.Context) error {
	if err := c.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	c.set(nil)
	return nil
}

func (c *Context) persist(ctx context.Context, u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := c.kv.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}

func (c *Context) set(u *User) {
	c.mu.Lock()
	c.user = u
	if u != nil {
		c.perms = auth.PermissionsFor(u.Role)
	} else {
		c.perms = auth.Permissions{}
	}
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	var cur User
	if u != nil {
		cur = *u
	}
	for _, fn := range listeners {
		fn(cur, u != nil)
	}
}

// OnChange registers fn to run after every sign-in, profile merge or sign-out.
func (c *Context) OnChange(fn func(u User, signedIn bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// User returns the signed-in user.
func (c *Context) User() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// Authenticated reports whether a user is signed in.
func (c *Context) Authenticated() bool {
	_, ok := c.User()
	return ok
}

// Role returns the signed-in role, student when signed out.
func (c *Context) Role() auth.Role {
	if u, ok := c.User(); ok {
		return u.Role
	}
	return auth.RoleStudent
}

// Permissions returns the capabilities resolved at the last session change.
func (c *Context) Permissions() auth.Permissions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.perms
}

// Token reads the bearer token from durable storage, so API calls always use
// whatever the store currently holds.
func (c *Context) Token(ctx context.Context) string {
	u, err := c.stored(ctx)
	if err != nil || u == nil {
		return ""
	}
	return u.Token
}
