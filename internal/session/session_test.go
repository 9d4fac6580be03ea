package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusintelli/internal/auth"
	"campusintelli/internal/store"
)

func TestInitWithoutEntry(t *testing.T) {
	s := New(store.NewMemory())
	ok, err := s.Init(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.Authenticated())
	assert.Equal(t, auth.Permissions{}, s.Permissions())
}

func TestInitMalformedEntryIsAbsent(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{not json", "[]", `{}`, `"string"`} {
		kv := store.NewMemory()
		require.NoError(t, kv.Set(ctx, StorageKey, []byte(raw)))
		s := New(kv)
		ok, err := s.Init(ctx)
		require.NoError(t, err, raw)
		assert.False(t, ok, raw)
	}
}

func TestInitExpiredTokenIsAbsent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, StorageKey, []byte(`{"id":"u1","role":"admin","token":"`+tok+`"}`)))
	s := New(kv).WithClock(func() time.Time { return now })

	ok, err := s.Init(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.Token(ctx))
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := New(kv)

	var changes []bool
	s.OnChange(func(_ User, signedIn bool) { changes = append(changes, signedIn) })

	require.NoError(t, s.Activate(ctx, User{ID: "u1", Name: "Ada", Email: "ada@campus.edu", Role: "Faculty", Department: "CS", Token: "tok"}))
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, auth.RoleFaculty, u.Role)
	assert.Equal(t, auth.Permissions{CanManage: true}, s.Permissions())
	assert.Equal(t, "tok", s.Token(ctx))

	// a fresh context restores from the durable entry
	restored := New(kv)
	ok, err := restored.Init(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	ru, _ := restored.User()
	assert.Equal(t, u, ru)

	name := "Ada Lovelace"
	merged, err := s.Merge(ctx, Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", merged.Name)
	assert.Equal(t, "CS", merged.Department)
	assert.Equal(t, "tok", merged.Token)

	require.NoError(t, s.TearDown(ctx))
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token(ctx))
	_, err = kv.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, []bool{true, true, false}, changes)
}

func TestMergeWithoutSession(t *testing.T) {
	s := New(store.NewMemory())
	_, err := s.Merge(context.Background(), Patch{})
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestListenersSnapshot(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory())

	var order []string
	s.OnChange(func(User, bool) {
		order = append(order, "first")
		s.OnChange(func(User, bool) { order = append(order, "late") })
	})
	s.OnChange(func(User, bool) { order = append(order, "second") })

	require.NoError(t, s.Activate(ctx, User{ID: "u1", Token: "tok"}))
	assert.Equal(t, []string{"first", "second"}, order)

	order = nil
	require.NoError(t, s.TearDown(ctx))
	assert.Equal(t, []string{"first", "second", "late"}, order)
}
