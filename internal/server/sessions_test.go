package server

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestStore(clock *fakeClock, ttl time.Duration) *Store {
	n := 0
	return newStore(ttl, clock.Now, func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}, func(*session) *wizard.Controller { return wizard.New() })
}

func TestStore_ExpiresIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(clock, time.Minute)

	sess := store.create()
	require.Equal(t, "s1", sess.id)
	require.NotEmpty(t, sess.csrf)

	clock.now = clock.now.Add(45 * time.Second)
	_, err := store.get("s1")
	require.NoError(t, err, "access within ttl")

	clock.now = clock.now.Add(45 * time.Second)
	_, err = store.get("s1")
	require.NoError(t, err, "previous access refreshed the deadline")

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = store.get("s1")
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.Equal(t, 0, store.Len())
}

func TestStore_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(clock, time.Minute)

	store.create()
	clock.now = clock.now.Add(50 * time.Second)
	store.create()
	clock.now = clock.now.Add(30 * time.Second)

	require.Equal(t, 1, store.Sweep())
	require.Equal(t, 1, store.Len())
	_, err := store.get("s2")
	require.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(&fakeClock{now: time.Now()}, time.Minute)
	store.create()

	require.True(t, store.delete("s1"))
	require.False(t, store.delete("s1"))
}

func TestSession_FlashAndNavigationAreReadOnce(t *testing.T) {
	s := &session{flash: "saved", navigate: wizard.PathHome}

	require.Equal(t, "saved", s.takeFlash())
	require.Empty(t, s.takeFlash())
	require.Equal(t, wizard.PathHome, s.takeNavigation())
	require.Empty(t, s.takeNavigation())
}
