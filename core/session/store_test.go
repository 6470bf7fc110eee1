package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/thk/core/navigation"
	"github.com/trezcool/thk/core/user"
	logsvc "github.com/trezcool/thk/services/logger"
)

func TestStore_expiry(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	st := NewStore(navigation.DefaultMapper(), logsvc.NewMemoryLogger(), 10, time.Hour)
	st.now = func() time.Time { return now }

	var closed []string
	st.OnClose(func(id string) { closed = append(closed, id) })

	usr := user.User{ID: "u1", Role: user.RoleUser}
	old := st.Open(usr, "en")
	now = now.Add(30 * time.Minute)
	recent := st.Open(usr, "en")
	require.Equal(t, 2, st.Len())

	t.Run("alive within max age", func(t *testing.T) {
		now = now.Add(30 * time.Minute)
		_, err := st.Get(old.ID)
		assert.NoError(t, err)
		assert.Empty(t, closed)
	})

	t.Run("Get drops an expired session", func(t *testing.T) {
		now = now.Add(time.Minute)
		_, err := st.Get(old.ID)
		assert.Equal(t, ErrNotFound, err)
		assert.Equal(t, 1, st.Len())
		assert.Equal(t, []string{old.ID}, closed)
	})

	t.Run("Open sweeps expired sessions", func(t *testing.T) {
		now = now.Add(time.Hour)
		fresh := st.Open(usr, "en")
		assert.Equal(t, 1, st.Len())
		assert.Equal(t, []string{old.ID, recent.ID}, closed)

		_, err := st.Get(fresh.ID)
		assert.NoError(t, err)
	})

	t.Run("Close notifies once", func(t *testing.T) {
		s := st.Open(usr, "en")
		st.Close(s.ID)
		st.Close(s.ID)
		assert.Equal(t, []string{old.ID, recent.ID, s.ID}, closed)
	})
}

func TestStore_noExpiry(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	st := NewStore(navigation.DefaultMapper(), logsvc.NewMemoryLogger(), 10, 0)
	st.now = func() time.Time { return now }

	s := st.Open(user.User{ID: "u1"}, "en")
	now = now.AddDate(1, 0, 0)
	_, err := st.Get(s.ID)
	assert.NoError(t, err)
}
