package notification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/thk/core/notification"
)

func TestNewInbox(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	in := notification.NewInbox(now)

	items := in.List()
	require.Len(t, items, 3)
	assert.Equal(t, "Welcome to THK Learning! 🎓", items[0].Text)
	assert.Equal(t, now, items[0].CreatedAt)
	assert.Equal(t, now.Add(-2*time.Hour), items[1].CreatedAt)
	assert.False(t, items[1].Read)
	assert.True(t, items[2].Read)
	assert.Equal(t, 2, in.Unread())
}

func TestInbox(t *testing.T) {
	in := notification.NewInbox(time.Now())

	n := in.Push("Enrolled in Dinosaur Biology")
	assert.Equal(t, 3, in.Unread())
	assert.Equal(t, n, in.List()[0])

	require.NoError(t, in.MarkRead(n.ID))
	require.NoError(t, in.MarkRead(n.ID))
	assert.Equal(t, 2, in.Unread())
	assert.True(t, in.List()[0].Read)

	assert.Equal(t, notification.ErrNotFound, in.MarkRead("42"))

	items := in.List()
	items[0].Text = "changed"
	assert.Equal(t, "Enrolled in Dinosaur Biology", in.List()[0].Text, "List returns a copy")
}
