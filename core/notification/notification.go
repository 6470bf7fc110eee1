// Package notification keeps the header notifications of a session.
package notification

import (
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"` // UTC
	Read      bool      `json:"read"`
}

// Inbox is the notification list of one session, newest first.
type Inbox struct {
	mu     sync.RWMutex
	items  []Notification
	nextID int
}

// NewInbox returns an inbox loaded with the welcome notifications, dated relative to now.
func NewInbox(now time.Time) *Inbox {
	in := new(Inbox)
	for i := len(seed) - 1; i >= 0; i-- {
		s := seed[i]
		n := in.add(s.text, now.Add(-s.age))
		if s.read {
			_ = in.MarkRead(n.ID)
		}
	}
	return in
}

var seed = []struct {
	text string
	age  time.Duration
	read bool
}{
	{text: "Welcome to THK Learning! 🎓"},
	{text: "New course 'Advanced Python' added.", age: 2 * time.Hour},
	{text: "Your profile was successfully updated.", age: 24 * time.Hour, read: true},
}

func (in *Inbox) add(text string, at time.Time) Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.nextID++
	n := Notification{ID: strconv.Itoa(in.nextID), Text: text, CreatedAt: at.UTC()}
	in.items = append([]Notification{n}, in.items...)
	return n
}

// Push adds an unread notification on top of the list.
func (in *Inbox) Push(text string) Notification {
	return in.add(text, time.Now())
}

func (in *Inbox) List() []Notification {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return append([]Notification{}, in.items...)
}

func (in *Inbox) Unread() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	var n int
	for _, it := range in.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// MarkRead flags the notification id as read. Marking it twice is a no-op.
func (in *Inbox) MarkRead(id string) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := range in.items {
		if in.items[i].ID == id {
			in.items[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}
