// Package inmemdb implements the repositories in memory. Every table is safe for concurrent use.
package inmemdb

import (
	"sync"
	"time"

	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/blog"
	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/faculty"
	"github.com/trezcool/thk/core/mentor"
	"github.com/trezcool/thk/core/student"
	"github.com/trezcool/thk/core/user"
)

// table keeps rows by ID, in insertion order.
type table[T any] struct {
	mutex sync.RWMutex
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

// all returns the rows in insertion order. Callers hold the lock.
func (t *table[T]) all() []T {
	rows := make([]T, 0, len(t.order))
	for _, id := range t.order {
		rows = append(rows, t.rows[id])
	}
	return rows
}

func (t *table[T]) insert(id string, row T) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id string) (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// update replaces an existing row. It reports false if id is unknown.
func (t *table[T]) update(id string, row T) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *table[T]) delete(ids ...string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for _, id := range ids {
		if _, ok := t.rows[id]; !ok {
			continue
		}
		delete(t.rows, id)
		for i, oid := range t.order {
			if oid == id {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
}

// query returns the rows matching keep (all when nil), in insertion order.
func (t *table[T]) query(keep func(T) bool) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	rows := t.all()
	if keep == nil {
		return rows
	}
	kept := rows[:0]
	for _, r := range rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

type DB struct {
	user        *table[user.User]
	course      *table[course.Course]
	student     *table[student.Student]
	mentor      *table[mentor.Mentor]
	review      *table[mentor.Review]
	post        *table[blog.Post]
	log         *table[activity.Log]
	application *table[faculty.Application]
}

// NewDB returns an empty DB.
func NewDB() *DB {
	return &DB{
		user:        newTable[user.User](),
		course:      newTable[course.Course](),
		student:     newTable[student.Student](),
		mentor:      newTable[mentor.Mentor](),
		review:      newTable[mentor.Review](),
		post:        newTable[blog.Post](),
		log:         newTable[activity.Log](),
		application: newTable[faculty.Application](),
	}
}

// NewSeededDB returns a DB loaded with the demo data.
func NewSeededDB() *DB {
	db := NewDB()
	db.Seed(time.Now().UTC())
	return db
}

// Seed loads the demo catalog, directory, feed & activity. Blog timestamps are relative to now.
func (db *DB) Seed(now time.Time) {
	for _, c := range course.Seed {
		db.course.insert(c.ID, c)
	}
	for _, s := range student.Seed {
		db.student.insert(s.ID, s)
	}
	for _, m := range mentor.Seed {
		db.mentor.insert(m.ID, m)
	}
	for _, r := range mentor.SeedReviews(now) {
		db.review.insert(r.ID, r)
	}
	for _, p := range blog.Seed(now) {
		db.post.insert(p.ID, p)
	}
	for _, l := range activity.Seed {
		db.log.insert(l.ID, l)
	}
}
