package inmemdb

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/blog"
	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/user"
)

func Test_table(t *testing.T) {
	tbl := newTable[string]()
	tbl.insert("a", "A")
	tbl.insert("b", "B")
	tbl.insert("c", "C")
	tbl.insert("a", "A2") // replaces in place

	assert.Equal(t, []string{"A2", "B", "C"}, tbl.query(nil))

	assert.True(t, tbl.update("b", "B2"))
	assert.False(t, tbl.update("z", "Z"))

	tbl.delete("a", "z")
	assert.Equal(t, []string{"B2", "C"}, tbl.query(nil))
	assert.Equal(t, []string{"C"}, tbl.query(func(s string) bool { return s == "C" }))

	_, ok := tbl.get("a")
	assert.False(t, ok)
}

func Test_table_concurrent(t *testing.T) {
	tbl := newTable[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := strconv.Itoa(i)
			tbl.insert(id, i)
			tbl.update(id, i*2)
			_ = tbl.query(nil)
		}(i)
	}
	wg.Wait()
	assert.Len(t, tbl.query(nil), 50)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(NewDB())
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jane, err := repo.CreateUser(user.User{ID: "1", Name: "Jane", Email: "jane@thk.edu", CreatedAt: created})
	require.NoError(t, err)

	assert.Equal(t, user.ErrEmailExists, repo.CheckEmailUniqueness("jane@thk.edu"))
	assert.NoError(t, repo.CheckEmailUniqueness("jane@thk.edu", jane))
	assert.NoError(t, repo.CheckEmailUniqueness("john@thk.edu"))

	usr, err := repo.GetUserByEmail("jane@thk.edu")
	require.NoError(t, err)
	assert.Equal(t, jane, usr)

	_, err = repo.GetUserByEmail("john@thk.edu")
	assert.Equal(t, user.ErrNotFound, err)

	jane.Name = "Jane D."
	jane.CreatedAt = time.Now()
	usr, err = repo.UpdateUser(jane)
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", usr.Name)
	assert.Equal(t, created, usr.CreatedAt, "CreatedAt is immutable")

	_, err = repo.UpdateUser(user.User{ID: "42"})
	assert.Equal(t, user.ErrNotFound, err)
}

func TestDB_Seed(t *testing.T) {
	db := NewSeededDB()

	courses, err := NewCourseRepository(db).QueryCourses(course.Filter{})
	require.NoError(t, err)
	assert.Len(t, courses, len(course.Seed))

	posts, err := NewPostRepository(db).QueryPosts("")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt), "newest first")
	}

	questions, err := NewPostRepository(db).QueryPosts(blog.CategoryQuestion)
	require.NoError(t, err)
	assert.Len(t, questions, 1)

	logs, err := NewLogRepository(db).QueryLogs(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2", logs[0].ID)
	assert.Equal(t, "1", logs[1].ID)
}

func TestPostRepository_isolation(t *testing.T) {
	repo := NewPostRepository(NewSeededDB())

	p, err := repo.GetPostByID("1")
	require.NoError(t, err)
	p.Comments[0].Content = "changed"
	p.LikedBy = append(p.LikedBy, "someone")

	stored, err := repo.GetPostByID("1")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", stored.Comments[0].Content)
	assert.Empty(t, stored.LikedBy)
}

func TestLogRepository(t *testing.T) {
	repo := NewLogRepository(NewDB())
	for i := 0; i < 3; i++ {
		_, err := repo.CreateLog(activity.Log{
			ID:        strconv.Itoa(i),
			Action:    "action " + strconv.Itoa(i),
			Timestamp: time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
			Type:      activity.TypeInfo,
		})
		require.NoError(t, err)
	}

	logs, err := repo.QueryLogs(-1)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2", logs[0].ID)
}
