package inmemdb

import (
	"sort"

	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/blog"
	"github.com/trezcool/thk/core/faculty"
)

type postRepository struct {
	db *table[blog.Post]
}

var _ blog.Repository = (*postRepository)(nil)

func NewPostRepository(db *DB) blog.Repository {
	return &postRepository{db: db.post}
}

func (repo *postRepository) QueryPosts(category blog.Category) ([]blog.Post, error) {
	posts := repo.db.query(func(p blog.Post) bool {
		return category == "" || p.Category == category
	})
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	for i := range posts {
		posts[i] = copyPost(posts[i])
	}
	return posts, nil
}

func (repo *postRepository) GetPostByID(id string) (blog.Post, error) {
	if p, ok := repo.db.get(id); ok {
		return copyPost(p), nil
	}
	return blog.Post{}, blog.ErrNotFound
}

func (repo *postRepository) CreatePost(p blog.Post) (blog.Post, error) {
	p = copyPost(p)
	repo.db.insert(p.ID, p)
	return copyPost(p), nil
}

func (repo *postRepository) UpdatePost(p blog.Post) (blog.Post, error) {
	p = copyPost(p)
	if !repo.db.update(p.ID, p) {
		return blog.Post{}, blog.ErrNotFound
	}
	return copyPost(p), nil
}

// copyPost detaches the slices of p from the stored row.
func copyPost(p blog.Post) blog.Post {
	p.LikedBy = append([]string(nil), p.LikedBy...)
	p.Comments = append([]blog.Comment{}, p.Comments...)
	return p
}

type logRepository struct {
	db *table[activity.Log]
}

var _ activity.Repository = (*logRepository)(nil)

func NewLogRepository(db *DB) activity.Repository {
	return &logRepository{db: db.log}
}

func (repo *logRepository) CreateLog(l activity.Log) (activity.Log, error) {
	repo.db.insert(l.ID, l)
	return l, nil
}

func (repo *logRepository) QueryLogs(n int) ([]activity.Log, error) {
	logs := repo.db.query(nil)
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	if n >= 0 && len(logs) > n {
		logs = logs[:n]
	}
	return logs, nil
}

type applicationRepository struct {
	db *table[faculty.Application]
}

var _ faculty.Repository = (*applicationRepository)(nil)

func NewApplicationRepository(db *DB) faculty.Repository {
	return &applicationRepository{db: db.application}
}

func (repo *applicationRepository) CreateApplication(a faculty.Application) (faculty.Application, error) {
	repo.db.insert(a.ID, a)
	return a, nil
}

func (repo *applicationRepository) QueryApplications() ([]faculty.Application, error) {
	apps := repo.db.query(nil)
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].SubmittedAt.After(apps[j].SubmittedAt) })
	return apps, nil
}
