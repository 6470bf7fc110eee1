package course_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/thk/core/course"
	inmemdb "github.com/trezcool/thk/storage/database/inmem"
	testutil "github.com/trezcool/thk/tests"
)

func newService(t *testing.T) *course.Service {
	t.Helper()
	validate, _ := testutil.NewValidator()
	return course.NewService(inmemdb.NewCourseRepository(inmemdb.NewSeededDB()), validate)
}

func TestService_Query(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name    string
		filter  course.Filter
		wantIDs []string
	}{
		{name: "all", filter: course.Filter{}, wantIDs: []string{"1", "2", "3", "4"}},
		{name: "All category", filter: course.Filter{Category: course.AllCategories}, wantIDs: []string{"1", "2", "3", "4"}},
		{name: "category", filter: course.Filter{Category: "Arts"}, wantIDs: []string{"2"}},
		{name: "title", filter: course.Filter{Search: "REACT"}, wantIDs: []string{"1"}},
		{name: "description", filter: course.Filter{Search: "pandas"}, wantIDs: []string{"3"}},
		{name: "both", filter: course.Filter{Search: "data", Category: "Science"}, wantIDs: []string{}},
		{name: "instructor", filter: course.Filter{Instructor: "Dr. Sarah Connor"}, wantIDs: []string{"1", "3"}},
		{name: "none", filter: course.Filter{Search: "cooking"}, wantIDs: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses, err := svc.Query(tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(courses))
			for _, c := range courses {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_CRUD(t *testing.T) {
	svc := newService(t)

	nc := course.NewCourse{Title: " Go Concurrency ", Instructor: "Rob", Category: "Cooking", Price: 10}
	assert.Error(t, nc.Validate(svc), "unknown category")

	nc.Category = "Development"
	require.NoError(t, nc.Validate(svc))
	c, err := svc.Create(nc)
	require.NoError(t, err)
	assert.Equal(t, "Go Concurrency", c.Title)

	got, err := svc.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	price := -1.0
	uc := course.UpdateCourse{Price: &price}
	assert.Error(t, uc.Validate(svc))

	price = 49.5
	title := "Go Concurrency Patterns"
	uc = course.UpdateCourse{Title: &title, Price: &price}
	require.NoError(t, uc.Validate(svc))
	c, err = svc.Update(c.ID, uc)
	require.NoError(t, err)
	assert.Equal(t, title, c.Title)
	assert.Equal(t, 49.5, c.Price)
	assert.Equal(t, "Development", c.Category)

	require.NoError(t, svc.Delete(c.ID))
	_, err = svc.Get(c.ID)
	assert.Equal(t, course.ErrNotFound, err)
	assert.Equal(t, course.ErrNotFound, svc.Delete(c.ID))
	_, err = svc.Update(c.ID, uc)
	assert.Equal(t, course.ErrNotFound, err)
}

func TestService_Featured(t *testing.T) {
	svc := newService(t)
	featured, err := svc.Featured(3)
	require.NoError(t, err)
	require.Len(t, featured, 3)
	assert.Equal(t, "1", featured[0].ID)

	all, err := svc.Featured(10)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCategories(t *testing.T) {
	cats := course.Categories()
	assert.Contains(t, cats, "Data Science")
	cats[0] = "changed"
	assert.Equal(t, "Development", course.Categories()[0])
}
