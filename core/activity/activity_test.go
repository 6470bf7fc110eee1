package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/course"
	inmemdb "github.com/trezcool/thk/storage/database/inmem"
)

func TestNewStats(t *testing.T) {
	st := activity.NewStats([]course.Course{
		{Price: 10, Students: 3},
		{Price: 2.5, Students: 4},
	}, 7, 2)
	assert.Equal(t, activity.Stats{TotalStudents: 7, TotalMentors: 2, TotalCourses: 2, Revenue: 40}, st)
	assert.Equal(t, activity.Stats{}, activity.NewStats(nil, 0, 0))
}

func TestService(t *testing.T) {
	svc := activity.NewService(inmemdb.NewLogRepository(inmemdb.NewSeededDB()))

	l, err := svc.Record(activity.TypeError, `Course "Go" Deleted`, "Admin")
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.False(t, l.Timestamp.IsZero())

	logs, err := svc.Recent(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, l, logs[0])

	logs, err = svc.Recent(-1)
	require.NoError(t, err)
	assert.Len(t, logs, len(activity.Seed)+1)
}
