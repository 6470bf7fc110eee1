package student_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/thk/core/student"
	"github.com/trezcool/thk/core/user"
	inmemdb "github.com/trezcool/thk/storage/database/inmem"
	testutil "github.com/trezcool/thk/tests"
)

func newService(t *testing.T) *student.Service {
	t.Helper()
	validate, _ := testutil.NewValidator()
	return student.NewService(inmemdb.NewStudentRepository(inmemdb.NewSeededDB()), validate)
}

func TestService_Query(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name    string
		filter  student.Filter
		wantIDs []string
	}{
		{name: "all", wantIDs: []string{"1", "2", "3", "4", "5"}},
		{name: "name", filter: student.Filter{Search: "alice"}, wantIDs: []string{"1"}},
		{name: "email", filter: student.Filter{Search: "BOB@"}, wantIDs: []string{"2"}},
		{name: "status", filter: student.Filter{Status: user.StatusActive}, wantIDs: []string{"1", "3", "5"}},
		{name: "status & search", filter: student.Filter{Search: "alice", Status: user.StatusInactive}, wantIDs: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, err := svc.Query(tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(students))
			for _, s := range students {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestNewStudent_Validate(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name    string
		ns      student.NewStudent
		wantErr bool
	}{
		{name: "valid", ns: student.NewStudent{Name: "Zed", Email: "zed@thk.edu"}},
		{name: "blank name", ns: student.NewStudent{Name: "  ", Email: "zed@thk.edu"}, wantErr: true},
		{name: "bad email", ns: student.NewStudent{Name: "Zed", Email: "zed"}, wantErr: true},
		{name: "negative courses", ns: student.NewStudent{Name: "Zed", Email: "zed@thk.edu", EnrolledCourses: -1}, wantErr: true},
		{name: "bad status", ns: student.NewStudent{Name: "Zed", Email: "zed@thk.edu", Status: "Banned"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ns.Validate(svc)
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestService_CRUD(t *testing.T) {
	svc := newService(t)

	s, err := svc.Create(student.NewStudent{Name: "Zed", Email: "zed@thk.edu"})
	require.NoError(t, err)
	assert.Equal(t, user.StatusPending, s.Status)
	assert.NotEmpty(t, s.JoinDate)
	assert.NotEmpty(t, s.Avatar)

	name, status := " Zed Z. ", user.StatusActive
	s, err = svc.Update(s.ID, student.UpdateStudent{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Zed Z.", s.Name)
	assert.Equal(t, user.StatusActive, s.Status)
	assert.Equal(t, "zed@thk.edu", s.Email)

	_, err = svc.Update("42", student.UpdateStudent{Name: &name})
	assert.Equal(t, student.ErrNotFound, err)

	require.NoError(t, svc.Delete(s.ID))
	_, err = svc.Get(s.ID)
	assert.Equal(t, student.ErrNotFound, err)
	assert.Equal(t, student.ErrNotFound, svc.Delete(s.ID))
}
