package mentor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/thk/core/mentor"
	"github.com/trezcool/thk/core/user"
	inmemdb "github.com/trezcool/thk/storage/database/inmem"
	testutil "github.com/trezcool/thk/tests"
)

func newService(t *testing.T) *mentor.Service {
	t.Helper()
	validate, _ := testutil.NewValidator()
	return mentor.NewService(inmemdb.NewMentorRepository(inmemdb.NewSeededDB()), validate)
}

func TestService_Query(t *testing.T) {
	svc := newService(t)

	mentors, err := svc.Query(mentor.Filter{Search: "GRANT"})
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "2", mentors[0].ID)

	mentors, err = svc.Query(mentor.Filter{Status: user.StatusInactive})
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "Maya Angelou", mentors[0].Name)

	featured, err := svc.Featured(2)
	require.NoError(t, err)
	assert.Len(t, featured, 2)
}

func TestService_CRUD(t *testing.T) {
	svc := newService(t)

	nm := mentor.NewMentor{Name: " Ada Lovelace ", Email: "ADA@thk.edu", Expertise: []string{"Math"}}
	require.NoError(t, nm.Validate(svc))
	m, err := svc.Create(nm)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", m.Name)
	assert.Equal(t, "ada@thk.edu", m.Email)
	assert.Equal(t, user.StatusPending, m.Status)
	assert.NotEmpty(t, m.Avatar)

	bad := 5.5
	um := mentor.UpdateMentor{Rating: &bad}
	assert.Error(t, um.Validate(svc))

	rating, company := 4.5, "Analytical Engines"
	m, err = svc.Update(m.ID, mentor.UpdateMentor{Rating: &rating, Company: &company})
	require.NoError(t, err)
	assert.Equal(t, 4.5, m.Rating)
	assert.Equal(t, "Analytical Engines", m.Company)
	assert.Equal(t, []string{"Math"}, m.Expertise)

	require.NoError(t, svc.Delete(m.ID))
	_, err = svc.Get(m.ID)
	assert.Equal(t, mentor.ErrNotFound, err)
}

func TestService_Reviews(t *testing.T) {
	svc := newService(t)

	reviews, err := svc.Reviews("2")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Emily Davis", reviews[0].Name)
	assert.True(t, reviews[0].CreatedAt.After(reviews[1].CreatedAt))

	_, err = svc.Reviews("42")
	assert.Equal(t, mentor.ErrNotFound, err)

	nr := mentor.NewReview{Rating: 6, Comment: "ok"}
	assert.Error(t, nr.Validate(svc))
	nr = mentor.NewReview{Rating: 3, Comment: "   "}
	assert.Error(t, nr.Validate(svc))

	author := user.User{ID: "u1", Name: "Jane Doe", Avatar: user.Avatar("Jane Doe")}
	nr = mentor.NewReview{Rating: 4, Comment: " Clear and kind. "}
	require.NoError(t, nr.Validate(svc))
	r, err := svc.AddReview("2", author, nr)
	require.NoError(t, err)
	assert.Equal(t, "Clear and kind.", r.Comment)
	assert.Equal(t, "u1", r.UserID)

	_, err = svc.AddReview("2", author, nr)
	assert.ErrorIs(t, err, mentor.ErrAlreadyReviewed)

	reviews, err = svc.Reviews("2")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, r.ID, reviews[0].ID)

	require.NoError(t, svc.Delete("2"))
	_, err = svc.AddReview("2", author, nr)
	assert.Equal(t, mentor.ErrNotFound, err)
}
