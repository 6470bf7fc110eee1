package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/mentor"
	"github.com/trezcool/thk/core/navigation"
	"github.com/trezcool/thk/core/payment"
	"github.com/trezcool/thk/core/student"
	"github.com/trezcool/thk/core/user"
)

func courseIDs(t *testing.T, data []byte) []string {
	t.Helper()
	var courses []course.Course
	require.NoError(t, json.Unmarshal(data, &courses))
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}

func Test_catalogApi_courses(t *testing.T) {
	app := setup(t)
	_, userToken := app.loginAs(t, "Jane Doe", "jane@thk.edu", user.RoleUser)
	_, adminToken := app.loginAs(t, "Admin", "admin@thk.edu", user.RoleAdmin)

	t.Run("query", func(t *testing.T) {
		for path, want := range map[string][]string{
			"/v1/courses":                    {"1", "2", "3", "4"},
			"/v1/courses?category=All":       {"1", "2", "3", "4"},
			"/v1/courses?category=Arts":      {"2"},
			"/v1/courses?search=REACT":       {"1"},
			"/v1/courses?search=prehistoric": {"4"},
			"/v1/courses?search=nothing":     {},
		} {
			rec := app.do(http.MethodGet, path, userToken)
			require.Equal(t, http.StatusOK, rec.Code, path)
			assert.ElementsMatch(t, want, courseIDs(t, rec.Body.Bytes()), path)
		}
	})

	newCourse := marchallObj(t, course.NewCourse{
		Title: "Go in Production", Instructor: "Rob", Category: "Development", Price: 49.5,
	})
	tests := []httpTest{
		{name: "categories", path: "/v1/courses/categories", token: userToken, wantCode: http.StatusOK,
			wantData: marchallObj(t, append([]string{course.AllCategories}, course.Categories()...))},
		{name: "retrieve", path: "/v1/courses/2", token: userToken, wantCode: http.StatusOK, wantData: marchallObj(t, course.Seed[1])},
		{name: "retrieve unknown", path: "/v1/courses/42", token: userToken, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: course.ErrNotFound.Error()})},
		{name: "create as user", method: http.MethodPost, path: "/v1/courses", token: userToken, body: newCourse,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
		{name: "create invalid", method: http.MethodPost, path: "/v1/courses", token: adminToken,
			body:     marchallObj(t, course.NewCourse{Title: "  ", Instructor: "Rob", Category: "Cooking"}),
			wantCode: http.StatusBadRequest},
		{name: "create", method: http.MethodPost, path: "/v1/courses", token: adminToken, body: newCourse, wantCode: http.StatusCreated},
		{name: "update", method: http.MethodPut, path: "/v1/courses/3", token: adminToken,
			body: []byte(`{"price": 10}`), wantCode: http.StatusOK},
		{name: "delete as user", method: http.MethodDelete, path: "/v1/courses/4", token: userToken, wantCode: http.StatusForbidden},
		{name: "delete", method: http.MethodDelete, path: "/v1/courses/4", token: adminToken, wantCode: http.StatusNoContent},
		{name: "deleted", path: "/v1/courses/4", token: adminToken, wantCode: http.StatusNotFound},
	}
	runHTTPTests(t, app, tests)

	t.Run("changes are logged", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/activity?limit=3", adminToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var logs []struct {
			Action string `json:"action"`
			User   string `json:"user"`
		}
		unmarchall(t, rec, &logs)
		require.Len(t, logs, 3)
		assert.Equal(t, `Course "Dinosaur Biology" Deleted`, logs[0].Action)
		assert.Equal(t, `Course "Data Science Fundamentals" Updated`, logs[1].Action)
		assert.Equal(t, `Course "Go in Production" Created`, logs[2].Action)
		assert.Equal(t, "Admin", logs[0].User)
	})
}

func Test_catalogApi_enrollment(t *testing.T) {
	app := setup(t)
	_, token := app.loginAs(t, "Jane Doe", "jane@thk.edu", user.RoleUser)

	t.Run("view selects and navigates", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/v1/courses/1/view", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res := app.screen(t, token)
		assert.Equal(t, navigation.ScreenCourseFullView, res.Screen)
		var data struct {
			Course   course.Course `json:"course"`
			Enrolled bool          `json:"enrolled"`
		}
		require.NoError(t, json.Unmarshal(res.Data, &data))
		assert.Equal(t, "1", data.Course.ID)
		assert.False(t, data.Enrolled)
	})

	tests := []httpTest{
		{name: "view unknown", method: http.MethodPost, path: "/v1/courses/42/view", token: token, wantCode: http.StatusNotFound},
		{name: "enroll", method: http.MethodPost, path: "/v1/courses/1/enroll", token: token, wantCode: http.StatusCreated,
			wantData: []byte(`{"enrolled": true, "message": "Enrolled in Advanced React Patterns"}`)},
		{name: "enroll twice", method: http.MethodPost, path: "/v1/courses/1/enroll", token: token, wantCode: http.StatusOK,
			wantData: []byte(`{"enrolled": true, "message": "Already enrolled in Advanced React Patterns"}`)},
		{name: "checkout with a bad card", method: http.MethodPost, path: "/v1/courses/2/checkout", token: token,
			body:     marchallObj(t, payment.Card{Number: "4242", Expiry: "13/30", CVC: "1"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"number": "number must contain 16 digits",
				"expiry": "expiry must be a valid MM/YY date",
				"cvc":    "cvc must contain 3 or 4 digits",
			})},
	}
	runHTTPTests(t, app, tests)

	t.Run("checkout", func(t *testing.T) {
		app.mailSvc.Reset()
		rec := app.do(http.MethodPost, "/v1/courses/2/checkout", token,
			marchallObj(t, payment.Card{Number: "4242 4242 4242 4242", Expiry: "12/40", CVC: "123"}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var res struct {
			Receipt payment.Receipt `json:"receipt"`
			Card    string          `json:"card"`
		}
		unmarchall(t, rec, &res)
		assert.Equal(t, "2", res.Receipt.CourseID)
		assert.Equal(t, 79.99, res.Receipt.Amount)
		assert.Equal(t, "4242", res.Receipt.CardLast4)
		assert.Equal(t, "4242 4242 4242 4242", res.Card)

		msgs := app.mailSvc.SentMessages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "payment_receipt", msgs[0].TemplateName)
		assert.Equal(t, "jane@thk.edu", msgs[0].To[0].Address)
	})

	t.Run("my courses", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/my-courses", token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"1", "2"}, courseIDs(t, rec.Body.Bytes()))
	})
}

func Test_catalogApi_students(t *testing.T) {
	app := setup(t)
	_, userToken := app.loginAs(t, "Jane Doe", "jane@thk.edu", user.RoleUser)
	_, adminToken := app.loginAs(t, "Admin", "admin@thk.edu", user.RoleAdmin)

	tests := []httpTest{
		{name: "admin required", path: "/v1/students", token: userToken, wantCode: http.StatusForbidden},
		{name: "retrieve", path: "/v1/students/1", token: adminToken, wantCode: http.StatusOK, wantData: marchallObj(t, student.Seed[0])},
		{name: "query by status", path: "/v1/students?status=Pending", token: adminToken, wantCode: http.StatusOK,
			wantData: marchallObj(t, []student.Student{student.Seed[3]})},
		{name: "create invalid", method: http.MethodPost, path: "/v1/students", token: adminToken,
			body: []byte(`{"name": "Zed", "email": "zed"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"})},
		{name: "create", method: http.MethodPost, path: "/v1/students", token: adminToken,
			body: []byte(`{"name": "Zed", "email": "zed@thk.edu"}`), wantCode: http.StatusCreated},
		{name: "update unknown", method: http.MethodPut, path: "/v1/students/42", token: adminToken,
			body: []byte(`{"name": "Zed"}`), wantCode: http.StatusNotFound},
		{name: "update", method: http.MethodPut, path: "/v1/students/2", token: adminToken,
			body: []byte(`{"status": "Active"}`), wantCode: http.StatusOK},
		{name: "delete", method: http.MethodDelete, path: "/v1/students/5", token: adminToken, wantCode: http.StatusNoContent},
		{name: "delete again", method: http.MethodDelete, path: "/v1/students/5", token: adminToken, wantCode: http.StatusNotFound},
	}
	runHTTPTests(t, app, tests)

	rec := app.do(http.MethodGet, "/v1/students", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var students []student.Student
	unmarchall(t, rec, &students)
	assert.Len(t, students, 5) // 5 seeded + 1 created - 1 deleted
}

func Test_catalogApi_mentors(t *testing.T) {
	app := setup(t)
	_, userToken := app.loginAs(t, "Jane Doe", "jane@thk.edu", user.RoleUser)
	_, adminToken := app.loginAs(t, "Admin", "admin@thk.edu", user.RoleAdmin)

	tests := []httpTest{
		{name: "public profile", path: "/v1/mentors/1", token: userToken, wantCode: http.StatusOK, wantData: marchallObj(t, mentor.Seed[0])},
		{name: "directory is admin only", path: "/v1/mentors", token: userToken, wantCode: http.StatusForbidden},
		{name: "query", path: "/v1/mentors?search=maya", token: adminToken, wantCode: http.StatusOK,
			wantData: marchallObj(t, []mentor.Mentor{mentor.Seed[2]})},
		{name: "create", method: http.MethodPost, path: "/v1/mentors", token: adminToken,
			body: []byte(`{"name": "Ada Lovelace", "email": "ada@thk.edu", "expertise": ["Math"]}`), wantCode: http.StatusCreated},
		{name: "update", method: http.MethodPut, path: "/v1/mentors/3", token: adminToken,
			body: []byte(`{"rating": 6}`), wantCode: http.StatusBadRequest},
		{name: "delete", method: http.MethodDelete, path: "/v1/mentors/3", token: adminToken, wantCode: http.StatusNoContent},
	}
	runHTTPTests(t, app, tests)
}

func Test_catalogApi_mentorProfile(t *testing.T) {
	app := setup(t)
	_, token := app.loginAs(t, "Jane Doe", "jane@thk.edu", user.RoleUser)

	t.Run("profile", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/mentors/1/profile", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res struct {
			Mentor  mentor.Mentor   `json:"mentor"`
			Courses []course.Course `json:"courses"`
			Reviews []mentor.Review `json:"reviews"`
		}
		unmarchall(t, rec, &res)
		assert.Equal(t, "Dr. Sarah Connor", res.Mentor.Name)
		require.Len(t, res.Courses, 2)
		assert.Equal(t, "1", res.Courses[0].ID)
		assert.Equal(t, "3", res.Courses[1].ID)
		require.Len(t, res.Reviews, 2)
		assert.Equal(t, "Emily Davis", res.Reviews[0].Name)
	})

	tests := []httpTest{
		{name: "unknown mentor", path: "/v1/mentors/42/profile", token: token, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: mentor.ErrNotFound.Error()})},
		{name: "no token", path: "/v1/mentors/1/reviews", wantCode: http.StatusUnauthorized},
		{name: "review without rating", method: http.MethodPost, path: "/v1/mentors/1/reviews", token: token,
			body: []byte(`{"comment": "Great"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"rating": "rating is a required field"})},
		{name: "review", method: http.MethodPost, path: "/v1/mentors/1/reviews", token: token,
			body: []byte(`{"rating": 4, "comment": " Clear and kind. "}`), wantCode: http.StatusCreated},
		{name: "review twice", method: http.MethodPost, path: "/v1/mentors/1/reviews", token: token,
			body: []byte(`{"rating": 5, "comment": "Again"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: mentor.ErrAlreadyReviewed.Error()})},
		{name: "review unknown mentor", method: http.MethodPost, path: "/v1/mentors/42/reviews", token: token,
			body: []byte(`{"rating": 5, "comment": "Hi"}`), wantCode: http.StatusNotFound},
	}
	runHTTPTests(t, app, tests)

	rec := app.do(http.MethodGet, "/v1/mentors/1/reviews", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []mentor.Review
	unmarchall(t, rec, &reviews)
	require.Len(t, reviews, 3)
	assert.Equal(t, "Jane Doe", reviews[0].Name)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "Clear and kind.", reviews[0].Comment)
	assert.Equal(t, "Thanks for rating your mentor!", app.notifications(t, token).Notifications[0].Text)
}
