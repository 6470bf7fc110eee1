// Package search implements the global search bar.
package search

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/mentor"
	"github.com/trezcool/thk/core/student"
	"github.com/trezcool/thk/core/user"
)

// MaxResults bounds the results of a search.
const MaxResults = 6

type Kind string

const (
	KindCourse  Kind = "Course"
	KindStudent Kind = "Student"
	KindMentor  Kind = "Mentor"
)

// Result is a search hit. Path is where selecting it navigates to.
type Result struct {
	Kind  Kind        `json:"type"`
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Path  string      `json:"path"`
	Data  interface{} `json:"data"`
}

type Service struct {
	courses  *course.Service
	students *student.Service
	mentors  *mentor.Service
}

func NewService(courses *course.Service, students *student.Service, mentors *mentor.Service) *Service {
	return &Service{courses: courses, students: students, mentors: mentors}
}

// Search matches courses by title or category for everyone,
// then students by name or email and mentors by name for admins.
func (svc *Service) Search(q string, role user.Role) ([]Result, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []Result{}, nil
	}
	results := make([]Result, 0, MaxResults)

	courses, err := svc.courses.Query(course.Filter{})
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Category), q) {
			results = append(results, Result{Kind: KindCourse, ID: c.ID, Title: c.Title, Path: "/course-details", Data: c})
		}
	}

	if role == user.RoleAdmin {
		students, err := svc.students.Query(student.Filter{Search: q})
		if err != nil {
			return nil, errors.Wrap(err, "querying students")
		}
		for _, s := range students {
			results = append(results, Result{Kind: KindStudent, ID: s.ID, Title: s.Name, Path: "/students", Data: s})
		}

		mentors, err := svc.mentors.Query(mentor.Filter{Search: q})
		if err != nil {
			return nil, errors.Wrap(err, "querying mentors")
		}
		for _, m := range mentors {
			results = append(results, Result{Kind: KindMentor, ID: m.ID, Title: m.Name, Path: "/mentors", Data: m})
		}
	}

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results, nil
}
