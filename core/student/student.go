// Package student manages the student directory of the admin console.
package student

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/user"
)

const dateLayout = "2006-01-02"

var ErrNotFound = errors.New("student not found")

type Student struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	EnrolledCourses int         `json:"enrolled_courses"`
	Status          user.Status `json:"status"`
	JoinDate        string      `json:"join_date"` // YYYY-MM-DD
	Avatar          string      `json:"avatar"`
}

// Matches reports whether q is found in the name or the email (case-insensitive).
func (s Student) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	return q == "" ||
		strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Email), q)
}

type Filter struct {
	Search string      `query:"search"`
	Status user.Status `query:"status"`
}

func (f Filter) Match(s Student) bool {
	if f.Status != "" && f.Status != s.Status {
		return false
	}
	return s.Matches(f.Search)
}

type NewStudent struct {
	Name            string      `json:"name" validate:"required,notblank"`
	Email           string      `json:"email" validate:"required,email"`
	EnrolledCourses int         `json:"enrolled_courses" validate:"gte=0"`
	Status          user.Status `json:"status" validate:"omitempty,userstatus"`
}

func (ns *NewStudent) Validate(svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return svc.validate.Struct(ns)
}

type UpdateStudent struct {
	Name            *string      `json:"name" validate:"omitempty,notblank"`
	Email           *string      `json:"email" validate:"omitempty,email"`
	EnrolledCourses *int         `json:"enrolled_courses" validate:"omitempty,gte=0"`
	Status          *user.Status `json:"status" validate:"omitempty,userstatus"`
}

func (us *UpdateStudent) Validate(svc *Service) error { return svc.validate.Struct(us) }

type (
	Repository interface {
		QueryStudents(f Filter) ([]Student, error)
		GetStudentByID(id string) (Student, error)
		CreateStudent(s Student) (Student, error)
		UpdateStudent(s Student) (Student, error)
		DeleteStudentsByID(ids ...string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Query(f Filter) ([]Student, error) { return svc.repo.QueryStudents(f) }

func (svc *Service) Get(id string) (Student, error) { return svc.repo.GetStudentByID(id) }

func (svc *Service) Create(ns NewStudent) (Student, error) {
	status := ns.Status
	if status == "" {
		status = user.StatusPending
	}
	return svc.repo.CreateStudent(Student{
		ID:              uuid.New().String(),
		Name:            ns.Name,
		Email:           ns.Email,
		EnrolledCourses: ns.EnrolledCourses,
		Status:          status,
		JoinDate:        time.Now().UTC().Format(dateLayout),
		Avatar:          user.Avatar(ns.Name),
	})
}

func (svc *Service) Update(id string, us UpdateStudent) (Student, error) {
	s, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if us.Name != nil {
		s.Name = core.CleanString(*us.Name)
	}
	if us.Email != nil {
		s.Email = core.CleanString(*us.Email, true /* lower */)
	}
	if us.EnrolledCourses != nil {
		s.EnrolledCourses = *us.EnrolledCourses
	}
	if us.Status != nil {
		s.Status = *us.Status
	}
	return svc.repo.UpdateStudent(s)
}

func (svc *Service) Delete(id string) error {
	if _, err := svc.repo.GetStudentByID(id); err != nil {
		return err
	}
	return svc.repo.DeleteStudentsByID(id)
}

// Seed is the demo student directory loaded at start-up.
var Seed = []Student{
	{ID: "1", Name: "Alice Johnson", Email: "alice@thk.edu", EnrolledCourses: 3, Status: user.StatusActive, JoinDate: "2023-01-15", Avatar: user.Avatar("Alice Johnson")},
	{ID: "2", Name: "Bob Smith", Email: "bob@thk.edu", EnrolledCourses: 1, Status: user.StatusInactive, JoinDate: "2023-02-20", Avatar: user.Avatar("Bob Smith")},
	{ID: "3", Name: "Charlie Davis", Email: "charlie@thk.edu", EnrolledCourses: 5, Status: user.StatusActive, JoinDate: "2023-03-10", Avatar: user.Avatar("Charlie Davis")},
	{ID: "4", Name: "Diana Evans", Email: "diana@thk.edu", EnrolledCourses: 2, Status: user.StatusPending, JoinDate: "2023-04-05", Avatar: user.Avatar("Diana Evans")},
	{ID: "5", Name: "Ethan Hunt", Email: "ethan@thk.edu", EnrolledCourses: 4, Status: user.StatusActive, JoinDate: "2023-05-12", Avatar: user.Avatar("Ethan Hunt")},
}
