package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		QueryCourses(f Filter) ([]Course, error)
		GetCourseByID(id string) (Course, error)
		CreateCourse(c Course) (Course, error)
		UpdateCourse(c Course) (Course, error)
		DeleteCoursesByID(ids ...string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Query(f Filter) ([]Course, error) {
	return svc.repo.QueryCourses(f)
}

func (svc *Service) Get(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

// Featured returns the first n courses of the catalog.
func (svc *Service) Featured(n int) ([]Course, error) {
	courses, err := svc.repo.QueryCourses(Filter{})
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(courses) > n {
		courses = courses[:n]
	}
	return courses, nil
}

func (svc *Service) Create(nc NewCourse) (Course, error) {
	return svc.repo.CreateCourse(Course{
		ID:          uuid.New().String(),
		Title:       nc.Title,
		Instructor:  nc.Instructor,
		Category:    nc.Category,
		Price:       nc.Price,
		Image:       nc.Image,
		Description: nc.Description,
	})
}

func (svc *Service) Update(id string, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return Course{}, err
	}
	if uc.Title != nil {
		c.Title = *uc.Title
	}
	if uc.Instructor != nil {
		c.Instructor = *uc.Instructor
	}
	if uc.Category != nil {
		c.Category = *uc.Category
	}
	if uc.Price != nil {
		c.Price = *uc.Price
	}
	if uc.Image != nil {
		c.Image = *uc.Image
	}
	if uc.Description != nil {
		c.Description = *uc.Description
	}
	return svc.repo.UpdateCourse(c)
}

func (svc *Service) Delete(id string) error {
	if _, err := svc.repo.GetCourseByID(id); err != nil {
		return err
	}
	return svc.repo.DeleteCoursesByID(id)
}
