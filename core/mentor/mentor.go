// Package mentor manages the mentors shown on the home page and in the admin console.
package mentor

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/user"
)

var ErrNotFound = errors.New("mentor not found")

type Mentor struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Expertise     []string    `json:"expertise"`
	Rating        float64     `json:"rating"`
	TotalStudents int         `json:"total_students"`
	Status        user.Status `json:"status"`
	Avatar        string      `json:"avatar"`
	Title         string      `json:"title,omitempty"`
	Company       string      `json:"company,omitempty"`
	Bio           string      `json:"bio,omitempty"`
	Certificates  []string    `json:"certificates,omitempty"`
}

// Matches reports whether q is found in the name (case-insensitive).
func (m Mentor) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	return q == "" || strings.Contains(strings.ToLower(m.Name), q)
}

type Filter struct {
	Search string      `query:"search"`
	Status user.Status `query:"status"`
}

func (f Filter) Match(m Mentor) bool {
	if f.Status != "" && f.Status != m.Status {
		return false
	}
	return m.Matches(f.Search)
}

type NewMentor struct {
	Name         string      `json:"name" validate:"required,notblank"`
	Email        string      `json:"email" validate:"required,email"`
	Expertise    []string    `json:"expertise" validate:"max=10,dive,notblank"`
	Status       user.Status `json:"status" validate:"omitempty,userstatus"`
	Avatar       string      `json:"avatar" validate:"omitempty,url"`
	Title        string      `json:"title" validate:"max=200"`
	Company      string      `json:"company" validate:"max=200"`
	Bio          string      `json:"bio" validate:"max=2000"`
	Certificates []string    `json:"certificates" validate:"dive,notblank"`
}

func (nm *NewMentor) Validate(svc *Service) error {
	nm.Name = core.CleanString(nm.Name)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	return svc.validate.Struct(nm)
}

type UpdateMentor struct {
	Name         *string      `json:"name" validate:"omitempty,notblank"`
	Email        *string      `json:"email" validate:"omitempty,email"`
	Expertise    []string     `json:"expertise" validate:"omitempty,max=10,dive,notblank"`
	Rating       *float64     `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Status       *user.Status `json:"status" validate:"omitempty,userstatus"`
	Avatar       *string      `json:"avatar" validate:"omitempty,url"`
	Title        *string      `json:"title" validate:"omitempty,max=200"`
	Company      *string      `json:"company" validate:"omitempty,max=200"`
	Bio          *string      `json:"bio" validate:"omitempty,max=2000"`
	Certificates []string     `json:"certificates" validate:"omitempty,dive,notblank"`
}

func (um *UpdateMentor) Validate(svc *Service) error { return svc.validate.Struct(um) }

type (
	Repository interface {
		QueryMentors(f Filter) ([]Mentor, error)
		GetMentorByID(id string) (Mentor, error)
		CreateMentor(m Mentor) (Mentor, error)
		UpdateMentor(m Mentor) (Mentor, error)
		DeleteMentorsByID(ids ...string) error
		QueryReviews(mentorID string) ([]Review, error)
		CreateReview(r Review) (Review, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Query(f Filter) ([]Mentor, error) { return svc.repo.QueryMentors(f) }

func (svc *Service) Get(id string) (Mentor, error) { return svc.repo.GetMentorByID(id) }

// Featured returns the first n mentors.
func (svc *Service) Featured(n int) ([]Mentor, error) {
	mentors, err := svc.repo.QueryMentors(Filter{})
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(mentors) > n {
		mentors = mentors[:n]
	}
	return mentors, nil
}

func (svc *Service) Create(nm NewMentor) (Mentor, error) {
	status := nm.Status
	if status == "" {
		status = user.StatusPending
	}
	avatar := nm.Avatar
	if avatar == "" {
		avatar = user.Avatar(nm.Name)
	}
	return svc.repo.CreateMentor(Mentor{
		ID:           uuid.New().String(),
		Name:         nm.Name,
		Email:        nm.Email,
		Expertise:    nm.Expertise,
		Status:       status,
		Avatar:       avatar,
		Title:        nm.Title,
		Company:      nm.Company,
		Bio:          nm.Bio,
		Certificates: nm.Certificates,
	})
}

func (svc *Service) Update(id string, um UpdateMentor) (Mentor, error) {
	m, err := svc.repo.GetMentorByID(id)
	if err != nil {
		return Mentor{}, err
	}
	if um.Name != nil {
		m.Name = core.CleanString(*um.Name)
	}
	if um.Email != nil {
		m.Email = core.CleanString(*um.Email, true /* lower */)
	}
	if um.Expertise != nil {
		m.Expertise = um.Expertise
	}
	if um.Rating != nil {
		m.Rating = *um.Rating
	}
	if um.Status != nil {
		m.Status = *um.Status
	}
	if um.Avatar != nil {
		m.Avatar = *um.Avatar
	}
	if um.Title != nil {
		m.Title = *um.Title
	}
	if um.Company != nil {
		m.Company = *um.Company
	}
	if um.Bio != nil {
		m.Bio = *um.Bio
	}
	if um.Certificates != nil {
		m.Certificates = um.Certificates
	}
	return svc.repo.UpdateMentor(m)
}

func (svc *Service) Delete(id string) error {
	if _, err := svc.repo.GetMentorByID(id); err != nil {
		return err
	}
	return svc.repo.DeleteMentorsByID(id)
}
