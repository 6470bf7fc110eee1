package course

import (
	"strings"

	"github.com/trezcool/thk/core"
)

// Course is a catalog entry.
type Course struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Instructor  string  `json:"instructor"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Students    int     `json:"students"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// Matches reports whether q is found in the title or the description (case-insensitive).
func (c Course) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	return q == "" ||
		strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Description), q)
}

// Filter narrows QueryCourses. Zero values match everything.
type Filter struct {
	Search     string `query:"search"`
	Category   string `query:"category"`
	Instructor string `query:"instructor"`
}

func (f Filter) Match(c Course) bool {
	if f.Category != "" && f.Category != AllCategories && f.Category != c.Category {
		return false
	}
	if f.Instructor != "" && f.Instructor != c.Instructor {
		return false
	}
	return c.Matches(f.Search)
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Instructor  string  `json:"instructor" validate:"required,notblank"`
	Category    string  `json:"category" validate:"required,coursecategory"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Description string  `json:"description" validate:"max=2000"`
}

func (nc *NewCourse) Validate(svc *Service) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Instructor = core.CleanString(nc.Instructor)
	nc.Description = core.CleanString(nc.Description)
	return svc.validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Title       *string  `json:"title" validate:"omitempty,notblank,max=200"`
	Instructor  *string  `json:"instructor" validate:"omitempty,notblank"`
	Category    *string  `json:"category" validate:"omitempty,coursecategory"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
}

func (uc *UpdateCourse) Validate(svc *Service) error { return svc.validate.Struct(uc) }
