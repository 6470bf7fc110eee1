// Package faculty handles the "apply to teach" applications.
package faculty

import (
	"net/mail"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
)

var ErrNotFound = errors.New("application not found")

type Degree string

const (
	DegreePhD       Degree = "PhD"
	DegreeMasters   Degree = "Masters"
	DegreeBachelors Degree = "Bachelors"
	DegreeAssociate Degree = "Associate"

	degreeTag  = "degree"
	degreeText = "{0} must be one of PhD, Masters, Bachelors or Associate"
)

var Degrees = []Degree{DegreePhD, DegreeMasters, DegreeBachelors, DegreeAssociate}

func (d Degree) IsValid() bool {
	for _, deg := range Degrees {
		if d == deg {
			return true
		}
	}
	return false
}

type Application struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id,omitempty"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Degree          Degree    `json:"degree"`
	University      string    `json:"university"`
	CurrentRole     string    `json:"current_role"`
	YearsExperience int       `json:"years_experience"`
	LinkedIn        string    `json:"linkedin"`
	Specialization  string    `json:"specialization"`
	Bio             string    `json:"bio"`
	SubmittedAt     time.Time `json:"submitted_at"` // UTC
}

type NewApplication struct {
	FirstName       string `json:"first_name" validate:"required,notblank"`
	LastName        string `json:"last_name" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"max=30"`
	Degree          Degree `json:"degree" validate:"required,degree"`
	University      string `json:"university" validate:"required,notblank"`
	CurrentRole     string `json:"current_role" validate:"max=200"`
	YearsExperience int    `json:"years_experience" validate:"gte=0,lte=70"`
	LinkedIn        string `json:"linkedin" validate:"omitempty,url"`
	Specialization  string `json:"specialization" validate:"required,notblank"`
	Bio             string `json:"bio" validate:"required,notblank,max=5000"`
}

func (na *NewApplication) Validate(svc *Service) error {
	na.FirstName = core.CleanString(na.FirstName)
	na.LastName = core.CleanString(na.LastName)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Specialization = core.CleanString(na.Specialization)
	return svc.validate.Struct(na)
}

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(degreeTag, func(fl validator.FieldLevel) bool {
		return Degree(fl.Field().String()).IsValid()
	})
	core.RegisterCustomTranslation(validate, translator, degreeTag, degreeText)
}

type (
	Repository interface {
		CreateApplication(a Application) (Application, error)
		// QueryApplications returns the applications, newest first.
		QueryApplications() ([]Application, error)
	}

	Service struct {
		repo     Repository
		mailSvc  core.EmailService
		validate *validator.Validate
	}
)

func NewService(repo Repository, mailSvc core.EmailService, validate *validator.Validate) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, validate: validate}
}

// Submit stores the application of userID and emails a confirmation to the applicant.
func (svc *Service) Submit(userID string, na NewApplication) (Application, error) {
	app, err := svc.repo.CreateApplication(Application{
		ID:              uuid.New().String(),
		UserID:          userID,
		FirstName:       na.FirstName,
		LastName:        na.LastName,
		Email:           na.Email,
		Phone:           na.Phone,
		Degree:          na.Degree,
		University:      na.University,
		CurrentRole:     na.CurrentRole,
		YearsExperience: na.YearsExperience,
		LinkedIn:        na.LinkedIn,
		Specialization:  na.Specialization,
		Bio:             na.Bio,
		SubmittedAt:     time.Now().UTC(),
	})
	if err != nil {
		return Application{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: app.FirstName + " " + app.LastName, Address: app.Email}},
		Subject:      "Application Received",
		TemplateName: "application_received",
		TemplateData: app,
	})
	return app, nil
}

func (svc *Service) List() ([]Application, error) {
	return svc.repo.QueryApplications()
}
