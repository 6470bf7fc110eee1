package user

import (
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
)

var (
	// errors
	ErrNotFound             = errors.New("user not found")
	ErrEmailExists          = errors.New("a user with this email already exists")
	ErrAuthenticationFailed = errors.New("invalid credentials")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedUsers ...User) error
		CreateUser(usr User) (User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		// UpdateUser saves every field of usr but CreatedAt.
		UpdateUser(usr User) (User, error)
	}

	Service struct {
		repo     Repository
		mailSvc  core.EmailService
		conf     *core.Config
		validate *validator.Validate
		tokens   tokenGenerator
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, validate *validator.Validate) *Service {
	return &Service{
		repo:     repo,
		mailSvc:  mailSvc,
		conf:     conf,
		validate: validate,
		tokens:   tokenGenerator{secretKey: []byte(conf.SecretKey)},
	}
}

func (svc *Service) checkUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclUsers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// SeedAdmin creates the configured admin account, unless it has no password hash or already exists.
func (svc *Service) SeedAdmin() (User, error) {
	if svc.conf.AdminEmail == "" || svc.conf.AdminPasswordHash == "" {
		return User{}, nil
	}
	if usr, err := svc.repo.GetUserByEmail(svc.conf.AdminEmail); err == nil {
		return usr, nil
	} else if err != ErrNotFound {
		return User{}, errors.Wrap(err, "finding admin by email")
	}

	now := time.Now().UTC()
	return svc.repo.CreateUser(User{
		ID:           uuid.New().String(),
		Name:         svc.conf.AdminName,
		Email:        svc.conf.AdminEmail,
		Role:         RoleAdmin,
		Avatar:       Avatar(svc.conf.AdminName, "6366f1"),
		PasswordHash: []byte(svc.conf.AdminPasswordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Login authenticates the user with the given credentials.
// With mock auth on, an unknown email signs in as a new demo user.
func (svc *Service) Login(creds Credentials) (User, error) {
	usr, err := svc.repo.GetUserByEmail(creds.Email)
	switch {
	case err == nil:
		if err = usr.CheckPassword(creds.Password); err != nil {
			return User{}, ErrAuthenticationFailed
		}
	case err == ErrNotFound && svc.conf.MockAuth:
		if usr, err = svc.create(DemoUserName, creds.Email, creds.Password); err != nil {
			return User{}, errors.Wrap(err, "creating demo user")
		}
	case err == ErrNotFound:
		return User{}, ErrAuthenticationFailed
	default:
		return User{}, errors.Wrap(err, "finding user by email")
	}

	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) Register(nu NewUser) (User, error) {
	return svc.create(nu.Name, nu.Email, nu.Password)
}

func (svc *Service) create(name, email, pwd string) (User, error) {
	now := time.Now().UTC()
	usr := User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      RoleUser,
		Avatar:    Avatar(name, "6366f1"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

// Update applies validated settings to the user.
func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Name = uu.Name
	usr.Email = uu.Email
	if uu.Bio != nil {
		usr.Bio = *uu.Bio
	}
	if uu.Phone != nil {
		usr.Phone = *uu.Phone
	}
	if uu.Avatar != nil {
		usr.Avatar = *uu.Avatar
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

// SetRole changes the role of the user (demo role switcher).
func (svc *Service) SetRole(id string, role Role) (User, error) {
	if !role.IsValid() {
		return User{}, core.NewFieldError("role", userRoleText)
	}
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Role = role
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

// RequestPasswordReset emails a reset link. ErrNotFound is returned for unknown emails
// and callers must not leak it.
func (svc *Service) RequestPasswordReset(email string) error {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		return err
	}
	svc.mailSvc.SendMessages(svc.passwordResetMail(usr))
	return nil
}

func (svc *Service) passwordResetMail(usr User) *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password Reset",
		TemplateName: "password_reset",
		TemplateData: map[string]string{
			"Email": usr.Email,
			"UID":   EncodeUID(usr),
			"Token": svc.tokens.makeToken(usr),
		},
	}
}

func (svc *Service) ResetPassword(rp ResetUserPassword) error {
	uid, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(errInvalidToken)
	}
	usr, err := svc.repo.GetUserByID(uid)
	if err != nil {
		if err == ErrNotFound {
			return core.NewValidationError(errInvalidToken)
		}
		return errors.Wrap(err, "finding user by ID")
	}
	if err = svc.tokens.verifyToken(usr, rp.Token); err != nil {
		return core.NewValidationError(err)
	}
	if err = usr.SetPassword(rp.Password); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(usr)
	return err
}
