package user

import (
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/thk/core"
)

// Role is the coarse access level of a signed-in user.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

var Roles = []Role{RoleAdmin, RoleUser}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Status is the account status of students & mentors.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusPending  Status = "Pending"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusPending}

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusPending
}

const (
	DemoUserName = "Demo User"
	avatarURL    = "https://ui-avatars.com/api/"
)

// Avatar returns the generated avatar URL for name.
func Avatar(name string, color ...string) string {
	v := make(url.Values)
	v.Set("name", name)
	if len(color) > 0 {
		v.Set("background", color[0])
		v.Set("color", "fff")
	} else {
		v.Set("background", "random")
	}
	return avatarURL + "?" + v.Encode()
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar"`
	Bio          string    `json:"bio"`
	Phone        string    `json:"phone"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credentials are used to sign in.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(svc *Service) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return svc.validate.Struct(c)
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name            string `json:"name" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := svc.validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User (settings screen).
type UpdateUser struct {
	Name            string  `json:"name"`
	Email           string  `json:"email" validate:"omitempty,email"`
	Bio             *string `json:"bio" validate:"omitempty,max=500"`
	Phone           *string `json:"phone" validate:"omitempty,max=30"`
	Avatar          *string `json:"avatar" validate:"omitempty,url"`
	Password        string  `json:"password" validate:"omitempty"`
	PasswordConfirm string  `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, svc *Service) error {
	if name := core.CleanString(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := svc.validate.Struct(uu); err != nil {
		return err
	}
	return svc.checkUniqueness(uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp *ResetUserPassword) Validate(svc *Service) error { return svc.validate.Struct(rp) }

// SwitchRole is used by the demo role switcher.
type SwitchRole struct {
	Role Role `json:"role" validate:"required,userrole"`
}

func (sr *SwitchRole) Validate(svc *Service) error { return svc.validate.Struct(sr) }
