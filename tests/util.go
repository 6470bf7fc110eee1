// Package testutil holds the helpers shared by the tests of the other packages.
package testutil

import (
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/blog"
	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/faculty"
	"github.com/trezcool/thk/core/payment"
	"github.com/trezcool/thk/core/user"
)

// NewValidator returns a validator with every domain validator registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	blog.InitValidators(validate, translator)
	faculty.InitValidators(validate, translator)
	payment.InitValidators(validate, translator)
	return validate, translator
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	role user.Role,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		Avatar:    user.Avatar(name),
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}
