package inmemdb

import (
	"github.com/trezcool/thk/core/user"
)

type userRepository struct {
	db *table[user.User]
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) CheckEmailUniqueness(email string, excludedUsers ...user.User) error {
	for _, usr := range repo.db.query(nil) {
		if usr.Email == email && !isExcluded(usr, excludedUsers) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.db.insert(usr.ID, usr)
	return usr, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	if usr, ok := repo.db.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	for _, usr := range repo.db.query(func(u user.User) bool { return u.Email == email }) {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	orig, ok := repo.db.get(usr.ID)
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.CreatedAt = orig.CreatedAt
	if !repo.db.update(usr.ID, usr) {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func isExcluded(usr user.User, excludedUsers []user.User) bool {
	for _, excl := range excludedUsers {
		if excl.ID == usr.ID {
			return true
		}
	}
	return false
}
