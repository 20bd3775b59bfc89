package users

import "errors"

var ErrNotFound = errors.New("user not found")

type Repo interface {
	Upsert(user *User) error
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
}
