package users

import (
	"sync"

	"github.com/google/uuid"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is the in-memory user store. Task storage is deliberately
// non-durable in this system, so this is the production repository as
// well as the test one.
type InMemoryRepo struct {
	lock     sync.RWMutex
	users    map[string]*User
	emailIDs map[string]string // email to user id
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		users:    make(map[string]*User),
		emailIDs: make(map[string]string),
	}
}

func (r *InMemoryRepo) Upsert(user *User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = user
	r.emailIDs[user.Email] = user.ID
	return nil
}

func (r *InMemoryRepo) GetByEmail(email string) (*User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.emailIDs[email]
	if !ok {
		return nil, ErrNotFound
	}
	return r.users[id], nil
}

func (r *InMemoryRepo) GetByID(id string) (*User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}
