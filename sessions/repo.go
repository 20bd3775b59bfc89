package sessions

import "errors"

var ErrNotFound = errors.New("session not found")

type Repo interface {
	Upsert(token string, session Session) error
	Get(token string) (Session, error)
	Delete(token string) error
}
