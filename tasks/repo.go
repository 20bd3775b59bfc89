package tasks

import "errors"

// ErrNotFound covers both a missing task and a task owned by another
// user. Callers must not be able to tell the two apart, so existence of
// other users' tasks is never leaked.
var ErrNotFound = errors.New("task not found")

type Repo interface {
	Create(userID, description string) (*Task, error)
	ListByUser(userID string) ([]*Task, error)
	SetDone(id int64, userID string, isDone bool) error
}
