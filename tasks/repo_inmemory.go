package tasks

import (
	"sort"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

type InMemoryRepo struct {
	lock   sync.RWMutex
	tasks  map[int64]*Task
	nextID int64
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{tasks: make(map[int64]*Task), nextID: 1}
}

func (r *InMemoryRepo) Create(userID, description string) (*Task, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	task := &Task{
		ID:          r.nextID,
		UserID:      userID,
		Description: description,
	}
	r.nextID++
	r.tasks[task.ID] = task
	return task, nil
}

// ListByUser returns the user's tasks ordered by ascending id.
func (r *InMemoryRepo) ListByUser(userID string) ([]*Task, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			copied := *t
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *InMemoryRepo) SetDone(id int64, userID string, isDone bool) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return ErrNotFound
	}
	task.IsDone = isDone
	return nil
}
