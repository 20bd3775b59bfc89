package tasks

type Task struct {
	ID          int64  `json:"id"`
	UserID      string `json:"-"`
	Description string `json:"description"`
	IsDone      bool   `json:"isDone"`
}
