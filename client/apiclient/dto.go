package apiclient

// Task mirrors the /api/tasks response schema.
type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	IsDone      bool   `json:"isDone"`
}

// Identity is one identity assertion on the user object.
type Identity struct {
	ID string `json:"id"`
}

// User mirrors the /api/user response schema. Absent identity providers
// decode to nil.
type User struct {
	ID         string `json:"id"`
	Identities struct {
		Username *Identity `json:"username"`
		Google   *Identity `json:"google"`
	} `json:"identities"`
}

// DisplayName picks the first available identity assertion.
func (u *User) DisplayName() string {
	if u.Identities.Username != nil {
		return u.Identities.Username.ID
	}
	if u.Identities.Google != nil {
		return u.Identities.Google.ID
	}
	return "User"
}

type taskDoneRequest struct {
	IsDone bool `json:"isDone"`
}

type successResponse struct {
	Success bool `json:"success"`
}
