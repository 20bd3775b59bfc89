package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Identity is a single identity assertion attached to a user, e.g. a
// username credential or a linked Google account.
type Identity struct {
	ID string `json:"id"`
}

// Identities lists the identity assertions a user logged in with. Absent
// providers are null in the JSON representation, matching what API
// clients display.
type Identities struct {
	Username *Identity `json:"username"`
	Google   *Identity `json:"google"`
}

type User struct {
	ID           string     `json:"id"`                    // Unique identifier for the user
	Email        string     `json:"email,omitempty"`       // User's email address
	Username     string     `json:"username,omitempty"`    // Unique username
	PasswordHash string     `json:"-"`                     // Hashed version of the user's password - never serialize
	Identities   Identities `json:"identities"`            // Identity assertions, for display
	DateJoined   time.Time  `json:"date_joined,omitempty"` // Date and time when the user registered
	LastLogin    time.Time  `json:"last_login,omitempty"`  // Last time the user logged in
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

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
