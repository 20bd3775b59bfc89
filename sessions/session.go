package sessions

import "time"

// Session maps an opaque bearer token to a user. The token is the only
// thing the client ever holds; everything else stays server-side.
type Session struct {
	Token     string    // Opaque token handed to the client
	UserID    string    // Owning user
	CreatedAt time.Time // When the session was minted
	ExpiresAt time.Time // After this the token resolves to unauthorized
}

func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
