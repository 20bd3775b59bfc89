package config

import "time"

type SessionConfig interface {
	GetSessionExpiry() time.Duration
	GetTokenLength() int
	GetPendingRedirectTTL() time.Duration
}

type Sessions struct{}

var _ SessionConfig = Sessions{}

func (Sessions) GetSessionExpiry() time.Duration {
	return 30 * 24 * time.Hour
}

func (Sessions) GetTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

// GetPendingRedirectTTL bounds how long a stashed mobile redirect target
// stays valid while the user completes the login form.
func (Sessions) GetPendingRedirectTTL() time.Duration {
	return 15 * time.Minute
}
