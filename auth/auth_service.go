package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/pkg/errors"
	"github.com/taskbridge/go-task-server/internal/config"
	"github.com/taskbridge/go-task-server/sessions"
	"github.com/taskbridge/go-task-server/users"
)

// Repos holds all repository dependencies for the Service
type Repos struct {
	Users    users.Repo    // Repository for user data
	Sessions sessions.Repo // Repository for session tokens
}

// Service authenticates credentials, mints opaque session tokens, and
// resolves bearer tokens back to users.
type Service struct {
	repos   Repos
	config  config.SessionConfig
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(repos Repos, cfg config.SessionConfig, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Sessions == nil {
		return nil, errors.New("[NewService] Sessions repo is required")
	}
	if cfg == nil {
		return nil, errors.New("[NewService] session config is required")
	}

	service := &Service{
		repos:   repos,
		config:  cfg,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Login checks the credentials and, on success, mints a new session
// token for the user. The previous token (if any) is not revoked here;
// the handoff login page revokes it explicitly when forcing a fresh
// mobile login.
func (s *Service) Login(email, password string) (*sessions.Session, error) {
	user, err := s.repos.Users.GetByEmail(email)
	if err != nil {
		// Same error as a bad password so login probes can't enumerate accounts
		return nil, InvalidCredentialsErr
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, InvalidCredentialsErr
	}

	token, err := s.mintToken()
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] mintToken")
	}

	now := s.nowTime()
	session := sessions.Session{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.GetSessionExpiry()),
	}
	if err := s.repos.Sessions.Upsert(token, session); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] Sessions.Upsert")
	}

	user.LastLogin = now
	if err := s.repos.Users.Upsert(user); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] Users.Upsert")
	}

	return &session, nil
}

// Logout deletes the server-side session so the token stops resolving.
func (s *Service) Logout(token string) error {
	if err := s.repos.Sessions.Delete(token); err != nil {
		return errors.Wrap(err, "[Service.Logout] Sessions.Delete")
	}
	return nil
}

// ResolveToken maps a bearer token to its user. Any failure - unknown
// token, expired session, vanished user - resolves to UnauthorizedErr so
// the API gate has a single rejection path.
func (s *Service) ResolveToken(token string) (*users.User, error) {
	if token == "" {
		return nil, UnauthorizedErr
	}

	session, err := s.repos.Sessions.Get(token)
	if err != nil {
		return nil, UnauthorizedErr
	}

	if session.Expired(s.nowTime()) {
		_ = s.repos.Sessions.Delete(token)
		return nil, UnauthorizedErr
	}

	user, err := s.repos.Users.GetByID(session.UserID)
	if err != nil {
		return nil, UnauthorizedErr
	}
	return user, nil
}

func (s *Service) mintToken() (string, error) {
	bytes := make([]byte, s.config.GetTokenLength())
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "mintToken rand.Read")
	}
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(bytes), nil
}
