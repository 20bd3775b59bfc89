package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskbridge/go-task-server/auth"
	"github.com/taskbridge/go-task-server/internal/config"
	"github.com/taskbridge/go-task-server/internal/utils"
	"github.com/taskbridge/go-task-server/sessions"
	"github.com/taskbridge/go-task-server/users"
)

const (
	testUserEmail    = "john.doe@example.com"
	testUsername     = "johnd"
	testUserPassword = "Password123"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo    users.Repo
	sessionRepo sessions.Repo
	service     *auth.Service
	now         time.Time
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		userRepo:    users.NewInMemoryRepo(),
		sessionRepo: sessions.NewInMemoryRepo(),
		now:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	service, err := auth.NewService(
		auth.Repos{Users: f.userRepo, Sessions: f.sessionRepo},
		config.Sessions{},
		auth.WithNowTime(func() time.Time { return f.now }),
	)
	require.NoError(t, err)
	f.service = service

	f.createTestUser(t)
	return f
}

func (f *testFixture) createTestUser(t *testing.T) {
	t.Helper()

	passwordHash, err := users.HashPassword(testUserPassword)
	require.NoError(t, err)

	err = f.userRepo.Upsert(&users.User{
		Email:        testUserEmail,
		Username:     testUsername,
		PasswordHash: passwordHash,
		Identities: users.Identities{
			Username: utils.Ptr(users.Identity{ID: testUsername}),
		},
	})
	require.NoError(t, err)
}

func TestLoginMintsResolvableToken(t *testing.T) {
	f := setupTestFixture(t)

	session, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	user, err := f.service.ResolveToken(session.Token)
	require.NoError(t, err)
	require.Equal(t, testUserEmail, user.Email)
	require.Equal(t, testUsername, user.DisplayName())
}

func TestLoginWrongPassword(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(testUserEmail, "wrong-password")
	require.ErrorIs(t, err, auth.InvalidCredentialsErr)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	f := setupTestFixture(t)

	// Account enumeration must not be possible via the error
	_, err := f.service.Login("nobody@example.com", testUserPassword)
	require.ErrorIs(t, err, auth.InvalidCredentialsErr)
}

func TestLoginTokensAreUniquePerSession(t *testing.T) {
	f := setupTestFixture(t)

	first, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)
	second, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NotEqual(t, first.Token, second.Token)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := setupTestFixture(t)

	session, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(session.Token))

	_, err = f.service.ResolveToken(session.Token)
	require.ErrorIs(t, err, auth.UnauthorizedErr)
}

func TestResolveTokenExpired(t *testing.T) {
	f := setupTestFixture(t)

	session, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)

	f.now = f.now.Add(config.Sessions{}.GetSessionExpiry() + time.Hour)

	_, err = f.service.ResolveToken(session.Token)
	require.ErrorIs(t, err, auth.UnauthorizedErr)
}

func TestResolveTokenUnknown(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.ResolveToken("never-issued")
	require.ErrorIs(t, err, auth.UnauthorizedErr)

	_, err = f.service.ResolveToken("")
	require.ErrorIs(t, err, auth.UnauthorizedErr)
}

func TestNewServiceValidation(t *testing.T) {
	_, err := auth.NewService(auth.Repos{}, config.Sessions{})
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Users: users.NewInMemoryRepo()}, config.Sessions{})
	require.Error(t, err)
}
