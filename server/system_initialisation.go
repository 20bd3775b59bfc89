package server

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/taskbridge/go-task-server/internal/config"
	"github.com/taskbridge/go-task-server/internal/utils"
	"github.com/taskbridge/go-task-server/users"
)

var seedTaskDescriptions = []string{
	"Buy groceries",
	"Walk the dog",
	"Write the weekly report",
	"Book dentist appointment",
}

// InitialiseSystem seeds the demo user and their tasks so the login
// handoff and the task API are exercisable straight after startup.
// Idempotent: an existing seed user is left untouched.
func (s *Server) InitialiseSystem(cfg config.Config) error {
	email := cfg.GetSeedUserEmail()

	if _, err := s.repos.Users.GetByEmail(email); err == nil {
		return nil // Already seeded
	}

	passwordHash, err := users.HashPassword(cfg.GetSeedUserPassword())
	if err != nil {
		return fmt.Errorf("[InitialiseSystem] failed to hash seed password: %w", err)
	}

	user := &users.User{
		Email:        email,
		Username:     cfg.GetSeedUsername(),
		PasswordHash: passwordHash,
		Identities: users.Identities{
			Username: utils.Ptr(users.Identity{ID: cfg.GetSeedUsername()}),
		},
		DateJoined: time.Now(),
	}
	if err := s.repos.Users.Upsert(user); err != nil {
		return fmt.Errorf("[InitialiseSystem] failed to create seed user: %w", err)
	}

	for _, description := range seedTaskDescriptions {
		if _, err := s.repos.Tasks.Create(user.ID, description); err != nil {
			return fmt.Errorf("[InitialiseSystem] failed to create seed task: %w", err)
		}
	}

	log.Info().Str("email", email).Msg("Seeded demo user")
	return nil
}
