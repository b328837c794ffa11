package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/repository"
)

type SessionStore interface {
	FindByToken(ctx context.Context, token string) (models.SessionWithUser, error)
}

// Authorizer resolves a session token to an admin principal. It never
// writes to the session and never caches a result.
type Authorizer struct {
	sessions SessionStore
	now      func() time.Time
	log      zerolog.Logger
}

func NewAuthorizer(sessions SessionStore, log zerolog.Logger) *Authorizer {
	return &Authorizer{
		sessions: sessions,
		now:      time.Now,
		log:      log,
	}
}

// Authorize returns ErrUnauthenticated for every rejected token, whatever
// the cause. Only storage failures produce a different error.
func (a *Authorizer) Authorize(ctx context.Context, token string) (models.Principal, error) {
	if token == "" {
		return models.Principal{}, ErrUnauthenticated
	}

	found, err := a.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return a.reject("session_not_found")
		}
		return models.Principal{}, fmt.Errorf("find session: %w", err)
	}

	switch {
	case found.User == nil:
		return a.reject("user_missing")
	case found.User.Role != models.UserRoleAdmin:
		return a.reject("not_admin")
	case found.Session.RevokedAt != nil:
		return a.reject("revoked")
	case !found.Session.Valid(a.now()):
		return a.reject("expired")
	}

	return models.Principal{ID: found.User.ID, Role: found.User.Role}, nil
}

func (a *Authorizer) reject(reason string) (models.Principal, error) {
	a.log.Debug().Str("reason", reason).Msg("session rejected")
	return models.Principal{}, ErrUnauthenticated
}
