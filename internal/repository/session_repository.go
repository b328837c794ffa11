package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// FindByToken loads a session together with its owner. The user is left
// nil when the owning row is gone.
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (models.SessionWithUser, error) {
	const query = `
		SELECT s.token, s.user_id, s.expires_at, s.revoked_at, s.created_at,
		       u.id, u.first_name, u.last_name, u.email, u.role, u.created_at
		FROM sessions s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.token = $1
	`

	row := r.pool.QueryRow(ctx, query, token)

	var (
		result        models.SessionWithUser
		userID        *string
		userFirstName *string
		userLastName  *string
		userEmail     *string
		userRole      *string
		userCreatedAt *time.Time
	)
	if err := row.Scan(
		&result.Session.Token,
		&result.Session.UserID,
		&result.Session.ExpiresAt,
		&result.Session.RevokedAt,
		&result.Session.CreatedAt,
		&userID,
		&userFirstName,
		&userLastName,
		&userEmail,
		&userRole,
		&userCreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SessionWithUser{}, ErrSessionNotFound
		}
		return models.SessionWithUser{}, err
	}

	if userID != nil {
		result.User = &models.User{
			ID:        *userID,
			FirstName: deref(userFirstName),
			LastName:  deref(userLastName),
			Email:     deref(userEmail),
			Role:      models.UserRole(deref(userRole)),
		}
		if userCreatedAt != nil {
			result.User.CreatedAt = *userCreatedAt
		}
	}

	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
