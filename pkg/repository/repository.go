package repository

import (
	"context"

	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	// GetByIdentifier matches the identifier against username OR email and
	// returns at most one user, or nil when nothing matches.
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (int64, error)
}

type SessionRepo interface {
	CreateSession(ctx context.Context, s *models.Session) error
	// GetSession returns nil for an unknown token.
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, cutoff int64) (int64, error)
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (int64, error)
	// ListAll returns every application, newest first.
	ListAll(ctx context.Context) ([]models.Application, error)
	// ListByOwner returns applications owned by the user id or submitted
	// under the same email address, newest first.
	ListByOwner(ctx context.Context, userID int64, email string) ([]models.Application, error)
}
