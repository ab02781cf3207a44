package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/brightpost/auth-service/internal/auth/model"
)

// UserRepo is the user-directory contract consumed by the auth service.
// Every method is a single atomic row operation; there is no partial-write
// state an implementation may leave behind.
type UserRepo interface {
	// CreateUser inserts the full record or nothing. A duplicate email or
	// username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u model.User) (model.User, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	UpdatePasswordHash(ctx context.Context, id uuid.UUID, digest string) error

	// UpdateRefreshTokenHash overwrites the stored refresh-token digest;
	// nil clears it.
	UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, digest *string) error

	// ClearRefreshTokenHash clears the digest only on rows where it is
	// currently set. Matching zero rows is not an error.
	ClearRefreshTokenHash(ctx context.Context, id uuid.UUID) error
}
