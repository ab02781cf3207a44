package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	customErrors "github.com/brightpost/auth-service/internal/auth/errors"
	"github.com/brightpost/auth-service/internal/auth/model"
)

const uniqueViolation = "23505"

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapStore(err, "CreateUser")
	}
	return user, nil
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapStore(err, "GetUserByEmail")
	}
	return u, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapStore(err, "GetUserByID")
	}
	return u, nil
}

func (p *PostgresUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, digest string) error {
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", digest)
	if err := res.Error; err != nil {
		return customErrors.WrapStore(err, "UpdatePasswordHash")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresUserRepo) UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, digest *string) error {
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token_hash", digest)
	if err := res.Error; err != nil {
		return customErrors.WrapStore(err, "UpdateRefreshTokenHash")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresUserRepo) ClearRefreshTokenHash(ctx context.Context, id uuid.UUID) error {
	// Conditional update: zero matched rows means no active session, which
	// keeps logout idempotent.
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND refresh_token_hash IS NOT NULL", id).
		Update("refresh_token_hash", nil)
	if err := res.Error; err != nil {
		return customErrors.WrapStore(err, "ClearRefreshTokenHash")
	}
	return nil
}

// isUniqueViolation recognizes a duplicate-key breach both as the raw pgx
// error the postgres driver surfaces and as gorm's translated sentinel (the
// sqlite driver used in tests only reports the latter).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
