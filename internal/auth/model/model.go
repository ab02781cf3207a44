package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultRole = "user"

// User is the identity record. RefreshTokenHash holds the argon2id digest of
// the currently valid refresh token, or nil when the user has no active
// session. The plaintext refresh token is never stored.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            string    `gorm:"uniqueIndex;not null"`
	Username         string    `gorm:"uniqueIndex;not null"`
	FirstName        string
	LastName         string
	PasswordHash     string `gorm:"not null"`
	RefreshTokenHash *string
	Role             string `gorm:"not null;default:user"`
	Active           bool   `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// PublicUser is the sanitized view returned by signup. It carries no digest
// fields by construction.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TokenPair is ephemeral: the service keeps no copy beyond the hashed form of
// the refresh token written into the user record.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       uuid.UUID
}
