package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TableUsers = "users"

	RoleManager = "gestor"
)

// MinPasswordLength applies to registration and password resets.
const MinPasswordLength = 6

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"not null;uniqueIndex"`
	Password      string    `gorm:"not null"`
	Username      string    `gorm:"not null"`
	Role          string    `gorm:"not null;index"`
	Active        bool      `gorm:"not null;default:true"`
	EmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (User) TableName() string { return TableUsers }

// NewUser builds an active, unverified user. passwordHash must already be hashed.
func NewUser(email, passwordHash, username, role string) *User {
	return &User{
		ID:       uuid.New(),
		Email:    NormalizeEmail(email),
		Password: passwordHash,
		Username: username,
		Role:     role,
		Active:   true,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
