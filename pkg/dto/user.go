package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
)

// UserCreate represents the data needed to register a new user.
type UserCreate struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,max=50"`
}

// UserUpdate represents the data that can be updated for a user.
type UserUpdate struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=100"`
	Role     *string `json:"role,omitempty" validate:"omitempty,min=1,max=50"`
}

// UserRead represents a read-optimized view of a user. The password hash never
// leaves the service layer.
type UserRead struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	Username      string      `json:"username"`
	Role          string      `json:"role"`
	Active        bool        `json:"active"`
	EmailVerified bool        `json:"email_verified"`
	Units         []uuid.UUID `json:"units,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func ToUserRead(u *domain.User) *UserRead {
	return &UserRead{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role,
		Active:        u.Active,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func ToUserReads(users []*domain.User) []*UserRead {
	out := make([]*UserRead, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserRead(u))
	}
	return out
}

// UnitUserCreate links a user to a unit with a role.
type UnitUserCreate struct {
	UnitID uuid.UUID `json:"unit_id" validate:"required"`
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,max=50"`
}

type UnitUserUpdate struct {
	Role *string `json:"role,omitempty" validate:"omitempty,min=1,max=50"`
}

type UnitUserRead struct {
	ID        uuid.UUID `json:"id"`
	UnitID    uuid.UUID `json:"unit_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUnitUserRead(m *domain.UnitUser) *UnitUserRead {
	return &UnitUserRead{
		ID:        m.ID,
		UnitID:    m.UnitID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUnitUserReads(links []*domain.UnitUser) []*UnitUserRead {
	out := make([]*UnitUserRead, 0, len(links))
	for _, m := range links {
		out = append(out, ToUnitUserRead(m))
	}
	return out
}
