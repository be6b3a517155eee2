package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const TableSecurityCodes = "security_codes"

type CodeType string

const (
	CodeEmailVerification  CodeType = "email_verification"
	CodeResetPassword      CodeType = "reset_password"
	CodeResetPasswordToken CodeType = "reset_password_token"
)

func (t CodeType) Valid() bool {
	switch t {
	case CodeEmailVerification, CodeResetPassword, CodeResetPasswordToken:
		return true
	}
	return false
}

// SecurityCode is a single-use secret tied to a user and a purpose.
type SecurityCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"not null;index"`
	Type      CodeType  `gorm:"not null"`
	Revoked   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (SecurityCode) TableName() string { return TableSecurityCodes }

// Expired reports whether the code is older than ttl at now. A zero ttl never expires.
func (c *SecurityCode) Expired(ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(c.CreatedAt) > ttl
}

// GenerateCode returns the secret for a code type: six digits for password
// resets, UNAS_<uuid> for email verification and a bare uuid for reset tokens.
func GenerateCode(t CodeType) (string, error) {
	switch t {
	case CodeResetPassword:
		n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%06d", n.Int64()), nil
	case CodeEmailVerification:
		return "UNAS_" + uuid.NewString(), nil
	case CodeResetPasswordToken:
		return uuid.NewString(), nil
	default:
		return "", Validationf("invalid code type %q", t)
	}
}

// NewSecurityCode generates an unrevoked code of type t for userID.
func NewSecurityCode(userID uuid.UUID, t CodeType) (*SecurityCode, error) {
	code, err := GenerateCode(t)
	if err != nil {
		return nil, err
	}
	return &SecurityCode{
		ID:     uuid.New(),
		UserID: userID,
		Code:   code,
		Type:   t,
	}, nil
}
