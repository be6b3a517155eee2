package auth

import "github.com/unas-org/unas-backend/pkg/dto"

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type CodeInput struct {
	Code string `json:"code" validate:"required"`
}

type ResetPasswordInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Confirm  string `json:"confirm" validate:"required"`
}

type TokenInput struct {
	Token string `json:"token" validate:"required"`
}

// ResetTokenResponse carries the token that authorizes the password change.
type ResetTokenResponse struct {
	Message            string `json:"message"`
	ResetPasswordToken string `json:"reset_password_token"`
}

type TokenValidation struct {
	Valid   bool            `json:"valid"`
	Payload dto.TokenClaims `json:"payload"`
}
