package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/unas-org/unas-backend/pkg/dto"
	authsvc "github.com/unas-org/unas-backend/pkg/service/auth"
	"github.com/unas-org/unas-backend/webapi/common"
)

// Routes mounts /auth. codeGuard runs in front of the endpoints that take a
// security code.
func Routes(app *fiber.App, authSvc *authsvc.Service, codeGuard fiber.Handler) {
	r := app.Group("/auth")
	r.Post("/login", Login(authSvc))
	r.Post("/send-code", SendCode(authSvc))
	r.Post("/validate-code", codeGuard, ValidateCode(authSvc))
	r.Post("/verify-email", codeGuard, VerifyEmail(authSvc))
	r.Post("/send-code-verify-email", SendVerifyEmailCode(authSvc))
	r.Post("/reset-password", ResetPassword(authSvc))
	r.Post("/validate-token", ValidateToken(authSvc))
	r.Post("/logout", Logout())
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // Error already written by BindAndValidate
		}
		resp, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid email or password", err)
		}
		return c.JSON(resp)
	}
}

// SendCode mails a password reset code.
// @Summary Request a password reset code
// @Description Always answers 200 so registered emails cannot be discovered
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailInput true "Account email"
// @Success 200 {object} common.Message
// @Failure 400 {object} common.ProblemDetails
// @Router /auth/send-code [post]
func SendCode(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[EmailInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.SendResetCode(c.Context(), input.Email); err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(common.Message{Message: "If the email is registered, a reset code has been sent"})
	}
}

// ValidateCode exchanges a reset code for a reset token.
// @Summary Validate a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CodeInput true "Reset code"
// @Success 200 {object} ResetTokenResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/validate-code [post]
func ValidateCode(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CodeInput](c)
		if input == nil {
			return err
		}
		token, err := authSvc.ValidateResetCode(c.Context(), input.Code)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid code", err)
		}
		return c.JSON(ResetTokenResponse{Message: "Code validated", ResetPasswordToken: token})
	}
}

// VerifyEmail confirms the address a verification code was sent to.
// @Summary Verify email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CodeInput true "Verification code"
// @Success 200 {object} common.Message
// @Failure 400 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/verify-email [post]
func VerifyEmail(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CodeInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.VerifyEmail(c.Context(), input.Code); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid code", err)
		}
		return c.JSON(common.Message{Message: "Email verified"})
	}
}

// SendVerifyEmailCode mails a new email verification code.
// @Summary Resend the email verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailInput true "Account email"
// @Success 200 {object} common.Message
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /auth/send-code-verify-email [post]
func SendVerifyEmailCode(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[EmailInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.SendVerificationCode(c.Context(), input.Email); err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(common.Message{Message: "Verification code sent"})
	}
}

// ResetPassword sets a new password using a reset token.
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordInput true "Reset token and new password"
// @Success 200 {object} common.Message
// @Failure 400 {object} common.ProblemDetails
// @Router /auth/reset-password [post]
func ResetPassword(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ResetPasswordInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.ResetPassword(c.Context(), input.Token, input.Password, input.Confirm); err != nil {
			return common.ProblemDetailsJSON(c, "Password reset failed", err)
		}
		return c.JSON(common.Message{Message: "Password updated"})
	}
}

// ValidateToken decodes an access token.
// @Summary Validate an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenInput true "Access token"
// @Success 200 {object} TokenValidation
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/validate-token [post]
func ValidateToken(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TokenInput](c)
		if input == nil {
			return err
		}
		claims, err := authSvc.ValidateToken(input.Token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid token", err)
		}
		return c.JSON(TokenValidation{Valid: true, Payload: toClaims(claims)})
	}
}

// Logout is a no-op for stateless tokens; clients drop the token.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} common.Message
// @Router /auth/logout [post]
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(common.Message{Message: "Logged out"})
	}
}

func toClaims(claims jwt.MapClaims) dto.TokenClaims {
	var out dto.TokenClaims
	out.Sub, _ = claims.GetSubject()
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.Iat = iat.Unix()
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Exp = exp.Unix()
	}
	return out
}
