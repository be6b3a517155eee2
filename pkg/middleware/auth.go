// Package middleware provides fiber middleware shared by the route packages.
package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/unas-org/unas-backend/pkg/config"
)

// ContextKey is where the parsed *jwt.Token is stored in c.Locals.
const ContextKey = "user"

// JwtProtected rejects requests without a valid HS256 bearer token signed
// with the configured secret.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   ContextKey,
		ErrorHandler: jwtError,
	})
}

// problem mirrors the RFC 9457 body the route packages write.
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

func jwtError(c *fiber.Ctx, err error) error {
	status, detail := fiber.StatusUnauthorized, "Invalid or expired JWT"
	if strings.EqualFold(err.Error(), "missing or malformed JWT") {
		status, detail = fiber.StatusBadRequest, "Missing or malformed JWT"
	}
	return c.Status(status).JSON(problem{
		Type:     "about:blank",
		Title:    utils.StatusMessage(status),
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}, "application/problem+json")
}
