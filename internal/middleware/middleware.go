package middleware

import (
	"Recipe-API/domain"
	"Recipe-API/internal/api/presenters"
	"Recipe-API/pkg/jwt"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	LocalsUserID = "user_id"
	LocalsToken  = "token"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService, kind jwt.TokenKind) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware requires "Authorization: Bearer <token>" carrying a token of
// the given kind and stores its subject in c.Locals(LocalsUserID).
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService, kind jwt.TokenKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageMissingAuthHeader, nil)
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageInvalidAuthHeader, nil)
		}

		userID, err := jwtService.Verify(token, kind)
		if err != nil {
			message := domain.MessageFailedTokenInvalid
			if errors.Is(err, domain.ErrTokenExpired) {
				message = domain.MessageFailedTokenExpired
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, message, nil)
		}

		c.Locals(LocalsUserID, userID)
		c.Locals(LocalsToken, token)
		return c.Next()
	}
}
