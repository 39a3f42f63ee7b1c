package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/user"
	"careerbridge/internal/security"
)

const (
	LocalUserIDKey = "user_id"
	LocalRoleKey   = "role"
)

type AuthMiddleware struct {
	tokens *security.TokenProvider
}

func NewAuthMiddleware(tokens *security.TokenProvider) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "missing authorization header")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return unauthorized(c, "invalid authorization header")
		}
		claims, err := m.tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return unauthorized(c, "invalid token")
		}
		userID, err := common.ParseID(claims.Subject)
		if err != nil {
			return unauthorized(c, "invalid user id")
		}
		role, ok := user.ParseRole(claims.Role)
		if !ok {
			return unauthorized(c, "invalid role")
		}
		c.Locals(LocalUserIDKey, userID)
		c.Locals(LocalRoleKey, role)
		return c.Next()
	}
}

func RequireRole(role user.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		activeRole, ok := c.Locals(LocalRoleKey).(user.Role)
		if !ok || activeRole != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"code":    common.CodeForbidden,
				"message": "insufficient role",
			})
		}
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) (common.ID, bool) {
	id, ok := c.Locals(LocalUserIDKey).(common.ID)
	return id, ok
}

func ActiveRole(c *fiber.Ctx) (user.Role, bool) {
	role, ok := c.Locals(LocalRoleKey).(user.Role)
	return role, ok
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    common.CodeUnauthorized,
		"message": message,
	})
}
