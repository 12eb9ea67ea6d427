package helper

import (
	"strings"

	"medaid_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads user_id stored by the auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, apperr.Unauthenticated("not logged in")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, apperr.Unauthenticated("not logged in")
		}
		return t, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		if err != nil || id == uuid.Nil {
			return uuid.Nil, apperr.Unauthenticated("invalid user id in token")
		}
		return id, nil
	default:
		return uuid.Nil, apperr.Unauthenticated("invalid user id in token")
	}
}

// GetUserRole reads userRole stored by the auth middleware ("" when absent).
func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return strings.ToLower(strings.TrimSpace(role))
}
