package helper

import (
	"strings"

	"medaid_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, apperr.Validation(name + " must be a valid UUID")
	}
	return id, nil
}

// ParseUUIDQuery returns nil when the query key is absent.
func ParseUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.Validation(name + " must be a valid UUID")
	}
	return &id, nil
}
