package middlewares

import (
	"context"
	"time"

	"medaid_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const requestTimeout = 10 * time.Second

// RequestID tags each request with X-Request-ID (generated when missing) and
// bounds the handler context.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func SetupMiddlewares(app *fiber.App, timezone string) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID())
	app.Use(logger.LoggerMiddleware(timezone))
	app.Use(CorsMiddleware())
}
