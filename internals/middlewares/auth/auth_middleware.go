package auth

import (
	"log"
	"time"

	helper "medaid_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// AuthMiddleware verifies the HS256 bearer token and stores user_id / userRole
// in Locals for the handlers.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		if secret == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errUnexpectedSigning
			}
			return []byte(secret), nil
		}); err != nil {
			log.Println("[WARN] token parse failed:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		role, err := extractRole(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing role")
		}

		c.Locals("user_id", userID.String())
		c.Locals("userRole", role)
		return c.Next()
	}
}
