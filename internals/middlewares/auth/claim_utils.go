package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"medaid_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var errUnexpectedSigning = errors.New("unexpected signing method")

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type")
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	idRaw, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no user id")
	}
	id, err := uuid.Parse(strings.TrimSpace(idRaw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid user id")
	}
	return id, nil
}

func extractRole(claims jwt.MapClaims) (string, error) {
	role, _ := claims["role"].(string)
	role = strings.ToLower(strings.TrimSpace(role))
	for _, known := range constants.AllRoles {
		if role == known {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", role)
}
