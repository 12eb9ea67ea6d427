package service

import (
	"time"

	"medaid_backend/internals/helpers/apperr"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const accessTTLDefault = 24 * time.Hour

// issueAccessToken signs the {id, role, exp} claims read back by the auth middleware.
func issueAccessToken(secret string, id uuid.UUID, role string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, apperr.Internal("token signing is not configured", nil)
	}
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	exp := now.Add(ttl).UTC()
	claims := jwt.MapClaims{
		"id":   id.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, apperr.Internal("failed to sign token", err)
	}
	return signed, exp, nil
}
