package helper

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"medaid_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Amount   int64  `json:"amount" validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(signupInput{Email: "a@b.pk", Password: "secret", Amount: 1}))

	err := ValidateStruct(signupInput{Email: "nope", Password: "123"})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, []string{"invalid email format"}, ae.Fields["email"])
	assert.Equal(t, []string{"password must be at least 6 characters"}, ae.Fields["password"])
	assert.Equal(t, []string{"amount must be greater than 0"}, ae.Fields["amount"])
}

func renderError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })

	resp, e := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, e)
	defer resp.Body.Close()

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestFromError(t *testing.T) {
	t.Run("taxonomy error keeps status and message", func(t *testing.T) {
		status, body := renderError(t, apperr.Precondition("case must be approved by volunteer first"))
		assert.Equal(t, fiber.StatusConflict, status)
		assert.Equal(t, "CONFLICT", body.ErrorCode)
		assert.Equal(t, "case must be approved by volunteer first", body.Message)
		assert.False(t, body.Success)
	})

	t.Run("field validation uses the validation envelope", func(t *testing.T) {
		status, body := renderError(t, apperr.ValidationFields("validation failed", map[string][]string{
			"amount": {"amount must be greater than 0"},
		}))
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", body.ErrorCode)
		assert.Contains(t, body.Errors, "amount")
	})

	t.Run("unknown error is a generic 500", func(t *testing.T) {
		status, body := renderError(t, errors.New("pq: connection refused"))
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "internal server error", body.Message)
		assert.NotContains(t, body.Message, "pq")
	})

	t.Run("fiber error", func(t *testing.T) {
		status, body := renderError(t, fiber.NewError(fiber.StatusTooManyRequests, "slow down"))
		assert.Equal(t, fiber.StatusTooManyRequests, status)
		assert.Equal(t, "TOO_MANY_REQUESTS", body.ErrorCode)
	})
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, Params{Page: 2, PerPage: 20}, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPagination(0, Params{}, 0)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
