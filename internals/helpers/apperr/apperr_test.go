package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Unauthenticated("who"), http.StatusUnauthorized},
		{Authorization("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Precondition("not yet"), http.StatusConflict},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("assign volunteer: %w", Precondition("case has already been reviewed by admin"))

	assert.True(t, Is(err, KindPrecondition))
	assert.False(t, Is(err, KindValidation))
	assert.Equal(t, KindPrecondition, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, FromDB(nil, "x"))

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_cases_email"}
	err := FromDB(fmt.Errorf("insert: %w", dup), "failed to create case")
	require.True(t, Is(err, KindPrecondition))
	assert.Contains(t, err.Error(), "uq_cases_email")

	fk := &pgconn.PgError{Code: "23503"}
	assert.True(t, Is(FromDB(fk, "failed"), KindNotFound))

	passthrough := NotFound("case not found")
	assert.Same(t, passthrough, FromDB(passthrough, "failed"))

	other := FromDB(errors.New("connection reset"), "failed to load case")
	var ae *Error
	require.ErrorAs(t, other, &ae)
	assert.Equal(t, KindInternal, ae.Kind)
	assert.Equal(t, "failed to load case", ae.Message)
}
