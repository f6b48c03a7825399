package fleet

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapCreateError(t *testing.T) {
	cause := errors.New("connection reset")

	assert.NoError(t, mapCreateError(nil))
	assert.ErrorIs(t, mapCreateError(cause), cause, "non-constraint errors pass through")

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "cabs_driver_id_fkey"}
	assert.ErrorIs(t, mapCreateError(fk), ErrValidation)
	assert.ErrorIs(t, mapCreateError(fmt.Errorf("insert cab: %w", fk)), ErrValidation, "wrapped errors unwrap")

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "idx_cabs_driver"}
	assert.ErrorIs(t, mapCreateError(unique), ErrHasCab)

	other := &pgconn.PgError{Code: "23514"}
	assert.ErrorIs(t, mapCreateError(other), other, "unrelated constraint codes pass through")
}
