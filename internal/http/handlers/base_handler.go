// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabway/internal/modules/booking"
	"cabway/internal/modules/fleet"
	"cabway/internal/modules/transit"
	"cabway/internal/modules/user"
)

// errorResponse carries a stable machine-readable kind alongside the
// human-readable message. Clients branch on Kind, never on Error.
type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, kind, msg string) {
	writeJSON(c, status, errorResponse{Kind: kind, Error: msg})
}

// writeDomainError maps module sentinel errors onto HTTP statuses and
// error kinds. Unrecognized errors become an opaque 500.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, transit.ErrNotFound),
		errors.Is(err, transit.ErrRouteNotFound),
		errors.Is(err, fleet.ErrNotFound),
		errors.Is(err, booking.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, transit.ErrNoRoute):
		writeError(c, http.StatusUnprocessableEntity, "unreachable", err.Error())
	case errors.Is(err, booking.ErrConflict),
		errors.Is(err, booking.ErrStatusConflict),
		errors.Is(err, fleet.ErrHasCab),
		errors.Is(err, transit.ErrDuplicateName),
		errors.Is(err, user.ErrDuplicateEmail):
		writeError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, transit.ErrReferenced),
		errors.Is(err, fleet.ErrReferenced):
		writeError(c, http.StatusConflict, "referential_conflict", err.Error())
	case errors.Is(err, booking.ErrForbidden):
		writeError(c, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, transit.ErrValidation),
		errors.Is(err, fleet.ErrValidation),
		errors.Is(err, booking.ErrValidation),
		errors.Is(err, user.ErrValidation):
		writeError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, user.ErrBadCredentials):
		writeError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	default:
		// attach the cause for the logging middleware; the client only
		// sees an opaque failure
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal", "internal error")
	}
}
