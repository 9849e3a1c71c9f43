package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wearloop/rental-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes, keeping
//     contention outcomes (409/503) distinguishable from validation failures
//     (422) so the UI can tell "someone else just rented this" from bad input.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", "1")
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Validation errors: safe to retry with corrected input.
	switch {
	case errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrSelfRental),
		errors.Is(err, domain.ErrInvalidListing):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Contention errors: expected under concurrency, retryable.
	switch {
	case errors.Is(err, domain.ErrItemAlreadyRented):
		return http.StatusConflict, "item is no longer available"
	case errors.Is(err, domain.ErrBusy):
		return http.StatusServiceUnavailable, "item is busy, try again"
	}

	// Terminal request errors.
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, domain.ErrRentalNotFound):
		return http.StatusNotFound, "rental not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrAlreadyReturned):
		return http.StatusConflict, "rental already returned"
	case errors.Is(err, domain.ErrItemCurrentlyRented):
		return http.StatusConflict, "item is currently rented"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Consistency breach: fatal class, must reach operators.
	if errors.Is(err, domain.ErrOccupancyMismatch) {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("availability invariant violated")
		return http.StatusInternalServerError, "internal consistency error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
