// Package controller holds the thin HTTP handlers. All domain decisions
// live in the service layer; handlers parse input, call one service
// operation and translate the typed result.
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tasknest/apperr"
	"tasknest/utils"
)

// HTTPStatus maps a typed application error onto its HTTP status
func HTTPStatus(err error) int {
	var (
		validationErr     *apperr.ValidationError
		notFoundErr       *apperr.NotFoundError
		authenticationErr *apperr.AuthenticationError
		authorizationErr  *apperr.AuthorizationError
		conflictErr       *apperr.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &authenticationErr):
		return fiber.StatusUnauthorized
	case errors.As(err, &authorizationErr):
		return fiber.StatusForbidden
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &conflictErr):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the JSON error response for a service failure.
// Internal failures are captured with full detail but reported
// generically.
func respondError(c *fiber.Ctx, err error) error {
	status := HTTPStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		utils.LogError("request_failed", err, map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		})
		message = "Internal Server Error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
