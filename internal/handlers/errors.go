package handlers

import (
	"errors"
	"net/http"

	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

// respondError maps a service error to its HTTP status. Errors outside the
// services.Error taxonomy become a 500 with fallback as the message.
func respondError(c *drift.Context, err error, fallback string) {
	message := func(def string) string {
		var domainErr *services.Error
		if errors.As(err, &domainErr) && domainErr.Message != "" {
			return domainErr.Message
		}
		return def
	}

	switch {
	case errors.Is(err, services.ErrValidation):
		c.BadRequest(message("invalid request"))
	case errors.Is(err, services.ErrUnauthorized):
		c.Unauthorized(message("unauthorized"))
	case errors.Is(err, services.ErrAuthorization):
		c.Forbidden(message("forbidden"))
	case errors.Is(err, services.ErrPrecondition):
		_ = c.JSON(http.StatusPreconditionFailed, map[string]string{"error": message("precondition failed")})
		c.Abort()
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(message("not found"))
	case errors.Is(err, services.ErrDelivery):
		c.BadGateway(message("delivery failed"))
	default:
		c.InternalServerError(fallback)
	}
}

func noContent(c *drift.Context) {
	c.Response.WriteHeader(http.StatusNoContent)
	c.Abort()
}
