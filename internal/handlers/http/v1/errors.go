package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gfdmit/web-forum/post-api/internal/repository"
	"github.com/gfdmit/web-forum/post-api/internal/service"
)

var errBadRequest = errors.New("bad request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", errBadRequest, err)
}

// respondError maps a failure to its status code and writes {"error": ...}.
// Server-side failures are attached to the context for the request logger and
// answered with a generic message.
func respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, repository.ErrNotFound):
		status, message = http.StatusNotFound, "post not found"
	case errors.Is(err, errBadRequest),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, repository.ErrInvalidPage):
		status, message = http.StatusBadRequest, err.Error()
	// drivers may report a cancelled statement with their own error
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(c.Request.Context().Err(), context.DeadlineExceeded):
		status, message = http.StatusRequestTimeout, "request timed out"
	}

	if status >= http.StatusInternalServerError || status == http.StatusRequestTimeout {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
