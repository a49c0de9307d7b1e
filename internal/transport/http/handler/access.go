package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"gonotes/internal/app"
	"gonotes/internal/auth"
	"gonotes/internal/session"
	"gonotes/internal/transport/http/middleware"
	"gonotes/internal/transport/http/response"
)

// denyAccess turns a failed lookup or authorization into the matching
// outcome: not found, a redirect to login, or a redirect to the caller's page.
func denyAccess(c *gin.Context, err error) {
	id := session.FromContext(c).Identity()
	switch {
	case errors.Is(err, app.ErrNoteNotFound), errors.Is(err, app.ErrUserNotFound):
		response.NotFound(c)
	case errors.Is(err, auth.ErrUnauthenticated):
		response.Redirect(c, "/login", session.FlashDanger, "Please log in first.")
	case errors.Is(err, auth.ErrForbidden):
		response.Redirect(c, middleware.UserPath(id.Username), session.FlashDanger, "You don't have permission to do that.")
	default:
		response.InternalError(c, err)
	}
}

func identity(c *gin.Context) auth.Identity {
	return session.FromContext(c).Identity()
}

func parseNoteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
