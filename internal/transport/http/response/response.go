package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gonotes/internal/session"
)

const (
	ViewRegister = "register"
	ViewLogin    = "login"
	ViewUser     = "user"
	ViewNote     = "note"
	ViewNoteForm = "note_form"
	ViewNotFound = "not_found"
	ViewError    = "error"
)

// View is the view-model handed to the presentation layer. Pending notices
// are drained from the session into it.
type View struct {
	View      string          `json:"view"`
	Username  string          `json:"username,omitempty"`
	CSRFToken string          `json:"csrf_token,omitempty"`
	Notices   []session.Flash `json:"notices"`
	Data      interface{}     `json:"data,omitempty"`
}

func Render(c *gin.Context, httpStatus int, view string, data interface{}) {
	v := View{View: view, Notices: []session.Flash{}, Data: data}
	if sess, ok := session.Lookup(c); ok {
		v.Username = sess.Identity().Username
		v.CSRFToken = sess.CSRFToken()
		if flashes := sess.PopFlashes(); len(flashes) > 0 {
			v.Notices = flashes
		}
	}
	c.JSON(httpStatus, v)
}

// Redirect sends the browser to location with an optional notice for the
// next rendered view.
func Redirect(c *gin.Context, location, category, notice string) {
	if notice != "" {
		if sess, ok := session.Lookup(c); ok {
			sess.AddFlash(category, notice)
		}
	}
	c.Redirect(http.StatusFound, location)
}

func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, ViewNotFound, nil)
}

func InternalError(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	Render(c, http.StatusInternalServerError, ViewError, gin.H{"message": "Something went wrong. Please try again."})
}
