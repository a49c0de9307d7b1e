package middleware

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"gonotes/internal/session"
	"gonotes/internal/transport/http/response"
)

const CSRFField = "csrf_token"

// RedirectIfAuthenticated sends a logged-in caller to their own page instead
// of showing the registration or login form again.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.FromContext(c).Identity()
		if id.IsAnonymous() {
			c.Next()
			return
		}
		response.Redirect(c, UserPath(id.Username), session.FlashInfo, "You are already logged in.")
		c.Abort()
	}
}

// RequireConfirmation lets a state-changing request through only when it
// carries the session's current confirmation token.
func RequireConfirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		if sess.VerifyCSRF(c.PostForm(CSRFField)) {
			c.Next()
			return
		}

		target := "/login"
		if id := sess.Identity(); !id.IsAnonymous() {
			target = UserPath(id.Username)
		}
		response.Redirect(c, target, session.FlashDanger, "Invalid or missing confirmation token.")
		c.Abort()
	}
}

func UserPath(username string) string {
	return "/users/" + url.PathEscape(username)
}
