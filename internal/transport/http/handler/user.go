package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gonotes/internal/app"
	"gonotes/internal/auth"
	"gonotes/internal/model"
	"gonotes/internal/session"
	"gonotes/internal/transport/http/response"
)

type UserHandler struct {
	credentials app.CredentialStore
	notes       app.NoteStore
	sessions    *session.Manager
}

type userView struct {
	User  *model.User  `json:"user"`
	Notes []model.Note `json:"notes"`
}

func NewUserHandler(credentials app.CredentialStore, notes app.NoteStore, sessions *session.Manager) *UserHandler {
	return &UserHandler{
		credentials: credentials,
		notes:       notes,
		sessions:    sessions,
	}
}

func (h *UserHandler) Show(c *gin.Context) {
	username := c.Param("username")
	if err := auth.AuthorizeSelf(identity(c), username); err != nil {
		denyAccess(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.credentials.GetUser(ctx, username)
	if err != nil {
		denyAccess(c, err)
		return
	}
	notes, err := h.notes.ListNotesByOwner(ctx, username)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}

	response.Render(c, http.StatusOK, response.ViewUser, userView{User: user, Notes: notes})
}

func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if err := auth.AuthorizeSelf(identity(c), username); err != nil {
		denyAccess(c, err)
		return
	}

	if err := h.credentials.DeleteUser(c.Request.Context(), username); err != nil {
		denyAccess(c, err)
		return
	}
	if err := h.sessions.DestroyUser(c, username); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, "/", session.FlashInfo, "Your account has been deleted.")
}
