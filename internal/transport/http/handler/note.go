package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gonotes/internal/app"
	"gonotes/internal/auth"
	"gonotes/internal/model"
	"gonotes/internal/session"
	"gonotes/internal/transport/http/middleware"
	"gonotes/internal/transport/http/response"
)

const (
	noteFormAdd    = "add"
	noteFormUpdate = "update"
)

type NoteHandler struct {
	notes app.NoteStore
}

type noteFormView struct {
	Mode   string      `json:"mode"`
	Owner  string      `json:"owner"`
	NoteID uint        `json:"note_id,omitempty"`
	Values NoteForm    `json:"values"`
	Errors FieldErrors `json:"errors"`
}

func NewNoteHandler(notes app.NoteStore) *NoteHandler {
	return &NoteHandler{notes: notes}
}

func (h *NoteHandler) Show(c *gin.Context) {
	note, ok := h.ownedNote(c)
	if !ok {
		return
	}
	response.Render(c, http.StatusOK, response.ViewNote, gin.H{"note": note})
}

func (h *NoteHandler) AddPage(c *gin.Context) {
	username := c.Param("username")
	if err := auth.AuthorizeSelf(identity(c), username); err != nil {
		denyAccess(c, err)
		return
	}
	response.Render(c, http.StatusOK, response.ViewNoteForm, noteFormView{Mode: noteFormAdd, Owner: username, Errors: FieldErrors{}})
}

func (h *NoteHandler) Add(c *gin.Context) {
	username := c.Param("username")
	if err := auth.AuthorizeSelf(identity(c), username); err != nil {
		denyAccess(c, err)
		return
	}

	var form NoteForm
	if errs := bindForm(c, &form); errs != nil {
		response.Render(c, http.StatusUnprocessableEntity, response.ViewNoteForm, noteFormView{Mode: noteFormAdd, Owner: username, Values: form, Errors: errs})
		return
	}

	if _, err := h.notes.CreateNote(c.Request.Context(), username, form.Title, form.Content); err != nil {
		denyAccess(c, err)
		return
	}
	response.Redirect(c, middleware.UserPath(username), session.FlashSuccess, "Note added.")
}

func (h *NoteHandler) EditPage(c *gin.Context) {
	note, ok := h.ownedNote(c)
	if !ok {
		return
	}
	response.Render(c, http.StatusOK, response.ViewNoteForm, noteFormView{
		Mode:   noteFormUpdate,
		Owner:  note.OwnerUsername,
		NoteID: note.ID,
		Values: NoteForm{Title: note.Title, Content: note.Content},
		Errors: FieldErrors{},
	})
}

func (h *NoteHandler) Update(c *gin.Context) {
	note, ok := h.ownedNote(c)
	if !ok {
		return
	}

	var form NoteForm
	if errs := bindForm(c, &form); errs != nil {
		response.Render(c, http.StatusUnprocessableEntity, response.ViewNoteForm, noteFormView{
			Mode:   noteFormUpdate,
			Owner:  note.OwnerUsername,
			NoteID: note.ID,
			Values: form,
			Errors: errs,
		})
		return
	}

	if _, err := h.notes.UpdateNote(c.Request.Context(), note.ID, form.Title, form.Content); err != nil {
		denyAccess(c, err)
		return
	}
	response.Redirect(c, middleware.UserPath(note.OwnerUsername), session.FlashSuccess, "Note updated.")
}

func (h *NoteHandler) Delete(c *gin.Context) {
	note, ok := h.ownedNote(c)
	if !ok {
		return
	}

	if err := h.notes.DeleteNote(c.Request.Context(), note.ID); err != nil {
		denyAccess(c, err)
		return
	}
	response.Redirect(c, middleware.UserPath(note.OwnerUsername), session.FlashSuccess, "Note deleted.")
}

// ownedNote resolves the :id note for the caller, answering the request
// itself when the note is missing or not theirs.
func (h *NoteHandler) ownedNote(c *gin.Context) (*model.Note, bool) {
	noteID, ok := parseNoteID(c)
	if !ok {
		response.NotFound(c)
		return nil, false
	}
	note, err := h.notes.GetOwnedNote(c.Request.Context(), identity(c), noteID)
	if err != nil {
		denyAccess(c, err)
		return nil, false
	}
	return note, true
}
