package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gonotes/internal/app"
	"gonotes/internal/auth"
	"gonotes/internal/session"
	"gonotes/internal/transport/http/middleware"
	"gonotes/internal/transport/http/response"
)

type AuthHandler struct {
	credentials app.CredentialStore
	sessions    *session.Manager
	events      app.EventPublisher
}

func NewAuthHandler(credentials app.CredentialStore, sessions *session.Manager, events app.EventPublisher) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		sessions:    sessions,
		events:      events,
	}
}

func (h *AuthHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/register")
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	response.Render(c, http.StatusOK, response.ViewRegister, formView{Values: RegisterForm{}, Errors: FieldErrors{}})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if errs := bindForm(c, &form); errs != nil {
		response.Render(c, http.StatusUnprocessableEntity, response.ViewRegister, formView{Values: form, Errors: errs})
		return
	}

	user, err := h.credentials.Register(c.Request.Context(), app.RegisterInput{
		Username:  form.Username,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUsernameTaken):
			response.Render(c, http.StatusConflict, response.ViewRegister, formView{Values: form, Errors: FieldErrors{"username": "Username already taken."}})
		case errors.Is(err, app.ErrEmailTaken):
			response.Render(c, http.StatusConflict, response.ViewRegister, formView{Values: form, Errors: FieldErrors{"email": "Email already registered."}})
		case errors.Is(err, app.ErrPasswordTooLong):
			response.Render(c, http.StatusUnprocessableEntity, response.ViewRegister, formView{Values: form, Errors: FieldErrors{"password": "Password is too long."}})
		default:
			response.InternalError(c, err)
		}
		return
	}

	if err := h.sessions.Login(c, user.Username); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, middleware.UserPath(user.Username), session.FlashSuccess, "Welcome, "+user.FirstName+"! Your account has been created.")
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	response.Render(c, http.StatusOK, response.ViewLogin, formView{Values: LoginForm{}, Errors: FieldErrors{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if errs := bindForm(c, &form); errs != nil {
		response.Render(c, http.StatusUnprocessableEntity, response.ViewLogin, formView{Values: form, Errors: errs})
		return
	}

	user, err := h.credentials.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredential) {
			response.Render(c, http.StatusUnauthorized, response.ViewLogin, formView{Values: form, Errors: FieldErrors{"form": "Invalid username/password."}})
			return
		}
		response.InternalError(c, err)
		return
	}

	if err := h.sessions.Login(c, user.Username); err != nil {
		response.InternalError(c, err)
		return
	}
	app.RecordLogin(c.Request.Context(), h.events, user.Username)
	response.Redirect(c, middleware.UserPath(user.Username), session.FlashSuccess, "Welcome back, "+user.FirstName+"!")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	id := identity(c)
	if id.IsAnonymous() {
		denyAccess(c, auth.ErrUnauthenticated)
		return
	}
	if err := h.sessions.Destroy(c); err != nil {
		response.InternalError(c, err)
		return
	}
	app.RecordLogout(c.Request.Context(), h.events, id.Username)
	response.Redirect(c, "/", session.FlashInfo, "You have been logged out.")
}
