package http

import (
	"github.com/gin-gonic/gin"

	appsvc "gonotes/internal/app"
	"gonotes/internal/bootstrap"
	"gonotes/internal/repository"
	"gonotes/internal/session"
	"gonotes/internal/transport/http/handler"
	"gonotes/internal/transport/http/middleware"
	"gonotes/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	sessions := session.NewManager(app.Sessions, session.Options{
		Secret:       app.Config.Auth.SessionSecret,
		TTL:          app.Config.SessionTTL(),
		CookieName:   app.Config.Session.CookieName,
		SecureCookie: app.Config.Session.SecureCookie,
	})

	store := repository.NewStore(app.DB)
	authService := appsvc.NewAuthService(store, app.Events, app.Config.Auth.BcryptCost)
	noteService := appsvc.NewNoteService(store, app.Events)
	authHandler := handler.NewAuthHandler(authService, sessions, app.Events)
	userHandler := handler.NewUserHandler(authService, noteService, sessions)
	noteHandler := handler.NewNoteHandler(noteService)

	web := router.Group("/")
	web.Use(sessions.Middleware())
	router.NoRoute(sessions.Middleware(), response.NotFound)

	web.GET("/", authHandler.Home)

	guest := web.Group("/")
	guest.Use(middleware.RedirectIfAuthenticated())
	guest.GET("/register", authHandler.RegisterPage)
	guest.POST("/register", authHandler.Register)
	guest.GET("/login", authHandler.LoginPage)
	guest.POST("/login", authHandler.Login)

	confirmed := middleware.RequireConfirmation()
	web.POST("/logout", confirmed, authHandler.Logout)

	web.GET("/users/:username", userHandler.Show)
	web.POST("/users/:username/delete", confirmed, userHandler.Delete)
	web.GET("/users/:username/notes/add", noteHandler.AddPage)
	web.POST("/users/:username/notes/add", noteHandler.Add)

	web.GET("/notes/:id", noteHandler.Show)
	web.GET("/notes/:id/update", noteHandler.EditPage)
	web.POST("/notes/:id/update", noteHandler.Update)
	web.POST("/notes/:id/delete", confirmed, noteHandler.Delete)

	return router
}
