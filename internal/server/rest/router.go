package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// NewRouter wires middleware and routes. Credential endpoints carry their
// own strict rate limit; everything under /api requires a bearer token.
func NewRouter(svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(AccessLogMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(svc.Users)
	authGroup := router.Group("/auth")
	authGroup.Use(AuthRateLimitMiddleware(rate.Limit(1), 5))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	api := router.Group("/api")
	api.Use(AuthMiddleware(svc.Users))
	{
		notesHandler := NewNotesHandler(svc.Notes)
		api.GET("/notes", notesHandler.List)
		api.POST("/notes", notesHandler.Create)
		api.GET("/notes/:id", notesHandler.Get)
		api.PATCH("/notes/:id", notesHandler.Update)
		api.DELETE("/notes/:id", notesHandler.Delete)

		foldersHandler := NewFoldersHandler(svc.Folders)
		api.GET("/folders", foldersHandler.List)
		api.POST("/folders", foldersHandler.Create)
		api.PATCH("/folders/:id", foldersHandler.Update)
		api.DELETE("/folders/:id", foldersHandler.Delete)

		profileHandler := NewProfileHandler(svc.Profiles, svc.Avatars)
		api.GET("/profile", profileHandler.Get)
		api.PUT("/profile", profileHandler.Save)
		api.POST("/profile/avatar", profileHandler.AvatarUploadURL)
		api.GET("/profile/avatar", profileHandler.AvatarDownloadURL)
	}

	return router
}
