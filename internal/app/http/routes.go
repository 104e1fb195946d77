package routes

import (
	authapi "fictionhub/internal/api/auth"
	"fictionhub/internal/api/chapters"
	"fictionhub/internal/api/comments"
	"fictionhub/internal/api/ratings"
	"fictionhub/internal/api/stories"
	"fictionhub/internal/api/tags"
	"fictionhub/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Reads are open to everyone; a bearer token, when present, still attaches
	// the principal.
	public := r.Group("/")
	public.Use(middleware.OptionalAuthMiddleware(), middleware.SanitizeInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/tags", tags.ListTags)
	public.GET("/tags/:id", tags.GetTag)

	public.GET("/stories", stories.List)
	public.GET("/stories/:storyID", stories.Get)
	public.GET("/stories/:storyID/chapters", chapters.List)
	public.GET("/stories/:storyID/chapters/:chapterID", chapters.Get)
	public.GET("/stories/:storyID/chapters/:chapterID/comments", comments.ListNested)

	public.GET("/comments", comments.List)
	public.GET("/comments/:id", comments.Get)

	public.GET("/ratings", ratings.List)
	public.GET("/ratings/chapter/:chapterID", ratings.ByChapter)
	public.GET("/ratings/story/:storyID/average", ratings.ByStory)

	// Every write requires a valid token; ownership is checked per-entity in
	// the handlers.
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeInputMiddleware())

	auth.GET("/me", authapi.Me)

	auth.POST("/tags", tags.CreateTag)
	auth.PUT("/tags/:id", tags.UpdateTag)
	auth.DELETE("/tags/:id", tags.DeleteTag)

	auth.GET("/stories/mine", stories.Mine)
	auth.POST("/stories", stories.Create)
	auth.PUT("/stories/:storyID", stories.Update)
	auth.DELETE("/stories/:storyID", stories.Delete)

	auth.POST("/stories/:storyID/chapters", chapters.Create)
	auth.PUT("/stories/:storyID/chapters/:chapterID", chapters.Update)
	auth.DELETE("/stories/:storyID/chapters/:chapterID", chapters.Delete)

	auth.POST("/stories/:storyID/chapters/:chapterID/comments", comments.CreateNested)
	auth.POST("/comments", comments.Create)
	auth.DELETE("/comments/:id", comments.Delete)

	auth.POST("/ratings", ratings.Create)
	auth.DELETE("/ratings/:id", ratings.Delete)
}
