package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handler "site_prompt_server/internal/api"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *handler.APIHandler) {

	// --- Catalog & Stateless Compilers ---
	router.GET("/catalog", h.GetCatalog)
	compileGroup := router.Group("/compile")
	{
		compileGroup.POST("/prompt", h.CompilePrompt) // Spec -> generator prompt
		compileGroup.POST("/demo", h.CompileDemo)     // Spec -> demo HTML document
	}
	router.POST("/interpret", h.Interpret) // One chat line -> partial update

	// --- Conversation Sessions ---
	sessionGroup := router.Group("/sessions")
	{
		sessionGroup.POST("", h.CreateSession)
		sessionGroup.GET("/:id", h.GetSession)
		sessionGroup.DELETE("/:id", h.DeleteSession)
		sessionGroup.POST("/:id/messages", h.SendMessage)
		sessionGroup.PATCH("/:id/spec", h.PatchSpec) // Form-style direct update
		sessionGroup.GET("/:id/prompt", h.GetPrompt)
		sessionGroup.GET("/:id/preview", h.GetPreview)
		sessionGroup.GET("/:id/spec.yaml", h.GetSpecYAML)
		sessionGroup.POST("/:id/generate", h.GenerateSite) // Needs OPENAI_API_KEY
		sessionGroup.POST("/:id/projects", h.SaveProject)
	}

	// --- Saved Projects ---
	projectGroup := router.Group("/projects")
	{
		projectGroup.GET("", h.ListProjects)
		projectGroup.DELETE("/:id", h.DeleteProject)
		projectGroup.GET("/:id/files", h.GetProjectFiles)
		projectGroup.GET("/:id/files/*name", h.GetProjectFile)
		projectGroup.POST("/:id/export", h.ExportProject)
	}

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
