package routes

import (
	"time"

	"lexdraft/handlers"
	"lexdraft/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup/login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/signup", hb.SignupHandler)
		api.POST("/register", hb.SignupHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (Require Authentication)
		account := api.Group("/account")
		account.Use(middleware.JWTAuthMiddleware())
		account.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterCatalogRoutes registers service/form browsing endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.ListServicesHandler)
		api.GET("/forms", hb.ListFormsHandler)
		api.GET("/form-details", hb.FormDetailsHandler)
	}
}

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/chat", hb.ChatHandler)
		api.POST("/query", hb.QueryHandler)
		api.GET("/chat-history", hb.ChatHistoryHandler)
	}
}

// RegisterDocumentRoutes registers upload and document-library endpoints.
func RegisterDocumentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/upload", hb.UploadHandler)
		api.POST("/document-text-preview", hb.TextPreviewHandler)
		api.POST("/embed-documents", hb.EmbedDocumentsHandler)
		api.GET("/documents", hb.ListDocumentsHandler)
		api.GET("/document/:id", hb.GetDocumentHandler)
		api.GET("/document-preview/:id", hb.DocumentPreviewHandler)
		api.DELETE("/document/:id", hb.DeleteDocumentHandler)
	}
}

// RegisterWizardRoutes registers the guided form-filling endpoints.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/wizard/start", hb.WizardStartHandler)
		api.GET("/wizard/:session_id", hb.WizardGetHandler)
		api.PUT("/wizard/:session_id/answers", hb.WizardAnswersHandler)
		api.POST("/wizard/:session_id/reset", hb.WizardResetHandler)
		api.POST("/final-content", hb.FinalContentHandler)
		api.GET("/final-form", hb.FinalFormHandler)
		api.POST("/final-form", hb.FinalFormHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes sets up CORS and mounts every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterDocumentRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterHealthRoute(r)
}
