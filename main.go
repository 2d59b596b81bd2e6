// File: lexdraft/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexdraft/config"
	"lexdraft/cron"
	"lexdraft/database"
	catalogRepoPkg "lexdraft/database/repository/catalog"
	documentRepoPkg "lexdraft/database/repository/document"
	userRepoPkg "lexdraft/database/repository/user"
	"lexdraft/handlers"
	"lexdraft/middleware"
	"lexdraft/routes"
	"lexdraft/services/catalog"
	"lexdraft/services/chat"
	"lexdraft/services/document"
	"lexdraft/services/storage"
	"lexdraft/services/tasks"
	"lexdraft/services/user"
	"lexdraft/services/wizard"
	"lexdraft/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	tasks.InitClient()

	var storageService storage.StorageService
	if config.AppConfig.CloudinaryURL != "" {
		var err error
		storageService, err = storage.NewStorageService(config.AppConfig.CloudinaryURL)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
		}
	} else {
		logger.Sugar().Warn("main: CLOUDINARY_URL not set, raw file storage disabled")
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	documentRepo := documentRepoPkg.NewMongoDocumentRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:  catalogRepo,
		Cache: utils.GetCacheClient(),
	}

	documentService := &document.DefaultDocumentService{
		Repo:     documentRepo,
		Embedder: document.NewGeminiEmbedder(config.AppConfig.GeminiAPIKey),
		Storage:  storageService,
	}

	chatService := &chat.DefaultChatService{
		Docs:        documentService,
		Generator:   chat.NewGeminiClient(config.AppConfig.GeminiAPIKey),
		Transcripts: chat.NewRedisTranscriptStore(utils.GetChatCacheClient(), 24*time.Hour),
	}

	wizardService := &wizard.DefaultWizardService{
		Catalog:  catalogService,
		Storage:  storageService,
		Sessions: wizard.NewRedisSessionStore(utils.GetCacheClient(), 2*time.Hour),
	}

	// Background embed worker.
	cron.InitEmbedWorker(documentService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetChatCacheClient()},
		database.MongoClient,
	)

	authHandler := handlers.NewAuthHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	chatHandler := handlers.NewChatHandler(chatService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	wizardHandler := handlers.NewWizardHandler(wizardService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Auth endpoints.
		SignupHandler: authHandler.SignupHandler,
		LoginHandler:  authHandler.LoginHandler,
		LogoutHandler: authHandler.LogoutHandler,

		// Catalog endpoints.
		ListServicesHandler: catalogHandler.ListServicesHandler,
		ListFormsHandler:    catalogHandler.ListFormsHandler,
		FormDetailsHandler:  catalogHandler.FormDetailsHandler,

		// Conversation endpoints.
		ChatHandler:        chatHandler.HandleChat,
		QueryHandler:       chatHandler.HandleQuery,
		ChatHistoryHandler: chatHandler.HandleHistory,

		// Document endpoints.
		UploadHandler:          documentHandler.UploadHandler,
		TextPreviewHandler:     documentHandler.TextPreviewHandler,
		ListDocumentsHandler:   documentHandler.ListHandler,
		GetDocumentHandler:     documentHandler.GetHandler,
		DocumentPreviewHandler: documentHandler.PreviewHandler,
		DeleteDocumentHandler:  documentHandler.DeleteHandler,
		EmbedDocumentsHandler:  documentHandler.ReembedHandler,

		// Wizard endpoints.
		WizardStartHandler:   wizardHandler.StartHandler,
		WizardGetHandler:     wizardHandler.GetHandler,
		WizardAnswersHandler: wizardHandler.AnswersHandler,
		WizardResetHandler:   wizardHandler.ResetHandler,
		FinalContentHandler:  wizardHandler.FinalContentHandler,
		FinalFormHandler:     wizardHandler.FinalFormHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
