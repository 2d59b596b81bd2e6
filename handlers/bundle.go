package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups every route handler so main can assemble the wiring in
// one place and routes only ever sees gin.HandlerFuncs.
type HandlerBundle struct {
	// Auth endpoints.
	SignupHandler gin.HandlerFunc
	LoginHandler  gin.HandlerFunc
	LogoutHandler gin.HandlerFunc

	// Catalog endpoints.
	ListServicesHandler gin.HandlerFunc
	ListFormsHandler    gin.HandlerFunc
	FormDetailsHandler  gin.HandlerFunc

	// Conversation endpoints.
	ChatHandler        gin.HandlerFunc
	QueryHandler       gin.HandlerFunc
	ChatHistoryHandler gin.HandlerFunc

	// Document endpoints.
	UploadHandler          gin.HandlerFunc
	TextPreviewHandler     gin.HandlerFunc
	ListDocumentsHandler   gin.HandlerFunc
	GetDocumentHandler     gin.HandlerFunc
	DocumentPreviewHandler gin.HandlerFunc
	DeleteDocumentHandler  gin.HandlerFunc
	EmbedDocumentsHandler  gin.HandlerFunc

	// Wizard endpoints.
	WizardStartHandler   gin.HandlerFunc
	WizardGetHandler     gin.HandlerFunc
	WizardAnswersHandler gin.HandlerFunc
	WizardResetHandler   gin.HandlerFunc
	FinalContentHandler  gin.HandlerFunc
	FinalFormHandler     gin.HandlerFunc
}
