package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"lexdraft/config"
	"lexdraft/models"
	"lexdraft/services/document"
	"lexdraft/services/tasks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentHandler serves the upload/preview/listing endpoints.
type DocumentHandler struct {
	Svc document.DocumentService
}

func NewDocumentHandler(svc document.DocumentService) *DocumentHandler {
	return &DocumentHandler{Svc: svc}
}

var (
	errNoFilePart     = errors.New("no file part")
	errNoSelectedFile = errors.New("no selected file")
)

func uploadDir() string {
	if config.AppConfig.UploadDir != "" {
		return config.AppConfig.UploadDir
	}
	return "./uploads"
}

// saveUpload writes the "document" multipart file into the upload dir under a
// unique name and returns its path. The caller removes the file when done.
func saveUpload(c *gin.Context) (string, string, error) {
	file, err := c.FormFile("document")
	if err != nil {
		return "", "", errNoFilePart
	}
	if file.Filename == "" {
		return "", "", errNoSelectedFile
	}
	dir := uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	localPath := filepath.Join(dir, uuid.New().String()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		return "", "", err
	}
	return localPath, file.Filename, nil
}

// receiveUpload maps saveUpload failures onto client responses. It returns
// ok=false once the response has been written.
func receiveUpload(c *gin.Context) (localPath, filename string, ok bool) {
	localPath, filename, err := saveUpload(c)
	switch {
	case errors.Is(err, errNoFilePart):
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file part"})
	case errors.Is(err, errNoSelectedFile):
		c.JSON(http.StatusBadRequest, gin.H{"message": "No selected file"})
	case err != nil:
		getLogger(c).Error("Failed to persist upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving uploaded file"})
	default:
		return localPath, filename, true
	}
	return "", "", false
}

// UploadHandler handles POST /api/upload.
func (h *DocumentHandler) UploadHandler(c *gin.Context) {
	localPath, filename, ok := receiveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(localPath)

	result, err := h.Svc.ProcessUpload(c.Request.Context(), localPath, filename)
	if err != nil {
		getLogger(c).Warn("Upload rejected", zap.String("file", filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Document uploaded and processed successfully",
		"document_id": result.DocumentID,
		"file_name":   result.FileName,
		"word_count":  result.WordCount,
		"paragraphs":  result.Paragraphs,
	})
}

// TextPreviewHandler handles POST /api/document-text-preview: extract without
// storing, returning a short preview plus extraction stats.
func (h *DocumentHandler) TextPreviewHandler(c *gin.Context) {
	localPath, filename, ok := receiveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(localPath)

	extraction, err := h.Svc.PreviewFile(localPath, filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	preview := extraction.Text
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	c.JSON(http.StatusOK, gin.H{
		"file_name":   filename,
		"file_type":   extraction.FileType,
		"preview":     preview,
		"text_length": len(extraction.Text),
		"word_count":  extraction.WordCount,
		"paragraphs":  extraction.Paragraphs,
	})
}

// ListHandler handles GET /api/documents.
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	docs, err := h.Svc.List()
	if err != nil {
		getLogger(c).Error("Error listing documents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
}

// GetHandler handles GET /api/document/:id.
func (h *DocumentHandler) GetHandler(c *gin.Context) {
	doc, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		getLogger(c).Error("Error fetching document", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching document"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// PreviewHandler handles GET /api/document-preview/:id: the stored document
// trimmed to a preview snippet for the library view.
func (h *DocumentHandler) PreviewHandler(c *gin.Context) {
	doc, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		getLogger(c).Error("Error fetching document", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching document"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	preview := doc.Text
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       doc.ID,
		"preview":  preview,
		"metadata": doc.Metadata,
	})
}

// DeleteHandler handles DELETE /api/document/:id.
func (h *DocumentHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.Svc.Get(id)
	if err != nil {
		getLogger(c).Error("Error fetching document", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting document"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		getLogger(c).Error("Error deleting document", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted", "id": id})
}

// ReembedHandler handles POST /api/embed-documents: store the submitted texts
// immediately and queue background embedding for each.
func (h *DocumentHandler) ReembedHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Documents []struct {
			Text   string `json:"text"`
			Source string `json:"source"`
		} `json:"documents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Documents) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No documents provided"})
		return
	}

	ids := make([]string, 0, len(req.Documents))
	for _, d := range req.Documents {
		meta := models.DocumentMetadata{
			Source:          d.Source,
			TextLength:      len(d.Text),
			FileType:        "text",
			UploadTimestamp: time.Now().Unix(),
		}
		id, err := h.Svc.IngestText(c.Request.Context(), d.Text, meta)
		if err != nil {
			logger.Error("Error ingesting document", zap.String("source", d.Source), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error embedding documents"})
			return
		}
		if err := tasks.EnqueueReembed(id); err != nil {
			logger.Error("Error queueing embed task", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error embedding documents"})
			return
		}
		ids = append(ids, id)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Documents queued for embedding",
		"document_ids": ids,
	})
}
