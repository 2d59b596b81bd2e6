package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"lexdraft/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler serves the guided form-filling endpoints.
type WizardHandler struct {
	Svc wizard.WizardService
}

func NewWizardHandler(svc wizard.WizardService) *WizardHandler {
	return &WizardHandler{Svc: svc}
}

// StartHandler handles POST /api/wizard/start.
func (h *WizardHandler) StartHandler(c *gin.Context) {
	var req struct {
		FormID string `json:"form_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FormID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form ID is required"})
		return
	}

	session, err := h.Svc.Start(c.Request.Context(), req.FormID)
	switch {
	case errors.Is(err, wizard.ErrFormNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
	case err != nil:
		getLogger(c).Error("Error starting wizard session", zap.String("formID", req.FormID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error starting session"})
	default:
		c.JSON(http.StatusCreated, session)
	}
}

// GetHandler handles GET /api/wizard/:session_id.
func (h *WizardHandler) GetHandler(c *gin.Context) {
	session, err := h.Svc.Get(c.Request.Context(), c.Param("session_id"))
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case err != nil:
		getLogger(c).Error("Error fetching wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching session"})
	default:
		c.JSON(http.StatusOK, session)
	}
}

// AnswersHandler handles POST /api/wizard/:session_id/answers.
func (h *WizardHandler) AnswersHandler(c *gin.Context) {
	var answers map[string]string
	if err := c.ShouldBindJSON(&answers); err != nil || len(answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No answers provided"})
		return
	}

	session, err := h.Svc.SubmitAnswers(c.Request.Context(), c.Param("session_id"), answers)
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case err != nil:
		getLogger(c).Error("Error submitting answers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error submitting answers"})
	default:
		c.JSON(http.StatusOK, session)
	}
}

// ResetHandler handles POST /api/wizard/:session_id/reset.
func (h *WizardHandler) ResetHandler(c *gin.Context) {
	if err := h.Svc.Reset(c.Request.Context(), c.Param("session_id")); err != nil {
		getLogger(c).Error("Error resetting wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resetting session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session reset"})
}

// FinalContentHandler handles POST /api/final-content: fill the form template
// with the submitted answers and return an HTML preview of the result.
func (h *WizardHandler) FinalContentHandler(c *gin.Context) {
	var payload map[string]string
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	formID := payload["form_id"]
	if formID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form ID is required"})
		return
	}
	sessionID := payload["session_id"]

	answers := make(map[string]string, len(payload))
	for k, v := range payload {
		if k == "form_id" || k == "session_id" {
			continue
		}
		answers[k] = v
	}

	content, sessionID, err := h.Svc.AssembleContent(c.Request.Context(), sessionID, formID, answers)
	switch {
	case errors.Is(err, wizard.ErrFormNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
	case err != nil:
		getLogger(c).Error("Error assembling document", zap.String("formID", formID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating document"})
	default:
		c.JSON(http.StatusOK, gin.H{"content": content, "session_id": sessionID})
	}
}

// FinalFormHandler handles GET /api/final-form: download the assembled DOCX.
func (h *WizardHandler) FinalFormHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = c.PostForm("session_id")
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	path, err := h.Svc.FinalDocumentPath(c.Request.Context(), sessionID)
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound), errors.Is(err, wizard.ErrNoDocument):
		c.JSON(http.StatusNotFound, gin.H{"error": "No generated document for this session"})
	case err != nil:
		getLogger(c).Error("Error locating final document", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching document"})
	default:
		c.FileAttachment(path, filepath.Base(path))
	}
}
