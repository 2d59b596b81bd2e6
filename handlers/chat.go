package handlers

import (
	"net/http"
	"strings"

	"lexdraft/models"
	"lexdraft/services/chat"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler serves the conversational endpoints.
type ChatHandler struct {
	Svc chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Svc: svc}
}

// HandleChat handles POST /api/chat.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	reply, err := h.Svc.Chat(c.Request.Context(), req.SessionID, req.Input)
	if err != nil {
		getLogger(c).Error("Chat failed", zap.String("sessionID", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing your message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply, "session_id": req.SessionID})
}

// HandleQuery handles POST /api/query. Model failures degrade to a 200
// payload so the browser widget can render the failure text inline.
func (h *ChatHandler) HandleQuery(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	resp, err := h.Svc.Query(c.Request.Context(), req.SessionID, req.Query)
	if err != nil {
		getLogger(c).Error("Query failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"response": "Error processing your query: " + err.Error(),
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleHistory handles GET /api/chat-history?session_id=X.
func (h *ChatHandler) HandleHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	turns, err := h.Svc.History(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("History fetch failed", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching chat history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "history": turns})
}
