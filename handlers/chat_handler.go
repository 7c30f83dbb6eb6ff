package handlers

import (
	"net/http"

	"ade-insurance-backend/models"
	"ade-insurance-backend/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles HTTP requests for the insurance advisor chat
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message        string                       `json:"message" binding:"required"`
	Recommendation *models.RecommendationResult `json:"recommendation,omitempty"`
	History        []service.ChatMessage        `json:"history,omitempty"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result := h.chatService.Chat(c.Request.Context(), service.ChatRequest{
		Message:        req.Message,
		Recommendation: req.Recommendation,
		History:        req.History,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
