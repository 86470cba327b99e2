package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/ai"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// AskAI answers an admin's question about today's business.
func (h *Handler) AskAI(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	response, err := h.agent.Run(requestCtx(c), req.Message)
	if errors.Is(err, ai.ErrNoAPIKey) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}
	if errors.Is(err, ai.ErrTooManyToolCalls) {
		h.logger.Warn("assistant gave up", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant could not complete the request. Please ask a simpler question."})
		return
	}
	if err != nil {
		h.logger.Error("assistant failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant failed to answer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": response})
}
