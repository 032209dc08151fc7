package handlers

import (
	"net/http"

	"wingman/models"
	"wingman/services/dialogue"
	"wingman/utils"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the dialogue controller over HTTP.
type ChatHandler struct {
	Service dialogue.ChatService
}

func NewChatHandler(svc dialogue.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// HandleChat processes one conversation turn.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	reply := h.Service.HandleTurn(c.Request.Context(), req.Message, req.SessionKey)
	c.JSON(http.StatusOK, reply)
}
