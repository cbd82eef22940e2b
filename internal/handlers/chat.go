// internal/handlers/chat.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// POST /chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req services.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	// Anonymous visitors may chat; the account is attached when present.
	user, _ := utils.GetUserFromContext(c)

	resp, err := h.chatService.Send(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, resp)
}
