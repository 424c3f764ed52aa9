package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/adoption-service/services"
)

type ChatbotController struct {
	chatbot *services.ChatbotService
}

func NewChatbotController(chatbot *services.ChatbotService) *ChatbotController {
	return &ChatbotController{chatbot: chatbot}
}

// Chat handles POST /chatbot/api/chat.
func (cc *ChatbotController) Chat(ctx *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	response := cc.chatbot.Reply(ctx.Request.Context(), req.Message)
	ctx.JSON(http.StatusOK, gin.H{"response": response})
}
