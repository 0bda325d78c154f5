package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"feishu_card_server/models"
	"feishu_card_server/services"
)

// CardController handles HTTP requests for sending cards
type CardController struct {
	FeishuService  *services.FeishuService
	ContextService *services.ContextService
}

// NewCardController creates a new CardController instance
func NewCardController(feishuService *services.FeishuService, contextService *services.ContextService) *CardController {
	return &CardController{FeishuService: feishuService, ContextService: contextService}
}

type sendCardRequest struct {
	AppID     string          `json:"app_id"`
	AppSecret string          `json:"app_secret"`
	ChatID    string          `json:"chat_id"`
	CardTitle string          `json:"card_title"`
	CardJSON  json.RawMessage `json:"card_json"`
}

type sendCardResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleSendCard sends an interactive card and stores its context so later
// callbacks referencing the returned message id can be interpreted. The
// context write happens only after a fully successful send.
func (cc *CardController) HandleSendCard(w http.ResponseWriter, r *http.Request) {
	var request sendCardRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		writeJSON(w, http.StatusBadRequest, sendCardResponse{Error: "Invalid request payload"})
		return
	}

	if request.AppID == "" || request.AppSecret == "" || request.ChatID == "" ||
		request.CardTitle == "" || len(request.CardJSON) == 0 || string(request.CardJSON) == "null" {
		log.Println("Missing required fields in /send_card request")
		writeJSON(w, http.StatusBadRequest, sendCardResponse{Error: "app_id, app_secret, chat_id, card_title, and card_json are required"})
		return
	}

	messageID, err := cc.FeishuService.SendCard(context.Background(), request.AppID, request.AppSecret, request.ChatID, request.CardJSON)
	if err != nil {
		log.Println("❌ Error sending card:", err)
		writeJSON(w, http.StatusInternalServerError, sendCardResponse{Error: err.Error()})
		return
	}

	if err := cc.ContextService.PutContext(context.Background(), messageID, request.CardTitle, models.CardContextTTL); err != nil {
		log.Println("❌ Error storing card context:", err)
		writeJSON(w, http.StatusInternalServerError, sendCardResponse{Error: "Failed to store card context"})
		return
	}

	writeJSON(w, http.StatusOK, sendCardResponse{Success: true, MessageID: messageID})
}
