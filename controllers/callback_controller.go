package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"feishu_card_server/models"
	"feishu_card_server/services"
	"feishu_card_server/utils"
)

// CallbackController handles interaction callbacks from the Feishu platform
type CallbackController struct {
	ContextService *services.ContextService
	QueueService   *services.QueueService
}

// NewCallbackController creates a new CallbackController instance
func NewCallbackController(contextService *services.ContextService, queueService *services.QueueService) *CallbackController {
	return &CallbackController{ContextService: contextService, QueueService: queueService}
}

// HandleCallback answers verification challenges, resolves card context for
// the referenced message, and enqueues the interaction for asynchronous
// processing. The platform enforces a short response deadline, so the only
// work on this path is one context lookup and one enqueue.
func (cc *CallbackController) HandleCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Println("Invalid callback payload:", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}

	// Feishu sends a one-time verification challenge that must be echoed back
	if challengeType, _ := payload["type"].(string); challengeType == "url_verification" {
		challenge, _ := payload["challenge"].(string)
		writeJSON(w, http.StatusOK, map[string]string{"challenge": challenge})
		return
	}

	messageID := utils.NestedString(payload, "event", "message", "message_id")
	if messageID == "" {
		// Acknowledged but skipped: without a message id there is nothing to
		// correlate, and the platform must not keep retrying.
		log.Println("⚠️ Received a callback without a message_id")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored", "reason": "no message_id"})
		return
	}

	cardTitle := models.UnknownCardTitle
	title, found, err := cc.ContextService.GetTitle(context.Background(), messageID)
	if err != nil {
		// A lookup fault must not block recording that the interaction happened.
		log.Printf("⚠️ Context lookup failed for %s: %v", messageID, err)
	} else if found {
		cardTitle = title
	}

	job := models.InteractionJob{CardTitle: cardTitle, RawInteraction: body}
	if err := cc.QueueService.Enqueue(context.Background(), models.TaskSaveInteraction, job); err != nil {
		log.Println("❌ Failed to enqueue interaction:", err)
		// 5xx so the platform redelivers; its redelivery is the sole retry path.
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error", "error": "failed to enqueue interaction"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
