package routes

import (
	"feishu_card_server/controllers"
	"feishu_card_server/services"

	"github.com/gorilla/mux"
)

// RegisterCallbackRoutes sets up the platform webhook route
func RegisterCallbackRoutes(r *mux.Router, contextService *services.ContextService, queueService *services.QueueService) {
	controller := controllers.NewCallbackController(contextService, queueService)

	r.HandleFunc("/callback", controller.HandleCallback).Methods("POST")
}
