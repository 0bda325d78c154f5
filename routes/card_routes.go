package routes

import (
	"feishu_card_server/controllers"
	"feishu_card_server/services"

	"github.com/gorilla/mux"
)

// RegisterCardRoutes sets up the card dispatch route
func RegisterCardRoutes(r *mux.Router, feishuService *services.FeishuService, contextService *services.ContextService) {
	controller := controllers.NewCardController(feishuService, contextService)

	r.HandleFunc("/send_card", controller.HandleSendCard).Methods("POST")
}
