package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"feishu_card_server/routes"
	"feishu_card_server/services"
	"feishu_card_server/socket"
	"feishu_card_server/utils"
	"feishu_card_server/worker"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env if present (local development)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize the work queue client
	queueURL := utils.GetEnv("QUEUE_URL", "http://localhost:9324/000000000000/card-interactions")
	log.Printf("Using work queue: %s\n", queueURL)
	queueService := &services.QueueService{Client: services.InitializeSQSClient(), QueueURL: queueURL}

	// Initialize Services
	feishuService := &services.FeishuService{
		BaseURL:    utils.GetEnv("FEISHU_API_BASE", "https://open.feishu.cn/open-apis"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	contextService := &services.ContextService{Dynamo: dynamoService}
	interactionService := &services.InteractionService{Dynamo: dynamoService, Contexts: contextService}

	// Optional raw-event archive
	if bucket := os.Getenv("ARCHIVE_BUCKET"); bucket != "" {
		log.Printf("Raw event archival enabled, bucket: %s\n", bucket)
		interactionService.Archive = &services.ArchiveService{Client: services.InitializeS3Client(), Bucket: bucket}
	}

	// Live interaction feed for operator dashboards
	feed := socket.NewFeed()
	go func() {
		if err := feed.Serve(); err != nil {
			log.Printf("❌ Socket server error: %v\n", err)
		}
	}()
	defer feed.Close()
	interactionService.Feed = feed

	// Start the interaction consumer
	consumer := &worker.Consumer{Queue: queueService, Interactions: interactionService}
	go consumer.Run(context.Background())

	// Set up the server port
	port := utils.GetEnv("PORT", "8080")
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Feishu Card Server")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterCardRoutes(r, feishuService, contextService)
	routes.RegisterCallbackRoutes(r, contextService, queueService)
	r.Handle("/socket.io/", feed.Handler())

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
