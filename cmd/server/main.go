// Command tcg-server exposes the engine over HTTP and WebSocket so a
// remote client can drive games concurrently, the same role the
// teacher's cmd/server/main.go plays for Terraforming Mars: gin for the
// REST surface, gorilla/websocket for the live event stream, a
// mutex-guarded in-memory session registry standing in for the
// teacher's repository layer (spec §1 excludes persistence from the
// engine's own scope, and this demo host does not add one back).
package main

import (
	"log"
	"net/http"
	"os"

	"tcgengine/internal/logging"
	"tcgengine/internal/server"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	var levelPtr *string
	if level != "" {
		levelPtr = &level
	}
	if err := logging.Init(levelPtr); err != nil {
		log.Fatalf("logging init: %v", err)
	}
	defer logging.Sync()

	registry := server.NewRegistry()
	handler := server.NewHandler(registry)
	router := server.NewRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Printf("tcg-engine server starting on port %s", port)
	log.Printf("health check available at http://localhost:%s/health", port)
	log.Printf("websocket events available at ws://localhost:%s/ws/:gameId", port)

	if err := router.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed to start: %v", err)
	}
}
