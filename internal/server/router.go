package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// corsMiddleware is a minimal stand-in for the teacher's
// gin-contrib/cors wiring: the teacher's cmd/server main.go imports that
// package, but no example repo in the retrieval pack carries it in a
// go.mod/go.sum pair with a resolvable version, so it is not wired here
// (DESIGN.md records this as a dropped teacher dependency) — a few
// header writes cover the same "allow the demo frontend's origin"
// concern without guessing at a version.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// NewRouter assembles the gin engine the way the teacher's cmd/server
// main.go does inline (CORS, a health endpoint, an /api/v1 group), kept
// here as a named constructor so cmd/server stays a thin wiring file.
// The debug introspection endpoints are a mounted gorilla/mux
// sub-router rather than gin routes (see debug.go).
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", h.HealthCheck)
	r.Any("/debug/*any", gin.WrapH(NewDebugRouter()))

	api := r.Group("/api/v1")
	{
		api.POST("/games", h.CreateGame)
		api.GET("/games", h.ListGames)
		api.GET("/games/:gameId", h.GetGame)
		api.GET("/games/:gameId/pending", h.GetPending)
		api.POST("/games/:gameId/actions", h.SubmitAction)
		api.GET("/games/:gameId/errors", h.GetErrors)
	}

	r.GET("/ws/:gameId", h.ServeWS)

	return r
}
