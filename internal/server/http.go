package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tcgengine/internal/engine"
	"tcgengine/internal/types"
)

// Handler holds the collaborators gin's route closures need, the same
// "handler struct wrapping a use case" shape the teacher's
// httpHandler.GameHandler follows (internal/delivery/http/game_handler.go).
type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// HealthCheck mirrors the teacher's gameHandler.HealthCheck endpoint.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateGame deals a fresh session from the sample decks and starts its
// game loop goroutine (spec §6 Setup input, simplified here to the demo
// catalogue rather than a client-supplied deck list).
func (h *Handler) CreateGame(c *gin.Context) {
	s, err := h.registry.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": s.ID})
}

// ListGames reports every live session id.
func (h *Handler) ListGames(c *gin.Context) {
	sessions := h.registry.List()
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	c.JSON(http.StatusOK, gin.H{"games": ids})
}

// GetGame returns the session's current snapshot (spec §6 Snapshot: "an
// immutable view of the state suitable for rendering").
func (h *Handler) GetGame(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("gameId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// GetPending reports the outstanding InputProvider request, if any, so a
// polling client knows whose turn it is to answer before submitting an
// action (spec §4.10: "the engine calls this only during Main and
// during interactive windows").
func (h *Handler) GetPending(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("gameId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}
	player, available, waiting := s.Pending()
	if !waiting {
		c.JSON(http.StatusOK, gin.H{"waiting": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"waiting": true, "player": player, "available": available})
}

// actionRequest is the JSON shape a client posts to answer a pending
// InputProvider request (spec §4.10's closed Action variant, flattened
// to one request body the way the teacher's DTO layer flattens request
// payloads per endpoint).
type actionRequest struct {
	Player      types.PlayerID           `json:"player" binding:"required"`
	Kind        types.ActionKind         `json:"kind" binding:"required"`
	CardID      types.CardInstanceID     `json:"card_id,omitempty"`
	DonID       types.DonInstanceID      `json:"don_id,omitempty"`
	TargetID    types.CardInstanceID     `json:"target_id,omitempty"`
	EffectDefID types.EffectDefinitionID `json:"effect_def_id,omitempty"`
	Targets     []types.CardInstanceID   `json:"targets,omitempty"`
}

// SubmitAction answers the session's outstanding RequestAction call.
func (h *Handler) SubmitAction(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("gameId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	action := engine.Action{
		Player: req.Player, Kind: req.Kind, CardID: req.CardID, DonID: req.DonID,
		TargetID: req.TargetID, EffectDefID: req.EffectDefID, Targets: req.Targets,
	}
	if !s.Submit(action) {
		c.JSON(http.StatusConflict, gin.H{"error": "no matching pending request for this player/kind"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"submitted": true})
}

// GetErrors returns the session's bounded error history (spec §4.8).
func (h *Handler) GetErrors(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("gameId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"errors": s.Errors()})
}

// ServeWS upgrades the request to a websocket streaming the session's
// events (spec §4.7 Event subscriptions, §6 "filtered event streams").
func (h *Handler) ServeWS(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("gameId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}
	ServeWebsocket(s.hub, c.Writer, c.Request)
}
