package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"tcgengine/internal/types"
)

// debugActionKinds and debugTriggerTags are the closed enums a debug
// client (or an integration test) might want to introspect without
// importing the engine's types package directly.
var debugActionKinds = []types.ActionKind{
	types.ActionPlayCard, types.ActionGiveDon, types.ActionDeclareAttack,
	types.ActionUseActivatedEffect, types.ActionDeclareBlocker,
	types.ActionPlayCounter, types.ActionEndPhase, types.ActionPassPriority,
}

var debugZones = []types.Zone{
	types.ZoneDeck, types.ZoneHand, types.ZoneTrash, types.ZoneLife,
	types.ZoneDonDeck, types.ZoneCostArea, types.ZoneLeaderArea,
	types.ZoneCharacterArea, types.ZoneStageArea,
}

// NewDebugRouter builds a small gorilla/mux router of read-only
// introspection endpoints, mounted under gin's main router via
// gin.WrapH rather than expressed as gin routes directly — the same
// "mux.Router behind a prefix" shape the teacher's own
// internal/delivery/http/router.go builds its whole API on, kept here
// at a narrower scope since the engine's primary surface (CreateGame,
// GetGame, SubmitAction) reads more naturally against gin's handler
// signature.
func NewDebugRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/debug/action-kinds", writeJSON(debugActionKinds)).Methods(http.MethodGet)
	r.HandleFunc("/debug/zones", writeJSON(debugZones)).Methods(http.MethodGet)
	return r
}

func writeJSON(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}
