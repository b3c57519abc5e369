// Package server is the host layer that exposes an Engine over HTTP and
// WebSocket (spec §6: "the engine presents a library-shaped interface
// ... a host layer adapts the provider interface" for asynchronous I/O).
// It is grounded on the teacher's delivery layer
// (internal/delivery/http, internal/delivery/websocket,
// internal/repository) — a session registry guarding engines behind a
// mutex, an HTTP handler set, and a websocket hub broadcasting engine
// events — generalised from "one Terraforming Mars game" to "one
// Session wrapping one Engine."
package server

import (
	"sync"

	"tcgengine/internal/engine"
	"tcgengine/internal/types"
)

// pendingRequest is one in-flight InputProvider.RequestAction call,
// parked until an HTTP client answers it.
type pendingRequest struct {
	player    types.PlayerID
	available []types.ActionKind
	snap      engine.Snapshot
	resp      chan engine.Action
}

// ChannelProvider adapts the engine's synchronous, blocking
// InputProvider contract to an asynchronous host (spec §5: "if the
// surrounding host must interleave asynchronous I/O, it is the host's
// responsibility to adapt the provider interface"). RequestAction parks
// the calling goroutine — which is the session's own single game-loop
// goroutine, never the engine's logical thread of control splitting —
// until Respond delivers an answer.
type ChannelProvider struct {
	mu      sync.Mutex
	current *pendingRequest
}

// NewChannelProvider creates a provider with no in-flight request.
func NewChannelProvider() *ChannelProvider {
	return &ChannelProvider{}
}

// RequestAction blocks until Respond is called with a matching action,
// satisfying the engine's "any submit_action call is assumed to
// complete synchronously from the caller's perspective" contract from
// the game loop goroutine's point of view.
func (p *ChannelProvider) RequestAction(player types.PlayerID, available []types.ActionKind, snap engine.Snapshot) (engine.Action, bool) {
	req := &pendingRequest{player: player, available: available, snap: snap, resp: make(chan engine.Action, 1)}

	p.mu.Lock()
	p.current = req
	p.mu.Unlock()

	action := <-req.resp

	p.mu.Lock()
	if p.current == req {
		p.current = nil
	}
	p.mu.Unlock()

	return action, true
}

// Pending reports the currently outstanding request, if any, for a
// status handler to surface to a polling or websocket client.
func (p *ChannelProvider) Pending() (types.PlayerID, []types.ActionKind, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return "", nil, false
	}
	return p.current.player, p.current.available, true
}

// Respond answers the outstanding request if action.Player matches its
// acting player and action.Kind is one of the kinds on offer. It reports
// false without blocking if there is no matching pending request — the
// caller (an HTTP handler) turns that into a 409, never a hang.
func (p *ChannelProvider) Respond(action engine.Action) bool {
	p.mu.Lock()
	req := p.current
	p.mu.Unlock()

	if req == nil || req.player != action.Player {
		return false
	}
	ok := false
	for _, k := range req.available {
		if k == action.Kind {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}

	select {
	case req.resp <- action:
		return true
	default:
		return false
	}
}
