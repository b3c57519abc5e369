package server

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tcgengine/internal/demo"
	"tcgengine/internal/engine"
	"tcgengine/internal/logging"
	"tcgengine/internal/rules"
	"tcgengine/internal/types"
)

const (
	PlayerRed  types.PlayerID = "red"
	PlayerBlue types.PlayerID = "blue"
)

// Session wraps one Engine plus the bookkeeping a host needs to drive it
// across independent HTTP requests: a stable id, the ChannelProvider
// RequestAction parks on, and a Hub fanning the event bus out to any
// websocket clients watching this game. Mirrors the teacher's
// model.Game + repository.GameRepositoryImpl split (metadata record plus
// a concurrency-safe store), collapsed into one struct since the engine
// itself is the only state worth tracking per game here.
type Session struct {
	ID       string
	provider *ChannelProvider
	eng      *engine.Engine
	hub      *Hub

	mu      sync.Mutex
	started bool
}

// NewSession deals the sample decks from internal/demo and positions the
// engine at turn 1. The game loop itself is not started until Start is
// called, so a client can subscribe over the websocket before any event
// is published.
func NewSession() (*Session, error) {
	id := uuid.NewString()
	provider := NewChannelProvider()
	rc := rules.Default()

	eng, setupErr := engine.New(id, demo.Catalogue(), demo.Registry(), demo.ContinuousRegistry(), rc, provider, 1)
	if setupErr != nil {
		return nil, fmt.Errorf("construct engine: %s", setupErr.Message)
	}
	if err := eng.Setup(PlayerRed, PlayerBlue,
		engine.DeckList{Leader: demo.CardLeaderRed, Cards: demo.RedDeck(), DonCount: 10},
		engine.DeckList{Leader: demo.CardLeaderBlue, Cards: demo.BlueDeck(), DonCount: 10},
		PlayerRed, nil); err != nil {
		return nil, fmt.Errorf("setup: %s", err.Message)
	}

	s := &Session{ID: id, provider: provider, eng: eng, hub: NewHub()}
	eng.Subscribe(nil, s.hub.broadcast)
	return s, nil
}

// Start launches the game loop on its own goroutine: AdvanceToMain for
// the fixed Refresh/Draw/DonPhase run-up, then RunMain, repeating until
// the game ends. The engine's own single-threaded-core guarantee (spec
// §5) holds because exactly one goroutine per Session ever calls into
// its Engine.
func (s *Session) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		log := logging.WithGame(s.ID, "")
		for {
			if err := s.eng.AdvanceToMain(); err != nil {
				log.Warn("advance failed", zap.String("error", err.Message))
				return
			}
			if s.eng.Snapshot().GameOver {
				return
			}
			if err := s.eng.RunMain(); err != nil {
				log.Warn("main loop failed", zap.String("error", err.Message))
				return
			}
			if s.eng.Snapshot().GameOver {
				return
			}
		}
	}()
}

// Snapshot returns the session's current read-only view.
func (s *Session) Snapshot() engine.Snapshot {
	return s.eng.Snapshot()
}

// Pending reports the outstanding RequestAction call, if any.
func (s *Session) Pending() (types.PlayerID, []types.ActionKind, bool) {
	return s.provider.Pending()
}

// Submit answers the outstanding request on behalf of a player.
func (s *Session) Submit(action engine.Action) bool {
	return s.provider.Respond(action)
}

// Errors returns the engine's bounded error history (spec §4.8).
func (s *Session) Errors() []string {
	var out []string
	for _, e := range s.eng.ErrorHistory("") {
		out = append(out, fmt.Sprintf("%s: %s", e.Code, e.Message))
	}
	return out
}

// Registry is the process-wide in-memory session store, grounded on the
// teacher's GameRepositoryImpl (a mutex-guarded map keyed by game id).
// There is deliberately no persistence layer here — spec §1 excludes
// persistent storage from the engine's scope, and the host demo carries
// that exclusion upward rather than bolting one on.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Create() (*Session, error) {
	s, err := NewSession()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	s.Start()
	return s, nil
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}
