package model

import "tcgengine/internal/types"

// LoopGuardTable is the plain data half of the loop guard (spec §3, §4.6):
// a fingerprint-to-repeat-count table plus the configured threshold. The
// loopguard package owns the hashing/eligibility *algorithm*; this struct
// just carries the counts so it can live inside GameState and travel with
// it under the usual value semantics.
type LoopGuardTable struct {
	Counts    map[string]int
	Threshold int
}

// WithIncrement returns a copy of the table with fingerprint's count
// incremented, and the resulting count.
func (t LoopGuardTable) WithIncrement(fingerprint string) (LoopGuardTable, int) {
	next := make(map[string]int, len(t.Counts)+1)
	for k, v := range t.Counts {
		next[k] = v
	}
	next[fingerprint]++
	t.Counts = next
	return t, next[fingerprint]
}

// ActionRecord is one entry in GameState's uncapped action history, used
// for diagnostics/replays; it is not part of the loop-guard fingerprint
// (spec §4.6: "action history" is explicitly non-observable state).
type ActionRecord struct {
	Player types.PlayerID
	Kind   types.ActionKind
	Turn   int
}

// GameState is the authoritative game state (spec §3). Every mutator in
// package state returns a new GameState value; nothing here is ever
// mutated in place, so a caller holding an older GameState value keeps
// observing it unchanged forever (copy-on-write, not a live object
// graph).
type GameState struct {
	Players         map[types.PlayerID]PlayerState
	PlayerOrder     []types.PlayerID // stable iteration/turn-rotation order
	ActivePlayer    types.PlayerID
	Phase           types.Phase
	Turn            int
	Cards           map[types.CardInstanceID]CardInstance
	Dons            map[types.DonInstanceID]DonInstance
	PendingTriggers []EffectInstance
	GameOver        bool
	Winner          types.PlayerID // "" if no winner (e.g. draw)
	DrawReason      string         // set when the game ended without a winner
	AttackedThisTurn map[types.CardInstanceID]bool
	LoopGuard       LoopGuardTable
	ActionHistory   []ActionRecord
	IDs             types.IDAllocator
	Clock           uint64 // monotonic tie-breaking counter (spec §3 Modifier/EffectInstance timestamps)
}

// NextTimestamp returns a new GameState and the next monotonic clock
// value, used to stamp Modifiers and EffectInstances for deterministic
// tie-breaking.
func (s GameState) NextTimestamp() (GameState, uint64) {
	s.Clock++
	return s, s.Clock
}

// NewGameState creates an empty GameState for the given players, in
// PlayerState-setup order.
func NewGameState(playerOrder []types.PlayerID, loopGuardThreshold int) GameState {
	players := make(map[types.PlayerID]PlayerState, len(playerOrder))
	for _, id := range playerOrder {
		players[id] = NewPlayerState(id)
	}
	order := make([]types.PlayerID, len(playerOrder))
	copy(order, playerOrder)
	return GameState{
		Players:          players,
		PlayerOrder:      order,
		Phase:            types.PhaseRefresh,
		Turn:             1,
		Cards:            map[types.CardInstanceID]CardInstance{},
		Dons:             map[types.DonInstanceID]DonInstance{},
		AttackedThisTurn: map[types.CardInstanceID]bool{},
		LoopGuard:        LoopGuardTable{Counts: map[string]int{}, Threshold: loopGuardThreshold},
	}
}

// Opponent returns the id of the non-active player relative to p, given
// a two-player game. For a game with more than two players this returns
// the next player in PlayerOrder.
func (s GameState) Opponent(p types.PlayerID) types.PlayerID {
	for i, id := range s.PlayerOrder {
		if id == p {
			return s.PlayerOrder[(i+1)%len(s.PlayerOrder)]
		}
	}
	return ""
}

// Player returns the named player's state and whether it was found.
func (s GameState) Player(id types.PlayerID) (PlayerState, bool) {
	p, ok := s.Players[id]
	return p, ok
}

// Card returns the named card instance and whether it was found.
func (s GameState) Card(id types.CardInstanceID) (CardInstance, bool) {
	c, ok := s.Cards[id]
	return c, ok
}

// Don returns the named DON instance and whether it was found.
func (s GameState) Don(id types.DonInstanceID) (DonInstance, bool) {
	d, ok := s.Dons[id]
	return d, ok
}
