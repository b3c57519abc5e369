package engine

import (
	"tcgengine/internal/effect"
	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

// CardSnapshot is one card instance's serialisation-friendly view (spec
// §6): stable ids only, and the card's *effective* power/cost already
// computed so a renderer never has to re-run continuous-effect math.
type CardSnapshot struct {
	ID         types.CardInstanceID
	Definition types.CardDefinitionID
	Owner      types.PlayerID
	Controller types.PlayerID
	Zone       types.Zone
	State      types.CardState
	Power      int
	Cost       int
	GivenDon   []types.DonInstanceID
	Modifiers  []model.Modifier
}

// DonSnapshot is one DON instance's serialisation-friendly view.
type DonSnapshot struct {
	ID    types.DonInstanceID
	Owner types.PlayerID
	Zone  types.Zone
	State types.DonState
	Host  types.CardInstanceID
}

// PlayerSnapshot mirrors model.PlayerState's generic zone mechanism
// rather than ten named fields, for the same reason PlayerState itself
// does (one mechanism, not ten).
type PlayerSnapshot struct {
	ID       types.PlayerID
	Zones    map[types.Zone][]types.CardInstanceID
	DonZones map[types.Zone][]types.DonInstanceID
	Flags    map[string]bool
}

// Snapshot is an immutable, serialisation-friendly view of a GameState
// (spec §6): no transient references, no cycles, stable ids throughout.
// It is the only state a subscriber or a host renderer (cmd/cli,
// cmd/server) ever sees.
type Snapshot struct {
	Players      map[types.PlayerID]PlayerSnapshot
	PlayerOrder  []types.PlayerID
	ActivePlayer types.PlayerID
	Phase        types.Phase
	Turn         int
	Cards        map[types.CardInstanceID]CardSnapshot
	Dons         map[types.DonInstanceID]DonSnapshot
	PendingCount int
	GameOver     bool
	Winner       types.PlayerID
	DrawReason   string
}

// Snapshot builds a deep, read-only copy of the engine's current state.
func (e *Engine) Snapshot() Snapshot {
	return buildSnapshot(e.state, e.catalogue, e.registry, e.continuous)
}

func buildSnapshot(s model.GameState, cat model.Catalogue, reg *effect.Registry, creg *effect.ContinuousRegistry) Snapshot {
	out := Snapshot{
		Players:      make(map[types.PlayerID]PlayerSnapshot, len(s.Players)),
		PlayerOrder:  append([]types.PlayerID{}, s.PlayerOrder...),
		ActivePlayer: s.ActivePlayer,
		Phase:        s.Phase,
		Turn:         s.Turn,
		Cards:        make(map[types.CardInstanceID]CardSnapshot, len(s.Cards)),
		Dons:         make(map[types.DonInstanceID]DonSnapshot, len(s.Dons)),
		PendingCount: len(s.PendingTriggers),
		GameOver:     s.GameOver,
		Winner:       s.Winner,
		DrawReason:   s.DrawReason,
	}

	for _, pid := range s.PlayerOrder {
		p, ok := s.Player(pid)
		if !ok {
			continue
		}
		ps := PlayerSnapshot{
			ID:       pid,
			Zones:    make(map[types.Zone][]types.CardInstanceID),
			DonZones: make(map[types.Zone][]types.DonInstanceID),
			Flags:    copyBoolMap(p.Flags),
		}
		for _, z := range []types.Zone{
			types.ZoneDeck, types.ZoneHand, types.ZoneTrash, types.ZoneLife,
			types.ZoneLeaderArea, types.ZoneCharacterArea, types.ZoneStageArea,
		} {
			ps.Zones[z] = p.CardsIn(z)
		}
		for _, z := range []types.Zone{types.ZoneDonDeck, types.ZoneCostArea} {
			ps.DonZones[z] = p.DonsIn(z)
		}
		out.Players[pid] = ps
	}

	for id, c := range s.Cards {
		out.Cards[id] = CardSnapshot{
			ID:         c.ID,
			Definition: c.DefinitionID,
			Owner:      c.Owner,
			Controller: c.Controller,
			Zone:       c.Zone,
			State:      c.State,
			Power:      effect.EffectivePower(s, cat, reg, creg, id),
			Cost:       effect.EffectiveCost(s, cat, id),
			GivenDon:   append([]types.DonInstanceID{}, c.GivenDon...),
			Modifiers:  append([]model.Modifier{}, c.Modifiers...),
		}
	}

	for id, d := range s.Dons {
		out.Dons[id] = DonSnapshot{ID: d.ID, Owner: d.Owner, Zone: d.Zone, State: d.State, Host: d.HostCardID}
	}

	return out
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
