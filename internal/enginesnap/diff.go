// Package enginesnap is a host-only convenience for comparing two
// engine.Snapshot values (SPEC_FULL "Supplemented features"): it is
// never consulted by the engine itself, only by a host that wants to
// describe what changed between two points it already observed.
package enginesnap

import (
	"tcgengine/internal/engine"
	"tcgengine/internal/types"
)

// DiffValueInt records an int field's before/after when it changed.
type DiffValueInt struct {
	Old int
	New int
}

// DiffValueString records a string-like field's before/after when it
// changed.
type DiffValueString struct {
	Old string
	New string
}

// DiffValueBool records a bool field's before/after when it changed.
type DiffValueBool struct {
	Old bool
	New bool
}

// CardMove records one card instance changing zone, controller, or state
// between two snapshots.
type CardMove struct {
	Card       types.CardInstanceID
	FromZone   types.Zone
	ToZone     types.Zone
	FromState  types.CardState
	ToState    types.CardState
	Controller types.PlayerID
}

// PlayerChanges carries one player's zone-count deltas, mirroring the
// teacher's per-resource PlayerChanges shape generalized from a fixed
// resource list to the generic zone map PlayerState itself uses.
type PlayerChanges struct {
	ZoneCountDeltas map[types.Zone]int
	DonZoneDeltas   map[types.Zone]int
}

// GameChanges is the full diff between two snapshots of the same game.
type GameChanges struct {
	Phase         *DiffValueString
	Turn          *DiffValueInt
	ActivePlayer  *DiffValueString
	GameOver      *DiffValueBool
	Winner        *DiffValueString
	PlayerChanges map[types.PlayerID]*PlayerChanges
	CardMoves     []CardMove
	PowerChanges  map[types.CardInstanceID]DiffValueInt
}

// Diff compares two snapshots taken from the same engine and reports
// what changed, in the teacher's old/new diff-value shape
// (internal/game/state_diff.go) rather than a generic deep-equal dump —
// a host wiring this up for a log or a UI update wants named fields, not
// a reflection diff.
func Diff(before, after engine.Snapshot) GameChanges {
	out := GameChanges{PlayerChanges: map[types.PlayerID]*PlayerChanges{}, PowerChanges: map[types.CardInstanceID]DiffValueInt{}}

	if before.Phase != after.Phase {
		out.Phase = &DiffValueString{Old: string(before.Phase), New: string(after.Phase)}
	}
	if before.Turn != after.Turn {
		out.Turn = &DiffValueInt{Old: before.Turn, New: after.Turn}
	}
	if before.ActivePlayer != after.ActivePlayer {
		out.ActivePlayer = &DiffValueString{Old: string(before.ActivePlayer), New: string(after.ActivePlayer)}
	}
	if before.GameOver != after.GameOver {
		out.GameOver = &DiffValueBool{Old: before.GameOver, New: after.GameOver}
	}
	if before.Winner != after.Winner {
		out.Winner = &DiffValueString{Old: string(before.Winner), New: string(after.Winner)}
	}

	for _, pid := range after.PlayerOrder {
		pc := diffPlayer(before.Players[pid], after.Players[pid])
		if pc != nil {
			out.PlayerChanges[pid] = pc
		}
	}

	for id, ac := range after.Cards {
		bc, existed := before.Cards[id]
		if !existed {
			out.CardMoves = append(out.CardMoves, CardMove{Card: id, ToZone: ac.Zone, ToState: ac.State, Controller: ac.Controller})
			continue
		}
		if bc.Zone != ac.Zone || bc.State != ac.State {
			out.CardMoves = append(out.CardMoves, CardMove{
				Card: id, FromZone: bc.Zone, ToZone: ac.Zone,
				FromState: bc.State, ToState: ac.State, Controller: ac.Controller,
			})
		}
		if bc.Power != ac.Power {
			out.PowerChanges[id] = DiffValueInt{Old: bc.Power, New: ac.Power}
		}
	}

	return out
}

func diffPlayer(before, after engine.PlayerSnapshot) *PlayerChanges {
	zoneDeltas := map[types.Zone]int{}
	for z, ids := range after.Zones {
		delta := len(ids) - len(before.Zones[z])
		if delta != 0 {
			zoneDeltas[z] = delta
		}
	}
	donDeltas := map[types.Zone]int{}
	for z, ids := range after.DonZones {
		delta := len(ids) - len(before.DonZones[z])
		if delta != 0 {
			donDeltas[z] = delta
		}
	}
	if len(zoneDeltas) == 0 && len(donDeltas) == 0 {
		return nil
	}
	return &PlayerChanges{ZoneCountDeltas: zoneDeltas, DonZoneDeltas: donDeltas}
}
