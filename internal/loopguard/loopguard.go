// Package loopguard implements the engine's termination guarantee (spec
// §4.6): after every resolution step, fingerprint the *observable* game
// state, count repeats, and force a decision once a configurable
// threshold is reached. Grounded on the teacher's turn/state_diff
// machinery (internal/game/state_diff.go computes a comparable summary of
// a GameState the same way this package's Fingerprint does, though for
// diagnostics rather than termination) — adapted here into a stable,
// address-free hash instead of a structural diff.
package loopguard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

// Fingerprint computes a deterministic hash of s's observable state (spec
// §4.6 step 1): active player, phase, turn parity, per-player hand sizes,
// per-player zone contents by instance id (order preserved where the
// spec's own zones are ordered), per-card state and modifier summary, and
// pending queue size. The loop-guard table itself, rng residue, and
// action history are excluded by construction — this function never reads
// them.
func Fingerprint(s model.GameState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "active=%s|phase=%s|turnparity=%d|pending=%d\n",
		s.ActivePlayer, s.Phase, s.Turn%2, len(s.PendingTriggers))

	players := make([]types.PlayerID, 0, len(s.Players))
	for id := range s.Players {
		players = append(players, id)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	for _, pid := range players {
		p := s.Players[pid]
		fmt.Fprintf(&b, "player=%s|hand=%d\n", pid, len(p.Hand()))
		for _, z := range orderedCardZones {
			ids := p.CardsIn(z)
			fmt.Fprintf(&b, "  zone=%s:%s\n", z, joinCards(ids))
		}
		for _, z := range orderedDonZones {
			ids := p.DonsIn(z)
			fmt.Fprintf(&b, "  donzone=%s:%s\n", z, joinDons(ids))
		}
	}

	cardIDs := make([]types.CardInstanceID, 0, len(s.Cards))
	for id := range s.Cards {
		cardIDs = append(cardIDs, id)
	}
	sort.Slice(cardIDs, func(i, j int) bool { return cardIDs[i] < cardIDs[j] })
	for _, id := range cardIDs {
		c := s.Cards[id]
		fmt.Fprintf(&b, "card=%s|state=%s|mods=%d\n", id, c.State, modifierSummary(c.Modifiers))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

var orderedCardZones = []types.Zone{
	types.ZoneDeck, types.ZoneHand, types.ZoneTrash, types.ZoneLife,
	types.ZoneLeaderArea, types.ZoneCharacterArea, types.ZoneStageArea,
}

var orderedDonZones = []types.Zone{types.ZoneDonDeck, types.ZoneCostArea}

func joinCards(ids []types.CardInstanceID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

func joinDons(ids []types.DonInstanceID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// modifierSummary reduces a card's modifier list to a stable int: the
// spec only requires the fingerprint be sensitive to a "modifier
// summary", not the full modifier contents, so a count-plus-checksum over
// kind/value/duration is sufficient to detect a genuine change without
// pinning the fingerprint to modifier instance ids (which are themselves
// allocation-order-derived and would otherwise make two structurally
// identical states hash differently).
func modifierSummary(mods []model.Modifier) int {
	sum := 0
	for _, m := range mods {
		sum += int(sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", m.Kind, m.Value, m.Duration)))[0])
	}
	return sum
}

// Result is what the loop guard decided after recording one fingerprint.
type Result struct {
	Fingerprint string
	Count       int
	Exceeded    bool // count reached the configured threshold
}

// Record increments s's loop-guard table for fingerprint and reports the
// resulting count (spec §4.6 steps 1-2). The caller (the engine façade)
// decides what Exceeded means — MustChoose vs draw — since that decision
// needs legal-action knowledge the loop guard itself does not have.
func Record(table model.LoopGuardTable, s model.GameState) (model.LoopGuardTable, Result) {
	fp := Fingerprint(s)
	next, count := table.WithIncrement(fp)
	return next, Result{
		Fingerprint: fp,
		Count:       count,
		Exceeded:    count >= next.Threshold,
	}
}

// Invalidate clears the table entirely. The spec allows lazy clearing on
// any non-idempotent event (card drawn, card moved to trash, life
// changed); the engine calls this rather than tracking which entries a
// given event would invalidate, which is simpler and always safe (spec
// §4.6 step 4: "the table may be cleared lazily").
func Invalidate(table model.LoopGuardTable) model.LoopGuardTable {
	table.Counts = map[string]int{}
	return table
}
