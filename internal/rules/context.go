// Package rules holds the tunable constants passed explicitly into every
// phase and resolver (spec §4.9). It is deliberately a plain value type
// with no behaviour: the teacher threads a settings struct into its
// constructors rather than reading package-level config (see
// internal/game/game_settings.go in the teacher repo), and the engine's
// own design notes (spec §9) ban global mutable state outright — the
// rules context is how every tunable reaches the component that needs
// it without one.
package rules

// MulliganPolicy controls whether a player may redraw their opening hand.
type MulliganPolicy string

const (
	MulliganAllowOnce MulliganPolicy = "allow-once"
	MulliganNone      MulliganPolicy = "none"
)

// TieRule controls the outcome of a battle where attacker and defender
// power are equal (spec §9 Open Question — resolved explicitly here
// rather than guessed at).
type TieRule string

const (
	// TieAttackerLoses: a tie never KOs or damages the defender,
	// uniformly for every matchup (leader or character).
	TieAttackerLoses TieRule = "attacker-loses"
	// TieAttackerWinsOnLeaderOnly: a tie resolves as an attacker win only
	// when the target is a leader; character targets still require a
	// strict attacker advantage.
	TieAttackerWinsOnLeaderOnly TieRule = "attacker-wins-on-leader-only"
)

// Context is the full set of tunables consulted by the phase runner,
// battle resolver, and effect system (spec §4.9). A Context is supplied
// once to engine.New and never mutated; every component receives it by
// value.
type Context struct {
	InitialHandSize           int
	InitialLifeFromLeader      bool
	MaxCharacters              int
	MaxStage                   int
	MaxHand                    int // 0 means "no cap enforced"
	DrawPerTurn                int
	DonPerTurn                 int
	FirstTurnDonOverride       int // 0 means "use DonPerTurn on turn 1 too"
	FirstPlayerSkipDrawTurnOne bool
	LoopGuardThreshold         int
	MulliganPolicy             MulliganPolicy
	TieRule                    TieRule
	// MinAttackPower is the attacker-power floor an attack declaration
	// must meet (spec §4.5 step 1: "attacker has base power ≥ rules
	// context minimum").
	MinAttackPower int
}

// Default returns the rules context spec §4.9 lists as the default for
// every option.
func Default() Context {
	return Context{
		InitialHandSize:            5,
		InitialLifeFromLeader:      true,
		MaxCharacters:              5,
		MaxStage:                   1,
		MaxHand:                    10,
		DrawPerTurn:                1,
		DonPerTurn:                 2,
		FirstTurnDonOverride:       0,
		FirstPlayerSkipDrawTurnOne: true,
		LoopGuardThreshold:         4,
		MulliganPolicy:             MulliganAllowOnce,
		TieRule:                    TieAttackerLoses,
		MinAttackPower:             0,
	}
}

// Validate reports a RulesViolation-worthy misconfiguration. The engine
// calls this once in engine.New; a bad Context never reaches a live game.
func (c Context) Validate() error {
	if c.LoopGuardThreshold < 2 {
		return errLoopGuardThreshold
	}
	if c.MaxCharacters < 0 || c.MaxStage < 0 {
		return errNegativeCap
	}
	return nil
}

// DonPerTurnFor returns the DON move allowance for the given turn number,
// honouring the configurable first-turn override.
func (c Context) DonPerTurnFor(turn int) int {
	if turn == 1 && c.FirstTurnDonOverride > 0 {
		return c.FirstTurnDonOverride
	}
	return c.DonPerTurn
}
