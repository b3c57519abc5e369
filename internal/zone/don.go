package zone

import (
	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/rules"
	"tcgengine/internal/state"
	"tcgengine/internal/types"
)

// AttachDon rests an active DON instance from its owner's cost area onto
// card, recording card as its host (spec §4.10 ActionGiveDon). The DON's
// zone is left as ZoneCostArea: "attached" is a state, not a zone, since a
// card's given-don travel with it for ownership bookkeeping but never
// leave the cost-area list a player's DON count is drawn from.
func AttachDon(s model.GameState, bus *events.Bus, don types.DonInstanceID, card types.CardInstanceID) (model.GameState, *engineerr.Error) {
	d, ok := s.Don(don)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown don instance %q", don).WithContext("don", don)
	}
	if d.State != types.DonActive {
		return s, engineerr.Newf(engineerr.IllegalAction, "don %q is not active", don).WithContext("don", don)
	}
	c, ok := s.Card(card)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card instance %q", card).WithContext("card", card)
	}
	if !isFieldArea(c.Zone) {
		return s, engineerr.Newf(engineerr.IllegalAction, "card %q is not on the field", card).WithContext("card", card)
	}

	d.State = types.DonAttached
	d.HostCardID = card
	next, err := state.UpdateDon(s, don, d)
	if err != nil {
		return s, err
	}

	c.GivenDon = append(append([]types.DonInstanceID{}, c.GivenDon...), don)
	next, err = state.UpdateCard(next, card, c)
	if err != nil {
		return s, err
	}

	events.Publish(bus, events.DonAttached{Don: don, Card: card})
	return next, nil
}

// DetachAll returns every DON given to card back to its owner's cost
// area, rested (spec §3 DonInstance): an attached DON that returns to the
// cost area is spent, not refreshed, until the next Refresh phase. Called
// automatically when card leaves the field (zone.Move) and by the battle
// resolver when a blocker or attacker is KO'd.
func DetachAll(s model.GameState, bus *events.Bus, card types.CardInstanceID) (model.GameState, *engineerr.Error) {
	c, ok := s.Card(card)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card instance %q", card).WithContext("card", card)
	}
	given := c.GivenDon
	c.GivenDon = nil
	next, err := state.UpdateCard(s, card, c)
	if err != nil {
		return s, err
	}

	for _, donID := range given {
		d, ok := next.Don(donID)
		if !ok {
			continue
		}
		d.State = types.DonRested
		d.HostCardID = ""
		next, err = state.UpdateDon(next, donID, d)
		if err != nil {
			return s, err
		}
		events.Publish(bus, events.DonDetached{Don: donID, Card: card})
	}
	return next, nil
}

// MoveDon relocates a DON instance between a player's DON zones (spec
// §4.2 move_don), emitting CardMoved's DON counterpart. Unlike Move, it
// enforces no cap: the cost area and don-deck are uncapped by the rules
// context.
func MoveDon(s model.GameState, ctx rules.Context, bus *events.Bus, player types.PlayerID, don types.DonInstanceID, to types.Zone) (model.GameState, *engineerr.Error) {
	d, ok := s.Don(don)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown don instance %q", don).WithContext("don", don)
	}
	from := d.Zone
	if from == to {
		return s, engineerr.Newf(engineerr.IllegalAction, "don %q already in zone %q", don, to)
	}
	next, err := state.MoveDon(s, player, don, from, to)
	if err != nil {
		return s, err
	}
	events.Publish(bus, events.DonMoved{Don: don, Owner: player, From: from, To: to})
	return next, nil
}

// SetDonState rests or activates a DON instance directly (Refresh phase
// activation of the whole cost area), emitting DonStateChanged.
func SetDonState(s model.GameState, bus *events.Bus, don types.DonInstanceID, to types.DonState) (model.GameState, *engineerr.Error) {
	d, ok := s.Don(don)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown don instance %q", don).WithContext("don", don)
	}
	from := d.State
	if from == to {
		return s, nil
	}
	next, err := state.SetDonState(s, don, to)
	if err != nil {
		return s, err
	}
	events.Publish(bus, events.DonStateChanged{Don: don, From: from, To: to})
	return next, nil
}
