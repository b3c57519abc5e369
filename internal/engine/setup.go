package engine

import (
	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/rules"
	"tcgengine/internal/state"
	"tcgengine/internal/types"
	"tcgengine/internal/zone"
)

// DeckList is one player's setup input (spec §6 "two ordered
// card-definition sequences"): a leader definition, an ordered main-deck
// definition sequence (one entry per physical card, duplicates included,
// in list order before the initial shuffle), and the size of that
// player's DON deck.
type DeckList struct {
	Leader   types.CardDefinitionID
	Cards    []types.CardDefinitionID
	DonCount int
}

// Setup deals both players' leaders, life, DON decks, and opening hands,
// and resolves mulligans (spec §6 Setup input, SPEC_FULL's mulligan
// supplement), leaving the engine positioned at turn 1 Refresh with
// firstPlayer active. mulligan[player] == true requests a single
// keep/redraw per rules.MulliganPolicy == AllowOnce; ignored under
// MulliganNone.
func (e *Engine) Setup(p1, p2 types.PlayerID, deck1, deck2 DeckList, firstPlayer types.PlayerID, mulligan map[types.PlayerID]bool) *engineerr.Error {
	if e.setup {
		return engineerr.New(engineerr.IllegalAction, "Setup already ran for this engine")
	}
	if firstPlayer != p1 && firstPlayer != p2 {
		return engineerr.Newf(engineerr.IllegalAction, "first player %q is not one of the two seats", firstPlayer)
	}

	s := model.NewGameState([]types.PlayerID{p1, p2}, e.rules.LoopGuardThreshold)
	s.ActivePlayer = firstPlayer

	var err *engineerr.Error
	s, err = e.dealPlayer(s, p1, deck1)
	if err != nil {
		return err
	}
	s, err = e.dealPlayer(s, p2, deck2)
	if err != nil {
		return err
	}

	for _, pid := range []types.PlayerID{p1, p2} {
		if e.rules.MulliganPolicy == rules.MulliganAllowOnce && mulligan[pid] {
			s, err = e.mulligan(s, pid)
			if err != nil {
				return err
			}
		}
	}

	e.state = s
	e.setup = true
	return nil
}

// dealPlayer instantiates a player's leader, DON deck, main deck
// (shuffled), life stack, and opening hand, in that order — the order
// the physical game is set up in.
func (e *Engine) dealPlayer(s model.GameState, player types.PlayerID, dl DeckList) (model.GameState, *engineerr.Error) {
	def := e.catalogue.Definition(dl.Leader)
	if def == nil {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown leader definition %q", dl.Leader)
	}

	var leaderID types.CardInstanceID
	s.IDs, leaderID = s.IDs.NextCardInstanceID()
	s = addCard(s, model.CardInstance{
		ID: leaderID, DefinitionID: dl.Leader, Owner: player, Controller: player,
		Zone: types.ZoneLeaderArea, State: types.StateActive,
	})
	events.Publish(e.bus, events.CardMoved{Card: leaderID, Owner: player, From: types.ZoneLimbo, To: types.ZoneLeaderArea})

	for i := 0; i < dl.DonCount; i++ {
		var donID types.DonInstanceID
		s.IDs, donID = s.IDs.NextDonInstanceID()
		s = addDon(s, model.DonInstance{ID: donID, Owner: player, Zone: types.ZoneDonDeck, State: types.DonRested})
	}

	for _, cardDef := range dl.Cards {
		var cardID types.CardInstanceID
		s.IDs, cardID = s.IDs.NextCardInstanceID()
		s = addCard(s, model.CardInstance{
			ID: cardID, DefinitionID: cardDef, Owner: player, Controller: player, Zone: types.ZoneDeck,
		})
	}

	next, zerr := zone.Shuffle(s, e.bus, e.rng, player, types.ZoneDeck)
	if zerr != nil {
		return s, zerr
	}
	s = next

	lifeValue := 0
	if e.rules.InitialLifeFromLeader && def.LifeValue != nil {
		lifeValue = *def.LifeValue
	}
	for i := 0; i < lifeValue; i++ {
		p, _ := s.Player(player)
		deck := p.Deck()
		if len(deck) == 0 {
			break
		}
		next, zerr := zone.Move(s, e.catalogue, e.registry, e.rules, e.bus, player, deck[0], types.ZoneLife)
		if zerr != nil {
			return s, zerr
		}
		s = next
	}

	for i := 0; i < e.rules.InitialHandSize; i++ {
		p, _ := s.Player(player)
		deck := p.Deck()
		if len(deck) == 0 {
			break
		}
		next, zerr := zone.Move(s, e.catalogue, e.registry, e.rules, e.bus, player, deck[0], types.ZoneHand)
		if zerr != nil {
			return s, zerr
		}
		s = next
	}

	return s, nil
}

// mulligan implements the single redraw MulliganAllowOnce grants: the
// old hand shuffles back into the deck and a fresh hand of the same size
// is drawn (SPEC_FULL "Mulligan resolution" supplement) — never a loop,
// never re-offered.
func (e *Engine) mulligan(s model.GameState, player types.PlayerID) (model.GameState, *engineerr.Error) {
	p, ok := s.Player(player)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player)
	}
	hand := p.Hand()
	for _, cardID := range hand {
		next, zerr := zone.Move(s, e.catalogue, e.registry, e.rules, e.bus, player, cardID, types.ZoneDeck)
		if zerr != nil {
			return s, zerr
		}
		s = next
	}
	next, zerr := zone.Shuffle(s, e.bus, e.rng, player, types.ZoneDeck)
	if zerr != nil {
		return s, zerr
	}
	s = next

	for i := 0; i < len(hand); i++ {
		p, _ := s.Player(player)
		deck := p.Deck()
		if len(deck) == 0 {
			break
		}
		next, zerr := zone.Move(s, e.catalogue, e.registry, e.rules, e.bus, player, deck[0], types.ZoneHand)
		if zerr != nil {
			return s, zerr
		}
		s = next
	}
	return s, nil
}

func addCard(s model.GameState, c model.CardInstance) model.GameState {
	cards := make(map[types.CardInstanceID]model.CardInstance, len(s.Cards)+1)
	for k, v := range s.Cards {
		cards[k] = v
	}
	cards[c.ID] = c
	s.Cards = cards
	p, _ := s.Player(c.Owner)
	p = p.WithCardsIn(c.Zone, append(p.CardsIn(c.Zone), c.ID))
	s, _ = state.UpdatePlayer(s, c.Owner, p)
	return s
}

func addDon(s model.GameState, d model.DonInstance) model.GameState {
	dons := make(map[types.DonInstanceID]model.DonInstance, len(s.Dons)+1)
	for k, v := range s.Dons {
		dons[k] = v
	}
	dons[d.ID] = d
	s.Dons = dons
	p, _ := s.Player(d.Owner)
	p = p.WithDonsIn(d.Zone, append(p.DonsIn(d.Zone), d.ID))
	s, _ = state.UpdatePlayer(s, d.Owner, p)
	return s
}
