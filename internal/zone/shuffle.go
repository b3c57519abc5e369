package zone

import (
	"math/rand"

	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

// Shuffle randomizes the order of a player's deck-shaped card zone in
// place (deck or life) using rng, the engine's explicitly seeded source
// (spec §6: "rng is threaded explicitly, never read from a package-level
// global"). This mirrors the teacher's own explicit *rand.Rand instances
// (internal/action/start_game.go, internal/service/game_service.go) rather
// than calling the top-level math/rand functions.
func Shuffle(s model.GameState, bus *events.Bus, rng *rand.Rand, player types.PlayerID, z types.Zone) (model.GameState, *engineerr.Error) {
	p, ok := s.Player(player)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player).WithContext("player", player)
	}

	var next model.GameState
	switch {
	case model.IsCardZone(z):
		ids := p.CardsIn(z)
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		updated, err := shuffleCards(s, player, z, ids)
		if err != nil {
			return s, err
		}
		next = updated
	case model.IsDonZone(z):
		ids := p.DonsIn(z)
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		updated, err := shuffleDons(s, player, z, ids)
		if err != nil {
			return s, err
		}
		next = updated
	default:
		return s, engineerr.Newf(engineerr.InvalidState, "zone %q is neither a card nor don zone", z).WithContext("zone", z)
	}

	events.Publish(bus, events.ZoneShuffled{Player: player, Zone: z})
	return next, nil
}

func shuffleCards(s model.GameState, player types.PlayerID, z types.Zone, ids []types.CardInstanceID) (model.GameState, *engineerr.Error) {
	p, _ := s.Player(player)
	p = p.WithCardsIn(z, ids)
	players := map[types.PlayerID]model.PlayerState{}
	for k, v := range s.Players {
		players[k] = v
	}
	players[player] = p
	s.Players = players
	return s, nil
}

func shuffleDons(s model.GameState, player types.PlayerID, z types.Zone, ids []types.DonInstanceID) (model.GameState, *engineerr.Error) {
	p, _ := s.Player(player)
	p = p.WithDonsIn(z, ids)
	players := map[types.PlayerID]model.PlayerState{}
	for k, v := range s.Players {
		players[k] = v
	}
	players[player] = p
	s.Players = players
	return s, nil
}

// PeekTop returns the top n card ids of a player's zone (deck or life)
// without changing any state; used by effects that look at cards before
// deciding whether to draw or rearrange them.
func PeekTop(s model.GameState, player types.PlayerID, z types.Zone, n int) ([]types.CardInstanceID, *engineerr.Error) {
	p, ok := s.Player(player)
	if !ok {
		return nil, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player).WithContext("player", player)
	}
	ids := p.CardsIn(z)
	if n > len(ids) {
		n = len(ids)
	}
	return ids[:n], nil
}

// Reveal emits CardRevealed for card without changing its zone.
func Reveal(bus *events.Bus, card types.CardInstanceID, reason string) {
	events.Publish(bus, events.CardRevealed{Card: card, Reason: reason})
}
