package model

import "tcgengine/internal/types"

// cardZones is the set of zones that hold CardInstances.
var cardZones = []types.Zone{
	types.ZoneDeck, types.ZoneHand, types.ZoneTrash, types.ZoneLife,
	types.ZoneLeaderArea, types.ZoneCharacterArea, types.ZoneStageArea,
	types.ZoneLimbo,
}

// donZones is the set of zones that hold DonInstances.
var donZones = []types.Zone{types.ZoneDonDeck, types.ZoneCostArea}

// PlayerState is one player's identity, flags, and ten named zones (spec
// §3). Zones are stored generically (map keyed by Zone) rather than as
// ten hand-written struct fields, so the zone manager (§4.2) can operate
// on "the zone named by this parameter" the same way the spec's
// TargetFilter operates on "the zones named by this descriptor" — one
// generic mechanism instead of ten near-identical ones.
type PlayerState struct {
	ID        types.PlayerID
	Flags     map[string]bool
	cardZones map[types.Zone][]types.CardInstanceID
	donZones  map[types.Zone][]types.DonInstanceID
}

// NewPlayerState creates an empty PlayerState for the given player.
func NewPlayerState(id types.PlayerID) PlayerState {
	cz := make(map[types.Zone][]types.CardInstanceID, len(cardZones))
	for _, z := range cardZones {
		cz[z] = nil
	}
	dz := make(map[types.Zone][]types.DonInstanceID, len(donZones))
	for _, z := range donZones {
		dz[z] = nil
	}
	return PlayerState{ID: id, Flags: map[string]bool{}, cardZones: cz, donZones: dz}
}

// CardsIn returns a copy of the ordered card ids in the given zone.
// Returns nil for a DON-only zone.
func (p PlayerState) CardsIn(zone types.Zone) []types.CardInstanceID {
	ids := p.cardZones[zone]
	out := make([]types.CardInstanceID, len(ids))
	copy(out, ids)
	return out
}

// DonsIn returns a copy of the ordered DON ids in the given zone.
// Returns nil for a card-only zone.
func (p PlayerState) DonsIn(zone types.Zone) []types.DonInstanceID {
	ids := p.donZones[zone]
	out := make([]types.DonInstanceID, len(ids))
	copy(out, ids)
	return out
}

// WithCardsIn returns a copy of p with the given zone's card ids
// replaced, preserving value semantics for the state container.
func (p PlayerState) WithCardsIn(zone types.Zone, ids []types.CardInstanceID) PlayerState {
	next := make(map[types.Zone][]types.CardInstanceID, len(p.cardZones))
	for z, v := range p.cardZones {
		next[z] = v
	}
	cp := make([]types.CardInstanceID, len(ids))
	copy(cp, ids)
	next[zone] = cp
	p.cardZones = next
	return p
}

// WithDonsIn returns a copy of p with the given zone's DON ids replaced.
func (p PlayerState) WithDonsIn(zone types.Zone, ids []types.DonInstanceID) PlayerState {
	next := make(map[types.Zone][]types.DonInstanceID, len(p.donZones))
	for z, v := range p.donZones {
		next[z] = v
	}
	cp := make([]types.DonInstanceID, len(ids))
	copy(cp, ids)
	next[zone] = cp
	p.donZones = next
	return p
}

// WithFlag returns a copy of p with the given flag set.
func (p PlayerState) WithFlag(key string, value bool) PlayerState {
	flags := make(map[string]bool, len(p.Flags)+1)
	for k, v := range p.Flags {
		flags[k] = v
	}
	flags[key] = value
	p.Flags = flags
	return p
}

// IsCardZone reports whether z holds CardInstances.
func IsCardZone(z types.Zone) bool {
	for _, c := range cardZones {
		if c == z {
			return true
		}
	}
	return false
}

// IsDonZone reports whether z holds DonInstances.
func IsDonZone(z types.Zone) bool {
	for _, c := range donZones {
		if c == z {
			return true
		}
	}
	return false
}

// Hand returns the player's hand, a shorthand for CardsIn(ZoneHand).
func (p PlayerState) Hand() []types.CardInstanceID { return p.CardsIn(types.ZoneHand) }

// Deck returns the player's deck, ordered top-first (index 0 is the top
// card revealed by a draw or peek).
func (p PlayerState) Deck() []types.CardInstanceID { return p.CardsIn(types.ZoneDeck) }

// Life returns the player's life stack, ordered top-first.
func (p PlayerState) Life() []types.CardInstanceID { return p.CardsIn(types.ZoneLife) }

// LeaderID returns the single card in the leader area, or "" if unset.
func (p PlayerState) LeaderID() types.CardInstanceID {
	leaders := p.CardsIn(types.ZoneLeaderArea)
	if len(leaders) == 0 {
		return ""
	}
	return leaders[0]
}

// CharacterArea returns the player's characters on the field.
func (p PlayerState) CharacterArea() []types.CardInstanceID {
	return p.CardsIn(types.ZoneCharacterArea)
}

// CostArea returns the player's available DON resources.
func (p PlayerState) CostArea() []types.DonInstanceID { return p.DonsIn(types.ZoneCostArea) }

// DonDeck returns the player's unspent DON deck.
func (p PlayerState) DonDeck() []types.DonInstanceID { return p.DonsIn(types.ZoneDonDeck) }
