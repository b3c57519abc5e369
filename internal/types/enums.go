package types

// Zone names one of the ten named areas a card or DON instance can
// occupy (spec §3 PlayerState).
type Zone string

const (
	ZoneDeck          Zone = "deck"
	ZoneHand          Zone = "hand"
	ZoneTrash         Zone = "trash"
	ZoneLife          Zone = "life"
	ZoneDonDeck       Zone = "don-deck"
	ZoneCostArea      Zone = "cost-area"
	ZoneLeaderArea    Zone = "leader-area"
	ZoneCharacterArea Zone = "character-area"
	ZoneStageArea     Zone = "stage-area"
	// ZoneLimbo is the internal, transient holding area a card instance
	// occupies mid-move; no step may end with a card left in limbo.
	ZoneLimbo Zone = "limbo"
)

// Category is a card definition's category (spec §3 CardDefinition).
type Category string

const (
	CategoryLeader    Category = "leader"
	CategoryCharacter Category = "character"
	CategoryEvent     Category = "event"
	CategoryStage     Category = "stage"
	CategoryDon       Category = "don"
)

// Colour is one of the card-definition colour tags. The named set
// mirrors the source game (spec Glossary / original_source terminology);
// new colours can be added without touching engine logic since every
// colour-scoped rule goes through the generic TargetFilter colour set.
type Colour string

const (
	ColourRed    Colour = "red"
	ColourGreen  Colour = "green"
	ColourBlue   Colour = "blue"
	ColourPurple Colour = "purple"
	ColourBlack  Colour = "black"
	ColourYellow Colour = "yellow"
)

// Phase is one of the per-turn state machine's states (spec §4.3).
type Phase string

const (
	PhaseRefresh Phase = "refresh"
	PhaseDraw    Phase = "draw"
	PhaseDon     Phase = "don-phase"
	PhaseMain    Phase = "main"
	PhaseEnd     Phase = "end"
)

// CardState is a field card's observable orientation (spec §3
// CardInstance, Glossary "Rested / Active").
type CardState string

const (
	StateNone   CardState = "none"
	StateActive CardState = "active"
	StateRested CardState = "rested"
)

// DonState is a DON instance's observable orientation (spec §3
// DonInstance).
type DonState string

const (
	DonActive   DonState = "active"
	DonRested   DonState = "rested"
	DonAttached DonState = "attached"
)

// ActionKind is one of the closed set of actions a player may submit
// (spec §4.10).
type ActionKind string

const (
	ActionPlayCard            ActionKind = "play-card"
	ActionGiveDon             ActionKind = "give-don"
	ActionDeclareAttack       ActionKind = "declare-attack"
	ActionUseActivatedEffect  ActionKind = "use-activated-effect"
	ActionDeclareBlocker      ActionKind = "declare-blocker"
	ActionPlayCounter         ActionKind = "play-counter"
	ActionEndPhase            ActionKind = "end-phase"
	ActionPassPriority        ActionKind = "pass-priority"
)

// ModifierKind is one of the effect kinds a Modifier can carry (spec §3
// Modifier).
type ModifierKind string

const (
	ModifierPower         ModifierKind = "power"
	ModifierCost          ModifierKind = "cost"
	ModifierGrantKeyword  ModifierKind = "grant-keyword"
	ModifierReplacement   ModifierKind = "replacement"
)

// Duration is one of the lifetimes a Modifier can carry (spec §3
// Modifier).
type Duration string

const (
	DurationPermanent             Duration = "permanent"
	DurationUntilEndOfTurn        Duration = "until-end-of-turn"
	DurationUntilEndOfBattle      Duration = "until-end-of-battle"
	DurationUntilSourceLeavesField Duration = "until-source-leaves-field"
)

// TimingKind is one of the three disjoint effect-scheduling kinds (spec
// §4.4.1).
type TimingKind string

const (
	TimingTriggered  TimingKind = "triggered"
	TimingActivated  TimingKind = "activated"
	TimingContinuous TimingKind = "continuous"
)

// TriggerTag names one of the fixed set of events that can fire a
// Triggered effect (spec §4.4).
type TriggerTag string

const (
	TriggerOnPlay           TriggerTag = "on-play"
	TriggerOnKO             TriggerTag = "on-ko"
	TriggerOnAttack         TriggerTag = "on-attack"
	TriggerWhenAttacking    TriggerTag = "when-attacking"
	TriggerWhenBlocking     TriggerTag = "when-blocking"
	TriggerEndOfYourTurn    TriggerTag = "end-of-your-turn"
	TriggerEndOfOpponentTurn TriggerTag = "end-of-opponent-turn"
	TriggerOnDonAttached    TriggerTag = "on-don-attached"
	TriggerOnLeavesField    TriggerTag = "on-leaves-field"
)

// ControllerScope restricts a TargetFilter to the resolver's controller,
// their opponent, or either (spec §4.4 "Target filtering").
type ControllerScope string

const (
	ScopeSelf     ControllerScope = "self"
	ScopeOpponent ControllerScope = "opponent"
	ScopeAny      ControllerScope = "any"
)

// Keyword is a free-form ability tag carried by a card definition
// (Blocker, Rush, etc.). It is a string, not a closed enum, because the
// engine treats keywords as opaque data consulted by resolvers and
// target filters rather than as built-in rules (spec §9: "duck-typed
// target descriptors" become the enumerated TargetFilter, but the
// keyword vocabulary itself stays open so new card text never requires
// an engine change).
type Keyword string

const (
	KeywordBlocker   Keyword = "blocker"
	KeywordRush      Keyword = "rush"
	KeywordDoubleAttack Keyword = "double-attack"
	KeywordBanish    Keyword = "banish"
)
