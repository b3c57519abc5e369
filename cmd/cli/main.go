// Command tcg-cli is a local terminal client for the engine: it builds
// an Engine in-process, deals the sample decks from internal/demo, and
// drives Main by reading one command per prompt from standard input —
// the same "terminal front end over a single game" shape as the
// teacher's cmd/cli, adapted from a websocket client driving a remote
// server into a direct, in-process InputProvider, since the engine
// itself never defines a network protocol (spec §6).
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"tcgengine/internal/demo"
	"tcgengine/internal/engine"
	"tcgengine/internal/events"
	"tcgengine/internal/logging"
	"tcgengine/internal/rules"
	"tcgengine/internal/types"
)

const (
	playerRed  types.PlayerID = "red"
	playerBlue types.PlayerID = "blue"
)

func main() {
	level := "warn"
	if err := logging.Init(&level); err != nil {
		fmt.Fprintln(os.Stderr, "logging init:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	// gameID is a pure log-correlation field (spec: never part of
	// GameState), so a random session id is exactly what uuid is for —
	// the same boundary internal/types.IDAllocator's doc comment draws.
	gameID := uuid.NewString()

	rc := rules.Default()
	reg := demo.Registry()
	creg := demo.ContinuousRegistry()

	ui := NewUI()
	provider := &fanoutProvider{perspective: playerRed, ui: ui}

	e, setupErr := engine.New(gameID, demo.Catalogue(), reg, creg, rc, provider, 1)
	if setupErr != nil {
		fmt.Fprintln(os.Stderr, "engine construction failed:", setupErr.Message)
		os.Exit(1)
	}

	if err := e.Setup(playerRed, playerBlue,
		engine.DeckList{Leader: demo.CardLeaderRed, Cards: demo.RedDeck(), DonCount: 10},
		engine.DeckList{Leader: demo.CardLeaderBlue, Cards: demo.BlueDeck(), DonCount: 10},
		playerRed, nil); err != nil {
		fmt.Fprintln(os.Stderr, "setup failed:", err.Message)
		os.Exit(1)
	}

	e.Subscribe([]string{"game-over", "battle-resolved", "error"}, func(ev events.Event) {
		switch v := ev.(type) {
		case events.BattleResolved:
			fmt.Printf("battle: %s vs %s — KO=%v lifeLost=%d\n", v.Attacker, v.Defender, v.KO, v.LifeLost)
		case events.GameOver:
			winner := "draw"
			if v.Winner != "" {
				winner = string(v.Winner) + " wins"
			}
			fmt.Printf("game over: %s (%s)\n", winner, v.Reason)
		case events.ErrorOccurred:
			fmt.Printf("engine error [%s]: %s\n", v.Code, v.Message)
		}
	})

	for {
		if err := e.AdvanceToMain(); err != nil {
			fmt.Fprintln(os.Stderr, "advance failed:", err.Message)
			os.Exit(1)
		}
		if e.Snapshot().GameOver {
			break
		}
		if err := e.RunMain(); err != nil {
			fmt.Fprintln(os.Stderr, "main loop failed:", err.Message)
			os.Exit(1)
		}
		if e.Snapshot().GameOver {
			break
		}
	}

	fmt.Print(ui.RenderSnapshot(e.Snapshot(), playerRed))
	fmt.Println()
}

// fanoutProvider renders the board once per request and then delegates
// to a fresh StdinProvider read — kept as its own type so main can swap
// in a scripted provider for demos without touching the render loop.
type fanoutProvider struct {
	perspective types.PlayerID
	ui          *UI
	stdin       *StdinProvider
}

func (p *fanoutProvider) RequestAction(player types.PlayerID, available []types.ActionKind, snap engine.Snapshot) (engine.Action, bool) {
	if p.stdin == nil {
		p.stdin = NewStdinProvider(p.ui)
	}
	fmt.Print(p.ui.RenderSnapshot(snap, player))
	fmt.Println()
	return p.stdin.RequestAction(player, available, snap)
}
