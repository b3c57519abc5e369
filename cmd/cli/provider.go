package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"tcgengine/internal/engine"
	"tcgengine/internal/types"
)

// StdinProvider implements engine.InputProvider by prompting a terminal
// user, the local-process counterpart to the teacher's CLIClient, which
// instead drove a remote game over a websocket. Here the engine itself
// is in-process, so the provider's blocking call is a plain terminal
// read rather than a network round trip.
type StdinProvider struct {
	in  *bufio.Reader
	ui  *UI
}

func NewStdinProvider(ui *UI) *StdinProvider {
	return &StdinProvider{in: bufio.NewReader(os.Stdin), ui: ui}
}

// RequestAction blocks on one line of terminal input, parsing it against
// the closed Action variant (spec §4.10). An empty line or "pass" always
// resolves to PassPriority; "quit" reports ok=false, which the engine
// treats as a pass (or as declining a block or counter).
func (p *StdinProvider) RequestAction(player types.PlayerID, available []types.ActionKind, snap engine.Snapshot) (engine.Action, bool) {
	fmt.Print(p.ui.RenderPrompt(player, available))
	line, err := p.in.ReadString('\n')
	if err != nil {
		return engine.Action{}, false
	}
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] == "pass" {
		return engine.Action{Player: player, Kind: types.ActionPassPriority}, true
	}

	a := engine.Action{Player: player}
	switch fields[0] {
	case "play":
		a.Kind = types.ActionPlayCard
		if len(fields) > 1 {
			a.CardID = types.CardInstanceID(fields[1])
		}
	case "don":
		a.Kind = types.ActionGiveDon
		if len(fields) > 2 {
			a.DonID = types.DonInstanceID(fields[1])
			a.TargetID = types.CardInstanceID(fields[2])
		}
	case "attack":
		a.Kind = types.ActionDeclareAttack
		if len(fields) > 1 {
			a.CardID = types.CardInstanceID(fields[1])
		}
		if len(fields) > 2 {
			a.TargetID = types.CardInstanceID(fields[2])
		}
	case "activate":
		a.Kind = types.ActionUseActivatedEffect
		if len(fields) > 2 {
			a.CardID = types.CardInstanceID(fields[1])
			a.EffectDefID = types.EffectDefinitionID(fields[2])
		}
		for _, t := range fields[3:] {
			a.Targets = append(a.Targets, types.CardInstanceID(t))
		}
	case "block":
		a.Kind = types.ActionDeclareBlocker
		if len(fields) > 1 {
			a.TargetID = types.CardInstanceID(fields[1])
		}
	case "counter":
		a.Kind = types.ActionPlayCounter
		if len(fields) > 1 {
			a.CardID = types.CardInstanceID(fields[1])
		}
	case "end":
		a.Kind = types.ActionEndPhase
	case "quit":
		return engine.Action{}, false
	default:
		fmt.Printf("unrecognised command %q; available: %v\n", fields[0], available)
		return p.RequestAction(player, available, snap)
	}
	return a, true
}
