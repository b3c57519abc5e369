package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"tcgengine/internal/engine"
	"tcgengine/internal/types"
)

// Styling constants, in the teacher's terminal-renderer register
// (cmd/cli/ui.go in the teacher repo): a fixed palette of named colours
// feeding a handful of base styles, rather than one style per call site.
var (
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#06B6D4")
	accentColor    = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	textColor      = lipgloss.Color("#F8FAFC")
	mutedColor     = lipgloss.Color("#94A3B8")

	baseStyle = lipgloss.NewStyle().Foreground(textColor)

	panelStyle = baseStyle.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Margin(1, 0)

	headerStyle = baseStyle.Foreground(primaryColor).Bold(true)

	activeStyle   = baseStyle.Foreground(accentColor).Bold(true)
	restedStyle   = baseStyle.Foreground(mutedColor)
	lifeStyle     = baseStyle.Foreground(secondaryColor).Bold(true)
	warnStyle     = baseStyle.Foreground(warningColor)
	errStyle      = baseStyle.Foreground(errorColor).Bold(true)
)

// UI renders engine.Snapshot values to the terminal, the same
// responsibility the teacher's UI struct has over its model.GameState.
type UI struct {
	termWidth  int
	termHeight int
}

// NewUI probes the terminal size the way the teacher's NewUI does —
// stdout first, falling back to stderr, stdin, then the COLUMNS/LINES
// environment variables — and clamps to a readable minimum.
func NewUI() *UI {
	ui := &UI{}
	ui.refreshSize()
	return ui
}

func (ui *UI) refreshSize() {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h, err = term.GetSize(int(os.Stderr.Fd()))
	}
	if err != nil {
		w, h, err = term.GetSize(int(os.Stdin.Fd()))
	}
	if err != nil {
		w = 80
		h = 24
		if cols := os.Getenv("COLUMNS"); cols != "" {
			if v, perr := strconv.Atoi(cols); perr == nil {
				w = v
			}
		}
		if lines := os.Getenv("LINES"); lines != "" {
			if v, perr := strconv.Atoi(lines); perr == nil {
				h = v
			}
		}
	}
	if w < 40 {
		w = 40
	}
	ui.termWidth = w
	ui.termHeight = h
}

// RenderSnapshot draws the full board: phase/turn header, then one panel
// per player.
func (ui *UI) RenderSnapshot(snap engine.Snapshot, perspective types.PlayerID) string {
	ui.refreshSize()

	header := headerStyle.Render(fmt.Sprintf("Turn %d — %s — active: %s", snap.Turn, snap.Phase, snap.ActivePlayer))

	panels := make([]string, 0, len(snap.PlayerOrder))
	for _, pid := range snap.PlayerOrder {
		panels = append(panels, ui.renderPlayer(snap, pid, pid == perspective))
	}

	var board string
	if ui.termWidth >= 80 {
		board = lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	} else {
		board = strings.Join(panels, "\n")
	}

	if snap.GameOver {
		winner := "draw"
		if snap.Winner != "" {
			winner = fmt.Sprintf("%s wins", snap.Winner)
		}
		reason := snap.DrawReason
		if reason == "" {
			reason = "battle"
		}
		return strings.Join([]string{header, board, errStyle.Render(fmt.Sprintf("GAME OVER: %s (%s)", winner, reason))}, "\n")
	}

	return strings.Join([]string{header, board}, "\n")
}

func (ui *UI) renderPlayer(snap engine.Snapshot, pid types.PlayerID, mine bool) string {
	p := snap.Players[pid]
	var lines []string

	label := string(pid)
	if mine {
		label += " (you)"
	}
	lines = append(lines, headerStyle.Render(label))
	lines = append(lines, lifeStyle.Render(fmt.Sprintf("life: %d", len(p.Zones[types.ZoneLife]))))
	lines = append(lines, fmt.Sprintf("hand: %d  deck: %d  trash: %d",
		len(p.Zones[types.ZoneHand]), len(p.Zones[types.ZoneDeck]), len(p.Zones[types.ZoneTrash])))
	lines = append(lines, fmt.Sprintf("don: %d active / %d rested",
		ui.countDon(snap, p.DonZones[types.ZoneCostArea], types.DonActive),
		ui.countDon(snap, p.DonZones[types.ZoneCostArea], types.DonRested)))

	lines = append(lines, "")
	lines = append(lines, "leader:")
	for _, id := range p.Zones[types.ZoneLeaderArea] {
		lines = append(lines, "  "+ui.renderCard(snap, id))
	}
	lines = append(lines, "field:")
	for _, id := range p.Zones[types.ZoneCharacterArea] {
		lines = append(lines, "  "+ui.renderCard(snap, id))
	}
	for _, id := range p.Zones[types.ZoneStageArea] {
		lines = append(lines, "  "+ui.renderCard(snap, id))
	}

	if mine {
		lines = append(lines, "hand:")
		for _, id := range p.Zones[types.ZoneHand] {
			lines = append(lines, "  "+ui.renderCard(snap, id))
		}
	}

	style := panelStyle
	if ui.termWidth >= 80 {
		style = style.Width((ui.termWidth - 6) / len(snap.PlayerOrder))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (ui *UI) renderCard(snap engine.Snapshot, id types.CardInstanceID) string {
	c, ok := snap.Cards[id]
	if !ok {
		return string(id)
	}
	stateStyle := activeStyle
	if c.State == types.StateRested {
		stateStyle = restedStyle
	}
	return fmt.Sprintf("%s [%s] pow=%d don=%d", id, stateStyle.Render(string(c.State)), c.Power, len(c.GivenDon))
}

func (ui *UI) countDon(snap engine.Snapshot, dons []types.DonInstanceID, state types.DonState) int {
	n := 0
	for _, id := range dons {
		if d, ok := snap.Dons[id]; ok && d.State == state {
			n++
		}
	}
	return n
}

// RenderPrompt lists the action kinds currently on offer.
func (ui *UI) RenderPrompt(player types.PlayerID, available []types.ActionKind) string {
	kinds := make([]string, len(available))
	for i, k := range available {
		kinds[i] = string(k)
	}
	return warnStyle.Render(fmt.Sprintf("%s, choose one of [%s]> ", player, strings.Join(kinds, ", ")))
}
