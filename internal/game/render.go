package game

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/vedapath/internal/core"
	"github.com/vovakirdan/vedapath/internal/progression"
)

// Glyphs
const (
	PlayerGlyph     = '@'
	VedaGlyph       = '◆'
	GateLockedGlyph = '█'
	GateOpenGlyph   = '▒'
)

// Minimum screen size for the playfield.
const (
	MinScreenW = 40
	MinScreenH = 14
)

const maxPanelW = 64

type line struct {
	text  string
	color core.Color
}

// Render draws the HUD, the playfield, the status line and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorDefault)
		return
	}
	if g.machine == nil {
		return
	}

	g.renderHUD(dst)
	field := g.fieldRect(dst)
	dst.DrawBox(field, core.ColorGray)
	g.renderGate(dst, field)
	g.renderItems(dst, field)
	g.renderPlayer(dst, field)
	dst.DrawTextColored(1, dst.Height()-1, g.status, g.flash)

	switch {
	case g.machine.Phase() == progression.PhaseTerminal:
		g.renderLiberation(dst)
	case g.bridge.Visible():
		g.renderQuestion(dst)
	case g.paused:
		drawPanel(dst, "PAUSED", []line{{"Press P to resume", core.ColorDefault}})
	}
}

// renderHUD draws level, progress and score on the top rows.
func (g *Game) renderHUD(dst *core.Screen) {
	m := g.machine
	l := m.Level()
	st := m.State()

	levelText := fmt.Sprintf("Level %d/%d: %s", l.ID, m.Catalog().Len(), l.Name)
	if g.endless {
		levelText += fmt.Sprintf("  Loop %d", m.Stats().Loops+1)
	}
	dst.DrawTextColored(1, 0, levelText, core.ColorWhite)

	progress := fmt.Sprintf("Answered %d/%d", st.ItemsAnsweredCorrectly, m.Threshold())
	if st.PenaltyCount > 0 {
		progress += fmt.Sprintf(" (+%d penalty)", st.PenaltyCount)
	}
	pc := core.ColorYellow
	if m.IsPassable() {
		pc = core.ColorBrightGreen
	}
	dst.DrawTextCentered(0, progress, pc)

	score := fmt.Sprintf("Score: %d", m.Stats().Correct)
	dst.DrawTextColored(dst.Width()-len(score)-1, 0, score, core.ColorDefault)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// fieldRect is the playfield box between the HUD and the status line.
func (g *Game) fieldRect(dst *core.Screen) core.Rect {
	return core.NewRect(0, 2, dst.Width(), dst.Height()-3)
}

// toCell maps a world position into the interior of the field box.
func (g *Game) toCell(field core.Rect, p core.Vec) (int, int) {
	innerW, innerH := field.W-2, field.H-2
	x := field.X + 1 + int(p.X/g.world.Width()*float64(innerW))
	y := field.Y + 1 + int(p.Y/g.world.Height()*float64(innerH))
	x = core.Clamp(x, field.X+1, field.X+innerW)
	y = core.Clamp(y, field.Y+1, field.Y+innerH)
	return x, y
}

func (g *Game) renderGate(dst *core.Screen, field core.Rect) {
	box := g.world.Gate.Box
	x0, y0 := g.toCell(field, box.Min())
	x1, y1 := g.toCell(field, box.Max())

	glyph, color := GateLockedGlyph, core.ColorRed
	if g.machine.IsPassable() {
		glyph, color = GateOpenGlyph, core.ColorBrightGreen
	}
	dst.DrawRect(core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1)), glyph, color)
}

func (g *Game) renderItems(dst *core.Screen, field core.Rect) {
	for _, it := range g.world.Items {
		if it.Collected {
			continue
		}
		x, y := g.toCell(field, it.Pos)
		dst.SetColored(x, y, VedaGlyph, core.ColorBrightYellow)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, field core.Rect) {
	x, y := g.toCell(field, g.world.Player.Pos)
	dst.SetColored(x, y, PlayerGlyph, core.ColorCyan)
}

// renderQuestion draws the pending question with its options.
func (g *Game) renderQuestion(dst *core.Screen) {
	q, ok := g.bridge.Question()
	if !ok {
		return
	}
	width := min(dst.Width()-6, maxPanelW)

	var lines []line
	for _, s := range core.WrapText(q.Text, width) {
		lines = append(lines, line{s, core.ColorWhite})
	}
	lines = append(lines, line{})
	for _, o := range q.Options {
		prefix := o.Letter + ") "
		for i, s := range core.WrapText(o.Text, width-len(prefix)) {
			if i == 0 {
				lines = append(lines, line{prefix + s, core.ColorCyan})
			} else {
				lines = append(lines, line{"   " + s, core.ColorCyan})
			}
		}
	}
	lines = append(lines, line{}, line{"Press A-D or 1-4 to answer", core.ColorGray})

	title := fmt.Sprintf("Veda of %s", g.machine.Level().Name)
	drawPanel(dst, title, lines)
}

// renderLiberation draws the completion screen.
func (g *Game) renderLiberation(dst *core.Screen) {
	s := g.machine.Stats()
	drawPanel(dst, "LIBERATION", []line{
		{"You have passed through every gate.", core.ColorBrightYellow},
		{},
		{fmt.Sprintf("Levels: %d  Correct: %d  Wrong: %d", s.LevelsCleared, s.Correct, s.Wrong), core.ColorWhite},
		{},
		{"Press R to walk the path again, Q to quit", core.ColorGray},
	})
}

// drawPanel draws a centered box with a title and the given lines.
// Lines that do not fit the screen are dropped.
func drawPanel(dst *core.Screen, title string, lines []line) {
	w := utf8.RuneCountInString(title)
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l.text))
	}
	boxW := min(w+4, dst.Width())
	boxH := min(len(lines)+4, dst.Height())
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)
	dst.DrawTextColored(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title, core.ColorBrightYellow)

	for i, l := range lines {
		y := boxY + 3 + i
		if y >= boxY+boxH-1 {
			break
		}
		dst.DrawTextColored(boxX+2, y, l.text, l.color)
	}
}
