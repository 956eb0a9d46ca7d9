package match3

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/session"
)

const (
	cellWidth    = 3 // Tile glyph with a bracket on each side
	cellHeight   = 1
	hudHeight    = 4
	footerHeight = 2
)

// boardRect returns the screen area covered by the tiles, without the frame.
func (g *Game) boardRect() platformcore.Rect {
	n := g.sess.Level().GridSize
	w := n * cellWidth
	h := n * cellHeight
	return platformcore.NewRect((g.screenW-w)/2, hudHeight+1, w, h)
}

// cellAt maps a screen position to the board cell under it.
func (g *Game) cellAt(x, y int) (core.Coord, bool) {
	col, row, ok := g.boardRect().CellAt(x, y, cellWidth, cellHeight)
	if !ok {
		return core.Coord{}, false
	}
	return core.C(row, col), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.sess == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)

	r := g.boardRect()
	dst.DrawBoxWithColor(platformcore.NewRect(r.X-1, r.Y-1, r.W+2, r.H+2), platformcore.ColorGray)

	board := g.sess.Board()
	f, animating := g.anim.current()
	if animating {
		board = f.board
	}
	board.Each(func(c core.Coord, t core.Tile, ok bool) {
		g.renderCell(dst, r, c, t, ok, f, animating)
	})

	g.renderFooter(dst, r, f, animating)

	if !animating {
		g.renderOverlays(dst, r)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, counters and level goals.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	title := "MATCH-3"
	if g.mode == ModeEndless {
		title += " · Endless"
	}
	dst.DrawTextCenteredWithColor(0, title, platformcore.ColorCyan)

	lvl := g.sess.Level()
	parts := []string{
		fmt.Sprintf("Level %d", lvl.Number),
		fmt.Sprintf("Score %d/%d", g.sess.Score(), lvl.TargetScore),
		fmt.Sprintf("Moves %d", g.sess.MovesLeft()),
	}
	if lvl.Timed() {
		t := g.sess.TimeLeft()
		parts = append(parts, fmt.Sprintf("Time %d:%02d", t/60, t%60))
	}
	if g.mode == ModeEndless {
		parts = append(parts, fmt.Sprintf("Run %d", g.Score()))
	}
	color := platformcore.ColorWhite
	if (lvl.Timed() && g.sess.TimeLeft() <= 10) || g.sess.MovesLeft() <= 3 {
		color = platformcore.ColorBrightRed
	}
	dst.DrawTextCenteredWithColor(1, strings.Join(parts, "  "), color)

	g.renderGoals(dst, 2)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 3, '─', platformcore.ColorGray)
	}
}

// renderGoals draws each objective, met ones in green.
func (g *Game) renderGoals(dst *platformcore.Screen, y int) {
	goals := g.sess.Goals()
	if len(goals) == 0 {
		return
	}

	type segment struct {
		text  string
		color platformcore.Color
	}
	segs := []segment{{"Goals:", platformcore.ColorGray}}
	for _, gp := range goals {
		text := fmt.Sprintf("%s %d/%d", gp.Name, min(gp.Current, gp.Target), gp.Target)
		color := platformcore.ColorWhite
		if gp.Done() {
			text += " ✓"
			color = platformcore.ColorBrightGreen
		}
		segs = append(segs, segment{text, color})
	}

	total := len(segs) - 1
	for _, s := range segs {
		total += utf8.RuneCountInString(s.text)
	}
	x := (dst.Width() - total) / 2
	for _, s := range segs {
		dst.DrawTextWithColor(x, y, s.text, s.color)
		x += utf8.RuneCountInString(s.text) + 1
	}
}

// renderCell draws one tile with its cursor, selection or hint brackets.
func (g *Game) renderCell(dst *platformcore.Screen, r platformcore.Rect, c core.Coord, t core.Tile, ok bool, f frame, animating bool) {
	cell := r.CellRect(c.Col, c.Row, cellWidth, cellHeight)

	glyph, color := '·', platformcore.ColorGray
	if ok {
		glyph, color = tileGlyph(t), g.tileColor(t)
	}
	if animating && f.phase == PhaseClear && f.marked.Has(c) {
		glyph, color = '✧', platformcore.ColorBrightWhite
		if g.anim.progress() >= 0.5 {
			glyph = ' '
		}
	}
	dst.SetWithColor(cell.X+1, cell.Y, glyph, color)

	left, right, bc := ' ', ' ', platformcore.ColorDefault
	sel, hasSel := g.sess.Selection()
	switch {
	case animating:
		if f.marked.Has(c) {
			switch f.phase {
			case PhaseSwap:
				left, right, bc = '[', ']', platformcore.ColorBrightYellow
			case PhaseInvalid:
				left, right, bc = '[', ']', platformcore.ColorBrightRed
			}
		}
	case hasSel && sel == c:
		left, right, bc = '[', ']', platformcore.ColorBrightYellow
	case g.hintTicks > 0 && (g.hint.A == c || g.hint.B == c):
		left, right, bc = '{', '}', platformcore.ColorBrightGreen
	case c == g.cursor && g.sess.State() == session.StatePlaying:
		left, right, bc = '‹', '›', platformcore.ColorWhite
	}
	dst.SetWithColor(cell.X, cell.Y, left, bc)
	dst.SetWithColor(cell.X+2, cell.Y, right, bc)
}

// tileGlyph returns the rune drawn for a tile.
func tileGlyph(t core.Tile) rune {
	switch t.Special {
	case core.SpecialStripedH:
		return '↔'
	case core.SpecialStripedV:
		return '↕'
	case core.SpecialWrapped:
		return '◆'
	case core.SpecialBomb:
		return '✹'
	case core.SpecialRainbow:
		return '✦'
	default:
		return '●'
	}
}

func (g *Game) tileColor(t core.Tile) platformcore.Color {
	if c, ok := g.theme[t.Kind]; ok {
		return c
	}
	return platformcore.ColorWhite
}

// renderFooter draws the control hints and status line under the board.
func (g *Game) renderFooter(dst *platformcore.Screen, r platformcore.Rect, f frame, animating bool) {
	y := r.Bottom() + 1
	dst.DrawTextCenteredWithColor(y, g.Controls(), platformcore.ColorGray)

	var status string
	switch {
	case animating && f.phase == PhaseShuffle:
		status = "No moves left, shuffling..."
	case animating && f.phase == PhaseInvalid:
		status = "No match"
	case g.sess.State() == session.StateEnded:
		status = fmt.Sprintf("%s  %d pts", stars(g.sess.Stars()), g.sess.Score())
	case g.hintTicks > 0:
		status = fmt.Sprintf("Try %s ↔ %s", g.hint.A, g.hint.B)
	}
	if status != "" {
		dst.DrawTextCenteredWithColor(y+1, status, platformcore.ColorBrightYellow)
	}
}

func stars(n int) string {
	n = platformcore.Clamp(n, 0, 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// renderOverlays draws the pause and result boxes.
func (g *Game) renderOverlays(dst *platformcore.Screen, r platformcore.Rect) {
	cx, cy := r.Center()
	lvl := g.sess.Level()

	switch g.sess.State() {
	case session.StatePaused:
		g.drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
	case session.StateEnded:
		if g.sess.Outcome() == session.OutcomeWin {
			if g.mode == ModeEndless {
				g.drawOverlay(dst, cx, cy,
					fmt.Sprintf("LEVEL %d CLEARED", lvl.Number),
					fmt.Sprintf("Next: level %d", lvl.Number+1))
				return
			}
			g.drawOverlay(dst, cx, cy,
				fmt.Sprintf("LEVEL %d COMPLETE", lvl.Number),
				stars(g.sess.Stars()),
				"N: next level  R: replay")
			return
		}

		reason := "Out of moves"
		if g.sess.MovesLeft() > 0 {
			reason = "Out of time"
		}
		last := "R: try again"
		if g.mode == ModeEndless {
			last = fmt.Sprintf("Run score %d  R: new run", g.Score())
		}
		g.drawOverlay(dst, cx, cy, "GAME OVER", reason, last)
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := platformcore.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Space: select | Drag: swap | H: hint | P: pause | R: restart"
}
