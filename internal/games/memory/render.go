package memory

import (
	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/games/session"
)

const (
	cardWidth  = 6
	cardHeight = 3
	cardGap    = 1
	maxColumns = 9
)

// Render draws the card grid, feedback and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.cardRects = g.cardRects[:0]

	if g.tooSmall {
		y := g.screenH / 2
		dst.DrawTextCentered(y, "Window too small")
		dst.DrawTextCentered(y+1, "Please resize terminal")
		return
	}

	y := session.RenderHeader(dst, g.cfg.Prompt, g.sess.Engine.Level().Description)

	y = g.renderGrid(dst, y) + 1
	if y < dst.Height() {
		g.sess.RenderFeedback(dst, y)
	}
	g.renderOverlay(dst)
}

// renderGrid draws the cards and returns the next free row. Cards shrink to
// one row each when the full-size grid does not fit.
func (g *Game) renderGrid(dst *core.Screen, y int) int {
	n := len(g.cards)
	if n == 0 {
		return y
	}
	cols := g.columns()
	rows := (n + cols - 1) / cols

	h := cardHeight
	if y+rows*cardHeight > dst.Height()-3 {
		h = 1
	}

	gridW := cols*cardWidth + (cols-1)*cardGap
	x0 := (dst.Width() - gridW) / 2
	for i, c := range g.cards {
		r := core.NewRect(x0+(i%cols)*(cardWidth+cardGap), y+(i/cols)*h, cardWidth, h)
		g.cardRects = append(g.cardRects, r)

		face := "?"
		color := core.ColorBlue
		switch {
		case c.matched:
			face = c.item.Glyph
			color = core.ColorCorrect
		case c.up:
			face = c.item.Glyph
			color = core.ColorDefault
		}
		if face == "" {
			face = c.item.Name
		}
		if i == g.cursor {
			color = core.ColorHighlight
		}
		face = core.TruncateText(face, cardWidth-2, "")

		if h == 1 {
			dst.DrawTextColor(r.X, r.Y, "[", color)
			dst.DrawTextColor(r.X+1+(cardWidth-2-core.TextWidth(face))/2, r.Y, face, color)
			dst.DrawTextColor(r.Right()-1, r.Y, "]", color)
			continue
		}
		dst.DrawBoxColor(r, color)
		dst.DrawTextColor(r.X+1+(cardWidth-2-core.TextWidth(face))/2, r.Y+1, face, color)
	}
	return y + rows*h
}

func (g *Game) renderOverlay(dst *core.Screen) {
	engine := g.sess.Engine
	bottom := dst.Height() - 1

	switch {
	case g.paused:
		dst.DrawTextCenteredColor(dst.Height()/2, " PAUSED - press P to resume ", core.ColorHighlight)
	case engine.GameComplete():
		dst.DrawTextCenteredColor(bottom, "🎉 All pairs found! Press R to play again", core.ColorHighlight)
	case engine.LevelComplete():
		dst.DrawTextCenteredColor(bottom, "⭐ Level complete! Press N or Enter for the next level", core.ColorHighlight)
	}
}
