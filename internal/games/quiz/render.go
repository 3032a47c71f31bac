package quiz

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/edufy/internal/config"
	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/games/session"
	"github.com/vovakirdan/edufy/internal/round"
)

const (
	optionGap    = 2
	maxTextWidth = 60
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.optionRects = g.optionRects[:0]
	g.pieceRect = core.Rect{}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	desc := g.sess.Engine.Level().Description
	if g.cfg.Display.Target == config.TargetSequence {
		desc = ""
	}
	y := session.RenderHeader(dst, g.cfg.Prompt, desc)

	y = g.renderTarget(dst, y) + 1
	y = g.renderOptions(dst, y) + 1
	if y < dst.Height() {
		g.sess.RenderFeedback(dst, y)
	}

	if g.mouseDrag {
		if target, ok := g.sess.Engine.Target(); ok {
			dst.DrawTextColor(g.pointerX, g.pointerY, targetLabel(target, config.TargetGlyph), core.ColorHighlight)
		}
	}

	g.renderOverlay(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderTarget draws the target and returns the next free row.
func (g *Game) renderTarget(dst *core.Screen, y int) int {
	target, ok := g.sess.Engine.Target()
	if !ok {
		return y
	}

	if g.cfg.Display.Target == config.TargetSequence {
		return g.renderSequence(dst, y)
	}

	width := dst.Width() - 4
	if width > maxTextWidth {
		width = maxTextWidth
	}
	lines := []string{targetLabel(target, g.cfg.Display.Target)}
	if g.cfg.Display.Target == config.TargetText {
		text := target.Text
		if text == "" {
			text = target.Label()
		} else if target.Glyph != "" {
			text = target.Glyph + " " + text
		}
		lines = core.WrapText(text, width)
	}

	inner := 0
	for _, l := range lines {
		if w := core.TextWidth(l); w > inner {
			inner = w
		}
	}
	box := core.NewRect((dst.Width()-inner-4)/2, y, inner+4, len(lines)+2)

	color := core.ColorDefault
	if g.cfg.Interaction == config.InteractionDrag {
		g.pieceRect = box
		if g.grabbed {
			color = core.ColorHighlight
		}
	}
	if g.mouseDrag {
		dst.DrawBoxColor(box, core.ColorMuted)
		return box.Bottom()
	}

	dst.DrawBoxColor(box, color)
	for i, l := range lines {
		dst.DrawTextColor(box.X+2, box.Y+1+i, l, color)
	}
	return box.Bottom()
}

// renderSequence shows the finished part of the sequence, a blank for the
// current step and dots for the rest.
func (g *Game) renderSequence(dst *core.Screen, y int) int {
	engine := g.sess.Engine
	level := engine.Level()
	if level.Description != "" {
		dst.DrawTextCenteredColor(y, level.Description, core.ColorMuted)
		y += 2
	}

	pos := engine.Cursor() % len(level.Items)
	tokens := make([]string, len(level.Items))
	for i, it := range level.Items {
		switch {
		case i < pos:
			tokens[i] = targetLabel(it, config.TargetGlyph)
		case i == pos:
			tokens[i] = "_"
		default:
			tokens[i] = "·"
		}
	}
	line := strings.Join(tokens, " ")
	x := (dst.Width() - core.TextWidth(line)) / 2
	for i, tok := range tokens {
		color := core.ColorCorrect
		switch {
		case i == pos:
			color = core.ColorHighlight
		case i > pos:
			color = core.ColorMuted
		}
		x += dst.DrawTextColor(x, y, tok, color) + 1
	}
	return y + 1
}

// renderOptions lays the options out in a row of boxes when they fit, or as
// a list otherwise. Hit areas are recorded for pointer input.
func (g *Game) renderOptions(dst *core.Screen, y int) int {
	options := g.sess.Engine.Options()
	if len(options) == 0 {
		return y
	}

	labels := make([]string, len(options))
	total := -optionGap
	for i, it := range options {
		labels[i] = fmt.Sprintf("%d %s", i+1, optionLabel(it, g.cfg.Display.Options))
		total += core.TextWidth(labels[i]) + 4 + optionGap
	}

	if total <= dst.Width() {
		x := (dst.Width() - total) / 2
		for i, label := range labels {
			r := core.NewRect(x, y, core.TextWidth(label)+4, 3)
			color := g.optionColor(i)
			dst.DrawBoxColor(r, color)
			dst.DrawTextColor(r.X+2, r.Y+1, label, color)
			g.optionRects = append(g.optionRects, r)
			x = r.Right() + optionGap
		}
		return y + 3
	}

	width := 0
	for i, label := range labels {
		labels[i] = core.TruncateText(label, dst.Width()-4, "…")
		if w := core.TextWidth(labels[i]); w > width {
			width = w
		}
	}
	x := (dst.Width() - width - 2) / 2
	for i, label := range labels {
		if y >= dst.Height() {
			break
		}
		marker := "  "
		if i == g.selected {
			marker = "▸ "
		}
		dst.DrawTextColor(x, y, marker+label, g.optionColor(i))
		g.optionRects = append(g.optionRects, core.NewRect(x, y, width+2, 1))
		y++
	}
	return y
}

func (g *Game) optionColor(i int) core.Color {
	if i != g.selected {
		return core.ColorDefault
	}
	if g.grabbed {
		return core.ColorCyan
	}
	return core.ColorHighlight
}

func (g *Game) renderOverlay(dst *core.Screen) {
	engine := g.sess.Engine
	bottom := dst.Height() - 1

	switch {
	case g.paused:
		dst.DrawTextCenteredColor(dst.Height()/2, " PAUSED - press P to resume ", core.ColorHighlight)
	case engine.GameComplete():
		dst.DrawTextCenteredColor(bottom, "🎉 All levels done! Press R to play again", core.ColorHighlight)
	case engine.LevelComplete():
		dst.DrawTextCenteredColor(bottom, "⭐ Level complete! Press N or Enter for the next level", core.ColorHighlight)
	case g.cfg.Interaction == config.InteractionDrag && !g.grabbed:
		dst.DrawTextCenteredColor(bottom, "Drag the piece with the mouse, or Enter to pick it up", core.ColorMuted)
	}
}

func targetLabel(it round.Item, mode string) string {
	switch mode {
	case config.TargetName:
		if it.Name != "" {
			return it.Name
		}
	case config.TargetText:
		if it.Text != "" {
			return it.Text
		}
	default:
		if it.Glyph != "" {
			return it.Glyph
		}
	}
	return it.Label()
}

func optionLabel(it round.Item, mode string) string {
	switch mode {
	case config.OptionsGlyph:
		if it.Glyph != "" {
			return it.Glyph
		}
		return it.Name
	case config.OptionsBoth:
		return it.Label()
	default:
		if it.Name != "" {
			return it.Name
		}
		return it.Glyph
	}
}
