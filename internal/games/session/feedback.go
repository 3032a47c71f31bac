package session

import "github.com/vovakirdan/edufy/internal/core"

// Toast is a short-lived feedback message counted down in ticks.
type Toast struct {
	Text  string
	Color core.Color
	ttl   int
}

// Show replaces the current message.
func (t *Toast) Show(text string, c core.Color, ticks int) {
	t.Text = text
	t.Color = c
	t.ttl = ticks
}

// Active reports whether the message is still visible.
func (t Toast) Active() bool {
	return t.ttl > 0 && t.Text != ""
}

func (t *Toast) step() {
	if t.ttl > 0 {
		t.ttl--
	}
}

// Mood is the mascot's expression.
type Mood int

const (
	MoodNeutral Mood = iota
	MoodHappy
	MoodWorried
	MoodCelebrate
)

// Face returns the mascot drawing for the mood.
func (m Mood) Face() string {
	switch m {
	case MoodHappy:
		return "ʕ^ᴥ^ʔ"
	case MoodWorried:
		return "ʕ•︵•ʔ"
	case MoodCelebrate:
		return "\\ʕ^ᴥ^ʔ/"
	default:
		return "ʕ•ᴥ•ʔ"
	}
}

// Color returns the color the mascot is drawn in.
func (m Mood) Color() core.Color {
	switch m {
	case MoodHappy:
		return core.ColorPink
	case MoodWorried:
		return core.ColorOrange
	case MoodCelebrate:
		return core.ColorMagenta
	default:
		return core.ColorWhite
	}
}

// headerRuleWidth caps the rule drawn under the header.
const headerRuleWidth = 60

// RenderHeader draws the game prompt and the level description with a rule
// below them. Returns the next free row.
func RenderHeader(dst *core.Screen, prompt, desc string) int {
	y := 0
	if prompt != "" {
		dst.DrawTextCenteredColor(y, prompt, core.ColorCyan)
		y++
	}
	if desc != "" {
		dst.DrawTextCenteredColor(y, desc, core.ColorMuted)
	}
	w := min(dst.Width()-4, headerRuleWidth)
	dst.DrawHLine((dst.Width()-w)/2, y+1, w, '─', core.ColorMuted)
	return y + 2
}

// RenderFeedback draws the mascot and the active toast centered on row y,
// and the hint, wrapped, on the rows below. Returns the rows used.
func (s *Session) RenderFeedback(dst *core.Screen, y int) int {
	face := s.mood.Face()
	width := core.TextWidth(face)
	if s.toast.Active() {
		width += 2 + core.TextWidth(s.toast.Text)
	}
	x := (dst.Width() - width) / 2
	x += dst.DrawTextColor(x, y, face, s.mood.Color())
	if s.toast.Active() {
		dst.DrawTextColor(x+2, y, s.toast.Text, s.toast.Color)
	}
	rows := 1

	if s.hint == "" {
		return rows
	}
	hintW := min(dst.Width()-4, 70)
	for i, l := range core.WrapText("💡 "+s.hint, hintW) {
		if y+1+i >= dst.Height() {
			break
		}
		dst.DrawTextCenteredColor(y+1+i, l, core.ColorMuted)
		rows++
	}
	return rows
}
