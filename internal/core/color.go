package core

// Color is a foreground color for a screen cell. The platform maps it to a
// terminal palette entry.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPink
	ColorGray
)

// Feedback colors shared by the games.
const (
	ColorCorrect   = ColorGreen
	ColorIncorrect = ColorRed
	ColorHighlight = ColorYellow
	ColorMuted     = ColorGray
)
