package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell is one terminal column of the screen buffer.
// Text holds a whole grapheme cluster so emoji with modifiers survive.
// A cluster two columns wide occupies its own cell plus a continuation cell
// to the right, which has Cont set and empty Text.
type Cell struct {
	Text  string
	Color Color
	Cont  bool
}

var blankCell = Cell{Text: " "}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple text operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in columns.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in rows.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// put writes one grapheme cluster of the given width at (x, y), repairing
// any wide cluster it partially overwrites. Returns the columns used.
func (s *Screen) put(x, y int, cluster string, w int, c Color) int {
	if w <= 0 {
		return 0
	}
	if !s.inBounds(x, y) {
		return w
	}
	if w > 1 && x+w > s.width {
		// A wide cluster that does not fit is replaced by padding.
		for i := x; i < s.width; i++ {
			s.erase(i, y)
			s.cells[y][i] = Cell{Text: " ", Color: c}
		}
		return w
	}

	for i := 0; i < w; i++ {
		s.erase(x+i, y)
	}
	s.cells[y][x] = Cell{Text: cluster, Color: c}
	for i := 1; i < w; i++ {
		s.cells[y][x+i] = Cell{Color: c, Cont: true}
	}
	return w
}

// erase blanks the cell at (x, y) together with the rest of the wide
// cluster it belongs to.
func (s *Screen) erase(x, y int) {
	row := s.cells[y]
	if row[x].Cont {
		lead := x
		for lead > 0 && row[lead].Cont {
			lead--
		}
		for i := lead; i < x; i++ {
			row[i] = blankCell
		}
	}
	row[x] = blankCell
	for i := x + 1; i < s.width && row[i].Cont; i++ {
		row[i] = blankCell
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColor(x, y, r, ColorDefault)
}

// SetColor places a colored rune at the given position.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = 1
	}
	s.put(x, y, string(r), w, c)
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return blankCell
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y) and returns the
// number of columns it spans. Characters beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) int {
	return s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor is DrawText with a foreground color.
func (s *Screen) DrawTextColor(x, y int, text string, c Color) int {
	col := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		col += s.put(col, y, cluster, clusterWidth(cluster), c)
	}
	return col - x
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawTextCenteredColor(y, text, ColorDefault)
}

// DrawTextCenteredColor draws colored text centered horizontally.
func (s *Screen) DrawTextCenteredColor(y int, text string, c Color) {
	x := (s.width - TextWidth(text)) / 2
	s.DrawTextColor(x, y, text, c)
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	s.DrawBoxColor(r, ColorDefault)
}

// DrawBoxColor draws a colored box outline.
func (s *Screen) DrawBoxColor(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	s.SetColor(r.X, r.Y, '┌', c)
	s.SetColor(r.Right()-1, r.Y, '┐', c)
	s.SetColor(r.X, r.Bottom()-1, '└', c)
	s.SetColor(r.Right()-1, r.Bottom()-1, '┘', c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetColor(x, r.Y, '─', c)
		s.SetColor(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetColor(r.X, y, '│', c)
		s.SetColor(r.Right()-1, y, '│', c)
	}
}

// DrawHLine draws a colored horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := 0; i < length; i++ {
		s.SetColor(x+i, y, r, c)
	}
}

// String converts the screen buffer to a plain string, rows joined with
// newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, cell := range s.cells[y] {
		if !cell.Cont {
			sb.WriteString(cell.Text)
		}
	}
	return sb.String()
}

// TextWidth returns the number of terminal columns text occupies.
func TextWidth(text string) int {
	w := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w += clusterWidth(g.Str())
	}
	return w
}

// TruncateText cuts text to at most width columns, appending tail when cut.
func TruncateText(text string, width int, tail string) string {
	if TextWidth(text) <= width {
		return text
	}
	limit := width - TextWidth(tail)
	var sb strings.Builder
	w := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cw := clusterWidth(g.Str())
		if w+cw > limit {
			break
		}
		sb.WriteString(g.Str())
		w += cw
	}
	return sb.String() + tail
}

// WrapText breaks text into lines no wider than width, splitting on spaces.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var line strings.Builder
	lineW := 0
	for _, word := range strings.Fields(text) {
		ww := TextWidth(word)
		if lineW > 0 && lineW+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineW = 0
		}
		if lineW > 0 {
			line.WriteByte(' ')
			lineW++
		}
		line.WriteString(word)
		lineW += ww
	}
	if lineW > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// clusterWidth treats emoji presentation sequences as two columns, which is
// how terminals draw them.
func clusterWidth(cluster string) int {
	if strings.ContainsRune(cluster, '\uFE0F') {
		return 2
	}
	return runewidth.StringWidth(cluster)
}
