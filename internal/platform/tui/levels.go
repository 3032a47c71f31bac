package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/edufy/internal/core"
)

// LevelPickerKeyMap defines the key bindings for the level picker.
type LevelPickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LevelPickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LevelPickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Back, k.Quit}}
}

// DefaultLevelPickerKeyMap returns default key bindings.
func DefaultLevelPickerKeyMap() LevelPickerKeyMap {
	return LevelPickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LevelPickerModel lets the player choose the level to start at.
type LevelPickerModel struct {
	title    string
	levels   []core.LevelInfo
	table    table.Model
	help     help.Model
	keys     LevelPickerKeyMap
	width    int
	height   int
	level    int // 1-based choice, 0 until chosen
	quitting bool
	back     bool
}

// NewLevelPickerModel creates a level picker for a game.
func NewLevelPickerModel(title string, levels []core.LevelInfo, width, height int) LevelPickerModel {
	m := LevelPickerModel{
		title:  title,
		levels: levels,
		help:   help.New(),
		keys:   DefaultLevelPickerKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	return m
}

// createTable builds the level table sized to the window.
func (m LevelPickerModel) createTable() table.Model {
	descW := m.width - 32
	if descW < 20 {
		descW = 20
	}
	if descW > 50 {
		descW = 50
	}
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Goal", Width: 6},
		{Title: "Timer", Width: 7},
		{Title: "Description", Width: descW},
	}

	rows := make([]table.Row, len(m.levels))
	for i, l := range m.levels {
		timer := "-"
		if l.TimeLimit > 0 {
			timer = fmt.Sprintf("%ds", l.TimeLimit)
		}
		rows[i] = table.Row{strconv.Itoa(l.Number), strconv.Itoa(l.Goal), timer, l.Description}
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	if height > len(rows)+1 {
		height = len(rows) + 1
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the level picker.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the level picker.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if len(m.levels) > 0 {
				m.level = m.table.Cursor() + 1
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the level picker.
func (m LevelPickerModel) View() string {
	if m.quitting || m.back || m.level > 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(m.title+" - choose a level"), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Choice returns the chosen 1-based level, 0 if none was chosen.
func (m LevelPickerModel) Choice() int {
	return m.level
}

// LevelPickerResult holds the result of running the level picker.
type LevelPickerResult struct {
	Level int // 1-based, 0 when nothing was chosen
	Back  bool
	Quit  bool
}

// RunLevelPicker shows the level table and returns the player's choice.
func RunLevelPicker(title string, levels []core.LevelInfo, width, height int) (LevelPickerResult, error) {
	p := tea.NewProgram(
		NewLevelPickerModel(title, levels, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return LevelPickerResult{}, err
	}
	m, ok := finalModel.(LevelPickerModel)
	if !ok {
		return LevelPickerResult{Quit: true}, nil
	}
	return LevelPickerResult{Level: m.level, Back: m.back, Quit: m.quitting}, nil
}
