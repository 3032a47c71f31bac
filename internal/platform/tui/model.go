// Package tui provides the Bubble Tea shell for the games: the tick loop,
// key and mouse mapping, the HUD, and the game and level pickers.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/registry"
)

// Rows taken by the HUD above the game screen and the help bar below it.
const (
	hudHeight    = 2
	footerHeight = 1
)

var (
	hudTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	hudInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hudAlertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig // Terminal size, not the game screen size
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	progress   progress.Model
	logger     *log.Logger
	quitting   bool
	back       bool
}

// NewModel creates a new Bubble Tea model for the given game. A nil logger
// discards output.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	km := NewKeyMapper()
	km.offsetY = hudHeight

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  km,
		help:       h,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		logger:     logger.With("session", uuid.NewString(), "game", game.ID()),
	}
	gc := m.gameConfig()
	m.screen = core.NewScreen(gc.ScreenW, gc.ScreenH)
	m.progress.Width = progressWidth(cfg.ScreenW)
	return m
}

// gameConfig is the runtime config as the game sees it: the terminal minus
// the HUD and help rows.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH -= hudHeight + footerHeight
	if cfg.ScreenH < 0 {
		cfg.ScreenH = 0
	}
	return cfg
}

func progressWidth(termW int) int {
	w := termW / 3
	if w > 40 {
		w = 40
	}
	if w < 10 {
		w = 10
	}
	return w
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Info("session started", "seed", m.config.Seed, "levels", len(m.game.Levels()))
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
	case core.ActionQuit:
		m.quitting = true
		m.logEnd("quit")
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		m.logEnd("back")
		return m, tea.Quit
	}
	return m, nil
}

type resizer interface {
	Resize(w, h int)
}

// handleResize processes window resize events. Games that can relayout keep
// their session; others are reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)
	m.help.Width = msg.Width
	m.progress.Width = progressWidth(msg.Width)

	if r, ok := m.game.(resizer); ok {
		r.Resize(gc.ScreenW, gc.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(gc)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, e := range result.Events {
		m.logEvent(e)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) logEvent(e core.Event) {
	kv := []any{"level", e.Level, "score", e.Score}
	if e.Target != "" {
		kv = append(kv, "target", e.Target)
	}
	switch e.Name {
	case core.EventLevelComplete, core.EventGameComplete, core.EventTimeUp:
		m.logger.Info(e.Name, kv...)
	default:
		m.logger.Debug(e.Name, kv...)
	}
}

func (m Model) logEnd(reason string) {
	m.logger.Info("session ended", "reason", reason, "level", m.gameState.Level, "score", m.gameState.Score)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(m.renderHUD())
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// renderHUD draws the title, level, countdown and the score progress bar.
func (m Model) renderHUD() string {
	st := m.gameState
	if st.LevelCount == 0 {
		st = m.game.State()
	}

	parts := []string{
		hudTitleStyle.Render(m.game.Title()),
		hudInfoStyle.Render(fmt.Sprintf("Level %d/%d", st.Level, st.LevelCount)),
	}
	if st.Timed {
		timer := fmt.Sprintf("⏱ %ds", st.TimeLeft)
		if st.TimeLeft <= 10 {
			parts = append(parts, hudAlertStyle.Render(timer))
		} else {
			parts = append(parts, hudInfoStyle.Render(timer))
		}
	}
	if st.Paused {
		parts = append(parts, hudAlertStyle.Render("PAUSED"))
	}
	line1 := strings.Join(parts, "  ")

	percent := 0.0
	if st.Goal > 0 {
		percent = float64(st.Score) / float64(st.Goal)
	}
	line2 := m.progress.ViewAs(percent) + hudInfoStyle.Render(fmt.Sprintf("  ★ %d/%d", st.Score, st.Goal))

	return line1 + "\n" + line2
}

// RunResult reports how a game session ended.
type RunResult struct {
	Back  bool // The player asked to return to the menu
	State core.GameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) (RunResult, error) {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{}, nil
	}
	return RunResult{Back: m.back, State: m.gameState}, nil
}
