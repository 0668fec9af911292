package tui

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Options configure a game session.
type Options struct {
	Config  config.TetrisConfig
	Runtime core.RuntimeConfig
	// Lines is the line target. Zero shows the line prompt first, where an
	// empty answer takes Config.Gameplay.Lines.
	Lines  int
	Logger *log.Logger
}

// Model is the Bubble Tea model for one Tetris session: an optional line
// prompt followed by the game.
type Model struct {
	cfg        config.TetrisConfig
	runtime    core.RuntimeConfig
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	prompt     PromptModel
	prompting  bool
	game       *tetris.Game
	lines      int
	screen     *core.Screen
	showHelp   bool
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a session model.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := NewKeyMap(opts.Config.Keys)
	m := Model{
		cfg:        opts.Config,
		runtime:    rt,
		logger:     logger,
		keys:       keys,
		help:       help.New(),
		prompt:     NewPromptModel(keys, opts.Config.Gameplay.Lines),
		prompting:  opts.Lines <= 0,
		lines:      opts.Lines,
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH),
		inputFrame: core.NewInputFrame(),
	}
	m.layout()

	if !m.prompting {
		m.startGame()
	}
	return m
}

// Init starts the tick loop, or the prompt when no line target was given.
func (m Model) Init() tea.Cmd {
	if m.prompting {
		return m.prompt.Init()
	}
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.layout()
		return m, nil
	}

	if m.prompting {
		return m.updatePrompt(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// updatePrompt forwards messages to the line prompt and starts the game
// once a valid count is submitted.
func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)

	if m.prompt.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if lines, ok := m.prompt.Lines(); ok {
		m.lines = lines
		m.prompting = false
		m.startGame()
		return m, tickCmd(m.runtime.TickRate)
	}
	return m, cmd
}

// handleKey records held actions for the next tick. Restart and quit act
// immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.logger.Info("quit", "frames", m.gameState.Frames, "lines_left", m.gameState.LinesLeft)
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.runtime.Seed = time.Now().UnixNano()
			m.game.Reset(m.runtime)
			m.gameState = m.game.State()
			m.inputFrame.Clear()
			m.logStart()
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick steps the game once with the keys pressed since the last tick.
// A finished game is no longer stepped.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.gameState.GameOver {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State

		if m.gameState.GameOver {
			m.logGameOver()
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.runtime.TickRate)
}

// startGame builds the game from the configuration and the line target.
func (m *Model) startGame() {
	rules := m.cfg.Rules()
	rules.Lines = m.lines

	m.game = tetris.New(rules, rand.New(rand.NewSource(m.runtime.Seed)))
	m.game.SetGlyphs(m.cfg.TetrisGlyphs())
	m.game.SetTickRate(m.runtime.TickRate)
	m.gameState = m.game.State()
	m.logStart()
}

// layout sizes the game screen, keeping a row for the help line when the
// terminal has room for it.
func (m *Model) layout() {
	w, h := m.runtime.ScreenW, m.runtime.ScreenH
	_, needH := tetris.LayoutSize(m.cfg.Board.Width, m.cfg.Board.Height)

	m.showHelp = h > needH
	if m.showHelp {
		h--
	}
	m.help.Width = w
	m.screen.Resize(w, h)
}

func (m Model) logStart() {
	m.logger.Info("game started", "lines", m.lines, "seed", m.runtime.Seed)
}

func (m Model) logGameOver() {
	result := "lost"
	if m.gameState.Won {
		result = "won"
	}
	m.logger.Info("game over",
		"result", result,
		"lines", m.lines,
		"lines_left", m.gameState.LinesLeft,
		"time", tetris.FormatElapsed(m.gameState.Frames, m.runtime.TickRate),
	)
}

// Game returns the running game, or nil while prompting.
func (m Model) Game() *tetris.Game {
	return m.game
}

// State returns the state reported by the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.prompting {
		return m.prompt.View()
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.showHelp {
		out += "\n" + promptHelpStyle.Render(lipgloss.PlaceHorizontal(m.runtime.ScreenW, lipgloss.Center, m.help.View(m.keys)))
	}
	return out
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
