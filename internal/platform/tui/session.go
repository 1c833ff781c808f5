package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelup/internal/calculator"
	"github.com/vovakirdan/levelup/internal/config"
	"github.com/vovakirdan/levelup/internal/leveling"
	"github.com/vovakirdan/levelup/internal/storage"
)

// Deps are the shared resources a session is built from.
// Store may be nil when history is unavailable.
type Deps struct {
	Book   *leveling.Book
	Config config.Config
	Bounds *calculator.BoundCache
	Store  *storage.Store
	Logger *log.Logger
}

// SessionModel manages the calculator and history screens of one user.
// This is the top-level model for both local and SSH sessions.
type SessionModel struct {
	deps     Deps
	calc     CalculatorModel
	history  *HistoryModel
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a session with a fresh calculator.
func NewSessionModel(deps Deps, width, height int) (SessionModel, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	calc, err := calculator.New(deps.Book, deps.Config, deps.Bounds)
	if err != nil {
		return SessionModel{}, fmt.Errorf("cannot create calculator: %w", err)
	}

	return SessionModel{
		deps:   deps,
		calc:   NewCalculatorModel(calc, deps.Store, deps.Logger, deps.Config.Repeat, width, height),
		width:  width,
		height: height,
	}, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.calc.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Both screens track the size so switching does not need a resize event
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		if m.history != nil {
			next, _ := m.calc.Update(msg)
			m.calc = next.(CalculatorModel)
		}
	}

	if m.history != nil {
		return m.updateHistory(msg)
	}
	return m.updateCalculator(msg)
}

// updateCalculator handles updates on the calculator screen.
func (m SessionModel) updateCalculator(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.calc.Update(msg)
	if cm, ok := next.(CalculatorModel); ok {
		m.calc = cm
	}

	if m.calc.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.calc.WantsHistory() {
		m.calc.ClearHistoryRequest()
		h := NewHistoryModel(m.deps.Store, m.calc.calc.Tiers(), m.width, m.height)
		m.history = &h
		return m, h.Init()
	}

	return m, cmd
}

// updateHistory handles updates on the history screen.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if hm, ok := next.(HistoryModel); ok {
		m.history = &hm
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if sel := m.history.Selected(); sel != nil {
		if err := m.calc.Restore(*sel); err != nil {
			m.deps.Logger.Warn("cannot restore calculation", "id", sel.ID, "error", err)
			m.calc.setError(fmt.Sprintf("Cannot load #%d: %v", sel.ID, err))
		}
		m.history = nil
		return m, nil
	}

	if m.history.IsGoingBack() {
		m.history = nil
		return m, nil
	}

	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}
	return m.calc.View()
}

// Run starts an interactive session in the local terminal.
func Run(deps Deps, width, height int) error {
	model, err := NewSessionModel(deps, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}
