package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/levelup/internal/leveling"
	"github.com/vovakirdan/levelup/internal/storage"
)

// History layout constants
const (
	maxHistory    = 100 // Max calculations to load
	historyChrome = 8   // Lines used by title, tabs, help and margins
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Load    key.Binding
	Delete  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Load, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Load, k.Delete, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tier"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tier"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the saved calculations screen.
type HistoryModel struct {
	tiers     []leveling.Tier // Tabs; the empty tier means all
	tabCursor int
	store     *storage.Store
	items     []storage.Calculation
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	err       error
	selected  *storage.Calculation
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history screen listing saved calculations.
func NewHistoryModel(store *storage.Store, tiers []leveling.Tier, width, height int) HistoryModel {
	m := HistoryModel{
		tiers:  append([]leveling.Tier{""}, tiers...),
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates the table with columns sized to the screen.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Tier", Width: 6},
		{Title: "Nature", Width: 10},
		{Title: "Levels", Width: 11},
		{Title: "Candies", Width: 8},
		{Title: "Shards", Width: 12},
		{Title: "Saved", Width: 12},
		{Title: "Note", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-historyChrome)),
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

// load fetches calculations for the current tab.
func (m *HistoryModel) load() {
	m.items = nil
	m.err = nil
	if m.store != nil {
		m.items, m.err = m.store.RecentCalculations(string(m.tiers[m.tabCursor]), maxHistory)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded calculations.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.items))
	for i, c := range m.items {
		rows[i] = table.Row{
			fmt.Sprintf("%d", c.ID),
			c.Tier,
			leveling.Nature(c.Nature).Title(),
			fmt.Sprintf("%d → %d", c.StartLevel, c.FinalLevel),
			formatInt(c.Candies),
			formatShards(c.Shards),
			c.CreatedAt.Local().Format("Jan 02 15:04"),
			c.Note,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history screen.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tabCursor = (m.tabCursor + 1) % len(m.tiers)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tabCursor = (m.tabCursor + len(m.tiers) - 1) % len(m.tiers)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Load):
			if c, ok := m.current(); ok {
				m.selected = &c
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if c, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteCalculation(c.ID); err != nil {
					m.err = err
					return m, nil
				}
				cursor := m.table.Cursor()
				m.load()
				m.table.SetCursor(min(cursor, max(len(m.items)-1, 0)))
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateTableRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// current returns the calculation under the table cursor.
func (m HistoryModel) current() (storage.Calculation, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return storage.Calculation{}, false
	}
	return m.items[i], true
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("SAVED CALCULATIONS"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().MarginLeft(marginLeft).Render(b.String())
}

// renderTabs renders the tier filter tabs.
func (m HistoryModel) renderTabs() string {
	tabs := make([]string, len(m.tiers))
	for i, t := range m.tiers {
		name := "All"
		if t != "" {
			name = string(t)
		}
		if i == m.tabCursor {
			tabs[i] = selectedOptionStyle.Padding(0, 1).Render(name)
		} else {
			tabs[i] = optionStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if m.store == nil {
		return helpStyle.Italic(true).Padding(2, 4).Render("History is unavailable.\nThe database could not be opened.")
	}
	if len(m.items) == 0 {
		return helpStyle.Italic(true).Padding(2, 4).Render("No saved calculations yet.\nPress s on the calculator to save one!")
	}
	return m.table.View()
}

// Selected returns the calculation chosen with enter, if any.
func (m HistoryModel) Selected() *storage.Calculation {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to the calculator.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
