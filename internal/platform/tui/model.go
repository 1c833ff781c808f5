package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelup/internal/calculator"
	"github.com/vovakirdan/levelup/internal/config"
	"github.com/vovakirdan/levelup/internal/leveling"
	"github.com/vovakirdan/levelup/internal/storage"
)

// field identifies a focusable form row.
type field int

const (
	fieldTier field = iota
	fieldNature
	fieldStartLevel
	fieldRemainingExp
	fieldBoostRate
	fieldDepletionRate
	fieldTargetLevel
	fieldCount
)

// isText reports whether the field is a numeric text input.
func (f field) isText() bool {
	return f >= fieldStartLevel && f <= fieldTargetLevel
}

// Layout constants
const (
	marginLeft  = 2
	barMaxWidth = 48
)

// savedMsg reports the result of saving a calculation.
type savedMsg struct {
	id  int64
	err error
}

// CalculatorModel is the Bubble Tea model for the calculator screen.
type CalculatorModel struct {
	calc     *calculator.Calculator
	store    *storage.Store
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	bar      progress.Model
	inputs   [fieldCount]textinput.Model
	focus    field
	repeater Repeater
	width    int
	height   int

	status      string
	statusIsErr bool
	quitting    bool
	wantHistory bool
}

// NewCalculatorModel creates the calculator screen.
// store may be nil, in which case saving is disabled.
func NewCalculatorModel(calc *calculator.Calculator, store *storage.Store, logger *log.Logger, repeat config.RepeatConfig, width, height int) CalculatorModel {
	m := CalculatorModel{
		calc:     calc,
		store:    store,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		repeater: NewRepeater(repeat.Delay(), repeat.Interval()),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.bar.Width = barWidth(width)

	for f := fieldStartLevel; f <= fieldTargetLevel; f++ {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 12
		m.inputs[f] = ti
	}
	m.syncInputs()

	return m
}

// Init initializes the calculator screen.
func (m CalculatorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the calculator screen.
func (m CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = barWidth(msg.Width)
		return m, nil

	case RepeatMsg:
		ok, next := m.repeater.Accept(msg)
		if !ok {
			return m, nil
		}
		m.press(msg.Button)
		if !m.enabled(msg.Button) {
			m.repeater.Stop()
			return m, nil
		}
		return m, next

	case savedMsg:
		if msg.err != nil {
			m.logger.Error("save failed", "error", msg.err)
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
		} else {
			m.logger.Debug("calculation saved", "id", msg.id)
			m.setStatus(fmt.Sprintf("Saved calculation #%d", msg.id))
		}
		return m, nil
	}

	// Forward cursor blink and other input messages to the focused field
	if m.focus.isText() {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m CalculatorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Editing keys go straight to the focused text field
	if m.focus.isText() && (isFieldKey(msg) || msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.commit()
		cmd = m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keys.Prev):
		m.commit()
		cmd = m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.Left):
		m.cycleOption(-1)

	case key.Matches(msg, m.keys.Right):
		m.cycleOption(1)

	case key.Matches(msg, m.keys.Minus10):
		cmd = m.press(ButtonMinus10)
	case key.Matches(msg, m.keys.Minus1):
		cmd = m.press(ButtonMinus1)
	case key.Matches(msg, m.keys.Zero):
		cmd = m.press(ButtonZero)
	case key.Matches(msg, m.keys.Plus1):
		cmd = m.press(ButtonPlus1)
	case key.Matches(msg, m.keys.Plus10):
		cmd = m.press(ButtonPlus10)

	case key.Matches(msg, m.keys.Calculate):
		m.commit()
		cmd = m.press(ButtonCalculate)

	case key.Matches(msg, m.keys.Reset):
		cmd = m.press(ButtonReset)

	case key.Matches(msg, m.keys.Save):
		m.commit()
		cmd = m.press(ButtonSave)

	case key.Matches(msg, m.keys.History):
		m.commit()
		m.wantHistory = true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, cmd
}

// handleMouse implements press-and-hold on the candy buttons.
func (m CalculatorModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	_, zones := m.layout()
	over := hit(zones, msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || over == ButtonNone || !m.enabled(over) {
			return m, nil
		}
		m.commit()
		cmd := m.press(over)
		if over.Repeats() && m.enabled(over) {
			cmd = tea.Batch(cmd, m.repeater.Start(over))
		}
		return m, cmd

	case tea.MouseActionRelease:
		m.repeater.Stop()

	case tea.MouseActionMotion:
		// Leaving the held button cancels the hold
		if m.repeater.Active() && over != m.repeater.Held() {
			m.repeater.Stop()
		}
	}

	return m, nil
}

// press performs a button's action.
func (m *CalculatorModel) press(b Button) tea.Cmd {
	if !m.enabled(b) {
		return nil
	}

	switch b {
	case ButtonMinus10, ButtonMinus1, ButtonPlus1, ButtonPlus10:
		m.calc.AddCount(b.Delta())
	case ButtonZero:
		m.calc.ZeroCount()
	case ButtonCalculate:
		n := m.calc.CalculateTarget()
		m.setStatus(fmt.Sprintf("Lv. %d needs %s candies", m.calc.Settings().TargetLevel, formatInt(n)))
	case ButtonReset:
		if err := m.calc.Reset(); err != nil {
			m.setError(err.Error())
			return nil
		}
		m.syncInputs()
		m.setStatus("Reset to defaults")
	case ButtonSave:
		return m.saveCmd()
	}
	return nil
}

// enabled reports whether a button can be pressed in the current state.
func (m CalculatorModel) enabled(b Button) bool {
	switch b {
	case ButtonMinus10, ButtonMinus1, ButtonZero:
		return m.calc.CanDecrease()
	case ButtonPlus1, ButtonPlus10:
		return m.calc.CanIncrease()
	case ButtonSave:
		return m.store != nil
	case ButtonCalculate, ButtonReset:
		return true
	default:
		return false
	}
}

// saveCmd stores a snapshot of the current calculation.
func (m CalculatorModel) saveCmd() tea.Cmd {
	store := m.store
	calc := snapshot(m.calc)
	return func() tea.Msg {
		id, err := store.SaveCalculation(calc)
		return savedMsg{id: id, err: err}
	}
}

// snapshot converts the calculator state into a storage record.
func snapshot(c *calculator.Calculator) storage.Calculation {
	s := c.Settings()
	res := c.Outcome()
	return storage.Calculation{
		Tier:                string(s.Tier),
		Nature:              string(s.Nature),
		StartLevel:          s.StartLevel,
		InitialRemainingExp: s.InitialRemainingExp,
		BoostRate:           s.BoostRate,
		DepletionRate:       s.DepletionRate,
		TargetLevel:         s.TargetLevel,
		Candies:             c.Count(),
		FinalLevel:          res.FinalLevel,
		RemainingExp:        res.RemainingExp,
		Shards:              c.Shards(),
	}
}

// Restore loads a saved calculation into the form.
func (m *CalculatorModel) Restore(saved storage.Calculation) error {
	if err := m.calc.SetTier(leveling.Tier(saved.Tier)); err != nil {
		return err
	}
	m.calc.SetNature(leveling.Nature(saved.Nature))
	m.calc.SetBoostRate(saved.BoostRate)
	m.calc.SetDepletionRate(saved.DepletionRate)
	m.calc.SetStartLevel(saved.StartLevel)
	m.calc.SetInitialRemainingExp(saved.InitialRemainingExp)
	m.calc.SetTargetLevel(saved.TargetLevel)
	m.calc.SetCount(saved.Candies)
	m.syncInputs()
	m.setStatus(fmt.Sprintf("Loaded calculation #%d", saved.ID))
	return nil
}

// cycleOption moves the tier or nature selection.
func (m *CalculatorModel) cycleOption(dir int) {
	s := m.calc.Settings()

	switch m.focus {
	case fieldTier:
		tiers := m.calc.Tiers()
		i := indexOf(tiers, s.Tier)
		next := tiers[(i+dir+len(tiers))%len(tiers)]
		if err := m.calc.SetTier(next); err != nil {
			m.setError(err.Error())
			return
		}
		m.syncInputs()

	case fieldNature:
		i := indexOf(leveling.AllNatures, s.Nature)
		n := len(leveling.AllNatures)
		m.calc.SetNature(leveling.AllNatures[(i+dir+n)%n])
	}
}

// setFocus moves focus, blurring and focusing text inputs as needed.
func (m *CalculatorModel) setFocus(f field) tea.Cmd {
	if m.focus.isText() {
		m.inputs[m.focus].Blur()
	}
	m.focus = f
	if f.isText() {
		m.inputs[f].CursorEnd()
		return m.inputs[f].Focus()
	}
	return nil
}

// commit applies the focused text field to the calculator, like a blur.
func (m *CalculatorModel) commit() {
	if !m.focus.isText() {
		return
	}

	raw := m.inputs[m.focus].Value()
	switch m.focus {
	case fieldStartLevel:
		m.calc.SetStartLevel(calculator.ParseInt(raw))
	case fieldRemainingExp:
		m.calc.SetInitialRemainingExp(calculator.ParseInt(raw))
	case fieldBoostRate:
		m.calc.SetBoostRate(calculator.ParseInt(raw))
	case fieldDepletionRate:
		m.calc.SetDepletionRate(calculator.ParseFloat(raw))
	case fieldTargetLevel:
		m.calc.SetTargetLevel(calculator.ParseInt(raw))
	}
	m.syncInputs()
}

// syncInputs copies the calculator's clamped settings back into the fields.
func (m *CalculatorModel) syncInputs() {
	s := m.calc.Settings()
	m.inputs[fieldStartLevel].SetValue(strconv.Itoa(s.StartLevel))
	m.inputs[fieldRemainingExp].SetValue(strconv.Itoa(s.InitialRemainingExp))
	m.inputs[fieldBoostRate].SetValue(strconv.Itoa(s.BoostRate))
	m.inputs[fieldDepletionRate].SetValue(strconv.FormatFloat(s.DepletionRate, 'f', -1, 64))
	m.inputs[fieldTargetLevel].SetValue(strconv.Itoa(s.TargetLevel))
}

func (m *CalculatorModel) setStatus(s string) {
	m.status = s
	m.statusIsErr = false
}

func (m *CalculatorModel) setError(s string) {
	m.status = s
	m.statusIsErr = true
}

// IsQuitting returns true if user requested to quit.
func (m CalculatorModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user asked for the history screen.
func (m CalculatorModel) WantsHistory() bool {
	return m.wantHistory
}

// ClearHistoryRequest resets the history flag after the screen switched.
func (m *CalculatorModel) ClearHistoryRequest() {
	m.wantHistory = false
}

// View renders the calculator screen.
func (m CalculatorModel) View() string {
	if m.quitting {
		return ""
	}
	view, _ := m.layout()
	return view
}

// layout renders the screen and reports where the buttons landed, so mouse
// events can be matched against the same geometry that was drawn.
func (m CalculatorModel) layout() (string, []zone) {
	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}

	s := m.calc.Settings()
	capLevel := m.calc.Table().CapLevel()
	lim := m.calc.Limits()

	add(titleStyle.Render("Level Up"))
	add("")

	// Settings
	add(m.label(fieldTier, "Species (EXP Table):") + m.tierOptions(s.Tier))
	add(m.label(fieldNature, "Natures (EXP Gains):") + m.natureOptions(s.Nature))
	add(m.textRow(fieldStartLevel, "Start Level:", fmt.Sprintf("(1-%d)", capLevel)))
	add(m.textRow(fieldRemainingExp, "Initial Remaining EXP:",
		fmt.Sprintf("(1-%s)", formatInt(max(m.calc.Table().RequiredExp(s.StartLevel), 1)))))
	add(m.textRow(fieldBoostRate, "EXP Boost Rate:", fmt.Sprintf("(1-%d)", lim.MaxBoostRate)))
	add(m.textRow(fieldDepletionRate, "Dream Shards Depletion Rate:", fmt.Sprintf("(1-%g)", lim.MaxDepletionRate)))
	add(m.textRow(fieldTargetLevel, "Target Level:", fmt.Sprintf("(%d-%d)", min(s.StartLevel+1, capLevel), capLevel)))
	add("")

	// Result panel
	add(panelStyle.Render(m.resultPanel()))
	add("")

	// Buttons
	var zones []zone
	for i, buttons := range [][]Button{countButtons, actionButtons} {
		if i > 0 {
			add("")
		}
		row, z := buttonRow(buttons, marginLeft, len(lines), m.buttonStyle)
		add(row)
		zones = append(zones, z...)
	}
	add("")

	if m.status != "" {
		if m.statusIsErr {
			add(errorStyle.Render(m.status))
		} else {
			add(statusStyle.Render(m.status))
		}
	}
	add(helpStyle.Render(m.help.View(m.keys)))

	pad := strings.Repeat(" ", marginLeft)
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n"), zones
}

func (m CalculatorModel) resultPanel() string {
	s := m.calc.Settings()
	res := m.calc.Outcome()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Lv. %d → Lv. %d", s.StartLevel, res.FinalLevel)))
	if res.Capped(m.calc.Table()) {
		b.WriteString(helpStyle.Render("  (max level)"))
	}
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.calc.Progress()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Until next level:      %s EXP\n", formatInt(res.RemainingExp)))
	b.WriteString(fmt.Sprintf("Candies Used:          %s / %s\n", formatInt(m.calc.Count()), formatInt(m.calc.MaxItems())))
	b.WriteString(fmt.Sprintf("Required Dream Shards: %s", formatShards(m.calc.Shards())))
	return b.String()
}

func (m CalculatorModel) label(f field, text string) string {
	if m.focus == f {
		return focusedLabelStyle.Render("> " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m CalculatorModel) textRow(f field, text, hint string) string {
	return m.label(f, text) + m.inputs[f].View() + " " + helpStyle.Render(hint)
}

func (m CalculatorModel) tierOptions(selected leveling.Tier) string {
	tiers := m.calc.Tiers()
	parts := make([]string, len(tiers))
	for i, t := range tiers {
		parts[i] = renderOption(t.Title(), t == selected)
	}
	return strings.Join(parts, " ")
}

func (m CalculatorModel) natureOptions(selected leveling.Nature) string {
	parts := make([]string, len(leveling.AllNatures))
	for i, n := range leveling.AllNatures {
		parts[i] = renderOption(n.Title(), n == selected)
	}
	return strings.Join(parts, " ")
}

func (m CalculatorModel) buttonStyle(b Button) lipgloss.Style {
	switch {
	case !m.enabled(b):
		return disabledButtonStyle
	case m.repeater.Held() == b:
		return heldButtonStyle
	default:
		return buttonStyle
	}
}

func renderOption(text string, selected bool) string {
	if selected {
		return selectedOptionStyle.Render("(•) " + text)
	}
	return optionStyle.Render("( ) " + text)
}

func barWidth(screenW int) int {
	return max(10, min(barMaxWidth, screenW-marginLeft-6))
}

func indexOf[T comparable](items []T, v T) int {
	for i, it := range items {
		if it == v {
			return i
		}
	}
	return 0
}
