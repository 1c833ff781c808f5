// Package tui provides the Bubble Tea front end for the calculator.
// It handles the form, press-and-hold repeat buttons, the history screen and
// serving the whole thing over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RepeatMsg is sent while a repeat button is held down.
type RepeatMsg struct {
	ID     int
	Button Button
}

// Repeater fires a button once on press, then again every interval after an
// initial delay, until released. Stale ticks are dropped by ID.
type Repeater struct {
	delay    time.Duration
	interval time.Duration
	id       int
	button   Button
	active   bool
}

// NewRepeater creates a repeater with the given timing.
func NewRepeater(delay, interval time.Duration) Repeater {
	return Repeater{delay: delay, interval: interval}
}

// Start begins holding b and returns the command for the first repeat.
func (r *Repeater) Start(b Button) tea.Cmd {
	r.id++
	r.button = b
	r.active = true
	return repeatCmd(r.delay, r.id, b)
}

// Stop releases the held button. Pending ticks become stale.
func (r *Repeater) Stop() {
	if r.active {
		r.id++
	}
	r.active = false
}

// Active reports whether a button is held.
func (r Repeater) Active() bool {
	return r.active
}

// Held returns the held button, or ButtonNone.
func (r Repeater) Held() Button {
	if !r.active {
		return ButtonNone
	}
	return r.button
}

// Accept reports whether msg belongs to the current hold, and if so returns
// the command for the next repeat.
func (r *Repeater) Accept(msg RepeatMsg) (bool, tea.Cmd) {
	if !r.active || msg.ID != r.id {
		return false, nil
	}
	return true, repeatCmd(r.interval, r.id, r.button)
}

// repeatCmd returns a Bubble Tea command that sends a RepeatMsg after d.
func repeatCmd(d time.Duration, id int, b Button) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RepeatMsg{ID: id, Button: b}
	})
}
