package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Button is a clickable control on the calculator screen.
type Button int

const (
	ButtonNone Button = iota
	ButtonMinus10
	ButtonMinus1
	ButtonZero
	ButtonPlus1
	ButtonPlus10
	ButtonCalculate
	ButtonReset
	ButtonSave
)

// countButtons and actionButtons are the two button rows, in display order.
var (
	countButtons  = []Button{ButtonMinus10, ButtonMinus1, ButtonZero, ButtonPlus1, ButtonPlus10}
	actionButtons = []Button{ButtonCalculate, ButtonReset, ButtonSave}
)

// Label returns the text shown on the button.
func (b Button) Label() string {
	switch b {
	case ButtonMinus10:
		return "-10"
	case ButtonMinus1:
		return "-"
	case ButtonZero:
		return "0"
	case ButtonPlus1:
		return "+"
	case ButtonPlus10:
		return "+10"
	case ButtonCalculate:
		return "Calculate"
	case ButtonReset:
		return "Reset"
	case ButtonSave:
		return "Save"
	default:
		return ""
	}
}

// Repeats reports whether holding the button repeats its action.
func (b Button) Repeats() bool {
	switch b {
	case ButtonMinus10, ButtonMinus1, ButtonPlus1, ButtonPlus10:
		return true
	default:
		return false
	}
}

// Delta returns the candy count change for +/- buttons.
func (b Button) Delta() int {
	switch b {
	case ButtonMinus10:
		return -10
	case ButtonMinus1:
		return -1
	case ButtonPlus1:
		return 1
	case ButtonPlus10:
		return 10
	default:
		return 0
	}
}

// zone is the screen area covered by a rendered button.
type zone struct {
	button Button
	y      int
	x0, x1 int // [x0, x1)
}

// buttonRow renders a row of buttons starting at column x and line y,
// returning the line and the zone of each button.
func buttonRow(buttons []Button, x, y int, style func(Button) lipgloss.Style) (string, []zone) {
	parts := make([]string, 0, len(buttons))
	zones := make([]zone, 0, len(buttons))

	for i, b := range buttons {
		if i > 0 {
			x++ // separator
		}
		rendered := style(b).Render(b.Label())
		w := lipgloss.Width(rendered)
		zones = append(zones, zone{button: b, y: y, x0: x, x1: x + w})
		parts = append(parts, rendered)
		x += w
	}

	return strings.Join(parts, " "), zones
}

// hit returns the button under (x, y), or ButtonNone.
func hit(zones []zone, x, y int) Button {
	for _, z := range zones {
		if z.y == y && x >= z.x0 && x < z.x1 {
			return z.button
		}
	}
	return ButtonNone
}
