package tui

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(30)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("212")).
				Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("238")).
			Padding(0, 1)

	heldButtonStyle = buttonStyle.
			Background(lipgloss.Color("57"))

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// printer formats numbers with thousands grouping.
var printer = message.NewPrinter(language.English)

// formatInt groups digits, e.g. 12345 -> "12,345".
func formatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// formatShards groups digits and keeps up to three decimals.
func formatShards(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
