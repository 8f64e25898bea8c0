package output

import "github.com/charmbracelet/lipgloss"

// Color palette - Modern, balanced colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorError     = lipgloss.Color("#EF4444") // Red
	colorInfo      = lipgloss.Color("#3B82F6") // Blue
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorHighlight = lipgloss.Color("#06B6D4") // Cyan

	colorTableOdd  = lipgloss.Color("#FCFCFA")
	colorTableEven = lipgloss.Color("#A0A0A0")
)

var (
	// keyStyle renders entry keys and context names.
	keyStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	// valueStyle renders supporting text such as counters and settings.
	valueStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)
)

// Toggle styles
var (
	// hiddenStyle renders the part of the text behind the toggle when expanded.
	hiddenStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorInfo).
			Underline(true)
)

// Panel styles
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	errorPanelStyle = panelStyle.BorderForeground(colorError)

	successPanelStyle = panelStyle.BorderForeground(colorSuccess)

	infoPanelStyle = panelStyle.BorderForeground(colorInfo)
)

// Tree styles
var (
	treeRootStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	treeFolderStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	treeKeyStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	treeValueStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	treeEnumeratorStyle = lipgloss.NewStyle().
				Foreground(colorMuted)
)

// Table styles
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				Padding(0, 1)

	tableOddRowStyle = lipgloss.NewStyle().
				Foreground(colorTableOdd).
				Padding(0, 1)

	tableEvenRowStyle = lipgloss.NewStyle().
				Foreground(colorTableEven).
				Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary)
)
