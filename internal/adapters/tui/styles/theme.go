package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Info      = lipgloss.Color("#60A5FA") // Blue
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	PanelTitle = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	// Tree node states
	NodeIdle = lipgloss.NewStyle().
			Foreground(White)

	NodeVisited = lipgloss.NewStyle().
			Foreground(Secondary)

	NodeCurrent = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeFound = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(Black).
			Bold(true)

	NodeOrphan = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	NodeFrontier = lipgloss.NewStyle().
			Foreground(Warning)

	// Tree indicators
	TreeBranch = lipgloss.NewStyle().Foreground(Muted)

	// Linear structure cells
	SlotEmpty = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Muted).
			Foreground(Muted).
			Width(5).
			Align(lipgloss.Center)

	SlotFilled = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Foreground(White).
			Bold(true).
			Width(5).
			Align(lipgloss.Center)

	SlotMarker = lipgloss.NewStyle().
			Foreground(Warning).
			Width(7).
			Align(lipgloss.Center)

	// StatusBadge is recolored per status by StatusColor
	StatusBadge = lipgloss.NewStyle().
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Toast = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Bold(true)

	// Log pane
	LogIndex = lipgloss.NewStyle().
			Foreground(Muted).
			Width(4).
			Align(lipgloss.Right).
			MarginRight(1)

	LogLatest = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	Selected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)
)

// StatusColor returns the accent color for a search status
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "found":
		return Secondary
	case "exhausted":
		return Error
	case "cutoff", "full":
		return Warning
	case "stepping":
		return Info
	default:
		return Primary
	}
}
