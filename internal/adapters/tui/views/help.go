package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stepviz/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return CloseHelpMsg{}
			}
		}
	}

	return m, nil
}

type helpSection struct {
	title string
	rows  [][2]string
}

var helpSections = []helpSection{
	{"Playback", [][2]string{
		{"space", "Run / pause"},
		{"n / →", "Step forward"},
		{"p / ←", "Step back"},
		{"r", "Reset"},
	}},
	{"Tree search", [][2]string{
		{"tab", "Cycle BFS / DFS / DLS"},
		{"t", "Set target"},
		{"+ / -", "Depth limit (DLS)"},
		{"c", "Build a custom tree"},
		{"o", "Open presets"},
		{"e", "Edit preset in $EDITOR"},
	}},
	{"Stack / queue", [][2]string{
		{"L / T", "Switch to linear / tree view"},
		{"tab", "Cycle stack / queue / circular"},
		{"i / x / v", "Push / pop / peek"},
		{"u", "Undo"},
		{"P", "Load a program"},
		{"+ / -", "Capacity"},
	}},
	{"General", [][2]string{
		{"j / k", "Scroll log"},
		{"G", "Follow newest log entry"},
		{"y", "Copy log"},
		{"s", "Save report"},
		{"?", "Toggle help"},
		{"q / Ctrl+C", "Quit"},
	}},
}

// View renders the help view
func (m *HelpModel) View() string {
	keyCol := styles.HelpKey.Width(14)

	var b strings.Builder
	b.WriteString(styles.Title.Render("stepviz help") + "\n\n")
	b.WriteString(styles.Subtitle.Render("Step through tree searches and linear structures") + "\n\n")

	for _, sec := range helpSections {
		b.WriteString(styles.InputLabel.Render(sec.title) + "\n")
		for _, row := range sec.rows {
			b.WriteString("  " + keyCol.Render(row[0]) + styles.HelpDesc.Render(row[1]) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.InputLabel.Render("Legend") + "\n  ")
	b.WriteString(strings.Join([]string{
		styles.NodeCurrent.Render(" current "),
		styles.NodeVisited.Render(" visited "),
		styles.NodeFrontier.Render(" frontier "),
		styles.NodeFound.Render(" found "),
	}, " "))
	b.WriteString("\n\n")
	b.WriteString(RenderHelpLine(HelpKeys.Close))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
