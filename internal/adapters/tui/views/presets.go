package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stepviz/internal/adapters/tui/styles"
	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

// PresetsKeyMap defines key bindings for the preset picker
type PresetsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Edit   key.Binding
	Reload key.Binding
	Back   key.Binding
}

var PresetsKeys = PresetsKeyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Reload: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	Back:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
}

type presetsLoadedMsg struct {
	presets []domain.Preset
	err     error
}

// PresetsModel lists the saved and built-in trees
type PresetsModel struct {
	ViewState
	repo    ports.SpecRepository
	presets []domain.Preset
	pager   *Paginator
}

// NewPresetsModel creates the preset picker
func NewPresetsModel(repo ports.SpecRepository) *PresetsModel {
	return &PresetsModel{repo: repo, pager: NewPaginator(10)}
}

// Init loads the preset list
func (m *PresetsModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload re-reads the presets from the repository
func (m *PresetsModel) Reload() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		if repo == nil {
			return presetsLoadedMsg{err: fmt.Errorf("no preset directory configured")}
		}
		result, err := commands.NewListPresetsCommand(repo).Execute(context.Background())
		if err != nil {
			return presetsLoadedMsg{err: err}
		}
		return presetsLoadedMsg{presets: result.Presets}
	}
}

// Selected returns the preset under the cursor
func (m *PresetsModel) Selected() (domain.Preset, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.presets) {
		return domain.Preset{}, false
	}
	return m.presets[i], true
}

// Update handles messages for the preset picker
func (m *PresetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.pager.SetPageSize(max(3, msg.Height-10))
		return m, nil

	case presetsLoadedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.presets = msg.presets
		m.pager.SetTotal(len(m.presets))
		m.ClearMessage()
		return m, nil

	case buildErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PresetsKeys.Back):
			return m, func() tea.Msg { return SwitchToSearchMsg{} }
		case key.Matches(msg, PresetsKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, PresetsKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, PresetsKeys.Reload):
			return m, m.Reload()
		case key.Matches(msg, PresetsKeys.Open):
			if p, ok := m.Selected(); ok {
				return m, m.open(p.Name)
			}
		case key.Matches(msg, PresetsKeys.Edit):
			if p, ok := m.Selected(); ok {
				return m, m.edit(p.Name)
			}
		}
	}
	return m, nil
}

func (m *PresetsModel) open(name string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		result, err := commands.NewBuildTreeCommand(repo, name).Execute(context.Background())
		if err != nil {
			return buildErrMsg{err: err}
		}
		return TreeBuiltMsg{Structure: result.Structure, Preset: result.Preset, Message: result.Message}
	}
}

func (m *PresetsModel) edit(name string) tea.Cmd {
	if m.repo == nil {
		return nil
	}
	path, err := m.repo.PresetPath(name)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return func() tea.Msg { return OpenEditorMsg{Path: path} }
}

// View renders the preset picker
func (m *PresetsModel) View() string {
	vb := NewViewBuilder().Title("Presets")

	if len(m.presets) == 0 {
		vb.Muted("No presets found")
	} else {
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			p := m.presets[i]
			line := fmt.Sprintf("%-16s %2d nodes  %s", p.Name, p.Spec.NodeCount, RenderMuted(p.Description))
			if i == m.pager.Cursor() {
				vb.Line(styles.Selected.Render("> " + line))
			} else {
				vb.Line("  " + line)
			}
		}
		if pages := m.pager.TotalPages(); pages > 1 {
			vb.Muted(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), pages))
		}
	}

	vb.BlankLine().Message(m.Message, m.MessageErr)
	vb.Help(PresetsKeys.Up, PresetsKeys.Down, PresetsKeys.Open, PresetsKeys.Edit, PresetsKeys.Reload, PresetsKeys.Back)
	return vb.String()
}
