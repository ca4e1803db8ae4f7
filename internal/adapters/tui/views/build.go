package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stepviz/internal/application"
	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

const (
	buildFieldCount = iota
	buildFieldValues
	buildFieldEdges
	buildFieldTarget
	buildFieldLimit
	buildFieldSave
)

// BuildModel is the form for entering a custom tree
type BuildModel struct {
	ViewState
	repo       ports.SpecRepository
	form       *Form
	depthLimit int
}

// NewBuildModel creates a new build form
func NewBuildModel(repo ports.SpecRepository, depthLimit int) *BuildModel {
	m := &BuildModel{repo: repo, depthLimit: depthLimit}
	m.form = NewForm(
		Field("Nodes", "1-31", 2),
		Field("Values", "A B C ... (defaults to letters)", 200),
		Field("Edges", "0-1 0-2 1-3 (empty = complete binary tree)", 300),
		Field("Target", "value to search for (empty = full traversal)", 12),
		Field("Depth limit", strconv.Itoa(depthLimit), 2),
		Field("Save as", "preset name (optional)", 40),
	)
	return m
}

// Init initializes the build form
func (m *BuildModel) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the form
func (m *BuildModel) Reset() {
	m.form.Clear()
	m.ClearMessage()
}

// Update handles messages for the build form
func (m *BuildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case buildErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToSearchMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}

	return m, m.form.Update(msg)
}

type buildErrMsg struct {
	err error
}

func (m *BuildModel) submit() tea.Cmd {
	req, preset, err := m.request()
	if err != nil {
		return func() tea.Msg { return buildErrMsg{err: err} }
	}

	return func() tea.Msg {
		result, err := commands.NewBuildTreeFromRequestCommand(req).Execute(context.Background())
		if err != nil {
			return buildErrMsg{err: err}
		}

		message := result.Message
		if preset.Name != "" && m.repo != nil {
			path, err := m.repo.SavePreset(preset)
			if err != nil {
				return buildErrMsg{err: err}
			}
			message += fmt.Sprintf(", saved to %s", path)
		}
		if len(result.Issues) > 0 {
			message += ": " + strings.Join(result.Issues, "; ")
		}
		return TreeBuiltMsg{Structure: result.Structure, Preset: &preset, Message: message}
	}
}

// request turns the form into a build request and the preset it describes
func (m *BuildModel) request() (application.BuildRequest, domain.Preset, error) {
	count, err := m.form.Int(buildFieldCount, 0)
	if err != nil {
		return application.BuildRequest{}, domain.Preset{}, err
	}
	limit, err := m.form.Int(buildFieldLimit, m.depthLimit)
	if err != nil {
		return application.BuildRequest{}, domain.Preset{}, err
	}
	edges, err := application.ParseEdges(m.form.Text(buildFieldEdges))
	if err != nil {
		return application.BuildRequest{}, domain.Preset{}, err
	}

	req := application.BuildRequest{
		NodeCount: count,
		Values:    m.form.List(buildFieldValues),
		Edges:     edges,
		Auto:      len(edges) == 0,
	}
	if err := application.ValidateBuild(req); err != nil {
		return application.BuildRequest{}, domain.Preset{}, err
	}

	preset := domain.Preset{
		Name:       m.form.Text(buildFieldSave),
		Spec:       req.Spec(),
		Target:     m.form.Text(buildFieldTarget),
		DepthLimit: limit,
	}
	return req, preset, nil
}

// View renders the build form
func (m *BuildModel) View() string {
	return NewViewBuilder().
		Title("Build a tree").
		Subtitle("Nodes are numbered from 0; edges point from parent to child").
		Message(m.Message, m.MessageErr).
		Raw(m.form.View("build")).
		String()
}
