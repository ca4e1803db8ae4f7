package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"stepviz/internal/adapters/tui/views"
	"stepviz/internal/application"
	"stepviz/internal/application/commands"
	"stepviz/internal/config"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewSearch ViewState = iota
	ViewLinear
	ViewBuild
	ViewPresets
	ViewHelp
)

// App is the main TUI application model
type App struct {
	repo   ports.SpecRepository
	editor ports.PresetEditor
	cfg    config.Config

	state     ViewState
	helpFrom  ViewState
	search    *views.SearchModel
	linear    *views.LinearModel
	build     *views.BuildModel
	presets   *views.PresetsModel
	help      *views.HelpModel
	startWith string

	width  int
	height int
}

// NewApp creates a new TUI application. repo, store and editor may be nil;
// the features that need them report an error when used.
func NewApp(repo ports.SpecRepository, store ports.ReportStore, ed ports.PresetEditor, cfg config.Config) *App {
	return &App{
		repo:      repo,
		editor:    ed,
		cfg:       cfg,
		state:     ViewSearch,
		search:    views.NewSearchModel(repo, store, cfg.TickInterval),
		linear:    views.NewLinearModel(store, cfg.TickInterval, cfg.StackCapacity, cfg.CircularCapacity),
		build:     views.NewBuildModel(repo, cfg.DepthLimit),
		presets:   views.NewPresetsModel(repo),
		help:      views.NewHelpModel(),
		startWith: domain.SamplePreset().Name,
	}
}

// StartWith selects the preset loaded on start
func (a *App) StartWith(preset string) *App {
	if preset != "" {
		a.startWith = preset
	}
	return a
}

// Init loads the starting preset
func (a *App) Init() tea.Cmd {
	return a.loadPreset(a.startWith)
}

func (a *App) loadPreset(name string) tea.Cmd {
	repo := a.repo
	return func() tea.Msg {
		if repo == nil {
			p := domain.SamplePreset()
			s, err := domain.Build(p.Spec)
			if err != nil {
				return treeErrMsg{err: err}
			}
			return views.TreeBuiltMsg{Structure: s, Preset: &p}
		}
		result, err := commands.NewBuildTreeCommand(repo, name).Execute(context.Background())
		if err != nil {
			return treeErrMsg{err: err}
		}
		return views.TreeBuiltMsg{Structure: result.Structure, Preset: result.Preset, Message: result.Message}
	}
}

type treeErrMsg struct{ err error }

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.Update(msg)
		a.linear.Update(msg)
		a.build.Update(msg)
		a.presets.Update(msg)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		return a, nil

	case views.SwitchToLinearMsg:
		a.state = ViewLinear
		return a, nil

	case views.SwitchToBuildMsg:
		a.state = ViewBuild
		a.build.Reset()
		return a, a.build.Init()

	case views.SwitchToPresetsMsg:
		a.state = ViewPresets
		return a, a.presets.Init()

	case views.SwitchToHelpMsg:
		a.helpFrom = a.state
		a.state = ViewHelp
		return a, nil

	case views.CloseHelpMsg:
		a.state = a.helpFrom
		return a, nil

	case views.TreeBuiltMsg:
		a.state = ViewSearch
		req := searchRequest(msg.Preset, a.cfg.DepthLimit)
		name := ""
		if msg.Preset != nil {
			name = msg.Preset.Name
		}
		if err := a.search.Load(msg.Structure, name, req); err != nil {
			a.search.SetMessage(err.Error(), true)
			return a, nil
		}
		a.search.SetMessage(msg.Message, false)
		return a, nil

	case treeErrMsg:
		logrus.WithError(msg.err).Warn("failed to load preset")
		a.search.SetMessage(msg.err.Error(), true)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case views.EditorFinishedMsg:
		if msg.Err != nil {
			a.current().SetMessage(msg.Err.Error(), true)
			return a, nil
		}
		return a, a.reloadAfterEdit()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewLinear:
		_, cmd = a.linear.Update(msg)
	case ViewBuild:
		_, cmd = a.build.Update(msg)
	case ViewPresets:
		_, cmd = a.presets.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) current() *views.ViewState {
	switch a.state {
	case ViewLinear:
		return &a.linear.ViewState
	case ViewBuild:
		return &a.build.ViewState
	case ViewPresets:
		return &a.presets.ViewState
	default:
		return &a.search.ViewState
	}
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return views.EditorFinishedMsg{Path: path, Err: errNoEditor}
		}
	}

	cmd, err := a.editor.EditCommand(path)
	if err != nil {
		return func() tea.Msg {
			return views.EditorFinishedMsg{Path: path, Err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return views.EditorFinishedMsg{Path: path, Err: err}
	})
}

var errNoEditor = &application.ValidationError{Field: "editor", Message: "no editor configured"}

// reloadAfterEdit refreshes the picker, or rebuilds the preset on screen
func (a *App) reloadAfterEdit() tea.Cmd {
	if a.state == ViewPresets {
		return a.presets.Reload()
	}
	if sess := a.search.Session(); sess != nil && sess.Preset != "" {
		return a.loadPreset(sess.Preset)
	}
	return nil
}

func searchRequest(p *domain.Preset, depthLimit int) application.SearchRequest {
	req := application.SearchRequest{Discipline: "bfs", DepthLimit: depthLimit}
	if p != nil {
		req.Target = p.Target
		if p.DepthLimit > 0 {
			req.DepthLimit = p.DepthLimit
		}
	}
	return req
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewLinear:
		return a.linear.View()
	case ViewBuild:
		return a.build.View()
	case ViewPresets:
		return a.presets.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.search.View()
	}
}
