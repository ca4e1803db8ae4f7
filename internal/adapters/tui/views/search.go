package views

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"stepviz/internal/application"
	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

// SearchKeyMap defines key bindings for the tree search view
type SearchKeyMap struct {
	Run        key.Binding
	Step       key.Binding
	Prev       key.Binding
	Reset      key.Binding
	Discipline key.Binding
	Target     key.Binding
	LimitUp    key.Binding
	LimitDown  key.Binding
	Save       key.Binding
	Copy       key.Binding
	LogUp      key.Binding
	LogDown    key.Binding
	Follow     key.Binding
	Presets    key.Binding
	Build      key.Binding
	Edit       key.Binding
	Linear     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var SearchKeys = SearchKeyMap{
	Run:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "run/pause")),
	Step:       key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "step")),
	Prev:       key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "back")),
	Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Discipline: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "bfs/dfs/dls")),
	Target:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "target")),
	LimitUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "depth limit")),
	LimitDown:  key.NewBinding(key.WithKeys("-")),
	Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save report")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy log")),
	LogUp:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/j", "scroll log")),
	LogDown:    key.NewBinding(key.WithKeys("j", "down")),
	Follow:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "follow log")),
	Presets:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "presets")),
	Build:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "custom tree")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit preset")),
	Linear:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "stack/queue")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var disciplineCycle = []string{"bfs", "dfs", "dls"}

// SearchModel animates a traversal over the current tree
type SearchModel struct {
	ViewState
	repo     ports.SpecRepository
	store    ports.ReportStore
	interval time.Duration

	session *application.SearchSession
	request application.SearchRequest
	events  []domain.Event
	toast   Toast
	log     *Paginator

	editingTarget bool
	targetInput   textinput.Model
}

// NewSearchModel creates the search view over s
func NewSearchModel(repo ports.SpecRepository, store ports.ReportStore, interval time.Duration) *SearchModel {
	ti := textinput.New()
	ti.Placeholder = "target value"
	ti.CharLimit = 12

	log := NewPaginator(12)
	log.SetFollow(true)

	return &SearchModel{
		repo:        repo,
		store:       store,
		interval:    interval,
		log:         log,
		targetInput: ti,
	}
}

// Load replaces the tree and search request and resets the run
func (m *SearchModel) Load(s *domain.Structure, preset string, req application.SearchRequest) error {
	sess, err := application.NewSearchSession(s, preset, req, m.observe)
	if err != nil {
		return err
	}
	m.session = sess
	m.request = req
	m.events = nil
	m.toast = Toast{}
	m.log.Reset()
	m.log.SetFollow(true)
	return nil
}

// Session returns the active session
func (m *SearchModel) Session() *application.SearchSession {
	return m.session
}

func (m *SearchModel) observe(e domain.Event) {
	m.events = append(m.events, e)
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.log.SetPageSize(max(4, msg.Height/3))
		return m, nil

	case tickMsg:
		if m.session == nil {
			return m, nil
		}
		ctl := m.session.Controller
		if !ctl.Tick(msg.gen) {
			return m, nil
		}
		cmds := []tea.Cmd{m.drainEvents()}
		if ctl.State() == domain.RunRunning {
			cmds = append(cmds, tickCmd(m.interval, msg.gen))
		}
		return m, tea.Batch(cmds...)

	case toastExpiredMsg:
		m.toast.expire(msg)
		return m, nil

	case reportSavedMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case reportErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.editingTarget {
			return m.updateTarget(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *SearchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, SearchKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, SearchKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, SearchKeys.Presets):
		return m, func() tea.Msg { return SwitchToPresetsMsg{} }
	case key.Matches(msg, SearchKeys.Build):
		return m, func() tea.Msg { return SwitchToBuildMsg{} }
	case key.Matches(msg, SearchKeys.Linear):
		m.pause()
		return m, func() tea.Msg { return SwitchToLinearMsg{} }
	case key.Matches(msg, SearchKeys.LogUp):
		m.log.CursorUp()
		return m, nil
	case key.Matches(msg, SearchKeys.LogDown):
		m.log.CursorDown()
		return m, nil
	case key.Matches(msg, SearchKeys.Follow):
		m.log.SetFollow(true)
		return m, nil
	}

	if m.session == nil {
		return m, nil
	}
	ctl := m.session.Controller
	m.ClearMessage()

	switch {
	case key.Matches(msg, SearchKeys.Run):
		if ctl.State() == domain.RunRunning {
			ctl.Pause()
			return m, nil
		}
		gen := ctl.Run()
		if ctl.State() != domain.RunRunning {
			return m, nil
		}
		return m, tickCmd(m.interval, gen)

	case key.Matches(msg, SearchKeys.Step):
		if err := ctl.Step(); err != nil {
			m.SetMessage(err.Error(), true)
			return m, nil
		}
		return m, m.drainEvents()

	case key.Matches(msg, SearchKeys.Prev):
		if !ctl.PrevStep() {
			m.SetMessage("Nothing to undo", true)
		}
		m.events = nil
		return m, nil

	case key.Matches(msg, SearchKeys.Reset):
		ctl.Reset()
		m.events = nil
		m.log.SetFollow(true)
		return m, nil

	case key.Matches(msg, SearchKeys.Discipline):
		m.request.Discipline = nextDiscipline(m.request.Discipline)
		return m, m.reconfigure()

	case key.Matches(msg, SearchKeys.LimitUp):
		m.request.DepthLimit++
		return m, m.reconfigure()

	case key.Matches(msg, SearchKeys.LimitDown):
		if m.request.DepthLimit > 0 {
			m.request.DepthLimit--
		}
		return m, m.reconfigure()

	case key.Matches(msg, SearchKeys.Target):
		m.pause()
		m.editingTarget = true
		m.targetInput.SetValue(m.request.Target)
		m.targetInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, SearchKeys.Save):
		return m, m.saveReport()

	case key.Matches(msg, SearchKeys.Copy):
		if err := clipboard.WriteAll(LogText(m.session.Search.Log())); err != nil {
			m.SetMessage("Clipboard unavailable: "+err.Error(), true)
		} else {
			m.SetMessage("Log copied", false)
		}
		return m, nil

	case key.Matches(msg, SearchKeys.Edit):
		return m, m.editPreset()
	}

	return m, nil
}

func (m *SearchModel) updateTarget(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editingTarget = false
		m.targetInput.Blur()
		m.request.Target = m.targetInput.Value()
		return m, m.reconfigure()
	case "esc":
		m.editingTarget = false
		m.targetInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.targetInput, cmd = m.targetInput.Update(msg)
	return m, cmd
}

func (m *SearchModel) pause() {
	if m.session != nil {
		m.session.Controller.Pause()
	}
}

func (m *SearchModel) reconfigure() tea.Cmd {
	if err := m.session.Configure(m.request); err != nil {
		m.SetMessage(err.Error(), true)
		m.request = requestOf(m.session)
		return nil
	}
	m.events = nil
	m.log.SetFollow(true)
	m.SetMessage(m.session.Search.View().StatusMessage, false)
	return nil
}

// drainEvents turns queued terminal events into a toast and a bell
func (m *SearchModel) drainEvents() tea.Cmd {
	events := m.events
	m.events = nil
	for _, e := range events {
		if e.Kind.Terminal() {
			logrus.WithField("event", e.Kind.String()).Info(e.Message)
			return tea.Batch(showToast(&m.toast, e, time.Now()), bell)
		}
	}
	return nil
}

type reportSavedMsg struct{ message string }

type reportErrMsg struct{ err error }

func (m *SearchModel) saveReport() tea.Cmd {
	if m.store == nil {
		m.SetMessage("Report store is not configured", true)
		return nil
	}
	r, err := m.session.Report(time.Now())
	if err != nil {
		m.SetMessage("Finish the search before saving a report", true)
		return nil
	}
	store := m.store
	return func() tea.Msg {
		result, err := commands.NewSaveReportCommand(store, r).Execute(context.Background())
		if err != nil {
			return reportErrMsg{err: err}
		}
		return reportSavedMsg{message: result.Message}
	}
}

func (m *SearchModel) editPreset() tea.Cmd {
	if m.repo == nil || m.session.Preset == "" {
		m.SetMessage("Only presets can be edited; save this tree from the build form first", true)
		return nil
	}
	m.pause()
	path, err := m.repo.PresetPath(m.session.Preset)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return func() tea.Msg { return OpenEditorMsg{Path: path} }
}

func bell() tea.Msg {
	fmt.Fprint(os.Stderr, "\a")
	return nil
}

func nextDiscipline(current string) string {
	for i, d := range disciplineCycle {
		if d == current {
			return disciplineCycle[(i+1)%len(disciplineCycle)]
		}
	}
	return disciplineCycle[0]
}

func requestOf(s *application.SearchSession) application.SearchRequest {
	return application.SearchRequest{
		Discipline: s.Search.Discipline().String(),
		Target:     s.Search.Target(),
		DepthLimit: s.Search.DepthLimit(),
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	vb := NewViewBuilder().Title("stepviz · tree search")
	if m.session == nil {
		return vb.Muted("No tree loaded. Press o for presets or c to build one.").String()
	}

	v := m.session.Search.View()
	ctl := m.session.Controller

	header := fmt.Sprintf("%s  target %s  step %d  visited %d  %s",
		RenderLabelValue("Search", v.Discipline.String()),
		orDash(v.Target),
		v.Step,
		v.Visited,
		RenderMuted(ctl.State().String()),
	)
	if v.Discipline == domain.DisciplineDLS {
		header += "  " + RenderLabelValue("limit", strconv.Itoa(v.DepthLimit))
	}
	vb.Line(header).BlankLine()

	width := max(40, m.Width-8)
	vb.Line(RenderPanel("Tree", RenderTree(v, width-4), width))
	vb.Line(RenderFrontier(v)).BlankLine()
	vb.Line(RenderStatus(v.Status.String(), v.StatusMessage)).BlankLine()
	vb.Toast(m.toast)
	vb.Line(RenderPanel("Log", RenderLog(v.Log, m.log), width))

	if m.editingTarget {
		vb.Line(RenderLabelValue("Target", m.targetInput.View()))
	}
	vb.Message(m.Message, m.MessageErr)
	vb.Help(SearchKeys.Run, SearchKeys.Step, SearchKeys.Prev, SearchKeys.Reset,
		SearchKeys.Discipline, SearchKeys.Target, SearchKeys.Save, SearchKeys.Help, SearchKeys.Quit)
	return vb.String()
}

func orDash(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
