package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stepviz/internal/application"
	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

// LinearKeyMap defines key bindings for the stack and queue view
type LinearKeyMap struct {
	Kind     key.Binding
	Push     key.Binding
	Pop      key.Binding
	Peek     key.Binding
	Undo     key.Binding
	Program  key.Binding
	Run      key.Binding
	Step     key.Binding
	Reset    key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	Save     key.Binding
	Copy     key.Binding
	Tree     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	LogUp    key.Binding
	LogDown  key.Binding
	LogTrack key.Binding
}

var LinearKeys = LinearKeyMap{
	Kind:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "stack/queue/circular")),
	Push:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "push")),
	Pop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "pop")),
	Peek:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "peek")),
	Undo:     key.NewBinding(key.WithKeys("u", "p", "left"), key.WithHelp("u", "undo")),
	Program:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "program")),
	Run:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "run/pause")),
	Step:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "step")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Grow:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "capacity")),
	Shrink:   key.NewBinding(key.WithKeys("-")),
	Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save report")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy log")),
	Tree:     key.NewBinding(key.WithKeys("T", "esc"), key.WithHelp("T", "tree search")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Confirm:  key.NewBinding(key.WithKeys("enter")),
	Cancel:   key.NewBinding(key.WithKeys("esc")),
	LogUp:    key.NewBinding(key.WithKeys("k", "up")),
	LogDown:  key.NewBinding(key.WithKeys("j", "down")),
	LogTrack: key.NewBinding(key.WithKeys("G")),
}

var kindCycle = []string{"stack", "queue", "circular"}

type linearInput int

const (
	inputNone linearInput = iota
	inputValue
	inputProgram
)

// LinearModel lets the user drive a stack, queue or circular queue by
// hand or through a program
type LinearModel struct {
	ViewState
	store    ports.ReportStore
	interval time.Duration
	defaults map[string]int

	session *application.LinearSession
	request application.LinearRequest
	events  []domain.Event
	toast   Toast
	log     *Paginator

	input     linearInput
	textInput textinput.Model
}

// NewLinearModel creates the linear view with a default-capacity stack
func NewLinearModel(store ports.ReportStore, interval time.Duration, stackCapacity, circularCapacity int) *LinearModel {
	ti := textinput.New()
	ti.CharLimit = 200

	log := NewPaginator(10)
	log.SetFollow(true)

	m := &LinearModel{
		store:    store,
		interval: interval,
		defaults: map[string]int{
			"stack":    stackCapacity,
			"queue":    stackCapacity,
			"circular": circularCapacity,
		},
		log:       log,
		textInput: ti,
	}
	if err := m.open(application.LinearRequest{Kind: "stack", Capacity: stackCapacity}); err != nil {
		m.SetMessage(err.Error(), true)
	}
	return m
}

func (m *LinearModel) open(req application.LinearRequest) error {
	sess, err := application.NewLinearSession(req, m.observe)
	if err != nil {
		return err
	}
	m.session = sess
	m.request = req
	m.events = nil
	m.log.Reset()
	m.log.SetFollow(true)
	return nil
}

func (m *LinearModel) observe(e domain.Event) {
	m.events = append(m.events, e)
}

// Init initializes the linear view
func (m *LinearModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the linear view
func (m *LinearModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.log.SetPageSize(max(4, msg.Height/3))
		return m, nil

	case tickMsg:
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
		if m.input != inputNone {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *LinearModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := m.session.Controller
	m.ClearMessage()

	switch {
	case key.Matches(msg, LinearKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, LinearKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, LinearKeys.Tree):
		ctl.Pause()
		return m, func() tea.Msg { return SwitchToSearchMsg{} }
	case key.Matches(msg, LinearKeys.LogUp):
		m.log.CursorUp()
	case key.Matches(msg, LinearKeys.LogDown):
		m.log.CursorDown()
	case key.Matches(msg, LinearKeys.LogTrack):
		m.log.SetFollow(true)

	case key.Matches(msg, LinearKeys.Kind):
		next := nextKind(m.request.Kind)
		m.reopen(application.LinearRequest{Kind: next, Capacity: m.defaults[next]})

	case key.Matches(msg, LinearKeys.Grow):
		m.reopen(application.LinearRequest{Kind: m.request.Kind, Capacity: m.request.Capacity + 1})

	case key.Matches(msg, LinearKeys.Shrink):
		m.reopen(application.LinearRequest{Kind: m.request.Kind, Capacity: m.request.Capacity - 1})

	case key.Matches(msg, LinearKeys.Push):
		ctl.Pause()
		return m, m.prompt(inputValue, "value")

	case key.Matches(msg, LinearKeys.Program):
		ctl.Pause()
		return m, m.prompt(inputProgram, "push a, push b, pop, peek")

	case key.Matches(msg, LinearKeys.Pop):
		return m, m.apply(domain.Operation{Code: domain.OpPop})

	case key.Matches(msg, LinearKeys.Peek):
		return m, m.apply(domain.Operation{Code: domain.OpPeek})

	case key.Matches(msg, LinearKeys.Undo):
		if m.programLoaded() {
			if !ctl.PrevStep() {
				m.SetMessage("Nothing to undo", true)
			}
		} else if !m.session.Linear.Undo() {
			m.SetMessage("Nothing to undo", true)
		}
		m.events = nil

	case key.Matches(msg, LinearKeys.Run):
		if !m.programLoaded() {
			m.SetMessage("Load a program with P first", true)
			return m, nil
		}
		if ctl.State() == domain.RunRunning {
			ctl.Pause()
			return m, nil
		}
		gen := ctl.Run()
		if ctl.State() != domain.RunRunning {
			return m, nil
		}
		return m, tickCmd(m.interval, gen)

	case key.Matches(msg, LinearKeys.Step):
		if !m.programLoaded() {
			m.SetMessage("Load a program with P first", true)
			return m, nil
		}
		if err := ctl.Step(); err != nil {
			m.SetMessage(err.Error(), true)
			return m, nil
		}
		return m, m.drainEvents()

	case key.Matches(msg, LinearKeys.Reset):
		ctl.Reset()
		m.events = nil
		m.log.SetFollow(true)

	case key.Matches(msg, LinearKeys.Save):
		return m, m.saveReport()

	case key.Matches(msg, LinearKeys.Copy):
		if err := clipboard.WriteAll(LogText(m.session.Linear.Log())); err != nil {
			m.SetMessage("Clipboard unavailable: "+err.Error(), true)
		} else {
			m.SetMessage("Log copied", false)
		}
	}
	return m, nil
}

func (m *LinearModel) reopen(req application.LinearRequest) {
	if err := m.open(req); err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage(m.session.Linear.View().StatusMessage, false)
}

func (m *LinearModel) prompt(mode linearInput, placeholder string) tea.Cmd {
	m.input = mode
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue("")
	m.textInput.Focus()
	return textinput.Blink
}

func (m *LinearModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, LinearKeys.Cancel):
		m.input = inputNone
		m.textInput.Blur()
		return m, nil

	case key.Matches(msg, LinearKeys.Confirm):
		mode := m.input
		text := m.textInput.Value()
		m.input = inputNone
		m.textInput.Blur()

		if mode == inputProgram {
			if err := m.session.LoadProgramText(text); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			m.events = nil
			m.SetMessage(fmt.Sprintf("Loaded %d operation(s); space runs, n steps", len(m.session.Program.Operations())), false)
			return m, nil
		}
		if err := application.ValidateRequired("value", text); err != nil {
			m.SetMessage(err.Error(), true)
			return m, nil
		}
		return m, m.apply(domain.Operation{Code: domain.OpPush, Value: text})
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *LinearModel) apply(op domain.Operation) tea.Cmd {
	if err := m.session.Apply(op); err != nil {
		m.SetMessage(err.Error(), true)
	}
	return m.drainEvents()
}

func (m *LinearModel) programLoaded() bool {
	return m.session.ProgramLoaded()
}

func (m *LinearModel) drainEvents() tea.Cmd {
	events := m.events
	m.events = nil
	for _, e := range events {
		if e.Kind.Rejected() {
			return tea.Batch(showToast(&m.toast, e, time.Now()), bell)
		}
	}
	return nil
}

func (m *LinearModel) saveReport() tea.Cmd {
	if m.store == nil {
		m.SetMessage("Report store is not configured", true)
		return nil
	}
	r, err := m.session.Report(time.Now())
	if err != nil {
		m.SetMessage("Finish the program before saving a report", true)
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

func nextKind(current string) string {
	for i, k := range kindCycle {
		if k == current {
			return kindCycle[(i+1)%len(kindCycle)]
		}
	}
	return kindCycle[0]
}

// View renders the linear view
func (m *LinearModel) View() string {
	v := m.session.Linear.View()
	vb := NewViewBuilder().Title("stepviz · " + v.Kind.String())

	vb.Line(fmt.Sprintf("%s  size %d  step %d  %s",
		RenderLabelValue("Capacity", fmt.Sprint(v.Capacity)),
		v.Size, v.Step,
		RenderMuted(m.session.Controller.State().String()),
	)).BlankLine()

	width := max(40, m.Width-8)
	vb.Line(RenderPanel("Slots", RenderSlots(v), width))

	if ops := m.session.Program.Operations(); len(ops) > 0 {
		vb.Line(RenderProgram(ops, m.session.Program.Counter()))
	}

	status := "ready"
	switch {
	case v.Full:
		status = "full"
	case !v.Empty:
		status = "stepping"
	}
	vb.BlankLine().Line(RenderStatus(status, v.StatusMessage)).BlankLine()
	vb.Toast(m.toast)
	vb.Line(RenderPanel("Log", RenderLog(v.Log, m.log), width))

	switch m.input {
	case inputValue:
		vb.Line(RenderLabelValue("Push", m.textInput.View()))
	case inputProgram:
		vb.Line(RenderLabelValue("Program", m.textInput.View()))
	}
	vb.Message(m.Message, m.MessageErr)
	vb.Help(LinearKeys.Kind, LinearKeys.Push, LinearKeys.Pop, LinearKeys.Peek, LinearKeys.Undo,
		LinearKeys.Program, LinearKeys.Run, LinearKeys.Tree, LinearKeys.Quit)
	return vb.String()
}

// RenderProgram lists the instructions with the next one marked
func RenderProgram(ops []domain.Operation, pc int) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		text := op.String()
		switch {
		case i == pc:
			parts[i] = RenderMessage("▶ "+text, false)
		case i < pc:
			parts[i] = RenderMuted(text)
		default:
			parts[i] = text
		}
	}
	return RenderLabelValue("Program", strings.Join(parts, ", "))
}
