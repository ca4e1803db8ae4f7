package views

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stepviz/internal/application"
	"stepviz/internal/domain"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPaginator_FollowTracksTail(t *testing.T) {
	p := NewPaginator(3)
	p.SetFollow(true)
	p.SetTotal(5)

	if p.Cursor() != 4 {
		t.Errorf("Cursor() = %d, want 4", p.Cursor())
	}
	if start, end := p.TailRange(); start != 2 || end != 5 {
		t.Errorf("TailRange() = (%d, %d), want (2, 5)", start, end)
	}

	p.CursorUp()
	if p.Following() {
		t.Error("CursorUp should stop following")
	}
	p.SetTotal(8)
	if p.Cursor() != 3 {
		t.Errorf("Cursor() after growth = %d, want 3", p.Cursor())
	}
	if start, end := p.TailRange(); start != 1 || end != 4 {
		t.Errorf("TailRange() = (%d, %d), want (1, 4)", start, end)
	}

	p.SetFollow(true)
	if p.Cursor() != 7 {
		t.Errorf("Cursor() after follow = %d, want 7", p.Cursor())
	}
}

func TestPaginator_Pages(t *testing.T) {
	p := NewPaginator(4)
	p.SetTotal(10)

	if got := p.TotalPages(); got != 3 {
		t.Errorf("TotalPages() = %d, want 3", got)
	}
	for range 5 {
		p.CursorDown()
	}
	if got := p.CurrentPage(); got != 2 {
		t.Errorf("CurrentPage() = %d, want 2", got)
	}
	if start, end := p.VisibleRange(); start != 4 || end != 8 {
		t.Errorf("VisibleRange() = (%d, %d), want (4, 8)", start, end)
	}
}

func TestSlotMarker(t *testing.T) {
	stack := domain.LinearView{Kind: domain.LinearStack, Top: 1}
	queue := domain.LinearView{Kind: domain.LinearQueue, Front: 0, Rear: 0}
	circular := domain.LinearView{Kind: domain.LinearCircular, Front: 2, Rear: 0}

	tests := []struct {
		name string
		view domain.LinearView
		slot int
		want string
	}{
		{"stack top", stack, 1, "top"},
		{"stack other", stack, 0, ""},
		{"queue front and rear", queue, 0, "F/R"},
		{"circular rear", circular, 0, "R"},
		{"circular front", circular, 2, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slotMarker(tt.view, tt.slot); got != tt.want {
				t.Errorf("slotMarker() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogText(t *testing.T) {
	entries := []domain.LogEntry{{Index: 1, Message: "visit A"}, {Index: 2, Message: "visit B"}}
	want := "1. visit A\n2. visit B\n"
	if got := LogText(entries); got != want {
		t.Errorf("LogText() = %q, want %q", got, want)
	}
}

func TestToast_ExpiresOnlyForItsOwnTimer(t *testing.T) {
	var toast Toast
	now := time.Now()
	showToast(&toast, domain.Event{Kind: domain.EventFound, Message: "found E"}, now)
	first := toastExpiredMsg{until: now.Add(toastDuration)}

	later := now.Add(time.Second)
	showToast(&toast, domain.Event{Kind: domain.EventCutoff, Message: "cutoff"}, later)

	toast.expire(first)
	if !toast.Active() {
		t.Fatal("stale timer should not clear a newer toast")
	}

	toast.expire(toastExpiredMsg{until: later.Add(toastDuration)})
	if toast.Active() {
		t.Error("toast should clear when its own timer fires")
	}
}

func newSampleSearch(t *testing.T) *SearchModel {
	t.Helper()
	p := domain.SamplePreset()
	s, err := domain.Build(p.Spec)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	m := NewSearchModel(nil, nil, time.Millisecond)
	req := application.SearchRequest{Discipline: "bfs", Target: p.Target, DepthLimit: p.DepthLimit}
	if err := m.Load(s, p.Name, req); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return m
}

func TestSearchModel_StepAndPrev(t *testing.T) {
	m := newSampleSearch(t)

	m.Update(keyPress("n"))
	m.Update(keyPress("n"))
	if got := m.Session().Search.View().Step; got != 2 {
		t.Fatalf("Step after two steps = %d, want 2", got)
	}

	m.Update(keyPress("p"))
	if got := m.Session().Search.View().Step; got != 1 {
		t.Errorf("Step after prev = %d, want 1", got)
	}

	m.Update(keyPress("r"))
	if got := m.Session().Search.View().Step; got != 0 {
		t.Errorf("Step after reset = %d, want 0", got)
	}
}

func TestSearchModel_RunsToFoundAndToasts(t *testing.T) {
	m := newSampleSearch(t)

	for range 10 {
		m.Update(keyPress("n"))
	}
	v := m.Session().Search.View()
	if v.Status != domain.StatusFound {
		t.Fatalf("Status = %v, want found", v.Status)
	}
	if !m.toast.Active() {
		t.Error("expected a toast after the target was found")
	}
}

func TestSearchModel_DisciplineCycle(t *testing.T) {
	m := newSampleSearch(t)

	want := []domain.Discipline{domain.DisciplineDFS, domain.DisciplineDLS, domain.DisciplineBFS}
	for _, d := range want {
		m.Update(keyPress("tab"))
		if got := m.Session().Search.Discipline(); got != d {
			t.Fatalf("Discipline() = %v, want %v", got, d)
		}
	}
}

func TestSearchModel_TargetInput(t *testing.T) {
	m := newSampleSearch(t)

	m.Update(keyPress("t"))
	if !m.editingTarget {
		t.Fatal("t should open the target input")
	}
	m.targetInput.SetValue("G")
	m.Update(keyPress("enter"))

	if m.editingTarget {
		t.Error("enter should close the target input")
	}
	if got := m.Session().Search.Target(); got != "G" {
		t.Errorf("Target() = %q, want G", got)
	}
}

func TestSearchModel_ViewWithoutTree(t *testing.T) {
	m := NewSearchModel(nil, nil, time.Millisecond)
	if !strings.Contains(m.View(), "No tree loaded") {
		t.Error("expected empty state hint")
	}
}

func TestLinearModel_PushPopAndUnderflowToast(t *testing.T) {
	m := NewLinearModel(nil, time.Millisecond, 3, 3)

	m.Update(keyPress("i"))
	if m.input != inputValue {
		t.Fatal("i should open the value prompt")
	}
	m.textInput.SetValue("a")
	m.Update(keyPress("enter"))

	if got := m.session.Linear.Values(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Values() = %v, want [a]", got)
	}

	m.Update(keyPress("x"))
	if m.session.Linear.Len() != 0 {
		t.Fatalf("Len() after pop = %d, want 0", m.session.Linear.Len())
	}
	if m.toast.Active() {
		t.Fatal("an accepted pop should not toast")
	}

	m.Update(keyPress("x"))
	if !m.MessageErr {
		t.Error("pop on empty should report an error")
	}
	if !m.toast.Active() {
		t.Error("pop on empty should toast")
	}
}

func TestLinearModel_KindCycleAndCapacity(t *testing.T) {
	m := NewLinearModel(nil, time.Millisecond, 4, 3)

	m.Update(keyPress("tab"))
	if got := m.session.Linear.Kind(); got != domain.LinearQueue {
		t.Fatalf("Kind() = %v, want queue", got)
	}
	m.Update(keyPress("tab"))
	if got := m.session.Linear.Capacity(); got != 3 {
		t.Errorf("circular Capacity() = %d, want 3", got)
	}
	m.Update(keyPress("+"))
	if got := m.session.Linear.Capacity(); got != 4 {
		t.Errorf("Capacity() after grow = %d, want 4", got)
	}
}

func TestLinearModel_ProgramSteps(t *testing.T) {
	m := NewLinearModel(nil, time.Millisecond, 2, 2)

	m.Update(keyPress("P"))
	m.textInput.SetValue("push a, push b, push c, pop")
	m.Update(keyPress("enter"))
	if !m.session.ProgramLoaded() {
		t.Fatal("expected program to load")
	}

	for range 3 {
		m.Update(keyPress("n"))
	}
	if got := m.session.Linear.Values(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("Values() = %v, want [b a]", got)
	}
	if !m.toast.Active() {
		t.Error("the rejected third push should toast")
	}

	m.Update(keyPress("u"))
	if got := m.session.Program.Counter(); got != 2 {
		t.Errorf("Counter() after undo = %d, want 2", got)
	}
}

func TestBuildModel_FormRequest(t *testing.T) {
	m := NewBuildModel(nil, 2)
	for _, k := range []string{"7", "tab", "A B C", "tab", "tab", "E"} {
		m.Update(keyPress(k))
	}

	req, preset, err := m.request()
	if err != nil {
		t.Fatalf("request() error = %v", err)
	}
	if req.NodeCount != 7 || !req.Auto {
		t.Errorf("request = %+v, want 7 auto nodes", req)
	}
	if !reflect.DeepEqual(req.Values, []string{"A", "B", "C"}) {
		t.Errorf("Values = %v, want [A B C]", req.Values)
	}
	if preset.Target != "E" || preset.DepthLimit != 2 {
		t.Errorf("preset target/limit = %q/%d, want E/2", preset.Target, preset.DepthLimit)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.form.Focused(); got != buildFieldEdges {
		t.Errorf("focus after shift+tab = %d, want %d", got, buildFieldEdges)
	}

	m.Reset()
	if m.form.Focused() != buildFieldCount || m.form.Text(buildFieldValues) != "" {
		t.Error("Reset should clear the form and focus the first field")
	}
}

func TestBuildModel_FormErrors(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"not a number", []string{"x"}, "nodes must be a number"},
		{"bad edge", []string{"3", "tab", "tab", "0-"}, "parent-child"},
		{"missing count", nil, "node"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewBuildModel(nil, 2)
			for _, k := range tt.keys {
				m.Update(keyPress(k))
			}
			_, _, err := m.request()
			if err == nil || !strings.Contains(strings.ToLower(err.Error()), tt.want) {
				t.Errorf("request() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
