package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stepviz/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages
type (
	SwitchToSearchMsg  struct{}
	SwitchToLinearMsg  struct{}
	SwitchToBuildMsg   struct{}
	SwitchToPresetsMsg struct{}
	SwitchToHelpMsg    struct{}
	// CloseHelpMsg returns to whichever simulator opened the help view
	CloseHelpMsg struct{}
)

// TreeBuiltMsg carries a freshly built tree into the search view
type TreeBuiltMsg struct {
	Structure *domain.Structure
	Preset    *domain.Preset
	Message   string
}

// OpenEditorMsg asks the app to suspend and edit a preset file
type OpenEditorMsg struct {
	Path string
}

// EditorFinishedMsg reports the editor process exit
type EditorFinishedMsg struct {
	Path string
	Err  error
}

// tickMsg drives a running controller; gen ties it to the run that
// scheduled it
type tickMsg struct {
	gen uint64
}

func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Toast is a short-lived notification for terminal engine events
type Toast struct {
	Text  string
	Kind  domain.EventKind
	until time.Time
}

type toastExpiredMsg struct {
	until time.Time
}

const toastDuration = 2500 * time.Millisecond

func showToast(t *Toast, e domain.Event, now time.Time) tea.Cmd {
	*t = Toast{Text: e.Message, Kind: e.Kind, until: now.Add(toastDuration)}
	until := t.until
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{until: until}
	})
}

func (t *Toast) expire(msg toastExpiredMsg) {
	if t.until.Equal(msg.until) {
		*t = Toast{}
	}
}

// Active reports whether a toast is showing
func (t Toast) Active() bool {
	return t.Text != ""
}
