package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"stepviz/internal/adapters/tui/styles"
	"stepviz/internal/domain"
)

// RenderHelpLine renders key bindings as "key desc" pairs joined by bullets.
// Disabled bindings are skipped.
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderToast renders a terminal event notification colored by outcome
func RenderToast(t Toast) string {
	if !t.Active() {
		return ""
	}
	color := styles.Info
	switch t.Kind {
	case domain.EventFound:
		color = styles.Secondary
	case domain.EventNotFound, domain.EventOverflowRejected, domain.EventUnderflowRejected:
		color = styles.Error
	case domain.EventCutoff:
		color = styles.Warning
	}
	return styles.Toast.BorderForeground(color).Foreground(color).Render(t.Text)
}

// RenderStatus renders "STATUS message" with the status badge colored
func RenderStatus(status, message string) string {
	badge := styles.StatusBadge.
		Background(styles.StatusColor(status)).
		Render(strings.ToUpper(status))
	return badge + " " + message
}

// RenderPanel renders body in a bordered box with a heading
func RenderPanel(title, body string, width int) string {
	content := styles.PanelTitle.Render(title) + "\n" + body
	style := styles.Panel
	if width > 4 {
		style = style.Width(width - 4)
	}
	return style.Render(content)
}

// RenderMuted renders muted/secondary text
func RenderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// RenderLabelValue renders "label: value" with the label styled
func RenderLabelValue(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(RenderMuted(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Toast adds a toast if one is active
func (v *ViewBuilder) Toast(t Toast) *ViewBuilder {
	if !t.Active() {
		return v
	}
	v.b.WriteString(RenderToast(t))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
