package ports

import "os/exec"

// PresetEditor hands preset files to an external editor
type PresetEditor interface {
	// EditCommand returns the process editing path; the TUI suspends
	// itself and runs it through tea.ExecProcess
	EditCommand(path string) (*exec.Cmd, error)
}
