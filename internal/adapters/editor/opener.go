package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"stepviz/internal/ports"
)

// ErrNoEditor is returned when neither $VISUAL, $EDITOR nor a fallback is found
var ErrNoEditor = errors.New("no editor found: set $EDITOR")

var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.PresetEditor
type Opener struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

var _ ports.PresetEditor = (*Opener)(nil)

// NewOpener creates an opener using the process environment
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath, getenv: os.Getenv}
}

// EditCommand returns the editor process for path. $EDITOR values with
// arguments such as "code --wait" are split on whitespace.
func (o *Opener) EditCommand(path string) (*exec.Cmd, error) {
	argv := o.resolve()
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (o *Opener) resolve() []string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(o.getenv(key)); len(fields) > 0 {
			return fields
		}
	}
	for _, name := range fallbackEditors {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}
		}
	}
	return nil
}
