package domain

import (
	"context"
	"fmt"
	"time"
)

// Steppable is anything a Controller can drive one transition at a time
type Steppable interface {
	// Advance executes one transition; false means nothing was left to do
	Advance() bool
	Undo() bool
	Reset()
	Done() bool
}

var (
	_ Steppable = (*Search)(nil)
	_ Steppable = (*LinearProgram)(nil)
)

// RunState is the state of a Controller
type RunState int

const (
	RunIdle RunState = iota
	RunRunning
	RunPaused
	RunFinished
)

func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunRunning:
		return "running"
	case RunPaused:
		return "paused"
	case RunFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Controller drives a Steppable from an external clock. Every Run, Pause
// and Reset bumps the generation; ticks scheduled under an older
// generation are ignored, which is how a running loop gets cancelled.
type Controller struct {
	engine     Steppable
	state      RunState
	generation uint64
}

// NewController creates an idle controller
func NewController(engine Steppable) *Controller {
	return &Controller{engine: engine}
}

// State returns the run state
func (c *Controller) State() RunState {
	return c.state
}

// Generation returns the tick generation currently accepted
func (c *Controller) Generation() uint64 {
	return c.generation
}

// Engine returns the driven engine
func (c *Controller) Engine() Steppable {
	return c.engine
}

// Run starts continuous stepping and returns the generation ticks must
// carry. It is a no-op once finished.
func (c *Controller) Run() uint64 {
	if c.state == RunFinished || c.state == RunRunning {
		return c.generation
	}
	if c.engine.Done() {
		c.finish()
		return c.generation
	}
	c.state = RunRunning
	c.generation++
	return c.generation
}

// Pause stops a running controller without touching engine state
func (c *Controller) Pause() {
	if c.state != RunRunning {
		return
	}
	c.state = RunPaused
	c.generation++
}

// Tick executes one transition if gen is current and the controller runs.
// It reports whether a transition happened.
func (c *Controller) Tick(gen uint64) bool {
	if c.state != RunRunning || gen != c.generation {
		return false
	}
	advanced := c.engine.Advance()
	if !advanced || c.engine.Done() {
		c.finish()
	}
	return advanced
}

// Step executes one manual transition from Idle or Paused, then pauses
func (c *Controller) Step() error {
	if c.state == RunRunning || c.state == RunFinished {
		return fmt.Errorf("%w: cannot step while %s", ErrInvalidTransition, c.state)
	}
	c.engine.Advance()
	c.state = RunPaused
	if c.engine.Done() {
		c.finish()
	}
	return nil
}

// PrevStep cancels a running loop and undoes one transition
func (c *Controller) PrevStep() bool {
	c.Pause()
	if !c.engine.Undo() {
		return false
	}
	if c.state == RunFinished || c.state == RunIdle {
		c.state = RunPaused
	}
	return true
}

// Reset returns the engine to its initial state and the controller to Idle
func (c *Controller) Reset() {
	c.engine.Reset()
	c.state = RunIdle
	c.generation++
}

func (c *Controller) finish() {
	c.state = RunFinished
	c.generation++
}

// RunToCompletion runs without a clock until finished or maxSteps
// transitions executed (maxSteps <= 0 means no bound). It returns the
// number of transitions executed.
func (c *Controller) RunToCompletion(maxSteps int) int {
	gen := c.Run()
	n := 0
	for c.state == RunRunning {
		if maxSteps > 0 && n >= maxSteps {
			c.Pause()
			break
		}
		if c.Tick(gen) {
			n++
		}
	}
	return n
}

// Drive runs the controller on ticks until it finishes or ctx is done.
// after, if non-nil, is called after every executed transition.
func (c *Controller) Drive(ctx context.Context, ticks <-chan time.Time, after func()) error {
	gen := c.Run()
	for c.state == RunRunning {
		select {
		case <-ctx.Done():
			c.Pause()
			return ctx.Err()
		case <-ticks:
			if c.Tick(gen) && after != nil {
				after()
			}
		}
	}
	return nil
}
