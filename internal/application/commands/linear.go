package commands

import (
	"context"
	"fmt"

	"stepviz/internal/application"
	"stepviz/internal/domain"
)

// RunLinearResult contains the structure after a program ran
type RunLinearResult struct {
	Session  *application.LinearSession
	View     domain.LinearView
	Rejected []string
	Message  string
}

// RunLinearCommand executes a program such as "push a, push b, pop"
// against a fresh stack, queue or circular queue
type RunLinearCommand struct {
	Request   application.LinearRequest
	Program   string
	Observers []domain.Observer
}

// NewRunLinearCommand creates a new RunLinearCommand
func NewRunLinearCommand(req application.LinearRequest, program string) *RunLinearCommand {
	return &RunLinearCommand{
		Request: req,
		Program: program,
	}
}

// Validate checks the structure request and the program text
func (c *RunLinearCommand) Validate() error {
	if err := application.ValidateLinear(c.Request); err != nil {
		return err
	}
	return application.ValidateRequired("program", c.Program)
}

// Execute runs the linear program command
func (c *RunLinearCommand) Execute(ctx context.Context) (*RunLinearResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sess, err := application.NewLinearSession(c.Request, c.Observers...)
	if err != nil {
		return nil, err
	}
	if err := sess.LoadProgramText(c.Program); err != nil {
		return nil, err
	}

	var rejected []string
	for !sess.Program.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := sess.Controller.Step(); err != nil {
			return nil, fmt.Errorf("failed to step program: %w", err)
		}
		if rerr := sess.Program.LastErr(); rerr != nil {
			rejected = append(rejected, rerr.Error())
		}
	}

	view := sess.Linear.View()
	return &RunLinearResult{
		Session:  sess,
		View:     view,
		Rejected: rejected,
		Message: fmt.Sprintf("Ran %d operation(s) on %s: %d/%d occupied, %d rejected",
			len(sess.Program.Operations()), view.Kind, view.Size, view.Capacity, len(rejected)),
	}, nil
}
