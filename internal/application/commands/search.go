package commands

import (
	"context"
	"fmt"

	"stepviz/internal/application"
	"stepviz/internal/domain"
)

// RunSearchResult contains the final state of a search run
type RunSearchResult struct {
	Session *application.SearchSession
	View    domain.SearchView
	Steps   int
	Message string
}

// RunSearchCommand runs a traversal over a built tree until it finishes
// or MaxSteps transitions have been taken
type RunSearchCommand struct {
	Structure *domain.Structure
	Preset    string
	Request   application.SearchRequest
	MaxSteps  int
	Observers []domain.Observer
}

// NewRunSearchCommand creates a new RunSearchCommand
func NewRunSearchCommand(s *domain.Structure, req application.SearchRequest) *RunSearchCommand {
	return &RunSearchCommand{
		Structure: s,
		Request:   req,
	}
}

// Validate checks the tree and the search request
func (c *RunSearchCommand) Validate() error {
	if c.Structure == nil || len(c.Structure.Nodes) == 0 {
		return &application.ValidationError{
			Field:   "tree",
			Message: "a built tree is required",
		}
	}
	if c.MaxSteps < 0 {
		return &application.ValidationError{
			Field:   "maxSteps",
			Message: "max steps cannot be negative",
		}
	}
	return application.ValidateSearch(c.Request)
}

// Execute runs the search command
func (c *RunSearchCommand) Execute(ctx context.Context) (*RunSearchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sess, err := application.NewSearchSession(c.Structure, c.Preset, c.Request, c.Observers...)
	if err != nil {
		return nil, err
	}

	steps := 0
	for !sess.Search.Done() {
		if c.MaxSteps > 0 && steps >= c.MaxSteps {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := sess.Controller.Step(); err != nil {
			return nil, fmt.Errorf("failed to step search: %w", err)
		}
		steps++
	}

	view := sess.Search.View()
	return &RunSearchResult{
		Session: sess,
		View:    view,
		Steps:   steps,
		Message: fmt.Sprintf("%s after %d step(s): %s", view.Status, steps, view.StatusMessage),
	}, nil
}
