package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"stepviz/internal/application"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

// BuildTreeResult contains the built structure and any dropped edges
type BuildTreeResult struct {
	Structure *domain.Structure
	Preset    *domain.Preset
	Issues    []string
	Message   string
}

// BuildTreeCommand builds a tree either from a named preset or from an
// explicit request
type BuildTreeCommand struct {
	repo    ports.SpecRepository
	Preset  string
	Request *application.BuildRequest
}

// NewBuildTreeCommand creates a command that loads the named preset
func NewBuildTreeCommand(repo ports.SpecRepository, preset string) *BuildTreeCommand {
	return &BuildTreeCommand{
		repo:   repo,
		Preset: preset,
	}
}

// NewBuildTreeFromRequestCommand creates a command for an ad-hoc tree
func NewBuildTreeFromRequestCommand(req application.BuildRequest) *BuildTreeCommand {
	return &BuildTreeCommand{Request: &req}
}

// Validate checks that exactly one source was given
func (c *BuildTreeCommand) Validate() error {
	if c.Request != nil {
		if c.Preset != "" {
			return &application.ValidationError{
				Field:   "preset",
				Message: "give either a preset or a tree, not both",
			}
		}
		return application.ValidateBuild(*c.Request)
	}
	if err := application.ValidateRequired("preset", c.Preset); err != nil {
		return err
	}
	if c.repo == nil {
		return &application.ValidationError{
			Field:   "preset",
			Message: "no preset repository configured",
		}
	}
	return nil
}

// Execute builds the structure
func (c *BuildTreeCommand) Execute(ctx context.Context) (*BuildTreeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		spec   domain.BuildSpec
		preset *domain.Preset
	)
	if c.Request != nil {
		spec = c.Request.Spec()
	} else {
		p, err := c.repo.LoadPreset(c.Preset)
		if err != nil {
			return nil, fmt.Errorf("failed to load preset: %w", err)
		}
		preset = p
		spec = p.Spec
	}

	s, err := domain.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}

	result := &BuildTreeResult{
		Structure: s,
		Preset:    preset,
		Issues:    issueList(s.Err()),
	}
	result.Message = fmt.Sprintf("Built %d nodes rooted at %s", len(s.Nodes), s.Nodes[s.Root].Label)
	if n := len(result.Issues); n > 0 {
		result.Message += fmt.Sprintf(", dropped %d edge(s)", n)
	}
	if orphans := s.Orphans(); len(orphans) > 0 {
		result.Message += fmt.Sprintf(", %d unreachable", len(orphans))
	}
	return result, nil
}

// issueList flattens the builder's aggregated edge errors
func issueList(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		out = append(out, e.Error())
	}
	return out
}
