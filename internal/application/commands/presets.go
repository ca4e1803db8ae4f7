package commands

import (
	"context"
	"fmt"

	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

// ListPresetsResult contains every available preset
type ListPresetsResult struct {
	Presets []domain.Preset
	Message string
}

// ListPresetsCommand lists the built-in and user preset trees
type ListPresetsCommand struct {
	repo ports.SpecRepository
}

// NewListPresetsCommand creates a new ListPresetsCommand
func NewListPresetsCommand(repo ports.SpecRepository) *ListPresetsCommand {
	return &ListPresetsCommand{repo: repo}
}

// Execute runs the list presets command
func (c *ListPresetsCommand) Execute(ctx context.Context) (*ListPresetsResult, error) {
	presets, err := c.repo.ListPresets()
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	return &ListPresetsResult{
		Presets: presets,
		Message: fmt.Sprintf("Found %d preset(s)", len(presets)),
	}, nil
}
