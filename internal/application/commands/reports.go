package commands

import (
	"context"
	"fmt"

	"stepviz/internal/application"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

// SaveReportResult contains the stored report
type SaveReportResult struct {
	Report  *domain.Report
	Message string
}

// SaveReportCommand exports a finished run to the report store
type SaveReportCommand struct {
	store  ports.ReportStore
	Report *domain.Report
}

// NewSaveReportCommand creates a new SaveReportCommand
func NewSaveReportCommand(store ports.ReportStore, r *domain.Report) *SaveReportCommand {
	return &SaveReportCommand{
		store:  store,
		Report: r,
	}
}

// Validate checks the report carries what the store needs
func (c *SaveReportCommand) Validate() error {
	if c.Report == nil {
		return &application.ValidationError{Field: "report", Message: "report is required"}
	}
	if err := application.ValidateRequired("id", c.Report.ID); err != nil {
		return err
	}
	if c.Report.Kind != domain.ReportSearch && c.Report.Kind != domain.ReportLinear {
		return &application.ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown report kind: %q", c.Report.Kind),
		}
	}
	return nil
}

// Execute runs the save report command
func (c *SaveReportCommand) Execute(ctx context.Context) (*SaveReportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.store.SaveReport(ctx, c.Report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	return &SaveReportResult{
		Report:  c.Report,
		Message: fmt.Sprintf("Saved %s report %s (%s)", c.Report.Kind, c.Report.ID, c.Report.Outcome),
	}, nil
}

// ListReportsResult contains the most recent reports
type ListReportsResult struct {
	Reports []domain.Report
	Message string
}

// ListReportsCommand lists stored reports, newest first
type ListReportsCommand struct {
	store ports.ReportStore
	Limit int
}

// NewListReportsCommand creates a new ListReportsCommand
func NewListReportsCommand(store ports.ReportStore, limit int) *ListReportsCommand {
	return &ListReportsCommand{
		store: store,
		Limit: limit,
	}
}

// Validate checks the limit
func (c *ListReportsCommand) Validate() error {
	if c.Limit < 0 {
		return &application.ValidationError{Field: "limit", Message: "limit cannot be negative"}
	}
	return nil
}

// Execute runs the list reports command
func (c *ListReportsCommand) Execute(ctx context.Context) (*ListReportsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reports, err := c.store.ListReports(ctx, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return &ListReportsResult{
		Reports: reports,
		Message: fmt.Sprintf("Found %d report(s)", len(reports)),
	}, nil
}

// ShowReportResult contains one report with its log
type ShowReportResult struct {
	Report  *domain.Report
	Message string
}

// ShowReportCommand fetches a single report by ID
type ShowReportCommand struct {
	store ports.ReportStore
	ID    string
}

// NewShowReportCommand creates a new ShowReportCommand
func NewShowReportCommand(store ports.ReportStore, id string) *ShowReportCommand {
	return &ShowReportCommand{
		store: store,
		ID:    id,
	}
}

// Validate checks the ID
func (c *ShowReportCommand) Validate() error {
	return application.ValidateRequired("id", c.ID)
}

// Execute runs the show report command
func (c *ShowReportCommand) Execute(ctx context.Context) (*ShowReportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	r, err := c.store.GetReport(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &ShowReportResult{
		Report:  r,
		Message: fmt.Sprintf("%s %s: %s in %d step(s)", r.Kind, r.Subject, r.Outcome, r.Steps),
	}, nil
}
