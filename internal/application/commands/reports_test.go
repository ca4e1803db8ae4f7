package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepviz/internal/application"
	"stepviz/internal/domain"
)

func finishedReport(t *testing.T, target string) *domain.Report {
	t.Helper()
	result, err := NewRunSearchCommand(sampleStructure(t), application.SearchRequest{Discipline: "bfs", Target: target}).
		Execute(context.Background())
	require.NoError(t, err)
	r, err := result.Session.Report(time.Now())
	require.NoError(t, err)
	return r
}

func TestSaveReportCommand_Validate(t *testing.T) {
	tests := []struct {
		name   string
		report *domain.Report
		errMsg string
	}{
		{name: "nil report", errMsg: "report is required"},
		{name: "missing id", report: &domain.Report{Kind: domain.ReportSearch}, errMsg: "id is required"},
		{name: "unknown kind", report: &domain.Report{ID: "r1", Kind: "graph"}, errMsg: "unknown report kind"},
		{name: "valid", report: &domain.Report{ID: "r1", Kind: domain.ReportLinear}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSaveReportCommand(&memReports{}, tt.report).Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReportCommands_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &memReports{}

	first := finishedReport(t, "E")
	second := finishedReport(t, "Z")
	for _, r := range []*domain.Report{first, second} {
		res, err := NewSaveReportCommand(store, r).Execute(ctx)
		require.NoError(t, err)
		assert.Contains(t, res.Message, r.ID)
	}

	list, err := NewListReportsCommand(store, 1).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, list.Reports, 1)
	assert.Equal(t, second.ID, list.Reports[0].ID)
	assert.Equal(t, "exhausted", list.Reports[0].Outcome)

	shown, err := NewShowReportCommand(store, first.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "found", shown.Report.Outcome)
	assert.Equal(t, "search bfs: found in 5 step(s)", shown.Message)
}

func TestShowReportCommand_Errors(t *testing.T) {
	_, err := NewShowReportCommand(&memReports{}, "").Execute(context.Background())
	var validationErr *application.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = NewShowReportCommand(&memReports{}, "missing").Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestListReportsCommand_NegativeLimit(t *testing.T) {
	_, err := NewListReportsCommand(&memReports{}, -1).Execute(context.Background())
	assert.Error(t, err)
}

func TestListPresetsCommand(t *testing.T) {
	extra := domain.Preset{Name: "chain", Spec: domain.BuildSpec{NodeCount: 2, Edges: []domain.Edge{{Parent: 0, Child: 1}}}}
	result, err := NewListPresetsCommand(newMemPresets(extra)).Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Presets, 2)
	assert.Equal(t, "chain", result.Presets[0].Name)
	assert.Equal(t, "Found 2 preset(s)", result.Message)
}
