package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepviz/internal/domain"
)

func sampleSession(t *testing.T, req SearchRequest, obs ...domain.Observer) *SearchSession {
	t.Helper()
	p := domain.SamplePreset()
	s, err := domain.Build(p.Spec)
	require.NoError(t, err)
	sess, err := NewSearchSession(s, p.Name, req, obs...)
	require.NoError(t, err)
	return sess
}

func TestSearchSession_ConfigureSwapsDiscipline(t *testing.T) {
	sess := sampleSession(t, SearchRequest{Discipline: "bfs", Target: "E"})
	first := sess.ID
	sess.Controller.RunToCompletion(0)
	require.Equal(t, domain.StatusFound, sess.Search.Status())

	require.NoError(t, sess.Configure(SearchRequest{Discipline: "dfs", Target: "E"}))
	assert.Equal(t, first, sess.ID)
	assert.Equal(t, domain.DisciplineDFS, sess.Search.Discipline())
	assert.Equal(t, domain.RunIdle, sess.Controller.State())
	assert.Equal(t, domain.StatusReady, sess.Search.Status())

	sess.Controller.RunToCompletion(0)
	assert.Equal(t, []string{"A", "B", "D", "E"}, sess.Search.VisitOrder())
}

func TestSearchSession_ConfigureRejectsBadRequest(t *testing.T) {
	sess := sampleSession(t, SearchRequest{Discipline: "bfs"})
	err := sess.Configure(SearchRequest{Discipline: "greedy"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "discipline", validationErr.Field)
	assert.Equal(t, domain.DisciplineBFS, sess.Search.Discipline())
}

func TestSearchSession_ObserversReceiveEvents(t *testing.T) {
	var kinds []domain.EventKind
	sess := sampleSession(t, SearchRequest{Discipline: "dls", Target: "D", DepthLimit: 1}, func(e domain.Event) {
		kinds = append(kinds, e.Kind)
	})
	sess.Controller.RunToCompletion(0)

	require.NotEmpty(t, kinds)
	assert.Equal(t, domain.EventCutoff, kinds[len(kinds)-1])
}

func TestSearchSession_Report(t *testing.T) {
	sess := sampleSession(t, SearchRequest{Discipline: "bfs", Target: "E"})

	_, err := sess.Report(time.Now())
	assert.ErrorIs(t, err, ErrNotFinished)

	sess.Controller.RunToCompletion(0)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r, err := sess.Report(now)
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, sess.ID, r.SessionID)
	assert.Equal(t, domain.ReportSearch, r.Kind)
	assert.Equal(t, "bfs", r.Subject)
	assert.Equal(t, "found", r.Outcome)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, r.VisitOrder)
	assert.Equal(t, 5, r.Steps)
	assert.Equal(t, now, r.CreatedAt)
}

func TestLinearSession_ProgramAndReport(t *testing.T) {
	sess, err := NewLinearSession(LinearRequest{Kind: "queue", Capacity: 3})
	require.NoError(t, err)

	require.NoError(t, sess.LoadProgramText("enqueue a; enqueue b; dequeue; enqueue c"))
	_, err = sess.Report(time.Now())
	assert.ErrorIs(t, err, ErrNotFinished)

	assert.Equal(t, 4, sess.Controller.RunToCompletion(0))
	r, err := sess.Report(time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.ReportLinear, r.Kind)
	assert.Equal(t, "queue", r.Subject)
	assert.Equal(t, []string{"b", "c"}, r.VisitOrder)
	assert.Equal(t, "2/3 occupied", r.Outcome)
}

func TestLinearSession_ApplyDirect(t *testing.T) {
	sess, err := NewLinearSession(LinearRequest{Kind: "stack", Capacity: 1})
	require.NoError(t, err)

	require.NoError(t, sess.Apply(domain.Operation{Code: domain.OpPush, Value: "x"}))
	assert.ErrorIs(t, sess.Apply(domain.Operation{Code: domain.OpPush, Value: "y"}), domain.ErrCapacity)

	r, err := sess.Report(time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, r.VisitOrder)
}

func TestLinearSession_Rejections(t *testing.T) {
	_, err := NewLinearSession(LinearRequest{Kind: "circular", Capacity: 20})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "capacity", validationErr.Field)

	sess, err := NewLinearSession(LinearRequest{Kind: "stack", Capacity: 4})
	require.NoError(t, err)
	err = sess.LoadProgramText("   ")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "program", validationErr.Field)

	err = sess.LoadProgramText("push a, rotate")
	require.ErrorAs(t, err, &validationErr)
}
