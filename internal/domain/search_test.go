package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runToEnd(e *Search) {
	for !e.Done() {
		e.Step()
	}
}

func TestSearch_BFSOrder(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineBFS)
	runToEnd(e)

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, e.VisitOrder())
	assert.Equal(t, StatusExhausted, e.Status())
}

func TestSearch_DFSOrder(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineDFS)
	runToEnd(e)

	assert.Equal(t, []string{"A", "B", "D", "E", "C", "F", "G"}, e.VisitOrder())
}

func TestSearch_FoundStopsWithoutExpanding(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineBFS, WithTarget("C"))
	runToEnd(e)

	v := e.View()
	assert.Equal(t, StatusFound, e.Status())
	assert.Equal(t, []string{"A", "B", "C"}, e.VisitOrder())
	assert.True(t, v.Nodes[2].Found)
	assert.True(t, v.Nodes[2].Current)
	// C's children never entered the queue
	assert.Equal(t, []string{"D", "E"}, v.Frontier)
	assert.NoError(t, e.Status().Err())
}

func TestSearch_NotFound(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineDFS, WithTarget("Z"))
	runToEnd(e)

	assert.Equal(t, StatusExhausted, e.Status())
	assert.ErrorIs(t, e.Status().Err(), ErrNotFound)
	assert.Contains(t, e.View().StatusMessage, "Z not found")
}

func TestSearch_DepthLimitedCutoff(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   Status
	}{
		{name: "target below the limit", target: "D", want: StatusCutoff},
		{name: "target within the limit", target: "B", want: StatusFound},
		{name: "target absent", target: "Z", want: StatusExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewSearch(sampleTree(t), DisciplineDLS, WithTarget(tt.target), WithDepthLimit(1))
			runToEnd(e)
			assert.Equal(t, tt.want, e.Status())
		})
	}
}

func TestSearch_DepthLimitedLogsEachCutoffChild(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineDLS, WithTarget("D"), WithDepthLimit(1))
	runToEnd(e)

	var cutoffs int
	for _, entry := range e.Log() {
		if len(entry.Message) >= 7 && entry.Message[:7] == "Cutoff:" {
			cutoffs++
		}
	}
	// D, E, F, G refused plus the terminal cutoff entry
	assert.Equal(t, 5, cutoffs)
	assert.ErrorIs(t, e.Status().Err(), ErrCutoff)
}

func TestSearch_RoundTrip(t *testing.T) {
	for _, d := range []Discipline{DisciplineBFS, DisciplineDFS, DisciplineDLS} {
		t.Run(d.String(), func(t *testing.T) {
			e := NewSearch(sampleTree(t), d, WithTarget("G"), WithDepthLimit(1))
			for !e.Done() {
				before := e.View()
				e.Step()
				require.True(t, e.Undo())
				assert.Equal(t, before, e.View())
				e.Step()
			}
		})
	}
}

func TestSearch_UndoOnFreshSearch(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineBFS)
	assert.False(t, e.Undo())
	assert.Equal(t, StatusReady, e.Status())
}

func TestSearch_HistoryTracksAcceptedSteps(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineBFS)
	for i := 1; i <= 4; i++ {
		e.Step()
		assert.Equal(t, i, e.Steps())
	}
	e.Undo()
	assert.Equal(t, 3, e.Steps())
}

func TestSearch_TerminalIdempotence(t *testing.T) {
	for _, target := range []string{"E", "Z"} {
		e := NewSearch(sampleTree(t), DisciplineBFS, WithTarget(target))
		runToEnd(e)

		before := e.View()
		steps := e.Steps()
		for i := 0; i < 3; i++ {
			e.Step()
			assert.False(t, e.Advance())
		}
		assert.Equal(t, before, e.View())
		assert.Equal(t, steps, e.Steps())
	}
}

func TestSearch_VisitOrderIsPermutation(t *testing.T) {
	for _, d := range []Discipline{DisciplineBFS, DisciplineDFS, DisciplineDLS} {
		e := NewSearch(sampleTree(t), d, WithDepthLimit(1))
		runToEnd(e)

		seen := map[int]bool{}
		k := 0
		for _, n := range e.View().Nodes {
			if !n.Visited {
				assert.Zero(t, n.VisitOrder)
				continue
			}
			k++
			assert.False(t, seen[n.VisitOrder], "duplicate order %d", n.VisitOrder)
			seen[n.VisitOrder] = true
		}
		for i := 1; i <= k; i++ {
			assert.True(t, seen[i], "%s missing order %d", d, i)
		}
	}
}

func TestSearch_AlreadyVisitedConsumesStep(t *testing.T) {
	// D is reachable from both B and C
	s, err := Build(BuildSpec{
		NodeCount: 4,
		Edges:     []Edge{{Parent: 0, Child: 1}, {Parent: 0, Child: 2}, {Parent: 1, Child: 3}, {Parent: 2, Child: 3}},
	})
	require.NoError(t, err)

	e := NewSearch(s, DisciplineBFS)
	runToEnd(e)

	assert.Equal(t, []string{"A", "B", "C", "D"}, e.VisitOrder())
	var skipped int
	for _, entry := range e.Log() {
		if entry.Message == "D already visited, skipped" {
			skipped++
		}
	}
	assert.Equal(t, 1, skipped)
	// 4 visits, 1 skip, 1 terminal transition
	assert.Equal(t, 6, e.Steps())
}

func TestSearch_ConfigureResets(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineDLS, WithTarget("B"))
	runToEnd(e)

	require.NoError(t, e.Configure("F", 2))
	assert.Equal(t, StatusReady, e.Status())
	assert.Zero(t, e.Steps())
	assert.Empty(t, e.Log())
	assert.Equal(t, []string{"A"}, e.View().Frontier)

	assert.ErrorIs(t, e.Configure("F", -1), ErrDepthLimit)
}

func TestSearch_EventsEmitted(t *testing.T) {
	var kinds []EventKind
	e := NewSearch(sampleTree(t), DisciplineBFS, WithTarget("B"), WithObserver(func(ev Event) {
		kinds = append(kinds, ev.Kind)
	}))
	runToEnd(e)
	e.Step()

	assert.Equal(t, []EventKind{EventStepped, EventFound}, kinds)
}

func TestSearch_FrontierOrderForStack(t *testing.T) {
	e := NewSearch(sampleTree(t), DisciplineDFS)
	e.Step()

	// top of stack first
	assert.Equal(t, []string{"B", "C"}, e.View().Frontier)
}
