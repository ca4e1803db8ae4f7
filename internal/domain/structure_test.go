package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree builds A(B,C), B(D,E), C(F,G)
func sampleTree(t *testing.T) *Structure {
	t.Helper()
	s, err := Build(BuildSpec{
		NodeCount: 7,
		Values:    []string{"A", "B", "C", "D", "E", "F", "G"},
		Auto:      true,
	})
	require.NoError(t, err)
	require.NoError(t, s.Err())
	return s
}

func TestBuild_AutoLayout(t *testing.T) {
	s := sampleTree(t)

	assert.Equal(t, 0, s.Root)
	assert.Equal(t, []int{1, 2}, s.Nodes[0].Children)
	assert.Equal(t, []int{3, 4}, s.Nodes[1].Children)
	assert.Equal(t, []int{5, 6}, s.Nodes[2].Children)
	assert.Empty(t, s.Nodes[6].Children)

	wantDepth := []int{0, 1, 1, 2, 2, 2, 2}
	for i, d := range wantDepth {
		assert.Equal(t, d, s.Nodes[i].Depth, "depth of %s", s.Nodes[i].Label)
	}

	assert.InDelta(t, 0.5, s.Nodes[0].Pos.X, 1e-9)
	assert.InDelta(t, 1.0/3, s.Nodes[1].Pos.X, 1e-9)
	assert.InDelta(t, 2.0/3, s.Nodes[2].Pos.X, 1e-9)
	assert.Equal(t, 2, s.Nodes[5].Pos.Y)
}

func TestBuild_DefaultLabels(t *testing.T) {
	s, err := Build(BuildSpec{NodeCount: 3, Values: []string{"root"}, Auto: true})
	require.NoError(t, err)

	assert.Equal(t, "root", s.Nodes[0].Label)
	assert.Equal(t, "B", s.Nodes[1].Label)
	assert.Equal(t, "C", s.Nodes[2].Label)
}

func TestBuild_NoNodes(t *testing.T) {
	s, err := Build(BuildSpec{NodeCount: 0})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNoNodes)
}

func TestBuild_ManualEdgesPickZeroInDegreeRoot(t *testing.T) {
	// 2 is the only node nobody points at
	s, err := Build(BuildSpec{
		NodeCount: 4,
		Edges:     []Edge{{Parent: 2, Child: 0}, {Parent: 0, Child: 1}, {Parent: 0, Child: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Root)
	assert.Equal(t, 0, s.Nodes[2].Depth)
	assert.Equal(t, 1, s.Nodes[0].Depth)
	assert.Equal(t, 2, s.Nodes[1].Depth)
	assert.Equal(t, 2, s.Nodes[3].Depth)
}

func TestBuild_InvalidEdgesDroppedAndReported(t *testing.T) {
	s, err := Build(BuildSpec{
		NodeCount: 3,
		Edges: []Edge{
			{Parent: 0, Child: 1},
			{Parent: 0, Child: 7},
			{Parent: -1, Child: 2},
			{Parent: 1, Child: 1},
			{Parent: 0, Child: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, s.Nodes[0].Children)
	require.Error(t, s.Err())
	assert.True(t, errors.Is(s.Err(), ErrStructure))

	var se *StructureError
	require.True(t, errors.As(s.Err(), &se))
	assert.Equal(t, 7, se.Child)
	assert.Contains(t, s.Err().Error(), "duplicate edge")
	assert.Contains(t, s.Err().Error(), "self reference")
}

func TestBuild_CycleFallsBackToIndexZero(t *testing.T) {
	s, err := Build(BuildSpec{
		NodeCount: 2,
		Edges:     []Edge{{Parent: 0, Child: 1}, {Parent: 1, Child: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, s.Root)
	assert.Equal(t, 1, s.Nodes[1].Depth)
}

func TestBuild_OrphansKeepUndefinedDepth(t *testing.T) {
	s, err := Build(BuildSpec{
		NodeCount: 4,
		Edges:     []Edge{{Parent: 0, Child: 1}, {Parent: 2, Child: 3}, {Parent: 3, Child: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, s.Orphans())
	assert.Equal(t, -1, s.Nodes[2].Depth)
	assert.Len(t, s.Levels(), 2)
}

func TestStructure_CloneIsIndependent(t *testing.T) {
	s := sampleTree(t)
	c := s.Clone()

	c.Nodes[0].Visited = true
	c.Nodes[0].Children[0] = 6

	assert.False(t, s.Nodes[0].Visited)
	assert.Equal(t, 1, s.Nodes[0].Children[0])
}

func TestStructure_ShallowestMatch(t *testing.T) {
	s, err := Build(BuildSpec{NodeCount: 7, Values: []string{"x", "y", "q", "q", "y", "y", "q"}, Auto: true})
	require.NoError(t, err)

	d, ok := s.ShallowestMatch("q")
	assert.True(t, ok)
	assert.Equal(t, 1, d)

	_, ok = s.ShallowestMatch("missing")
	assert.False(t, ok)
}
