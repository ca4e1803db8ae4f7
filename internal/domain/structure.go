package domain

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// MaxNodes bounds the size of a buildable tree
const MaxNodes = 31

// Edge is a manual (parentIndex, childIndex) pair
type Edge struct {
	Parent int
	Child  int
}

// BuildSpec describes a tree to build
type BuildSpec struct {
	NodeCount int
	Values    []string
	Edges     []Edge
	Auto      bool
}

// Position is the layout slot of a node: X in (0,1) across its level, Y its level
type Position struct {
	X float64
	Y int
}

// Node lives in the Structure arena and is addressed by its index.
// Depth is -1 for nodes unreachable from the root.
type Node struct {
	ID         int
	Label      string
	Children   []int
	Depth      int
	Pos        Position
	Visited    bool
	Found      bool
	VisitOrder int // 0 until visited
}

// Structure owns every Node of a tree
type Structure struct {
	Nodes  []Node
	Root   int
	issues *multierror.Error
}

// Build turns a BuildSpec into a Structure with depths and layout assigned.
// Invalid edges are dropped and reported through Structure.Err; the only
// fatal condition is a spec without nodes.
func Build(spec BuildSpec) (*Structure, error) {
	if spec.NodeCount < 1 {
		return nil, ErrNoNodes
	}

	s := &Structure{Nodes: make([]Node, spec.NodeCount)}
	for i := range s.Nodes {
		s.Nodes[i] = Node{ID: i, Label: labelFor(spec.Values, i), Depth: -1}
	}

	edges := spec.Edges
	if spec.Auto {
		edges = autoEdges(spec.NodeCount)
	}

	indegree := make([]int, spec.NodeCount)
	seen := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		if reason := s.rejectEdge(e, seen); reason != "" {
			s.issues = multierror.Append(s.issues, &StructureError{Parent: e.Parent, Child: e.Child, Reason: reason})
			continue
		}
		seen[e] = true
		s.Nodes[e.Parent].Children = append(s.Nodes[e.Parent].Children, e.Child)
		indegree[e.Child]++
	}

	s.Root = 0
	for i, d := range indegree {
		if d == 0 {
			s.Root = i
			break
		}
	}

	s.assignDepths()
	s.layout()
	return s, nil
}

func (s *Structure) rejectEdge(e Edge, seen map[Edge]bool) string {
	n := len(s.Nodes)
	switch {
	case e.Parent < 0 || e.Parent >= n:
		return fmt.Sprintf("parent index out of range [0,%d)", n)
	case e.Child < 0 || e.Child >= n:
		return fmt.Sprintf("child index out of range [0,%d)", n)
	case e.Parent == e.Child:
		return "self reference"
	case seen[e]:
		return "duplicate edge"
	}
	return ""
}

// autoEdges links node i to 2i+1 and 2i+2
func autoEdges(n int) []Edge {
	var edges []Edge
	for i := 0; i < n; i++ {
		for _, c := range []int{2*i + 1, 2*i + 2} {
			if c < n {
				edges = append(edges, Edge{Parent: i, Child: c})
			}
		}
	}
	return edges
}

// assignDepths runs a single breadth-first pass from the root; the first
// discovery of a node fixes its depth.
func (s *Structure) assignDepths() {
	s.Nodes[s.Root].Depth = 0
	queue := []int{s.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range s.Nodes[id].Children {
			if s.Nodes[c].Depth >= 0 {
				continue
			}
			s.Nodes[c].Depth = s.Nodes[id].Depth + 1
			queue = append(queue, c)
		}
	}
}

// layout spaces nodes evenly across each level in discovery order
func (s *Structure) layout() {
	for depth, level := range s.Levels() {
		for i, id := range level {
			s.Nodes[id].Pos = Position{X: float64(i+1) / float64(len(level)+1), Y: depth}
		}
	}
}

// Levels groups reachable node ids by depth, ordered left to right
func (s *Structure) Levels() [][]int {
	var levels [][]int
	queue := []int{s.Root}
	placed := make([]bool, len(s.Nodes))
	placed[s.Root] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		d := s.Nodes[id].Depth
		for len(levels) <= d {
			levels = append(levels, nil)
		}
		levels[d] = append(levels[d], id)
		for _, c := range s.Nodes[id].Children {
			if !placed[c] && s.Nodes[c].Depth == d+1 {
				placed[c] = true
				queue = append(queue, c)
			}
		}
	}
	return levels
}

// Orphans returns ids of nodes unreachable from the root
func (s *Structure) Orphans() []int {
	var out []int
	for _, n := range s.Nodes {
		if n.Depth < 0 {
			out = append(out, n.ID)
		}
	}
	return out
}

// Err returns the aggregated dropped-edge errors, or nil
func (s *Structure) Err() error {
	return s.issues.ErrorOrNil()
}

// Find returns the id of the first node labelled value
func (s *Structure) Find(value string) (int, bool) {
	for _, n := range s.Nodes {
		if n.Label == value {
			return n.ID, true
		}
	}
	return -1, false
}

// ShallowestMatch returns the smallest reachable depth among nodes labelled value
func (s *Structure) ShallowestMatch(value string) (int, bool) {
	best, ok := -1, false
	for _, n := range s.Nodes {
		if n.Label != value || n.Depth < 0 {
			continue
		}
		if !ok || n.Depth < best {
			best, ok = n.Depth, true
		}
	}
	return best, ok
}

// clearMarks resets every mutable flag
func (s *Structure) clearMarks() {
	for i := range s.Nodes {
		s.Nodes[i].Visited = false
		s.Nodes[i].Found = false
		s.Nodes[i].VisitOrder = 0
	}
}

func labelFor(values []string, i int) string {
	if i < len(values) && values[i] != "" {
		return values[i]
	}
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("N%d", i)
}

// Clone returns a deep copy so independent sessions never share node flags
func (s *Structure) Clone() *Structure {
	c := &Structure{Nodes: make([]Node, len(s.Nodes)), Root: s.Root, issues: s.issues}
	for i, n := range s.Nodes {
		n.Children = append([]int(nil), n.Children...)
		c.Nodes[i] = n
	}
	return c
}
