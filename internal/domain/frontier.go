package domain

import "fmt"

// Discipline selects the frontier used by a search
type Discipline int

const (
	DisciplineBFS Discipline = iota
	DisciplineDFS
	DisciplineDLS
)

func (d Discipline) String() string {
	switch d {
	case DisciplineBFS:
		return "bfs"
	case DisciplineDFS:
		return "dfs"
	case DisciplineDLS:
		return "dls"
	default:
		return "unknown"
	}
}

// ParseDiscipline maps "bfs", "dfs" or "dls" to a Discipline
func ParseDiscipline(s string) (Discipline, error) {
	switch s {
	case "bfs", "BFS":
		return DisciplineBFS, nil
	case "dfs", "DFS":
		return DisciplineDFS, nil
	case "dls", "DLS":
		return DisciplineDLS, nil
	}
	return 0, fmt.Errorf("unknown discipline %q (want bfs, dfs or dls)", s)
}

// Frontier is the pending-work container of a search. Items are node ids.
type Frontier interface {
	// Push inserts id; it returns false when the node was refused
	Push(id, depth int) bool
	// Pop removes the next id. Callers check IsEmpty first.
	Pop() int
	IsEmpty() bool
	Len() int
	// Items lists pending ids in removal order
	Items() []int
	// Restore replaces the contents with a snapshot taken from Snapshot
	Restore(items []int)
	Snapshot() []int
	// ReversePush reports whether children go in reverse order so that
	// popping yields left-to-right visitation
	ReversePush() bool
}

// NewFrontier builds the frontier for a discipline. limit is only used by
// DisciplineDLS.
func NewFrontier(d Discipline, limit int) Frontier {
	switch d {
	case DisciplineDFS:
		return &stackFrontier{}
	case DisciplineDLS:
		return &boundedStackFrontier{limit: limit}
	default:
		return &queueFrontier{}
	}
}

// queueFrontier removes from the head
type queueFrontier struct {
	items []int
}

func (q *queueFrontier) Push(id, _ int) bool {
	q.items = append(q.items, id)
	return true
}

func (q *queueFrontier) Pop() int {
	id := q.items[0]
	q.items = q.items[1:]
	return id
}

func (q *queueFrontier) IsEmpty() bool       { return len(q.items) == 0 }
func (q *queueFrontier) Len() int            { return len(q.items) }
func (q *queueFrontier) Items() []int        { return append([]int(nil), q.items...) }
func (q *queueFrontier) Snapshot() []int     { return append([]int(nil), q.items...) }
func (q *queueFrontier) Restore(items []int) { q.items = append([]int(nil), items...) }
func (q *queueFrontier) ReversePush() bool   { return false }

// stackFrontier removes from the tail
type stackFrontier struct {
	items []int
}

func (s *stackFrontier) Push(id, _ int) bool {
	s.items = append(s.items, id)
	return true
}

func (s *stackFrontier) Pop() int {
	id := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return id
}

func (s *stackFrontier) IsEmpty() bool { return len(s.items) == 0 }
func (s *stackFrontier) Len() int      { return len(s.items) }

func (s *stackFrontier) Items() []int {
	out := make([]int, len(s.items))
	for i, id := range s.items {
		out[len(s.items)-1-i] = id
	}
	return out
}

func (s *stackFrontier) Snapshot() []int     { return append([]int(nil), s.items...) }
func (s *stackFrontier) Restore(items []int) { s.items = append([]int(nil), items...) }
func (s *stackFrontier) ReversePush() bool   { return true }

// boundedStackFrontier is a stack that refuses nodes deeper than limit
type boundedStackFrontier struct {
	stackFrontier
	limit int
}

func (b *boundedStackFrontier) Push(id, depth int) bool {
	if depth > b.limit {
		return false
	}
	return b.stackFrontier.Push(id, depth)
}

// Limit returns the configured depth bound
func (b *boundedStackFrontier) Limit() int {
	return b.limit
}
