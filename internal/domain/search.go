package domain

import (
	"fmt"
	"strings"
)

// DefaultDepthLimit is used by depth-limited searches configured without a limit
const DefaultDepthLimit = 2

// Status is the state of a search
type Status int

const (
	StatusReady Status = iota
	StatusStepping
	StatusFound
	StatusExhausted
	StatusCutoff
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusStepping:
		return "stepping"
	case StatusFound:
		return "found"
	case StatusExhausted:
		return "exhausted"
	case StatusCutoff:
		return "cutoff"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further step can change the search
func (s Status) Terminal() bool {
	return s == StatusFound || s == StatusExhausted || s == StatusCutoff
}

// Err maps failed outcomes to their sentinel errors
func (s Status) Err() error {
	switch s {
	case StatusExhausted:
		return ErrNotFound
	case StatusCutoff:
		return ErrCutoff
	}
	return nil
}

// SearchOption configures a Search
type SearchOption func(*Search)

// WithTarget sets the value searched for
func WithTarget(value string) SearchOption {
	return func(e *Search) {
		e.target = value
	}
}

// WithDepthLimit sets the bound of a depth-limited search
func WithDepthLimit(limit int) SearchOption {
	return func(e *Search) {
		e.limit = limit
	}
}

// WithObserver subscribes fn to search events
func WithObserver(fn Observer) SearchOption {
	return func(e *Search) {
		if fn != nil {
			e.observers = append(e.observers, fn)
		}
	}
}

// nodeMark is the mutable part of a Node
type nodeMark struct {
	visited bool
	found   bool
	order   int
}

// searchRecord is the pre-step snapshot of a Search
type searchRecord struct {
	frontier []int
	marks    []nodeMark
	current  int
	counter  int
	step     int
	logLen   int
	status   Status
}

// Search is the traversal step engine. It performs one transition per
// Step call over a Structure it exclusively owns.
type Search struct {
	structure  *Structure
	discipline Discipline
	frontier   Frontier
	target     string
	limit      int
	current    int
	counter    int
	step       int
	status     Status
	log        Log
	history    *History[searchRecord]
	observers  observers
}

// NewSearch creates a search over s seeded with its root
func NewSearch(s *Structure, d Discipline, opts ...SearchOption) *Search {
	e := &Search{
		structure:  s,
		discipline: d,
		limit:      DefaultDepthLimit,
		history:    NewHistory[searchRecord](),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.limit < 0 {
		e.limit = DefaultDepthLimit
	}
	e.Reset()
	return e
}

// Configure sets a new target and depth limit and resets the traversal.
// An empty target explores the whole reachable tree.
func (e *Search) Configure(target string, limit int) error {
	if limit < 0 {
		return ErrDepthLimit
	}
	e.target = target
	e.limit = limit
	e.Reset()
	return nil
}

// Subscribe adds an observer
func (e *Search) Subscribe(fn Observer) {
	if fn != nil {
		e.observers = append(e.observers, fn)
	}
}

// Reset clears marks, log and history and reseeds the frontier with the root
func (e *Search) Reset() {
	e.structure.clearMarks()
	e.frontier = NewFrontier(e.discipline, e.limit)
	root := e.structure.Nodes[e.structure.Root]
	e.frontier.Push(root.ID, root.Depth)
	e.current = -1
	e.counter = 0
	e.step = 0
	e.status = StatusReady
	e.log.Reset()
	e.history.Clear()
}

// Step performs one transition. On a terminal search it changes nothing.
func (e *Search) Step() Status {
	if e.status.Terminal() {
		return e.status
	}
	e.history.Push(e.record())
	e.step++

	if e.frontier.IsEmpty() {
		e.finish()
		return e.status
	}

	id := e.frontier.Pop()
	e.current = id
	e.status = StatusStepping
	n := &e.structure.Nodes[id]

	if n.Visited {
		e.log.Append("%s already visited, skipped", n.Label)
		e.emit(EventStepped, n.Label)
		return e.status
	}

	e.counter++
	n.Visited = true
	n.VisitOrder = e.counter
	e.log.Append("Visiting %s (depth %d)", n.Label, n.Depth)

	if e.target != "" && n.Label == e.target {
		n.Found = true
		e.status = StatusFound
		e.log.Append("Found %s at depth %d after %d visits", n.Label, n.Depth, e.counter)
		e.emit(EventFound, n.Label)
		return e.status
	}

	e.expand(n)
	e.emit(EventStepped, n.Label)
	return e.status
}

// expand pushes the unvisited children of n, logging every skipped child
func (e *Search) expand(n *Node) {
	children := n.Children
	if e.frontier.ReversePush() {
		children = make([]int, len(n.Children))
		for i, c := range n.Children {
			children[len(n.Children)-1-i] = c
		}
	}

	var added []string
	for _, c := range children {
		child := e.structure.Nodes[c]
		switch {
		case child.Visited:
			e.log.Append("Skipping %s: already visited", child.Label)
		case !e.frontier.Push(c, child.Depth):
			e.log.Append("Cutoff: %s at depth %d exceeds limit %d", child.Label, child.Depth, e.limit)
		default:
			added = append(added, child.Label)
		}
	}
	if len(added) > 0 {
		e.log.Append("Added %s to the %s", strings.Join(added, ", "), e.frontierName())
	}
}

// finish moves an empty-frontier search to its terminal state
func (e *Search) finish() {
	e.current = -1
	if e.discipline == DisciplineDLS && e.target != "" {
		if d, ok := e.structure.ShallowestMatch(e.target); ok && d > e.limit {
			e.status = StatusCutoff
			e.log.Append("Cutoff: %s lies at depth %d, beyond limit %d", e.target, d, e.limit)
			e.emit(EventCutoff, e.target)
			return
		}
	}
	e.status = StatusExhausted
	if e.target == "" {
		e.log.Append("Traversal complete: %d nodes visited", e.counter)
	} else {
		e.log.Append("Frontier empty: %s not found after %d visits", e.target, e.counter)
	}
	e.emit(EventNotFound, e.target)
}

// Undo restores the snapshot taken before the most recent step
func (e *Search) Undo() bool {
	rec, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.frontier.Restore(rec.frontier)
	for i, m := range rec.marks {
		n := &e.structure.Nodes[i]
		n.Visited, n.Found, n.VisitOrder = m.visited, m.found, m.order
	}
	e.current = rec.current
	e.counter = rec.counter
	e.step = rec.step
	e.status = rec.status
	e.log.Truncate(rec.logLen)
	return true
}

func (e *Search) record() searchRecord {
	marks := make([]nodeMark, len(e.structure.Nodes))
	for i, n := range e.structure.Nodes {
		marks[i] = nodeMark{visited: n.Visited, found: n.Found, order: n.VisitOrder}
	}
	return searchRecord{
		frontier: e.frontier.Snapshot(),
		marks:    marks,
		current:  e.current,
		counter:  e.counter,
		step:     e.step,
		logLen:   e.log.Len(),
		status:   e.status,
	}
}

func (e *Search) emit(kind EventKind, value string) {
	e.observers.emit(Event{Kind: kind, Step: e.step, Value: value, Message: e.log.Last()})
}

func (e *Search) frontierName() string {
	if e.discipline == DisciplineBFS {
		return "queue"
	}
	return "stack"
}

// Advance executes one step; it returns false when the search was already terminal
func (e *Search) Advance() bool {
	if e.status.Terminal() {
		return false
	}
	e.Step()
	return true
}

// Done reports whether the search reached a terminal state
func (e *Search) Done() bool {
	return e.status.Terminal()
}

// Status returns the current state
func (e *Search) Status() Status {
	return e.status
}

// Discipline returns the frontier discipline
func (e *Search) Discipline() Discipline {
	return e.discipline
}

// Target returns the configured target, "" when exploring
func (e *Search) Target() string {
	return e.target
}

// DepthLimit returns the configured limit
func (e *Search) DepthLimit() int {
	return e.limit
}

// Steps returns the number of undoable steps
func (e *Search) Steps() int {
	return e.history.Len()
}

// Log returns a copy of the log entries
func (e *Search) Log() []LogEntry {
	return e.log.Entries()
}

// VisitOrder returns visited labels sorted by their visit order
func (e *Search) VisitOrder() []string {
	out := make([]string, e.counter)
	for _, n := range e.structure.Nodes {
		if n.Visited {
			out[n.VisitOrder-1] = n.Label
		}
	}
	return out
}

// NodeView is the observable state of one node
type NodeView struct {
	ID         int
	Label      string
	Depth      int
	Pos        Position
	Children   []int
	Visited    bool
	Found      bool
	Current    bool
	VisitOrder int
}

// SearchView is the observable output of a search after each call
type SearchView struct {
	Discipline    Discipline
	Target        string
	DepthLimit    int
	Root          int
	Nodes         []NodeView
	Frontier      []string
	Log           []LogEntry
	Step          int
	Visited       int
	Status        Status
	StatusMessage string
}

// View returns a copy of the observable state
func (e *Search) View() SearchView {
	v := SearchView{
		Discipline: e.discipline,
		Target:     e.target,
		DepthLimit: e.limit,
		Root:       e.structure.Root,
		Nodes:      make([]NodeView, len(e.structure.Nodes)),
		Log:        e.log.Entries(),
		Step:       e.step,
		Visited:    e.counter,
		Status:     e.status,
	}
	for i, n := range e.structure.Nodes {
		v.Nodes[i] = NodeView{
			ID:         n.ID,
			Label:      n.Label,
			Depth:      n.Depth,
			Pos:        n.Pos,
			Children:   append([]int(nil), n.Children...),
			Visited:    n.Visited,
			Found:      n.Found,
			Current:    n.ID == e.current,
			VisitOrder: n.VisitOrder,
		}
	}
	for _, id := range e.frontier.Items() {
		v.Frontier = append(v.Frontier, e.structure.Nodes[id].Label)
	}
	v.StatusMessage = e.statusMessage()
	return v
}

func (e *Search) statusMessage() string {
	switch e.status {
	case StatusReady:
		if e.target == "" {
			return fmt.Sprintf("Ready: %s traversal from %s", strings.ToUpper(e.discipline.String()), e.structure.Nodes[e.structure.Root].Label)
		}
		return fmt.Sprintf("Ready: %s search for %s", strings.ToUpper(e.discipline.String()), e.target)
	default:
		return e.log.Last()
	}
}
