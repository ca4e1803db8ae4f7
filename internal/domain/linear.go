package domain

import "fmt"

// Capacity bounds for linear structures
const (
	DefaultCapacity     = 8
	MaxCapacity         = 32
	MinCircularCapacity = 1
	MaxCircularCapacity = 12
)

// LinearKind selects the linear structure discipline
type LinearKind int

const (
	LinearStack LinearKind = iota
	LinearQueue
	LinearCircular
)

func (k LinearKind) String() string {
	switch k {
	case LinearStack:
		return "stack"
	case LinearQueue:
		return "queue"
	case LinearCircular:
		return "circular"
	default:
		return "unknown"
	}
}

// ParseLinearKind maps "stack", "queue" or "circular" to a LinearKind
func ParseLinearKind(s string) (LinearKind, error) {
	switch s {
	case "stack":
		return LinearStack, nil
	case "queue":
		return LinearQueue, nil
	case "circular", "circular-queue", "ring":
		return LinearCircular, nil
	}
	return 0, fmt.Errorf("unknown linear structure %q (want stack, queue or circular)", s)
}

// CapacityRange returns the accepted capacity bounds for a kind
func (k LinearKind) CapacityRange() (lo, hi int) {
	if k == LinearCircular {
		return MinCircularCapacity, MaxCircularCapacity
	}
	return 1, MaxCapacity
}

// linearRecord is the pre-call snapshot of a Linear
type linearRecord struct {
	slots    []string
	occupied []bool
	top      int
	front    int
	rear     int
	size     int
	step     int
	logLen   int
}

// Linear is the linear operation engine for stacks, queues and circular
// buffers. Rejected calls leave every field untouched and are never
// recorded in history.
type Linear struct {
	kind      LinearKind
	capacity  int
	slots     []string
	occupied  []bool
	top       int
	front     int
	rear      int
	size      int
	step      int
	log       Log
	history   *History[linearRecord]
	observers observers
}

// NewLinear creates an empty structure of the given kind and capacity
func NewLinear(kind LinearKind, capacity int, obs ...Observer) (*Linear, error) {
	lo, hi := kind.CapacityRange()
	if capacity < lo || capacity > hi {
		return nil, fmt.Errorf("%w: %s capacity must be %d-%d, got %d", ErrCapacityRange, kind, lo, hi, capacity)
	}
	l := &Linear{
		kind:     kind,
		capacity: capacity,
		history:  NewHistory[linearRecord](),
	}
	for _, fn := range obs {
		l.Subscribe(fn)
	}
	l.Reset()
	return l, nil
}

// Subscribe adds an observer
func (l *Linear) Subscribe(fn Observer) {
	if fn != nil {
		l.observers = append(l.observers, fn)
	}
}

// Reset empties the structure, its log and its history
func (l *Linear) Reset() {
	l.slots = make([]string, l.capacity)
	l.occupied = make([]bool, l.capacity)
	l.top, l.front, l.rear = -1, -1, -1
	l.size = 0
	l.step = 0
	l.log.Reset()
	l.history.Clear()
}

// IsEmpty reports whether there is nothing to remove
func (l *Linear) IsEmpty() bool {
	if l.kind == LinearCircular {
		return l.front == -1
	}
	return l.size == 0
}

// IsFull reports whether an insert would be rejected
func (l *Linear) IsFull() bool {
	if l.kind == LinearCircular {
		return l.front != -1 && (l.rear+1)%l.capacity == l.front
	}
	return l.size == l.capacity
}

// Push inserts value; on queues it enqueues at the rear
func (l *Linear) Push(value string) error {
	if l.IsFull() {
		err := &CapacityError{Capacity: l.capacity, Value: value}
		l.observers.emit(Event{Kind: EventOverflowRejected, Step: l.step, Value: value, Message: err.Error()})
		return err
	}
	l.begin()

	var slot int
	switch l.kind {
	case LinearStack:
		l.top++
		slot = l.top
	case LinearQueue:
		slot = l.size
		l.front, l.rear = 0, slot
	case LinearCircular:
		if l.front == -1 {
			l.front, l.rear = 0, 0
		} else {
			l.rear = (l.rear + 1) % l.capacity
		}
		slot = l.rear
	}
	l.slots[slot] = value
	l.occupied[slot] = true
	l.size++

	if l.kind == LinearStack {
		l.log.Append("Pushed %s (top=%d)", value, l.top)
	} else {
		l.log.Append("Enqueued %s at slot %d (front=%d, rear=%d)", value, slot, l.front, l.rear)
	}
	l.emit(value)
	return nil
}

// Enqueue is Push under its queue name
func (l *Linear) Enqueue(value string) error {
	return l.Push(value)
}

// Pop removes the top of a stack or the front of a queue
func (l *Linear) Pop() (string, error) {
	if l.IsEmpty() {
		return "", l.underflow(l.removeName())
	}
	l.begin()

	var value string
	switch l.kind {
	case LinearStack:
		value = l.take(l.top)
		l.top--
	case LinearQueue:
		value = l.slots[0]
		copy(l.slots, l.slots[1:l.size])
		l.take(l.size - 1)
		l.rear = l.size - 2
		if l.rear < 0 {
			l.front = -1
		}
	case LinearCircular:
		value = l.take(l.front)
		if l.front == l.rear {
			l.front, l.rear = -1, -1
		} else {
			l.front = (l.front + 1) % l.capacity
		}
	}
	l.size--

	if l.kind == LinearStack {
		l.log.Append("Popped %s (top=%d)", value, l.top)
	} else {
		l.log.Append("Dequeued %s (front=%d, rear=%d)", value, l.front, l.rear)
	}
	l.emit(value)
	return value, nil
}

// Dequeue is Pop under its queue name
func (l *Linear) Dequeue() (string, error) {
	return l.Pop()
}

// Peek returns the top or front value without removing it. An accepted
// peek is still logged, so it is recorded and undoable like any other call.
func (l *Linear) Peek() (string, error) {
	if l.IsEmpty() {
		return "", l.underflow("peek")
	}
	l.begin()

	var value string
	if l.kind == LinearStack {
		value = l.slots[l.top]
		l.log.Append("Peeked %s at top=%d", value, l.top)
	} else {
		value = l.slots[l.front]
		l.log.Append("Peeked %s at front=%d", value, l.front)
	}
	l.emit(value)
	return value, nil
}

// Apply executes one Operation
func (l *Linear) Apply(op Operation) error {
	var err error
	switch op.Code {
	case OpPush:
		err = l.Push(op.Value)
	case OpPop:
		_, err = l.Pop()
	case OpPeek:
		_, err = l.Peek()
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownOperation, op.Code)
	}
	return err
}

// Undo restores the state before the most recent accepted call
func (l *Linear) Undo() bool {
	rec, ok := l.history.Pop()
	if !ok {
		return false
	}
	l.slots = rec.slots
	l.occupied = rec.occupied
	l.top, l.front, l.rear = rec.top, rec.front, rec.rear
	l.size = rec.size
	l.step = rec.step
	l.log.Truncate(rec.logLen)
	return true
}

// begin snapshots the state of an accepted call and advances the step counter
func (l *Linear) begin() {
	l.history.Push(linearRecord{
		slots:    append([]string(nil), l.slots...),
		occupied: append([]bool(nil), l.occupied...),
		top:      l.top,
		front:    l.front,
		rear:     l.rear,
		size:     l.size,
		step:     l.step,
		logLen:   l.log.Len(),
	})
	l.step++
}

func (l *Linear) take(slot int) string {
	v := l.slots[slot]
	l.slots[slot] = ""
	l.occupied[slot] = false
	return v
}

func (l *Linear) underflow(op string) error {
	err := &EmptyError{Op: op}
	l.observers.emit(Event{Kind: EventUnderflowRejected, Step: l.step, Message: err.Error()})
	return err
}

func (l *Linear) emit(value string) {
	l.observers.emit(Event{Kind: EventStepped, Step: l.step, Value: value, Message: l.log.Last()})
}

func (l *Linear) removeName() string {
	if l.kind == LinearStack {
		return "pop"
	}
	return "dequeue"
}

// Kind returns the structure discipline
func (l *Linear) Kind() LinearKind {
	return l.kind
}

// Capacity returns the slot count
func (l *Linear) Capacity() int {
	return l.capacity
}

// Len returns the number of stored values
func (l *Linear) Len() int {
	return l.size
}

// Steps returns the number of undoable calls
func (l *Linear) Steps() int {
	return l.history.Len()
}

// Log returns a copy of the log entries
func (l *Linear) Log() []LogEntry {
	return l.log.Entries()
}

// Values lists stored values from the removal end
func (l *Linear) Values() []string {
	out := make([]string, 0, l.size)
	switch l.kind {
	case LinearStack:
		for i := l.top; i >= 0; i-- {
			out = append(out, l.slots[i])
		}
	default:
		if l.IsEmpty() {
			return out
		}
		start := l.front
		for i := 0; i < l.size; i++ {
			out = append(out, l.slots[(start+i)%l.capacity])
		}
	}
	return out
}

// Slot is one cell of a linear structure
type Slot struct {
	Index    int
	Value    string
	Occupied bool
}

// LinearView is the observable output of a linear structure
type LinearView struct {
	Kind          LinearKind
	Capacity      int
	Slots         []Slot
	Top           int
	Front         int
	Rear          int
	Size          int
	Full          bool
	Empty         bool
	Step          int
	Log           []LogEntry
	StatusMessage string
}

// View returns a copy of the observable state
func (l *Linear) View() LinearView {
	v := LinearView{
		Kind:     l.kind,
		Capacity: l.capacity,
		Slots:    make([]Slot, l.capacity),
		Top:      l.top,
		Front:    l.front,
		Rear:     l.rear,
		Size:     l.size,
		Full:     l.IsFull(),
		Empty:    l.IsEmpty(),
		Step:     l.step,
		Log:      l.log.Entries(),
	}
	for i := range l.slots {
		v.Slots[i] = Slot{Index: i, Value: l.slots[i], Occupied: l.occupied[i]}
	}
	switch {
	case l.log.Len() > 0:
		v.StatusMessage = l.log.Last()
	default:
		v.StatusMessage = fmt.Sprintf("Empty %s, capacity %d", l.kind, l.capacity)
	}
	return v
}
