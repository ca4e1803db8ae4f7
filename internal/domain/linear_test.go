package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinear(t *testing.T, kind LinearKind, capacity int) *Linear {
	t.Helper()
	l, err := NewLinear(kind, capacity)
	require.NoError(t, err)
	return l
}

func TestLinear_StackOverflowUnderflow(t *testing.T) {
	l := newLinear(t, LinearStack, 3)

	for _, v := range []string{"1", "2", "3"} {
		require.NoError(t, l.Push(v))
	}
	before := l.View()

	err := l.Push("4")
	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 3, capErr.Capacity)
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, before, l.View())
	assert.Equal(t, 3, l.Steps())

	for _, want := range []string{"3", "2", "1"} {
		got, err := l.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = l.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
	var emptyErr *EmptyError
	require.True(t, errors.As(err, &emptyErr))
	assert.Equal(t, "pop", emptyErr.Op)
}

func TestLinear_DefaultStackCapacity(t *testing.T) {
	l := newLinear(t, LinearStack, DefaultCapacity)
	for i := 0; i < DefaultCapacity; i++ {
		require.NoError(t, l.Push("x"))
	}
	assert.True(t, l.IsFull())
	assert.Error(t, l.Push("y"))
}

func TestLinear_CircularWraparound(t *testing.T) {
	l := newLinear(t, LinearCircular, 5)

	for _, v := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, l.Enqueue(v))
	}
	assert.True(t, l.IsFull())

	got, err := l.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.False(t, l.IsFull())

	require.NoError(t, l.Enqueue("f"))
	v := l.View()
	assert.Equal(t, "f", v.Slots[0].Value)
	assert.Equal(t, 0, v.Rear)
	assert.Equal(t, 1, v.Front)
	assert.True(t, l.IsFull())
	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, l.Values())
}

func TestLinear_CircularLastRemovalResetsCursors(t *testing.T) {
	l := newLinear(t, LinearCircular, 3)
	require.NoError(t, l.Enqueue("a"))
	require.NoError(t, l.Enqueue("b"))
	_, _ = l.Dequeue()
	_, _ = l.Dequeue()

	v := l.View()
	assert.Equal(t, -1, v.Front)
	assert.Equal(t, -1, v.Rear)
	assert.True(t, v.Empty)
}

func TestLinear_CircularCapacityOne(t *testing.T) {
	l := newLinear(t, LinearCircular, 1)
	require.NoError(t, l.Enqueue("a"))
	assert.True(t, l.IsFull())
	assert.ErrorIs(t, l.Enqueue("b"), ErrCapacity)
}

func TestLinear_CapacityRange(t *testing.T) {
	tests := []struct {
		name     string
		kind     LinearKind
		capacity int
		wantErr  bool
	}{
		{"circular lower bound", LinearCircular, 1, false},
		{"circular upper bound", LinearCircular, 12, false},
		{"circular too large", LinearCircular, 13, true},
		{"circular zero", LinearCircular, 0, true},
		{"stack zero", LinearStack, 0, true},
		{"queue default", LinearQueue, DefaultCapacity, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLinear(tt.kind, tt.capacity)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCapacityRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLinear_QueueShiftsOnDequeue(t *testing.T) {
	l := newLinear(t, LinearQueue, 3)
	require.NoError(t, l.Enqueue("a"))
	require.NoError(t, l.Enqueue("b"))
	require.NoError(t, l.Enqueue("c"))

	got, err := l.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	v := l.View()
	assert.Equal(t, "b", v.Slots[0].Value)
	assert.Equal(t, 1, v.Rear)
	assert.False(t, v.Slots[2].Occupied)
	require.NoError(t, l.Enqueue("d"))
	assert.Equal(t, []string{"b", "c", "d"}, l.Values())
}

func TestLinear_PeekIsLoggedButDoesNotMutateSlots(t *testing.T) {
	l := newLinear(t, LinearStack, 4)
	_, err := l.Peek()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Empty(t, l.Log())

	require.NoError(t, l.Push("x"))
	slots := l.View().Slots

	got, err := l.Peek()
	require.NoError(t, err)
	assert.Equal(t, "x", got)
	assert.Equal(t, slots, l.View().Slots)
	assert.Len(t, l.Log(), 2)

	require.True(t, l.Undo())
	assert.Len(t, l.Log(), 1)
}

func TestLinear_RoundTrip(t *testing.T) {
	for _, kind := range []LinearKind{LinearStack, LinearQueue, LinearCircular} {
		t.Run(kind.String(), func(t *testing.T) {
			l := newLinear(t, kind, 3)
			ops := []Operation{
				{Code: OpPush, Value: "1"}, {Code: OpPush, Value: "2"}, {Code: OpPop},
				{Code: OpPush, Value: "3"}, {Code: OpPush, Value: "4"}, {Code: OpPeek},
				{Code: OpPop}, {Code: OpPop}, {Code: OpPop},
			}
			for _, op := range ops {
				before := l.View()
				if err := l.Apply(op); err != nil {
					continue
				}
				require.True(t, l.Undo())
				assert.Equal(t, before, l.View(), "undo of %s", op)
				require.NoError(t, l.Apply(op))
			}
		})
	}
}

func TestLinear_RejectedCallsLogNothing(t *testing.T) {
	var events []EventKind
	l, err := NewLinear(LinearQueue, 1, func(e Event) { events = append(events, e.Kind) })
	require.NoError(t, err)

	_, _ = l.Dequeue()
	require.NoError(t, l.Enqueue("a"))
	_ = l.Enqueue("b")

	assert.Len(t, l.Log(), 1)
	assert.Equal(t, 1, l.Steps())
	assert.Equal(t, []EventKind{EventUnderflowRejected, EventStepped, EventOverflowRejected}, events)
}

func TestParseProgram(t *testing.T) {
	ops, err := ParseProgram("push 1, push:2; enqueue x\npop, dequeue, peek")
	require.NoError(t, err)
	assert.Equal(t, []Operation{
		{Code: OpPush, Value: "1"},
		{Code: OpPush, Value: "2"},
		{Code: OpPush, Value: "x"},
		{Code: OpPop},
		{Code: OpPop},
		{Code: OpPeek},
	}, ops)

	_, err = ParseProgram("push")
	assert.ErrorIs(t, err, ErrUnknownOperation)
	_, err = ParseProgram("shuffle")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestLinearProgram_UndoRewindsRejectedInstructions(t *testing.T) {
	l := newLinear(t, LinearStack, 1)
	ops, err := ParseProgram("push a, push b, pop")
	require.NoError(t, err)
	p := NewLinearProgram(l, ops)

	require.True(t, p.Advance())
	require.True(t, p.Advance())
	assert.ErrorIs(t, p.LastErr(), ErrCapacity)
	assert.Equal(t, 1, l.Len())

	// undoing the rejected push leaves the engine alone
	require.True(t, p.Undo())
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, p.Counter())

	require.True(t, p.Undo())
	assert.Equal(t, 0, l.Len())
	assert.False(t, p.Undo())

	for p.Advance() {
	}
	assert.True(t, p.Done())
	assert.Equal(t, 0, l.Len())
}
