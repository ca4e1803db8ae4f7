package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine conditions
var (
	ErrStructure         = errors.New("malformed structure")
	ErrNoNodes           = errors.New("structure needs at least one node")
	ErrCapacity          = errors.New("capacity exceeded")
	ErrCapacityRange     = errors.New("capacity out of range")
	ErrEmpty             = errors.New("structure is empty")
	ErrCutoff            = errors.New("target lies beyond the depth limit")
	ErrDepthLimit        = errors.New("depth limit must not be negative")
	ErrNotFound          = errors.New("target not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownOperation  = errors.New("unknown operation")
)

// StructureError reports an edge that was dropped while building a Structure
type StructureError struct {
	Parent int
	Child  int
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("edge %d->%d dropped: %s", e.Parent, e.Child, e.Reason)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

// CapacityError reports a rejected push/enqueue on a full structure
type CapacityError struct {
	Capacity int
	Value    string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("overflow: cannot insert %q, capacity %d reached", e.Value, e.Capacity)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// EmptyError reports a rejected pop/dequeue/peek on an empty structure
type EmptyError struct {
	Op string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("underflow: cannot %s, structure is empty", e.Op)
}

func (e *EmptyError) Is(target error) bool {
	return target == ErrEmpty
}
