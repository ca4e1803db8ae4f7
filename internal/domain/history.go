package domain

// History is the undo stack of an engine. Exactly one record is pushed per
// accepted step, so Len always equals the number of accepted steps since
// the last reset.
type History[S any] struct {
	records []S
}

// NewHistory creates an empty history
func NewHistory[S any]() *History[S] {
	return &History[S]{}
}

// Push saves the pre-step snapshot
func (h *History[S]) Push(record S) {
	h.records = append(h.records, record)
}

// Pop removes and returns the most recent snapshot. It returns the zero
// value and false when there is nothing to undo.
func (h *History[S]) Pop() (S, bool) {
	if len(h.records) == 0 {
		var zero S
		return zero, false
	}
	last := h.records[len(h.records)-1]
	h.records = h.records[:len(h.records)-1]
	return last, true
}

// Len returns the number of stored snapshots
func (h *History[S]) Len() int {
	return len(h.records)
}

// Clear drops every snapshot
func (h *History[S]) Clear() {
	h.records = h.records[:0]
}
