package domain

import "fmt"

// LogEntry is one line of an engine log; Index is 1-based
type LogEntry struct {
	Index   int
	Message string
}

// Log is an append-only message sequence; undo truncates it back to a
// recorded length.
type Log struct {
	entries []LogEntry
}

// Append adds a formatted entry
func (l *Log) Append(format string, args ...any) {
	l.entries = append(l.entries, LogEntry{
		Index:   len(l.entries) + 1,
		Message: fmt.Sprintf(format, args...),
	})
}

// Len returns the number of entries
func (l *Log) Len() int {
	return len(l.entries)
}

// Truncate drops entries beyond n
func (l *Log) Truncate(n int) {
	if n < len(l.entries) {
		l.entries = l.entries[:n]
	}
}

// Entries returns a copy of the log
func (l *Log) Entries() []LogEntry {
	return append([]LogEntry(nil), l.entries...)
}

// Last returns the most recent entry message, or ""
func (l *Log) Last() string {
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1].Message
}

// Reset empties the log
func (l *Log) Reset() {
	l.entries = nil
}
