package application

import "stepviz/internal/domain"

// Re-export engine enums for use by adapters
type (
	Discipline = domain.Discipline
	LinearKind = domain.LinearKind
	Status     = domain.Status
	RunState   = domain.RunState
)

const (
	DisciplineBFS = domain.DisciplineBFS
	DisciplineDFS = domain.DisciplineDFS
	DisciplineDLS = domain.DisciplineDLS

	LinearStack    = domain.LinearStack
	LinearQueue    = domain.LinearQueue
	LinearCircular = domain.LinearCircular
)

// Re-export domain types for use by adapters
type (
	Structure  = domain.Structure
	SearchView = domain.SearchView
	LinearView = domain.LinearView
	NodeView   = domain.NodeView
	LogEntry   = domain.LogEntry
	Event      = domain.Event
	Report     = domain.Report
	Preset     = domain.Preset
)

// ParseDiscipline maps "bfs", "dfs" or "dls" to a Discipline
func ParseDiscipline(s string) (Discipline, error) {
	return domain.ParseDiscipline(s)
}

// ParseLinearKind maps "stack", "queue" or "circular" to a LinearKind
func ParseLinearKind(s string) (LinearKind, error) {
	return domain.ParseLinearKind(s)
}
