package domain

import "time"

// ReportKind tells which simulator produced a report
type ReportKind string

const (
	ReportSearch ReportKind = "search"
	ReportLinear ReportKind = "linear"
)

// Report is the finished output of one run, kept for export. It holds
// values only and is never used to restore an engine.
type Report struct {
	ID         string
	SessionID  string
	Kind       ReportKind
	Subject    string // discipline or linear kind
	Target     string
	DepthLimit int
	Outcome    string
	VisitOrder []string
	Steps      int
	Log        []LogEntry
	CreatedAt  time.Time
}

// Preset is a named tree specification with an optional default search
type Preset struct {
	Name        string
	Description string
	Spec        BuildSpec
	Target      string
	DepthLimit  int
}

// SamplePreset is the seven node tree A(B,C), B(D,E), C(F,G)
func SamplePreset() Preset {
	return Preset{
		Name:        "sample",
		Description: "Complete binary tree A..G",
		Spec: BuildSpec{
			NodeCount: 7,
			Values:    []string{"A", "B", "C", "D", "E", "F", "G"},
			Auto:      true,
		},
		Target:     "E",
		DepthLimit: DefaultDepthLimit,
	}
}
