package mcp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"stepviz/internal/application"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

// Workspace holds the one tree search and the one linear structure an MCP
// client drives. Tool handlers may run concurrently, so every access goes
// through mu.
type Workspace struct {
	mu     sync.Mutex
	repo   ports.SpecRepository
	store  ports.ReportStore
	search *application.SearchSession
	linear *application.LinearSession

	depthLimit int
}

// NewWorkspace creates an empty workspace. repo and store may be nil; the
// tools that need them return an error.
func NewWorkspace(repo ports.SpecRepository, store ports.ReportStore, depthLimit int) *Workspace {
	return &Workspace{repo: repo, store: store, depthLimit: depthLimit}
}

func (w *Workspace) searchSession() (*application.SearchSession, error) {
	if w.search == nil {
		return nil, fmt.Errorf("%w: build a tree first", application.ErrNoSession)
	}
	return w.search, nil
}

func (w *Workspace) linearSession() (*application.LinearSession, error) {
	if w.linear == nil {
		return nil, fmt.Errorf("%w: create a stack or queue first with linear_new", application.ErrNoSession)
	}
	return w.linear, nil
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatSearch(v domain.SearchView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "discipline: %s\n", v.Discipline)
	if v.Target != "" {
		fmt.Fprintf(&sb, "target: %s\n", v.Target)
	}
	if v.Discipline == domain.DisciplineDLS {
		fmt.Fprintf(&sb, "depth limit: %d\n", v.DepthLimit)
	}
	fmt.Fprintf(&sb, "status: %s\n", v.Status)
	fmt.Fprintf(&sb, "step: %d\n", v.Step)

	var current string
	for _, n := range v.Nodes {
		if n.Current {
			current = n.Label
		}
	}
	if current != "" {
		fmt.Fprintf(&sb, "current: %s\n", current)
	}
	fmt.Fprintf(&sb, "visited: %s\n", joinOrNone(visitOrder(v)))
	fmt.Fprintf(&sb, "frontier: %s\n", joinOrNone(v.Frontier))
	fmt.Fprintf(&sb, "message: %s\n", v.StatusMessage)
	return sb.String()
}

func visitOrder(v domain.SearchView) []string {
	order := make([]string, v.Visited)
	for _, n := range v.Nodes {
		if n.VisitOrder > 0 && n.VisitOrder <= len(order) {
			order[n.VisitOrder-1] = n.Label
		}
	}
	return order
}

func formatLinear(v domain.LinearView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "kind: %s\n", v.Kind)
	fmt.Fprintf(&sb, "capacity: %d\n", v.Capacity)
	fmt.Fprintf(&sb, "size: %d\n", v.Size)

	cells := make([]string, len(v.Slots))
	for i, s := range v.Slots {
		if s.Occupied {
			cells[i] = s.Value
		} else {
			cells[i] = "_"
		}
	}
	fmt.Fprintf(&sb, "slots: [%s]\n", strings.Join(cells, " "))

	if v.Kind == domain.LinearStack {
		fmt.Fprintf(&sb, "top: %d\n", v.Top)
	} else {
		fmt.Fprintf(&sb, "front: %d\nrear: %d\n", v.Front, v.Rear)
	}
	fmt.Fprintf(&sb, "full: %t\nempty: %t\n", v.Full, v.Empty)
	fmt.Fprintf(&sb, "message: %s\n", v.StatusMessage)
	return sb.String()
}

func formatLog(entries []domain.LogEntry) string {
	if len(entries) == 0 {
		return "No steps yet."
	}
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%d. %s\n", e.Index, e.Message)
	}
	return sb.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, " ")
}
