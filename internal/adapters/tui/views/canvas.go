package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stepviz/internal/adapters/tui/styles"
	"stepviz/internal/domain"
)

// RenderTree draws the nodes level by level, placing each label at its
// layout X scaled to width, with a connector row between levels
func RenderTree(v domain.SearchView, width int) string {
	if width < 20 {
		width = 20
	}

	frontier := make(map[string]bool, len(v.Frontier))
	for _, label := range v.Frontier {
		frontier[label] = true
	}

	levels := map[int][]domain.NodeView{}
	maxDepth := -1
	var orphans []string
	for _, n := range v.Nodes {
		if n.Depth < 0 {
			orphans = append(orphans, n.Label)
			continue
		}
		levels[n.Depth] = append(levels[n.Depth], n)
		maxDepth = max(maxDepth, n.Depth)
	}

	column := func(n domain.NodeView) int {
		return int(n.Pos.X * float64(width))
	}

	var rows []string
	for d := 0; d <= maxDepth; d++ {
		nodes := levels[d]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Pos.X < nodes[j].Pos.X })
		if d > 0 {
			rows = append(rows, connectorRow(v.Nodes, nodes, column, width))
		}
		rows = append(rows, labelRow(nodes, column, frontier))
	}

	if len(orphans) > 0 {
		rows = append(rows, "", styles.NodeOrphan.Render("unreachable: "+strings.Join(orphans, ", ")))
	}
	return strings.Join(rows, "\n")
}

func labelRow(nodes []domain.NodeView, column func(domain.NodeView) int, frontier map[string]bool) string {
	var b strings.Builder
	cursor := 0
	for _, n := range nodes {
		text := nodeText(n)
		start := max(column(n)-lipgloss.Width(text)/2, cursor)
		b.WriteString(strings.Repeat(" ", start-cursor))
		b.WriteString(nodeStyle(n, frontier).Render(text))
		cursor = start + lipgloss.Width(text) + 1
		b.WriteString(" ")
	}
	return b.String()
}

// connectorRow draws / | \ halfway between each node and its parent
func connectorRow(all, children []domain.NodeView, column func(domain.NodeView) int, width int) string {
	parentOf := map[int]int{}
	for _, n := range all {
		for _, c := range n.Children {
			if _, ok := parentOf[c]; !ok && all[c].Depth == n.Depth+1 {
				parentOf[c] = n.ID
			}
		}
	}

	row := []rune(strings.Repeat(" ", width+1))
	for _, c := range children {
		p, ok := parentOf[c.ID]
		if !ok {
			continue
		}
		pc, cc := column(all[p]), column(c)
		mid := (pc + cc) / 2
		if mid < 0 || mid >= len(row) {
			continue
		}
		switch {
		case cc < pc:
			row[mid] = '/'
		case cc > pc:
			row[mid] = '\\'
		default:
			row[mid] = '|'
		}
	}
	return styles.TreeBranch.Render(strings.TrimRight(string(row), " "))
}

func nodeText(n domain.NodeView) string {
	if n.VisitOrder > 0 {
		return fmt.Sprintf(" %s·%d ", n.Label, n.VisitOrder)
	}
	return " " + n.Label + " "
}

func nodeStyle(n domain.NodeView, frontier map[string]bool) lipgloss.Style {
	switch {
	case n.Found:
		return styles.NodeFound
	case n.Current:
		return styles.NodeCurrent
	case n.Visited:
		return styles.NodeVisited
	case frontier[n.Label]:
		return styles.NodeFrontier
	default:
		return styles.NodeIdle
	}
}

// RenderFrontier lists pending nodes in removal order
func RenderFrontier(v domain.SearchView) string {
	name := "Queue"
	if v.Discipline != domain.DisciplineBFS {
		name = "Stack"
	}
	if len(v.Frontier) == 0 {
		return RenderLabelValue(name, RenderMuted("(empty)"))
	}
	parts := make([]string, len(v.Frontier))
	for i, label := range v.Frontier {
		parts[i] = styles.NodeFrontier.Render(label)
	}
	return RenderLabelValue(name, strings.Join(parts, styles.MutedText.Render(" ← ")))
}

// RenderLog shows the page of entries selected by p, newest highlighted
func RenderLog(entries []domain.LogEntry, p *Paginator) string {
	if len(entries) == 0 {
		return RenderMuted("No steps yet")
	}
	p.SetTotal(len(entries))
	start, end := p.TailRange()

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := entries[i]
		msg := e.Message
		if i == len(entries)-1 {
			msg = styles.LogLatest.Render(msg)
		}
		lines = append(lines, styles.LogIndex.Render(fmt.Sprint(e.Index))+msg)
	}
	if !p.Following() {
		lines = append(lines, RenderMuted(fmt.Sprintf("  %d/%d, G to follow", end, len(entries))))
	}
	return strings.Join(lines, "\n")
}

// LogText is the plain text of a log, one entry per line
func LogText(entries []domain.LogEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d. %s\n", e.Index, e.Message)
	}
	return b.String()
}

// RenderSlots draws a linear structure as a row of cells with cursor
// markers underneath
func RenderSlots(v domain.LinearView) string {
	cells := make([]string, len(v.Slots))
	markers := make([]string, len(v.Slots))
	for i, s := range v.Slots {
		if s.Occupied {
			cells[i] = styles.SlotFilled.Render(s.Value)
		} else {
			cells[i] = styles.SlotEmpty.Render("·")
		}
		markers[i] = styles.SlotMarker.Render(slotMarker(v, i))
	}

	index := make([]string, len(v.Slots))
	for i := range v.Slots {
		index[i] = styles.SlotMarker.Foreground(styles.Muted).Render(fmt.Sprint(i))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
		lipgloss.JoinHorizontal(lipgloss.Top, index...),
		lipgloss.JoinHorizontal(lipgloss.Top, markers...),
	)
}

func slotMarker(v domain.LinearView, i int) string {
	var tags []string
	switch v.Kind {
	case domain.LinearStack:
		if i == v.Top {
			tags = append(tags, "top")
		}
	default:
		if i == v.Front {
			tags = append(tags, "F")
		}
		if i == v.Rear {
			tags = append(tags, "R")
		}
	}
	return strings.Join(tags, "/")
}
