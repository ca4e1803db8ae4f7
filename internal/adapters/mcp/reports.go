package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
)

// RegisterReportTools adds the report export tools to the MCP server.
func RegisterReportTools(s *server.MCPServer, w *Workspace) {
	s.AddTool(saveReportTool(), saveReportHandler(w))
	s.AddTool(listReportsTool(), listReportsHandler(w))
	s.AddTool(showReportTool(), showReportHandler(w))
}

// --- save_report ---

func saveReportTool() mcp.Tool {
	return mcp.NewTool("save_report",
		mcp.WithDescription("Store the finished search or linear run as a report."),
		mcp.WithString("kind",
			mcp.Description("search or linear"),
			mcp.Required(),
			mcp.Enum("search", "linear"),
		),
	)
}

func saveReportHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if w.store == nil {
			return toolError(fmt.Errorf("no report store configured"))
		}

		w.mu.Lock()
		r, err := w.report(req.GetString("kind", ""))
		w.mu.Unlock()
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewSaveReportCommand(w.store, r).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func (w *Workspace) report(kind string) (*domain.Report, error) {
	now := time.Now()
	switch domain.ReportKind(kind) {
	case domain.ReportSearch:
		sess, err := w.searchSession()
		if err != nil {
			return nil, err
		}
		return sess.Report(now)
	case domain.ReportLinear:
		sess, err := w.linearSession()
		if err != nil {
			return nil, err
		}
		return sess.Report(now)
	default:
		return nil, fmt.Errorf("unknown report kind: %q", kind)
	}
}

// --- list_reports ---

func listReportsTool() mcp.Tool {
	return mcp.NewTool("list_reports",
		mcp.WithDescription("List stored reports, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of reports (default 20, 0 for all)"),
		),
	)
}

func listReportsHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if w.store == nil {
			return toolError(fmt.Errorf("no report store configured"))
		}
		result, err := commands.NewListReportsCommand(w.store, req.GetInt("limit", 20)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Reports) == 0 {
			return mcp.NewToolResultText("No reports."), nil
		}

		var sb strings.Builder
		for _, r := range result.Reports {
			fmt.Fprintf(&sb, "%s  %s  %s  %s  %s\n",
				r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Subject, r.Outcome, strings.Join(r.VisitOrder, " "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show_report ---

func showReportTool() mcp.Tool {
	return mcp.NewTool("show_report",
		mcp.WithDescription("Show one stored report with its step log."),
		mcp.WithString("id",
			mcp.Description("Report ID from list_reports"),
			mcp.Required(),
		),
	)
}

func showReportHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if w.store == nil {
			return toolError(fmt.Errorf("no report store configured"))
		}
		result, err := commands.NewShowReportCommand(w.store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		r := result.Report
		text := fmt.Sprintf("%s\norder: %s\n\n%s", result.Message, joinOrNone(r.VisitOrder), formatLog(r.Log))
		return mcp.NewToolResultText(text), nil
	}
}
