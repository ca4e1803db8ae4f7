package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stepviz/internal/application"
	"stepviz/internal/application/commands"
)

// RegisterSearchTools adds the tree build and search tools to the MCP server.
func RegisterSearchTools(s *server.MCPServer, w *Workspace) {
	s.AddTool(listPresetsTool(), listPresetsHandler(w))
	s.AddTool(buildTreeTool(), buildTreeHandler(w))
	s.AddTool(configureSearchTool(), configureSearchHandler(w))
	s.AddTool(stepTool(), stepHandler(w))
	s.AddTool(prevStepTool(), prevStepHandler(w))
	s.AddTool(runTool(), runHandler(w))
	s.AddTool(resetTool(), resetHandler(w))
	s.AddTool(searchStateTool(), searchStateHandler(w))
	s.AddTool(searchLogTool(), searchLogHandler(w))
}

// --- list_presets ---

func listPresetsTool() mcp.Tool {
	return mcp.NewTool("list_presets",
		mcp.WithDescription("List the named trees that build_tree can load."),
	)
}

func listPresetsHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if w.repo == nil {
			return toolError(fmt.Errorf("no preset directory configured"))
		}
		result, err := commands.NewListPresetsCommand(w.repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, p := range result.Presets {
			fmt.Fprintf(&sb, "%s  %d nodes  %s\n", p.Name, p.Spec.NodeCount, p.Description)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- build_tree ---

func buildTreeTool() mcp.Tool {
	return mcp.NewTool("build_tree",
		mcp.WithDescription("Build the tree to search, either from a preset or from a node count with optional values and edges. Replaces any current search."),
		mcp.WithString("preset",
			mcp.Description("Preset name (see list_presets). Omit to describe a tree instead."),
		),
		mcp.WithNumber("node_count",
			mcp.Description("Number of nodes, 1-31"),
		),
		mcp.WithString("values",
			mcp.Description("Node values separated by spaces or commas. Defaults to letters A, B, C..."),
		),
		mcp.WithString("edges",
			mcp.Description("Parent-child pairs by node index, e.g. \"0-1 0-2 1-3\". Omit for a complete binary tree."),
		),
	)
}

func buildTreeHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd, err := buildCommand(w, req)
		if err != nil {
			return toolError(err)
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		search := application.SearchRequest{Discipline: "bfs", DepthLimit: w.depthLimit}
		preset := ""
		if result.Preset != nil {
			preset = result.Preset.Name
			search.Target = result.Preset.Target
			if result.Preset.DepthLimit > 0 {
				search.DepthLimit = result.Preset.DepthLimit
			}
		}

		sess, err := application.NewSearchSession(result.Structure, preset, search)
		if err != nil {
			return toolError(err)
		}

		w.mu.Lock()
		w.search = sess
		w.mu.Unlock()

		text := result.Message
		if len(result.Issues) > 0 {
			text += "\n" + strings.Join(result.Issues, "\n")
		}
		return mcp.NewToolResultText(text + "\n\n" + formatSearch(sess.Search.View())), nil
	}
}

func buildCommand(w *Workspace, req mcp.CallToolRequest) (*commands.BuildTreeCommand, error) {
	preset := req.GetString("preset", "")
	count := req.GetInt("node_count", 0)
	if preset != "" {
		if count != 0 {
			return nil, &application.ValidationError{Field: "preset", Message: "give either a preset or a node count, not both"}
		}
		return commands.NewBuildTreeCommand(w.repo, preset), nil
	}

	edges, err := application.ParseEdges(req.GetString("edges", ""))
	if err != nil {
		return nil, err
	}
	values := strings.FieldsFunc(req.GetString("values", ""), func(r rune) bool {
		return r == ',' || r == ' '
	})
	return commands.NewBuildTreeFromRequestCommand(application.BuildRequest{
		NodeCount: count,
		Values:    values,
		Edges:     edges,
		Auto:      len(edges) == 0,
	}), nil
}

// --- configure_search ---

func configureSearchTool() mcp.Tool {
	return mcp.NewTool("configure_search",
		mcp.WithDescription("Choose the discipline, target and depth limit for the current tree. Restarts the search."),
		mcp.WithString("discipline",
			mcp.Description("bfs, dfs or dls"),
			mcp.Required(),
			mcp.Enum("bfs", "dfs", "dls"),
		),
		mcp.WithString("target",
			mcp.Description("Value to search for. Omit to traverse the whole tree."),
		),
		mcp.WithNumber("depth_limit",
			mcp.Description("Deepest level DLS expands, root is 0"),
		),
	)
}

func configureSearchHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.searchSession()
		if err != nil {
			return toolError(err)
		}
		r := application.SearchRequest{
			Discipline: req.GetString("discipline", ""),
			Target:     req.GetString("target", ""),
			DepthLimit: req.GetInt("depth_limit", sess.Search.DepthLimit()),
		}
		if err := sess.Configure(r); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatSearch(sess.Search.View())), nil
	}
}

// --- step ---

func stepTool() mcp.Tool {
	return mcp.NewTool("step",
		mcp.WithDescription("Advance the search by one step and return the new state."),
	)
}

func stepHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.searchSession()
		if err != nil {
			return toolError(err)
		}
		if err := sess.Controller.Step(); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatSearch(sess.Search.View())), nil
	}
}

// --- prev_step ---

func prevStepTool() mcp.Tool {
	return mcp.NewTool("prev_step",
		mcp.WithDescription("Undo the most recent search step."),
	)
}

func prevStepHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.searchSession()
		if err != nil {
			return toolError(err)
		}
		if !sess.Controller.PrevStep() {
			return toolError(fmt.Errorf("%w: nothing to undo", application.ErrInvalidOperation))
		}
		return mcp.NewToolResultText(formatSearch(sess.Search.View())), nil
	}
}

// --- run ---

func runTool() mcp.Tool {
	return mcp.NewTool("run",
		mcp.WithDescription("Step the search until it finishes and return the visit order."),
		mcp.WithNumber("max_steps",
			mcp.Description("Stop after this many steps (default: until finished)"),
		),
	)
}

func runHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.searchSession()
		if err != nil {
			return toolError(err)
		}
		maxSteps := req.GetInt("max_steps", 0)
		if maxSteps < 0 {
			return toolError(&application.ValidationError{Field: "max_steps", Message: "max steps cannot be negative"})
		}

		taken := 0
		for !sess.Search.Done() && (maxSteps == 0 || taken < maxSteps) {
			if err := ctx.Err(); err != nil {
				return toolError(err)
			}
			if err := sess.Controller.Step(); err != nil {
				return toolError(err)
			}
			taken++
		}

		text := fmt.Sprintf("Ran %d step(s)\n\n%s", taken, formatSearch(sess.Search.View()))
		return mcp.NewToolResultText(text), nil
	}
}

// --- reset ---

func resetTool() mcp.Tool {
	return mcp.NewTool("reset",
		mcp.WithDescription("Return the search to its first step, keeping the discipline and target."),
	)
}

func resetHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.searchSession()
		if err != nil {
			return toolError(err)
		}
		sess.Controller.Reset()
		return mcp.NewToolResultText(formatSearch(sess.Search.View())), nil
	}
}

// --- search_state ---

func searchStateTool() mcp.Tool {
	return mcp.NewTool("search_state",
		mcp.WithDescription("Show the current search state: status, visit order and frontier."),
	)
}

func searchStateHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.searchSession()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatSearch(sess.Search.View())), nil
	}
}

// --- search_log ---

func searchLogTool() mcp.Tool {
	return mcp.NewTool("search_log",
		mcp.WithDescription("Return the numbered step log of the current search."),
	)
}

func searchLogHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.searchSession()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatLog(sess.Search.Log())), nil
	}
}
