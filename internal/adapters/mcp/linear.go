package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stepviz/internal/application"
	"stepviz/internal/domain"
)

// RegisterLinearTools adds the stack and queue tools to the MCP server.
func RegisterLinearTools(s *server.MCPServer, w *Workspace) {
	s.AddTool(linearNewTool(), linearNewHandler(w))
	s.AddTool(linearPushTool(), linearOpHandler(w, domain.OpPush))
	s.AddTool(linearPopTool(), linearOpHandler(w, domain.OpPop))
	s.AddTool(linearPeekTool(), linearOpHandler(w, domain.OpPeek))
	s.AddTool(linearUndoTool(), linearUndoHandler(w))
	s.AddTool(linearProgramTool(), linearProgramHandler(w))
	s.AddTool(linearStateTool(), linearStateHandler(w))
}

// --- linear_new ---

func linearNewTool() mcp.Tool {
	return mcp.NewTool("linear_new",
		mcp.WithDescription("Create an empty stack, queue or circular queue, replacing the current one."),
		mcp.WithString("kind",
			mcp.Description("stack, queue or circular"),
			mcp.Required(),
			mcp.Enum("stack", "queue", "circular"),
		),
		mcp.WithNumber("capacity",
			mcp.Description("Number of slots (stack and queue 1-32, circular 1-12)"),
			mcp.Required(),
		),
	)
}

func linearNewHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sess, err := application.NewLinearSession(application.LinearRequest{
			Kind:     req.GetString("kind", ""),
			Capacity: req.GetInt("capacity", 0),
		})
		if err != nil {
			return toolError(err)
		}

		w.mu.Lock()
		w.linear = sess
		w.mu.Unlock()

		return mcp.NewToolResultText(formatLinear(sess.Linear.View())), nil
	}
}

// --- linear_push / linear_pop / linear_peek ---

func linearPushTool() mcp.Tool {
	return mcp.NewTool("linear_push",
		mcp.WithDescription("Push (stack) or enqueue (queue) a value. Rejected when full."),
		mcp.WithString("value",
			mcp.Description("Value to insert"),
			mcp.Required(),
		),
	)
}

func linearPopTool() mcp.Tool {
	return mcp.NewTool("linear_pop",
		mcp.WithDescription("Pop (stack) or dequeue (queue) a value. Rejected when empty."),
	)
}

func linearPeekTool() mcp.Tool {
	return mcp.NewTool("linear_peek",
		mcp.WithDescription("Read the value that pop would remove without removing it."),
	)
}

func linearOpHandler(w *Workspace, code domain.OpCode) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.linearSession()
		if err != nil {
			return toolError(err)
		}

		op := domain.Operation{Code: code}
		if code == domain.OpPush {
			op.Value = req.GetString("value", "")
			if err := application.ValidateRequired("value", op.Value); err != nil {
				return toolError(err)
			}
		}
		if err := sess.Apply(op); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatLinear(sess.Linear.View())), nil
	}
}

// --- linear_undo ---

func linearUndoTool() mcp.Tool {
	return mcp.NewTool("linear_undo",
		mcp.WithDescription("Undo the most recent accepted operation, or rewind one program instruction."),
	)
}

func linearUndoHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.linearSession()
		if err != nil {
			return toolError(err)
		}

		var undone bool
		if sess.ProgramLoaded() {
			undone = sess.Controller.PrevStep()
		} else {
			undone = sess.Linear.Undo()
		}
		if !undone {
			return toolError(fmt.Errorf("%w: nothing to undo", application.ErrInvalidOperation))
		}
		return mcp.NewToolResultText(formatLinear(sess.Linear.View())), nil
	}
}

// --- linear_program ---

func linearProgramTool() mcp.Tool {
	return mcp.NewTool("linear_program",
		mcp.WithDescription("Empty the structure and run a program such as \"push a, push b, pop, peek\". Rejected instructions are reported and skipped."),
		mcp.WithString("program",
			mcp.Description("Instructions separated by commas, semicolons or newlines"),
			mcp.Required(),
		),
	)
}

func linearProgramHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.linearSession()
		if err != nil {
			return toolError(err)
		}
		if err := sess.LoadProgramText(req.GetString("program", "")); err != nil {
			return toolError(err)
		}

		var rejected []string
		for !sess.Program.Done() {
			if err := ctx.Err(); err != nil {
				return toolError(err)
			}
			if err := sess.Controller.Step(); err != nil {
				return toolError(err)
			}
			if err := sess.Program.LastErr(); err != nil {
				rejected = append(rejected, err.Error())
			}
		}

		text := formatLinear(sess.Linear.View())
		if len(rejected) > 0 {
			text += "rejected:\n"
			for _, r := range rejected {
				text += "  " + r + "\n"
			}
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- linear_state ---

func linearStateTool() mcp.Tool {
	return mcp.NewTool("linear_state",
		mcp.WithDescription("Show the slots, cursors and log of the current stack or queue."),
	)
}

func linearStateHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		sess, err := w.linearSession()
		if err != nil {
			return toolError(err)
		}
		v := sess.Linear.View()
		return mcp.NewToolResultText(formatLinear(v) + "\n" + formatLog(v.Log)), nil
	}
}
