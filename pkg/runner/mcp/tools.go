package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/task"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetPlanTool(srv, svc)
	registerExtractTasksTool(srv, svc)
	registerQueueTasksTool(srv, svc)
	registerSubmitDurationTool(srv, svc)
	registerAddTaskTool(srv, svc)
	registerChooseOverflowTool(srv, svc)
	registerToggleCandidateTool(srv, svc)
	registerConfirmSelectionTool(srv, svc)
	registerCancelIntakeTool(srv, svc)
	registerRefTools(srv, svc)
	registerEditTaskTool(srv, svc)
	registerMoveTaskTool(srv, svc)
}

func registerGetPlanTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_plan",
		mcp.WithDescription("Show today's morning and evening boxes, the tomorrow queue and the current intake step."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		v, err := svc.Plan(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(v)
	})
}

func registerExtractTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"extract_tasks",
		mcp.WithDescription("Split free text into task names and queue them for sizing. Follow up with submit_duration for each."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Brain dump of what needs doing."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return actionResult(svc.Extract(ctx, text))
	})
}

func registerQueueTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"queue_tasks",
		mcp.WithDescription("Queue task names for sizing without running extraction."),
		mcp.WithArray("names",
			mcp.Required(),
			mcp.Description("Task names in the order they should be sized."),
			mcp.WithStringItems(),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Names []string `json:"names"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		return actionResult(svc.Queue(ctx, args.Names))
	})
}

func registerSubmitDurationTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"submit_duration",
		mcp.WithDescription("Give the minutes for the task currently being sized. The task is placed in the first box with room."),
		mcp.WithString("minutes",
			mcp.Required(),
			mcp.Description("Whole number of minutes greater than zero."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		minutes, err := request.RequireString("minutes")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return actionResult(svc.SubmitDuration(ctx, minutes))
	})
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add one named task with a known duration."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Task name."),
		),
		mcp.WithNumber("minutes",
			mcp.Required(),
			mcp.Description("Whole number of minutes greater than zero."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name    string `json:"name"`
			Minutes int    `json:"minutes"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		return actionResult(svc.AddTask(ctx, args.Name, args.Minutes))
	})
}

func registerChooseOverflowTool(srv *server.MCPServer, svc *Service) {
	choices := make([]string, 0, 3)
	for _, c := range overflow.AllChoices() {
		choices = append(choices, string(c))
	}
	tool := mcp.NewTool(
		"choose_overflow",
		mcp.WithDescription("Resolve a task that fit in neither box: store it for tomorrow, or swap it into a session and pick what stays."),
		mcp.WithString("choice",
			mcp.Required(),
			mcp.Enum(choices...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("choice")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		choice, err := overflow.ParseChoice(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return actionResult(svc.ChooseOverflow(ctx, choice))
	})
}

func registerToggleCandidateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_candidate",
		mcp.WithDescription("Keep or release a task in the open overflow selection."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Candidate task id from mode.selection."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return actionResult(svc.ToggleCandidate(ctx, id))
	})
}

func registerConfirmSelectionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"confirm_selection",
		mcp.WithDescription("Apply the overflow selection. Kept tasks stay in the session and the rest move to tomorrow."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return actionResult(svc.ConfirmSelection(ctx))
	})
}

func registerCancelIntakeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"cancel_intake",
		mcp.WithDescription("Drop queued names and any pending overflow. Placed tasks are kept."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return actionResult(svc.CancelIntake(ctx))
	})
}

func registerRefTools(srv *server.MCPServer, svc *Service) {
	for _, def := range []struct {
		name, description string
		fn                func(context.Context, string) (ActionResult, error)
	}{
		{"toggle_task", "Mark a task done, or not done if it already was.", svc.Toggle},
		{"delete_task", "Delete a task.", svc.Delete},
		{"pack_task", "Bring a tomorrow task into the first box with room.", svc.Pack},
	} {
		fn := def.fn
		tool := mcp.NewTool(
			def.name,
			mcp.WithDescription(def.description),
			mcp.WithString("task",
				mcp.Required(),
				mcp.Description("Task id, id prefix or name."),
			),
		)
		srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ref, err := request.RequireString("task")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return actionResult(fn(ctx, ref))
		})
	}
}

func registerEditTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"edit_task",
		mcp.WithDescription("Rename or resize a task. Omitted fields are left as they are."),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Task id, id prefix or name."),
		),
		mcp.WithString("name",
			mcp.Description("New task name."),
		),
		mcp.WithNumber("minutes",
			mcp.Description("New duration in minutes."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Task    string `json:"task"`
			Name    string `json:"name"`
			Minutes int    `json:"minutes"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		return actionResult(svc.Edit(ctx, args.Task, args.Name, args.Minutes))
	})
}

func registerMoveTaskTool(srv *server.MCPServer, svc *Service) {
	locations := make([]string, 0, 3)
	for _, l := range task.AllLocations() {
		locations = append(locations, string(l))
	}
	tool := mcp.NewTool(
		"move_task",
		mcp.WithDescription("Move a task to another box. A full box is refused with an advisory."),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Task id, id prefix or name."),
		),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Enum(locations...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("task")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := request.RequireString("location")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		loc, err := task.ParseLocation(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return actionResult(svc.Move(ctx, ref, loc))
	})
}

func actionResult(res ActionResult, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(res)
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
