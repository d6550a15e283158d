package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dateLayout         = "2006-01-02"
	defaultHistoryDays = 30
	defaultPageSize    = 10
	maxPageSize        = 100
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
	now     func() time.Time
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

// TrainingContextInput is the (empty) input for get_training_context.
type TrainingContextInput struct{}

// GetTrainingContextTool returns the MCP tool handler for get_training_context.
func (h *Handler) GetTrainingContextTool() func(context.Context, *mcp.CallToolRequest, TrainingContextInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ TrainingContextInput) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// ReadinessHistoryInput is the input for get_readiness_history.
type ReadinessHistoryInput struct {
	StudentID string `json:"student_id" jsonschema:"Student id"`
	FromDate  string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), defaults to 30 days before to_date"`
	ToDate    string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), defaults to today"`
}

// GetReadinessHistoryTool returns the MCP tool handler for get_readiness_history.
func (h *Handler) GetReadinessHistoryTool() func(context.Context, *mcp.CallToolRequest, ReadinessHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ReadinessHistoryInput) (*mcp.CallToolResult, any, error) {
		if in.StudentID == "" {
			return errorResult("Missing student_id"), nil, nil
		}

		now := h.now().UTC()
		to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if in.ToDate != "" {
			parsed, err := time.Parse(dateLayout, in.ToDate)
			if err != nil {
				return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
			}
			to = parsed
		}
		from := to.AddDate(0, 0, -defaultHistoryDays)
		if in.FromDate != "" {
			parsed, err := time.Parse(dateLayout, in.FromDate)
			if err != nil {
				return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
			}
			from = parsed
		}
		if from.After(to) {
			return errorResult("from_date is after to_date"), nil, nil
		}

		history, err := h.service.GetReadinessHistory(ctx, in.StudentID, from, to)
		if err != nil {
			return errorResult("Error fetching readiness history: " + err.Error()), nil, nil
		}
		return jsonResult(history), nil, nil
	}
}

// WorkoutSessionsInput is the input for get_workout_sessions.
type WorkoutSessionsInput struct {
	StudentID string `json:"student_id" jsonschema:"Student id"`
	Page      int    `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	Size      int    `json:"size,omitempty" jsonschema:"Page size (1-100), defaults to 10"`
}

// GetWorkoutSessionsTool returns the MCP tool handler for get_workout_sessions.
func (h *Handler) GetWorkoutSessionsTool() func(context.Context, *mcp.CallToolRequest, WorkoutSessionsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutSessionsInput) (*mcp.CallToolResult, any, error) {
		if in.StudentID == "" {
			return errorResult("Missing student_id"), nil, nil
		}
		page, size := in.Page, in.Size
		if page < 1 {
			page = 1
		}
		if size < 1 {
			size = defaultPageSize
		}
		if size > maxPageSize {
			size = maxPageSize
		}

		sessions, err := h.service.GetWorkoutSessions(ctx, in.StudentID, page, size)
		if err != nil {
			return errorResult("Error fetching workout sessions: " + err.Error()), nil, nil
		}
		return jsonResult(sessions), nil, nil
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
