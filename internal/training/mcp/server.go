package mcp

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with read-only training tools for coaching
// assistants. It is mounted on the main backend at /mcp and served over stdio
// by cmd/training_mcp.
func NewServer(pool *pgxpool.Pool, checkinsRepo CheckinsRepo, sessionsRepo SessionsRepo) *mcp.Server {
	svc := NewContextService(NewPoolSchemaRepo(pool), checkinsRepo, sessionsRepo)
	return newServer(NewHandler(svc))
}

func newServer(h *Handler) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "training-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_training_context",
		Description: "Returns the DB schema for training tables (wellness_checkin, adaptation_rule, workout_session, exercise_log): table names, columns, types, nullable, default.",
	}, h.GetTrainingContextTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_readiness_history",
		Description: "Returns a student's daily wellness check-ins with readiness score and level (green, yellow, red) for a date range, plus the average score and a count per level. Args: student_id; optional from_date, to_date (YYYY-MM-DD).",
	}, h.GetReadinessHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_sessions",
		Description: "Returns a student's stored workout sessions, newest first, with per-exercise sets, volume, RPE and the readiness modifiers the session ran with. Args: student_id; optional page, size.",
	}, h.GetWorkoutSessionsTool())

	return s
}
