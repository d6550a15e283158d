package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/trainingcoach/internal/training/checkout"
	"github.com/2beens/trainingcoach/internal/training/readiness"
)

type CheckinsRepo interface {
	List(ctx context.Context, studentID string, from, to time.Time) ([]readiness.Checkin, error)
}

type SessionsRepo interface {
	ListPage(ctx context.Context, studentID string, page, size int) ([]checkout.Record, int, error)
}

// contextService provides the read-only training data exposed as tools.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetReadinessHistory(ctx context.Context, studentID string, from, to time.Time) (*ReadinessHistory, error)
	GetWorkoutSessions(ctx context.Context, studentID string, page, size int) (*WorkoutSessions, error)
}

type ReadinessHistory struct {
	StudentID    string              `json:"student_id"`
	From         string              `json:"from"`
	To           string              `json:"to"`
	Checkins     []readiness.Checkin `json:"checkins"`
	AverageScore *float64            `json:"average_score,omitempty"`
	LevelCounts  map[string]int      `json:"level_counts"`
}

type WorkoutSessions struct {
	StudentID string            `json:"student_id"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	Size      int               `json:"size"`
	Sessions  []checkout.Record `json:"sessions"`
}

// ContextService holds dependencies and implements the training context business logic.
type ContextService struct {
	schema   SchemaRepo
	checkins CheckinsRepo
	sessions SessionsRepo
}

func NewContextService(schemaRepo SchemaRepo, checkinsRepo CheckinsRepo, sessionsRepo SessionsRepo) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		checkins: checkinsRepo,
		sessions: sessionsRepo,
	}
}

// GetSchema returns the DB schema of the training tables as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetTrainingColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatTrainingSchema(cols), nil
}

func formatTrainingSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Training DB Schema\n\nNo training tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Training DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(trainingTables, ", ") + " (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

// GetReadinessHistory returns the check-ins in [from, to] with the average
// score and a count per readiness level.
func (s *ContextService) GetReadinessHistory(ctx context.Context, studentID string, from, to time.Time) (*ReadinessHistory, error) {
	checkins, err := s.checkins.List(ctx, studentID, from, to)
	if err != nil {
		return nil, err
	}
	if checkins == nil {
		checkins = []readiness.Checkin{}
	}

	history := &ReadinessHistory{
		StudentID: studentID,
		From:      from.Format(dateLayout),
		To:        to.Format(dateLayout),
		Checkins:  checkins,
		LevelCounts: map[string]int{
			string(readiness.LevelGreen):  0,
			string(readiness.LevelYellow): 0,
			string(readiness.LevelRed):    0,
		},
	}
	if len(checkins) == 0 {
		return history, nil
	}

	sum := 0.0
	for _, c := range checkins {
		sum += c.ReadinessScore
		history.LevelCounts[string(c.ReadinessLevel)]++
	}
	avg := sum / float64(len(checkins))
	history.AverageScore = &avg

	return history, nil
}

func (s *ContextService) GetWorkoutSessions(ctx context.Context, studentID string, page, size int) (*WorkoutSessions, error) {
	records, total, err := s.sessions.ListPage(ctx, studentID, page, size)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []checkout.Record{}
	}
	return &WorkoutSessions{
		StudentID: studentID,
		Total:     total,
		Page:      page,
		Size:      size,
		Sessions:  records,
	}, nil
}
