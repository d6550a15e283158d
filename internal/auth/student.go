package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/trainingcoach/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

// tokens are written by the identity service, this side only reads them
const studentSessionKeyPrefix = "student-session||"

var ErrUnknownStudentToken = errors.New("unknown student token")

type StudentResolver struct {
	redisClient *redis.Client
}

func NewStudentResolver(redisClient *redis.Client) *StudentResolver {
	return &StudentResolver{
		redisClient: redisClient,
	}
}

// Resolve maps a student session token to the student id.
func (r *StudentResolver) Resolve(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.student.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	studentID, err := r.redisClient.Get(ctx, studentSessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) || (err == nil && studentID == "") {
		return "", ErrUnknownStudentToken
	}
	if err != nil {
		return "", fmt.Errorf("get student session: %w", err)
	}

	span.SetAttributes(attribute.String("student.id", studentID))
	return studentID, nil
}

type studentIDKey struct{}

func WithStudentID(ctx context.Context, studentID string) context.Context {
	return context.WithValue(ctx, studentIDKey{}, studentID)
}

func StudentIDFromContext(ctx context.Context) (string, bool) {
	studentID, ok := ctx.Value(studentIDKey{}).(string)
	return studentID, ok && studentID != ""
}
