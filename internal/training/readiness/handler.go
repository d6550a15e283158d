package readiness

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/trainingcoach/internal/auth"
	"github.com/2beens/trainingcoach/internal/telemetry/tracing"
	"github.com/2beens/trainingcoach/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=readiness_test

type checkinsRepo interface {
	List(ctx context.Context, studentID string, from, to time.Time) ([]Checkin, error)
}

const (
	dateLayout         = "2006-01-02"
	defaultHistoryDays = 30
	maxHistoryDays     = 366
)

type ListResponse struct {
	Checkins []Checkin `json:"checkins"`
	From     string    `json:"from"`
	To       string    `json:"to"`
}

type Handler struct {
	repo checkinsRepo
	loc  *time.Location
	now  func() time.Time
}

func NewHandler(repo checkinsRepo, loc *time.Location) *Handler {
	return &Handler{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// HandleList serves GET /training/checkins?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both bounds are optional and default to the last 30 days.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.checkins.list")
	defer span.End()

	studentID, ok := auth.StudentIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	to := Day(h.now(), h.loc)
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		parsed, err := time.Parse(dateLayout, toParam)
		if err != nil {
			http.Error(w, "invalid to date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -defaultHistoryDays)
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		parsed, err := time.Parse(dateLayout, fromParam)
		if err != nil {
			http.Error(w, "invalid from date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	}

	if from.After(to) {
		http.Error(w, "from date is after to date", http.StatusBadRequest)
		return
	}
	if to.Sub(from) > maxHistoryDays*24*time.Hour {
		http.Error(w, "date range too large", http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.String("from", from.Format(dateLayout)),
		attribute.String("to", to.Format(dateLayout)),
	)

	checkins, err := h.repo.List(ctx, studentID, from, to)
	if err != nil {
		log.Errorf("list check-ins for student [%s]: %s", studentID, err)
		http.Error(w, "failed to list check-ins", http.StatusInternalServerError)
		return
	}
	if checkins == nil {
		checkins = []Checkin{}
	}

	resp, err := json.Marshal(ListResponse{
		Checkins: checkins,
		From:     from.Format(dateLayout),
		To:       to.Format(dateLayout),
	})
	if err != nil {
		log.Errorf("marshal check-ins: %s", err)
		http.Error(w, "failed to list check-ins", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, http.StatusOK)
}
