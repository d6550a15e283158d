package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/trainingcoach/internal/auth"
	"github.com/2beens/trainingcoach/internal/telemetry/tracing"
	"github.com/2beens/trainingcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=checkout_test

type sessionsRepo interface {
	ListPage(ctx context.Context, studentID string, page, size int) ([]Record, int, error)
}

const maxPageSize = 100

type ListResponse struct {
	Sessions []Record `json:"sessions"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	Size     int      `json:"size"`
}

type Handler struct {
	repo sessionsRepo
}

func NewHandler(repo sessionsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

// HandleList serves GET /training/sessions/list/page/{page}/size/{size}.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.sessions.list")
	defer span.End()

	studentID, ok := auth.StudentIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Errorf("handle get sessions page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Errorf("handle get sessions page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}
	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 || size > maxPageSize {
		http.Error(w, "invalid size (has to be between 1 and 100)", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))

	records, total, err := h.repo.ListPage(ctx, studentID, page, size)
	if err != nil {
		log.Errorf("list sessions for %s: %s", studentID, err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []Record{}
	}

	resp, err := json.Marshal(ListResponse{
		Sessions: records,
		Total:    total,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		log.Errorf("marshal sessions page: %s", err)
		http.Error(w, "marshal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, http.StatusOK)
}
