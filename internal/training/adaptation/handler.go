package adaptation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/2beens/trainingcoach/internal/telemetry/tracing"
	"github.com/2beens/trainingcoach/internal/training/readiness"
	"github.com/2beens/trainingcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=adaptation_test

type rulesRepo interface {
	ListSystemDefaults(ctx context.Context) ([]Rule, error)
	UpdateSystemDefault(ctx context.Context, rule Rule) error
}

type rulesCache interface {
	Invalidate()
}

const maxMessageLength = 500

type UpdateRuleRequest struct {
	Modifiers Modifiers `json:"modifiers"`
	Message   string    `json:"message"`
}

type ListRulesResponse struct {
	Rules []Rule `json:"rules"`
}

type Handler struct {
	repo  rulesRepo
	cache rulesCache
}

func NewHandler(repo rulesRepo, cache rulesCache) *Handler {
	return &Handler{
		repo:  repo,
		cache: cache,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.rules.list")
	defer span.End()

	rules, err := h.repo.ListSystemDefaults(ctx)
	if err != nil {
		log.Errorf("list adaptation rules: %s", err)
		http.Error(w, "failed to list adaptation rules", http.StatusInternalServerError)
		return
	}
	if rules == nil {
		rules = []Rule{}
	}
	sort.Slice(rules, func(i, j int) bool {
		return levelOrder(rules[i].Level) < levelOrder(rules[j].Level)
	})

	pkg.WriteJSON(w, ListRulesResponse{Rules: rules}, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.rules.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	level := readiness.Level(mux.Vars(r)["level"])
	if !level.Valid() {
		http.Error(w, "unknown readiness level", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("readiness.level", string(level)))

	var req UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update adaptation rule, unmarshal json params: %s", err)
		http.Error(w, "invalid adaptation rule", http.StatusBadRequest)
		return
	}
	if !req.Modifiers.Valid() {
		http.Error(w, "modifiers must be positive numbers", http.StatusBadRequest)
		return
	}
	if len(req.Message) > maxMessageLength {
		http.Error(w, "message too long", http.StatusBadRequest)
		return
	}

	rule := Rule{
		Level:     level,
		Modifiers: req.Modifiers,
		Message:   req.Message,
	}
	if err := h.repo.UpdateSystemDefault(ctx, rule); err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			http.Error(w, "adaptation rule not found", http.StatusNotFound)
			return
		}
		log.Errorf("update adaptation rule [%s]: %s", level, err)
		http.Error(w, "failed to update adaptation rule", http.StatusInternalServerError)
		return
	}

	h.cache.Invalidate()
	log.Infof("adaptation rule [%s] updated: %+v", level, rule.Modifiers)

	pkg.WriteJSON(w, rule, http.StatusOK)
}

func levelOrder(l readiness.Level) int {
	switch l {
	case readiness.LevelGreen:
		return 0
	case readiness.LevelYellow:
		return 1
	case readiness.LevelRed:
		return 2
	default:
		return 3
	}
}
