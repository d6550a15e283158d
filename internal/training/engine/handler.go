package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/trainingcoach/internal/auth"
	"github.com/2beens/trainingcoach/internal/telemetry/tracing"
	"github.com/2beens/trainingcoach/internal/training/adaptation"
	"github.com/2beens/trainingcoach/internal/training/checkout"
	"github.com/2beens/trainingcoach/internal/training/readiness"
	"github.com/2beens/trainingcoach/internal/training/session"
	"github.com/2beens/trainingcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=engine_test

type trainingEngine interface {
	SubmitCheckin(ctx context.Context, studentID string, c readiness.Checkin) (*CheckinResult, error)
	TodayCheckin(ctx context.Context, studentID string) (*TodayCheckin, error)
	StartSession(ctx context.Context, studentID, planID string, exercises []adaptation.PrescribedExercise) (session.Snapshot, error)
	Current(studentID string) (session.Snapshot, error)
	LogSet(studentID string, in session.SetInput) (session.SetResult, error)
	FinishRest(studentID string) (session.Snapshot, error)
	SkipExercise(studentID string) (session.Snapshot, error)
	FinishSession(ctx context.Context, studentID string, in checkout.Input) (*checkout.Record, error)
	AbandonSession(studentID, reason string) error
}

const maxAbandonReasonLength = 500

type StartSessionRequest struct {
	PlanID    string                          `json:"planId"`
	Exercises []adaptation.PrescribedExercise `json:"exercises"`
}

type Handler struct {
	engine trainingEngine
}

func NewHandler(engine trainingEngine) *Handler {
	return &Handler{
		engine: engine,
	}
}

// SetupRoutes registers the student facing routes on the /training subrouter.
// checkinMiddlewares wrap only the check-in submission route.
func (h *Handler) SetupRoutes(r *mux.Router, checkinMiddlewares ...mux.MiddlewareFunc) {
	var submitCheckin http.Handler = http.HandlerFunc(h.HandleSubmitCheckin)
	for i := len(checkinMiddlewares) - 1; i >= 0; i-- {
		submitCheckin = checkinMiddlewares[i](submitCheckin)
	}

	r.Handle("/checkins", submitCheckin).Methods("POST").Name("submit-checkin")
	r.HandleFunc("/checkins/today", h.HandleTodayCheckin).Methods("GET").Name("today-checkin")
	r.HandleFunc("/sessions", h.HandleStartSession).Methods("POST").Name("start-session")
	r.HandleFunc("/sessions/current", h.HandleCurrent).Methods("GET").Name("current-session")
	r.HandleFunc("/sessions/current", h.HandleAbandon).Methods("DELETE").Name("abandon-session")
	r.HandleFunc("/sessions/current/sets", h.HandleLogSet).Methods("POST").Name("log-set")
	r.HandleFunc("/sessions/current/rest/finish", h.HandleFinishRest).Methods("POST").Name("finish-rest")
	r.HandleFunc("/sessions/current/skip", h.HandleSkipExercise).Methods("POST").Name("skip-exercise")
	r.HandleFunc("/sessions/current/finish", h.HandleFinish).Methods("POST").Name("finish-session")
}

func (h *Handler) HandleSubmitCheckin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.checkins.submit")
	defer span.End()

	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	var c readiness.Checkin
	if !decodeJSON(w, r, &c) {
		return
	}

	res, err := h.engine.SubmitCheckin(ctx, studentID, c)
	if err != nil {
		writeError(w, "submit check-in", err)
		return
	}

	pkg.WriteJSON(w, res, http.StatusOK)
}

func (h *Handler) HandleTodayCheckin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.checkins.today")
	defer span.End()

	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	today, err := h.engine.TodayCheckin(ctx, studentID)
	if err != nil {
		writeError(w, "get today's check-in", err)
		return
	}

	pkg.WriteJSON(w, today, http.StatusOK)
}

func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.sessions.start")
	defer span.End()

	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap, err := h.engine.StartSession(ctx, studentID, req.PlanID, req.Exercises)
	if err != nil {
		writeError(w, "start session", err)
		return
	}

	pkg.WriteJSON(w, snap, http.StatusCreated)
}

func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	snap, err := h.engine.Current(studentID)
	if err != nil {
		writeError(w, "get current session", err)
		return
	}

	pkg.WriteJSON(w, snap, http.StatusOK)
}

func (h *Handler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	var in session.SetInput
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := h.engine.LogSet(studentID, in)
	if err != nil {
		writeError(w, "log set", err)
		return
	}

	pkg.WriteJSON(w, res, http.StatusOK)
}

func (h *Handler) HandleFinishRest(w http.ResponseWriter, r *http.Request) {
	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	snap, err := h.engine.FinishRest(studentID)
	if err != nil {
		writeError(w, "finish rest", err)
		return
	}

	pkg.WriteJSON(w, snap, http.StatusOK)
}

func (h *Handler) HandleSkipExercise(w http.ResponseWriter, r *http.Request) {
	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	snap, err := h.engine.SkipExercise(studentID)
	if err != nil {
		writeError(w, "skip exercise", err)
		return
	}

	pkg.WriteJSON(w, snap, http.StatusOK)
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.sessions.finish")
	defer span.End()

	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	var in checkout.Input
	if !decodeJSON(w, r, &in) {
		return
	}

	rec, err := h.engine.FinishSession(ctx, studentID, in)
	if err != nil {
		writeError(w, "finish session", err)
		return
	}

	pkg.WriteJSON(w, rec, http.StatusOK)
}

// HandleAbandon serves DELETE /training/sessions/current?reason=...
func (h *Handler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	studentID, ok := studentFrom(w, r)
	if !ok {
		return
	}

	reason := strings.TrimSpace(r.URL.Query().Get("reason"))
	if len(reason) > maxAbandonReasonLength {
		http.Error(w, "reason too long", http.StatusBadRequest)
		return
	}

	if err := h.engine.AbandonSession(studentID, reason); err != nil {
		writeError(w, "abandon session", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func studentFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	studentID, ok := auth.StudentIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return "", false
	}
	return studentID, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("decode request body: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Debugf("%s: %s", op, err)
	}

	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		msg = "session could not be saved, try again"
	case http.StatusInternalServerError:
		msg = "internal error"
	}
	http.Error(w, msg, status)
}

func statusFor(err error) int {
	var validationErr *readiness.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, session.ErrNoExercises),
		errors.Is(err, session.ErrInvalidSet),
		errors.Is(err, checkout.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoActiveSession):
		return http.StatusNotFound
	case errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, session.ErrRestInProgress),
		errors.Is(err, session.ErrNotCurrentExercise),
		errors.Is(err, session.ErrEmptySession),
		errors.Is(err, session.ErrSessionActive):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
