package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/trainingcoach/internal/auth"
	"github.com/2beens/trainingcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type loginChecker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

type studentResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

const (
	AdminTokenHeader = "X-ADMIN-TOKEN"
	MCPSecretHeader  = "X-MCP-Secret"
)

type AuthMiddlewareHandler struct {
	mcpSecret            string
	loginChecker         loginChecker
	studentResolver      studentResolver
	allowedPaths         map[string]bool
	adminPathsPrefixes   []string
	studentPathsPrefixes []string
}

func NewAuthMiddlewareHandler(
	mcpSecret string,
	loginChecker loginChecker,
	studentResolver studentResolver,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		mcpSecret:       mcpSecret,
		loginChecker:    loginChecker,
		studentResolver: studentResolver,
		allowedPaths: map[string]bool{
			"/":         true,
			"/version":  true,
			"/a/login":  true,
			"/a/logout": true,
		},
		adminPathsPrefixes: []string{
			"/training/adaptation/",
		},
		studentPathsPrefixes: []string{
			"/training/",
		},
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			path := r.URL.Path
			switch {
			case h.allowedPaths[path]:
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)

			case strings.HasPrefix(path, "/mcp"):
				if h.mcpSecret == "" || r.Header.Get(MCPSecretHeader) != h.mcpSecret {
					log.Tracef("[mcp] [auth middleware] unauthorized => %s", path)
					http.Error(w, "no can do", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "mcp-secret-mismatch")
					return
				}
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)

			case hasAnyPrefix(path, h.adminPathsPrefixes):
				h.checkAdmin(ctx, w, r, next)

			case hasAnyPrefix(path, h.studentPathsPrefixes):
				h.checkStudent(ctx, w, r, next)

			default:
				log.Tracef("[unknown path] [auth middleware] unauthorized => %s", path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "unknown-path")
			}
		})
	}
}

func (h *AuthMiddlewareHandler) checkAdmin(ctx context.Context, w http.ResponseWriter, r *http.Request, next http.Handler) {
	span := trace.SpanFromContext(ctx)

	authToken := r.Header.Get(AdminTokenHeader)
	if authToken == "" {
		log.Tracef("[missing admin token] [auth middleware] unauthorized => %s", r.URL.Path)
		http.Error(w, "no can do", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "missing-auth-token")
		return
	}

	isLogged, err := h.loginChecker.IsLogged(ctx, authToken)
	if err != nil {
		log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "check-logged-err")
		span.RecordError(err)
		return
	}
	if !isLogged {
		log.Tracef("[invalid admin token] [auth middleware] unauthorized => %s", r.URL.Path)
		http.Error(w, "no can do", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "not-logged")
		return
	}

	span.SetStatus(codes.Ok, "ok")
	next.ServeHTTP(w, r.WithContext(ctx))
}

func (h *AuthMiddlewareHandler) checkStudent(ctx context.Context, w http.ResponseWriter, r *http.Request, next http.Handler) {
	span := trace.SpanFromContext(ctx)

	token := bearerToken(r)
	if token == "" {
		log.Tracef("[missing student token] [auth middleware] unauthorized => %s", r.URL.Path)
		http.Error(w, "no can do", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "missing-student-token")
		return
	}

	studentID, err := h.studentResolver.Resolve(ctx, token)
	if err != nil {
		if !errors.Is(err, auth.ErrUnknownStudentToken) {
			log.Errorf("[failed student resolve] => %s: %s", r.URL.Path, err)
			span.RecordError(err)
		}
		http.Error(w, "no can do", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "student-not-resolved")
		return
	}

	span.SetStatus(codes.Ok, "ok")
	next.ServeHTTP(w, r.WithContext(auth.WithStudentID(ctx, studentID)))
}
