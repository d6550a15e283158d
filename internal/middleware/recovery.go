package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/2beens/trainingcoach/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	componentTraining   = "training"
	componentAdaptation = "adaptation"
	componentMCP        = "mcp"
	componentAuth       = "auth"
	componentMisc       = "misc"
)

// PanicRecovery turns a handler panic into a 500 and counts it per component.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					component := requestComponent(req.URL.Path)
					log.Errorf("http: panic serving %s [%s]: %v\n%s", req.URL.Path, component, r, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.WithLabelValues(component).Inc()
					}
					http.Error(respWriter, "internal error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}

func requestComponent(path string) string {
	switch {
	case strings.HasPrefix(path, "/training/adaptation"):
		return componentAdaptation
	case strings.HasPrefix(path, "/training"):
		return componentTraining
	case strings.HasPrefix(path, "/mcp"):
		return componentMCP
	case strings.HasPrefix(path, "/a/"):
		return componentAuth
	default:
		return componentMisc
	}
}
