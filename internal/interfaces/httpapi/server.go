package httpapi

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

type RouterConfig struct {
	Handler            *Handler
	TokenVerifier      TokenVerifier
	InternalJobToken   string
	CORSAllowedOrigins []string
	Logger             *slog.Logger
}

// NewRouter assembles the full middleware chain around the route table:
// tracing outermost, then request logging, CORS, and panic recovery.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerRoutes(mux, cfg)

	return RequestTracing(
		RequestLogging(logger,
			CORS(cfg.CORSAllowedOrigins,
				recoverPanic(logger, mux))))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic while handling request",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeInternalError(r.Context(), w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
