package router

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ogf-media/portal-core/internal/article"
	"github.com/ogf-media/portal-core/internal/auth"
	"github.com/ogf-media/portal-core/internal/channel"
	"github.com/ogf-media/portal-core/internal/comment"
	"github.com/ogf-media/portal-core/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := utilities.NewRequestID()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// CORSMiddleware sets the CORS headers the widget-based frontend needs and
// answers preflight requests before routing happens, since the mux only
// matches the concrete methods.
func CORSMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-User-Id, X-Auth-Token")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Handlers groups the per-domain HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth    *auth.Handler
	Article *article.Handler
	Channel *channel.Handler
	Comment *comment.Handler
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// auth routes
	mux.HandleFunc("POST /api/auth/telegram", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/request-admin-code", h.Auth.RequestCode)
	mux.HandleFunc("POST /api/auth/verify-admin-code", h.Auth.VerifyCode)

	// article routes
	mux.HandleFunc("GET /api/articles", h.Article.Feed)
	mux.HandleFunc("GET /api/articles/{id}", h.Article.Get)
	mux.HandleFunc("POST /api/articles", h.Article.Create)
	mux.HandleFunc("PUT /api/articles/{id}/moderate", h.Article.Moderate)

	// channel routes
	mux.HandleFunc("GET /api/channels", h.Channel.List)
	mux.HandleFunc("POST /api/channels/create", h.Channel.Create)
	mux.HandleFunc("PUT /api/channels/verify", h.Channel.Verify)

	// comment routes
	mux.HandleFunc("GET /api/comments", h.Comment.List)
	mux.HandleFunc("POST /api/comments", h.Comment.Create)
	mux.HandleFunc("PUT /api/comments/moderate", h.Comment.Moderate)

	// wrap with CORS, then security headers, then logging
	handler := LoggingMiddleware(logger)(SecurityHeadersMiddleware()(CORSMiddleware()(mux)))
	return handler
}
