package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hegerb/rohlik-admin/internal/session"
)

// requireAuth is the route guard. It admits a request only when the stored
// token still resolves to a profile: the token is read from the cookie,
// /auth/me is fetched, and the verified user lands in the request context.
// Any failure is treated as "not authenticated": the session is cleared
// and the browser sent to /login.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := h.sessions.Token(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := session.WithToken(r.Context(), token)
		user, err := h.shop.CurrentUser(ctx)
		if err != nil {
			h.logger.Warn("session verification failed", "error", err)
			h.forceLogin(w, r)
			return
		}

		ctx = session.WithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger assigns each request an id, echoes it in X-Request-Id and
// logs method, route, status and duration.
func RequestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
