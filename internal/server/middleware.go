package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/jask/trackit/internal/auth"
)

type ctxKey int

const (
	ctxUser ctxKey = iota
	ctxRequestID
)

const requestIDHeader = "X-Request-ID"

func userFrom(ctx context.Context) string {
	u, _ := ctx.Value(ctxUser).(string)
	return u
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// requestID keeps a caller-supplied X-Request-ID or mints one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxRequestID, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// unmatchedRoute is the route label for requests no route accepts.
const unmatchedRoute = "unmatched"

// observe logs every request and feeds the request metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return s.instrument("", next)
}

// unmatched answers with a JSON error and gets the request id, log line and
// metrics that routed requests get.
func (s *Server) unmatched(status int, msg string) http.Handler {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, status, msg)
	})
	return s.requestID(s.instrument(unmatchedRoute, h))
}

// instrument records next under route, or under the matched route template
// when route is empty.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		label := route
		if label == "" {
			label = routeTemplate(r)
		}
		elapsed := time.Since(start)
		s.metrics.Requests.WithLabelValues(label, r.Method, strconv.Itoa(rec.status)).Inc()
		s.metrics.Latency.WithLabelValues(label).Observe(elapsed.Seconds())
		s.log.Info("request",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", label),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed),
		)
	})
}

func routeTemplate(r *http.Request) string {
	if cur := mux.CurrentRoute(r); cur != nil {
		if tpl, err := cur.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return unmatchedRoute
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, err := auth.ExtractToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		user, err := s.tokens.Parse(tok)
		if err != nil {
			s.log.Debug("token rejected", zap.Error(err))
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUser, user)))
	})
}
