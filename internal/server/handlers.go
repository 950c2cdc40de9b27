package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/trackit/internal/database/repository"
	"github.com/jask/trackit/internal/habit"
)

const maxBodyBytes = 1 << 20

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.log.Warn("database not ready", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "database not ready")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	rows, err := s.habits.List(r.Context(), user)
	if err != nil {
		s.internalError(w, r, "list habits", err)
		return
	}
	out := make([]habit.Habit, 0, len(rows))
	for _, row := range rows {
		out = append(out, toHabit(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var d habit.Draft
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d.Name = strings.TrimSpace(d.Name)
	if err := d.ValidateStrict(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	row, err := s.habits.Create(r.Context(), user, d.Name, habit.NormalizeDays(d.Days))
	if err != nil {
		s.internalError(w, r, "create habit", err)
		return
	}
	s.metrics.HabitsCreated.Inc()
	s.log.Info("habit created",
		zap.String("user", user),
		zap.Int("id", row.ID),
		zap.Ints("days", row.Days),
	)
	writeJSON(w, http.StatusCreated, toHabit(row))
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.Error(op+" failed",
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.Error(err),
	)
	if errors.Is(err, context.Canceled) {
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

func toHabit(row repository.Habit) habit.Habit {
	days := row.Days
	if days == nil {
		days = []int{}
	}
	return habit.Habit{ID: row.ID, Name: row.Name, Days: days}
}

type errorBody struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
