package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cookie-is-yummy/weed/internal/config"
	"github.com/cookie-is-yummy/weed/internal/economy"
	"github.com/cookie-is-yummy/weed/internal/jobs"
	"github.com/cookie-is-yummy/weed/internal/leaderboard"
)

// Server exposes global leaderboards and operational endpoints over HTTP.
type Server struct {
	cfg    config.APIConfig
	log    *slog.Logger
	boards *leaderboard.Boards
	sweep  *jobs.StreakSweep
	mux    *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, boards *leaderboard.Boards, sweep *jobs.StreakSweep) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		log:    logger,
		boards: boards,
		sweep:  sweep,
		mux:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/leaderboard/{metric}", s.handleLeaderboard)
		r.Get("/items", s.handleItems)
		r.Post("/jobs/streak", s.handleStreakSweep)
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "metric")

	metric, err := s.boards.ByName(name)
	if err != nil {
		if errors.Is(err, economy.ErrUnknownLeaderboard) {
			if _, ok := economy.Items()[name]; ok {
				metric = s.boards.Item(name)
			} else {
				writeError(w, http.StatusNotFound, "unknown leaderboard")
				return
			}
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	viewer := r.URL.Query().Get("viewer")
	ranking, err := s.boards.Rank(r.Context(), metric, leaderboard.GlobalScope(), viewer)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metric":   name,
		"pages":    ranking.Pages,
		"position": ranking.Position,
	})
}

func (s *Server) handleItems(w http.ResponseWriter, _ *http.Request) {
	catalog := economy.Items()
	out := make([]map[string]any, 0, len(catalog))
	for _, item := range catalog {
		out = append(out, map[string]any{
			"id":    item.ID,
			"name":  item.Name,
			"emoji": item.Emoji,
			"worth": item.Worth,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (s *Server) handleStreakSweep(w http.ResponseWriter, r *http.Request) {
	if s.sweep == nil {
		writeError(w, http.StatusServiceUnavailable, "streak sweep not configured")
		return
	}
	if err := s.sweep.Run(r.Context(), s.log); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
