// Package api serves the SSH server's shared leaderboard over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"simon-says/internal/score"
	"simon-says/internal/simon"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Leaderboard is the score storage the API reads. *score.SQLiteDB
// satisfies it.
type Leaderboard interface {
	Top(ctx context.Context, d simon.Difficulty, limit int) ([]score.Ranked, error)
	PlayerScores(ctx context.Context, name string) (*score.HighScores, error)
}

// Server handles HTTP requests.
type Server struct {
	board  Leaderboard
	clock  score.Clock
	logger *slog.Logger
}

// NewServer creates a server over board. clock dates the today and week
// queries; nil means the system clock.
func NewServer(board Leaderboard, clock score.Clock, logger *slog.Logger) *Server {
	if clock == nil {
		clock = score.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{board: board, clock: clock, logger: logger}
}

// Routes sets up the HTTP routes with their middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/scores/{difficulty}", s.handleTop)
	r.Get("/players/{player}/best", s.handlePlayerBest)
	return r
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type topResponse struct {
	Difficulty string         `json:"difficulty"`
	Scores     []score.Ranked `json:"scores"`
}

type playerResponse struct {
	Player string                 `json:"player"`
	Bests  map[string]score.Bests `json:"bests"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	d, err := simon.ParseDifficulty(chi.URLParam(r, "difficulty"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	rows, err := s.board.Top(r.Context(), d, limit)
	if err != nil {
		s.logger.Error("leaderboard query failed", "difficulty", d.Key(), "error", err,
			"request_id", middleware.GetReqID(r.Context()))
		s.writeError(w, r, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, topResponse{Difficulty: d.Key(), Scores: rows})
}

func (s *Server) handlePlayerBest(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	h, err := s.board.PlayerScores(r.Context(), player)
	if err != nil {
		s.logger.Error("player scores query failed", "player", player, "error", err,
			"request_id", middleware.GetReqID(r.Context()))
		s.writeError(w, r, http.StatusInternalServerError, "scores unavailable")
		return
	}

	now := s.clock.Now()
	resp := playerResponse{Player: player, Bests: make(map[string]score.Bests, len(simon.Difficulties))}
	recorded := 0
	for _, d := range simon.Difficulties {
		b := score.BestsOf(h.Ledger(d), now)
		resp.Bests[d.Key()] = b
		recorded += b.Recorded
	}
	if recorded == 0 {
		s.writeError(w, r, http.StatusNotFound, "no games recorded for "+player)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg, RequestID: middleware.GetReqID(r.Context())})
}
