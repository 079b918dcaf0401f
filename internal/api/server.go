package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/benchprophet/benchprophet/internal/pipeline"
	"github.com/benchprophet/benchprophet/internal/pkg/models"
	"github.com/benchprophet/benchprophet/internal/pkg/teams"
	"github.com/benchprophet/benchprophet/internal/scraper/bbref"
)

// TeamStatsSource fetches a team's season summary from the source site.
// Satisfied by bbref.TeamStatsClient.
type TeamStatsSource interface {
	TeamSeasonStats(ctx context.Context, pageAbbr, season string) (*bbref.TeamStats, error)
}

// Server exposes the enriched dataset over HTTP.
type Server struct {
	store  GameStore
	stats  TeamStatsSource
	logger *slog.Logger
}

func NewServer(store GameStore, stats TeamStatsSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: store, stats: stats, logger: logger}
}

// Router wires up all routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/teams", s.handleTeams).Methods(http.MethodGet)
	r.HandleFunc("/api/games", s.handleGames).Methods(http.MethodGet)
	r.HandleFunc("/api/compare-teams", s.handleCompareTeams).Methods(http.MethodGet)
	r.HandleFunc("/api/team-stats", s.handleTeamStats).Methods(http.MethodGet)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readHeaderTimeout time.Duration) error {
	if readHeaderTimeout <= 0 {
		s.logger.Error("read_header_timeout must be specified in config")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("API server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func AddrFor(port int) string {
	if port <= 0 {
		slog.Error("port must be greater than 0")
		os.Exit(1)
	}
	return fmt.Sprintf(":%d", port)
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "pong")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	seasons, err := s.store.Seasons(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"seasons": seasons,
	})
}

// handleTeams lists the 30 franchises. Names are upper-cased at this boundary
// for consumers that match on them case-sensitively.
func (s *Server) handleTeams(w http.ResponseWriter, _ *http.Request) {
	type teamOut struct {
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
		Conference   string `json:"conference"`
	}
	all := teams.All()
	out := make([]teamOut, 0, len(all))
	for _, f := range all {
		out = append(out, teamOut{
			Name:         strings.ToUpper(f.Name),
			Abbreviation: f.Abbr,
			Conference:   f.Conference,
		})
	}
	s.writeJSON(w, map[string]interface{}{"teams": out})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")
	if season == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("season query parameter is required"))
		return
	}

	games, err := s.store.SeasonGames(r.Context(), season)
	if err != nil {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("season %s: %w", season, err))
		return
	}

	s.writeJSON(w, map[string]interface{}{
		"season": season,
		"count":  len(games),
		"games":  games,
	})
}

// teamSeasonLine aggregates one team's season from its games.
type teamSeasonLine struct {
	Team          string  `json:"team"`
	Games         int     `json:"games"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	PointsPerGame float64 `json:"points_per_game"`
	PointsAllowed float64 `json:"points_allowed_per_game"`
}

func (s *Server) handleCompareTeams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	season := q.Get("season")
	if season == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("season query parameter is required"))
		return
	}

	team1, ok := teams.Canonical(q.Get("team1"))
	if !ok {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown team1 %q", q.Get("team1")))
		return
	}
	team2, ok := teams.Canonical(q.Get("team2"))
	if !ok {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown team2 %q", q.Get("team2")))
		return
	}

	games, err := s.store.SeasonGames(r.Context(), season)
	if err != nil {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("season %s: %w", season, err))
		return
	}

	h2h := pipeline.HeadToHeadTally(team1, team2, season, time.Time{}, games)

	s.writeJSON(w, map[string]interface{}{
		"season": season,
		"team1":  seasonLine(team1, season, games),
		"team2":  seasonLine(team2, season, games),
		"head_to_head": map[string]interface{}{
			"team1_wins": h2h.AWins,
			"team2_wins": h2h.BWins,
			"total":      h2h.Total,
		},
	})
}

func seasonLine(team, season string, games []models.GameRecord) teamSeasonLine {
	line := teamSeasonLine{Team: team}
	scored, allowed := 0, 0
	for _, g := range games {
		if g.Season != season || !g.HasPoints() {
			continue
		}
		switch team {
		case g.HomeTeam:
			line.Games++
			scored += g.HomePts
			allowed += g.VisitorPts
			if g.HomePts > g.VisitorPts {
				line.Wins++
			} else {
				line.Losses++
			}
		case g.VisitorTeam:
			line.Games++
			scored += g.VisitorPts
			allowed += g.HomePts
			if g.VisitorPts > g.HomePts {
				line.Wins++
			} else {
				line.Losses++
			}
		}
	}
	if line.Games > 0 {
		line.PointsPerGame = round1(float64(scored) / float64(line.Games))
		line.PointsAllowed = round1(float64(allowed) / float64(line.Games))
	}
	return line
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func (s *Server) handleTeamStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		s.writeError(w, http.StatusServiceUnavailable, fmt.Errorf("team stats source is not configured"))
		return
	}

	q := r.URL.Query()
	season := q.Get("season")
	if season == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("season query parameter is required"))
		return
	}

	f, ok := resolveFranchise(q.Get("team"))
	if !ok {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown team %q", q.Get("team")))
		return
	}

	stats, err := s.stats.TeamSeasonStats(r.Context(), f.PageAbbr, season)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, stats)
}

func resolveFranchise(ref string) (teams.Franchise, bool) {
	if f, ok := teams.ByAbbr(ref); ok {
		return f, true
	}
	name, ok := teams.Canonical(ref)
	if !ok {
		return teams.Franchise{}, false
	}
	return teams.ByName(name)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	s.logger.Warn("request failed", "code", code, "error", err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
