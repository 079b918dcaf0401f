package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/benchprophet/benchprophet/internal/pkg/config"
	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// Ensure PostgresGameStorage implements GameStorage
var _ GameStorage = (*PostgresGameStorage)(nil)

// PostgresGameStorage stores enriched game records in PostgreSQL.
type PostgresGameStorage struct {
	db *sql.DB
}

// NewPostgresGameStorage creates a new PostgreSQL storage for games.
func NewPostgresGameStorage(cfg *config.PostgresConfig) (*PostgresGameStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	storage := &PostgresGameStorage{db: db}

	if err := storage.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("postgres game storage initialized")
	return storage, nil
}

func (s *PostgresGameStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS games (
		id SERIAL PRIMARY KEY,
		game_date DATE NOT NULL,
		season VARCHAR(20) NOT NULL,
		month VARCHAR(20) NOT NULL DEFAULT '',
		visitor_team VARCHAR(100) NOT NULL,
		home_team VARCHAR(100) NOT NULL,
		visitor_pts INTEGER NOT NULL,
		home_pts INTEGER NOT NULL,
		recent_wins_home INTEGER NOT NULL DEFAULT 0,
		recent_losses_home INTEGER NOT NULL DEFAULT 0,
		recent_win_pct_home DECIMAL(5, 1) NOT NULL DEFAULT 0,
		recent_wins_visitor INTEGER NOT NULL DEFAULT 0,
		recent_losses_visitor INTEGER NOT NULL DEFAULT 0,
		recent_win_pct_visitor DECIMAL(5, 1) NOT NULL DEFAULT 0,
		matchup_wins_home INTEGER NOT NULL DEFAULT 0,
		matchup_wins_visitor INTEGER NOT NULL DEFAULT 0,
		total_matchups INTEGER NOT NULL DEFAULT 0,
		days_since_last_game_home INTEGER,
		days_since_last_game_visitor INTEGER,
		wins_before_game_home INTEGER,
		losses_before_game_home INTEGER,
		wins_before_game_visitor INTEGER,
		losses_before_game_visitor INTEGER,
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(game_date, home_team, visitor_team)
	);

	CREATE INDEX IF NOT EXISTS idx_games_season ON games(season);
	CREATE INDEX IF NOT EXISTS idx_games_date ON games(game_date);
	`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

// UpsertGames writes a batch of enriched games, replacing rows that share the
// same date and team pair. Games without a parsed date are skipped.
func (s *PostgresGameStorage) UpsertGames(ctx context.Context, games []models.GameRecord) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games (
			game_date, season, month, visitor_team, home_team,
			visitor_pts, home_pts,
			recent_wins_home, recent_losses_home, recent_win_pct_home,
			recent_wins_visitor, recent_losses_visitor, recent_win_pct_visitor,
			matchup_wins_home, matchup_wins_visitor, total_matchups,
			days_since_last_game_home, days_since_last_game_visitor,
			wins_before_game_home, losses_before_game_home,
			wins_before_game_visitor, losses_before_game_visitor,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, NOW())
		ON CONFLICT (game_date, home_team, visitor_team) DO UPDATE SET
			season = EXCLUDED.season,
			month = EXCLUDED.month,
			visitor_pts = EXCLUDED.visitor_pts,
			home_pts = EXCLUDED.home_pts,
			recent_wins_home = EXCLUDED.recent_wins_home,
			recent_losses_home = EXCLUDED.recent_losses_home,
			recent_win_pct_home = EXCLUDED.recent_win_pct_home,
			recent_wins_visitor = EXCLUDED.recent_wins_visitor,
			recent_losses_visitor = EXCLUDED.recent_losses_visitor,
			recent_win_pct_visitor = EXCLUDED.recent_win_pct_visitor,
			matchup_wins_home = EXCLUDED.matchup_wins_home,
			matchup_wins_visitor = EXCLUDED.matchup_wins_visitor,
			total_matchups = EXCLUDED.total_matchups,
			days_since_last_game_home = EXCLUDED.days_since_last_game_home,
			days_since_last_game_visitor = EXCLUDED.days_since_last_game_visitor,
			wins_before_game_home = EXCLUDED.wins_before_game_home,
			losses_before_game_home = EXCLUDED.losses_before_game_home,
			wins_before_game_visitor = EXCLUDED.wins_before_game_visitor,
			losses_before_game_visitor = EXCLUDED.losses_before_game_visitor,
			updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	skipped := 0
	for i := range games {
		g := &games[i]
		if !g.HasDate() || !g.HasTeams() {
			skipped++
			continue
		}
		_, err := stmt.ExecContext(ctx,
			g.Date, g.Season, g.Month, g.VisitorTeam, g.HomeTeam,
			g.VisitorPts, g.HomePts,
			g.RecentWinsHome, g.RecentLossesHome, g.RecentWinPctHome,
			g.RecentWinsVisitor, g.RecentLossesVisitor, g.RecentWinPctVisitor,
			g.MatchupWinsHome, g.MatchupWinsVisitor, g.TotalMatchups,
			toNullInt64(g.DaysSinceLastHome), toNullInt64(g.DaysSinceLastVisitor),
			toNullInt64(g.WinsBeforeHome), toNullInt64(g.LossesBeforeHome),
			toNullInt64(g.WinsBeforeVisitor), toNullInt64(g.LossesBeforeVisitor),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert game %s: %w", g.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	if skipped > 0 {
		slog.Warn("skipped games without date or teams", "count", skipped)
	}
	return nil
}

// LoadSeason returns the stored games for one season label, ordered by date.
func (s *PostgresGameStorage) LoadSeason(ctx context.Context, season string) ([]models.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			game_date, season, month, visitor_team, home_team,
			visitor_pts, home_pts,
			recent_wins_home, recent_losses_home, recent_win_pct_home,
			recent_wins_visitor, recent_losses_visitor, recent_win_pct_visitor,
			matchup_wins_home, matchup_wins_visitor, total_matchups,
			days_since_last_game_home, days_since_last_game_visitor,
			wins_before_game_home, losses_before_game_home,
			wins_before_game_visitor, losses_before_game_visitor
		FROM games
		WHERE season = $1
		ORDER BY game_date, home_team
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season %s: %w", season, err)
	}
	defer rows.Close()

	var games []models.GameRecord
	for rows.Next() {
		var g models.GameRecord
		var restHome, restVisitor, winsH, lossesH, winsV, lossesV sql.NullInt64
		err := rows.Scan(
			&g.Date, &g.Season, &g.Month, &g.VisitorTeam, &g.HomeTeam,
			&g.VisitorPts, &g.HomePts,
			&g.RecentWinsHome, &g.RecentLossesHome, &g.RecentWinPctHome,
			&g.RecentWinsVisitor, &g.RecentLossesVisitor, &g.RecentWinPctVisitor,
			&g.MatchupWinsHome, &g.MatchupWinsVisitor, &g.TotalMatchups,
			&restHome, &restVisitor, &winsH, &lossesH, &winsV, &lossesV,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		g.DaysSinceLastHome = fromNullInt64(restHome)
		g.DaysSinceLastVisitor = fromNullInt64(restVisitor)
		g.WinsBeforeHome = fromNullInt64(winsH)
		g.LossesBeforeHome = fromNullInt64(lossesH)
		g.WinsBeforeVisitor = fromNullInt64(winsV)
		g.LossesBeforeVisitor = fromNullInt64(lossesV)
		games = append(games, g)
	}
	return games, rows.Err()
}

// Seasons returns the distinct season labels present in storage, newest first.
func (s *PostgresGameStorage) Seasons(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT season FROM games ORDER BY season DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// Close closes the underlying connection pool.
func (s *PostgresGameStorage) Close() error {
	return s.db.Close()
}

func toNullInt64(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func fromNullInt64(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
