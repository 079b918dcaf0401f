package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	"github.com/benchprophet/benchprophet/internal/pkg/export"
	"github.com/benchprophet/benchprophet/internal/pkg/models"
	"github.com/benchprophet/benchprophet/internal/pkg/storage"
)

// GameStore is what the API handlers read game data from.
type GameStore interface {
	Seasons(ctx context.Context) ([]string, error)
	SeasonGames(ctx context.Context, season string) ([]models.GameRecord, error)
}

var seasonFileRe = regexp.MustCompile(`^nba_(\d{4})_(\d{4})_final_data\.csv$`)

// DatasetStore serves game data from the exported CSV files in a directory.
// Files are parsed on first access and cached for the life of the process.
type DatasetStore struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string][]models.GameRecord
}

func NewDatasetStore(dir string, logger *slog.Logger) *DatasetStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetStore{
		dir:    dir,
		logger: logger,
		cache:  make(map[string][]models.GameRecord),
	}
}

// Seasons lists the seasons with a dataset file present, newest first.
func (s *DatasetStore) Seasons(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset dir: %w", err)
	}

	var seasons []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if m := seasonFileRe.FindStringSubmatch(e.Name()); m != nil {
			seasons = append(seasons, m[1]+"-"+m[2])
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(seasons)))
	return seasons, nil
}

// SeasonGames loads one season's dataset file, caching the parsed rows.
func (s *DatasetStore) SeasonGames(_ context.Context, season string) ([]models.GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if games, ok := s.cache[season]; ok {
		return games, nil
	}

	path := filepath.Join(s.dir, export.SeasonFileName(season))
	games, err := export.ReadSeasonFile(path)
	if err != nil {
		return nil, err
	}

	s.logger.Info("season dataset loaded", "season", season, "games", len(games), "path", path)
	s.cache[season] = games
	return games, nil
}

// StorageStore serves game data straight from the database.
type StorageStore struct {
	storage storage.GameStorage
}

func NewStorageStore(st storage.GameStorage) *StorageStore {
	return &StorageStore{storage: st}
}

func (s *StorageStore) Seasons(ctx context.Context) ([]string, error) {
	return s.storage.Seasons(ctx)
}

func (s *StorageStore) SeasonGames(ctx context.Context, season string) ([]models.GameRecord, error) {
	return s.storage.LoadSeason(ctx, season)
}
