package storage

import (
	"context"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// GameStorage persists enriched game records.
type GameStorage interface {
	UpsertGames(ctx context.Context, games []models.GameRecord) error
	LoadSeason(ctx context.Context, season string) ([]models.GameRecord, error)
	Seasons(ctx context.Context) ([]string, error)
	Close() error
}
