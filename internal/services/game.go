package services

import (
	"context"

	"arcade/internal/datastore"
	"arcade/internal/models"
	"arcade/internal/pkg/paging"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceGame struct {
	container          *do.Injector
	readonlyPostgresDB *bun.DB
}

func NewServiceGame(container *do.Injector) (*ServiceGame, error) {
	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	return &ServiceGame{container, readonlyPostgresDB}, nil
}

// GetCategoryGamesNoCache always reads the database. A page whose offset or limit
// overflows the query's int32 paging is empty.
func (service *ServiceGame) GetCategoryGamesNoCache(ctx context.Context, categoryID int64, orderBy string, page, limit int) ([]models.Game, error) {
	if !paging.Fits(page, limit) {
		return []models.Game{}, nil
	}
	return datastore.GetCategoryGames(ctx, service.readonlyPostgresDB, categoryID, orderBy, paging.Offset(page, limit), limit)
}

func (service *ServiceGame) CountCategoryGamesNoCache(ctx context.Context, categoryID int64) (int64, error) {
	return datastore.CountCategoryGames(ctx, service.readonlyPostgresDB, categoryID)
}
