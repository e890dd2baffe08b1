package interfaces

import (
	"context"

	"arcade/internal/models"

	"github.com/go-redis/redis_rate/v10"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

type CategorySource interface {
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetCategoriesByTaxonomy(ctx context.Context, taxonomy string) ([]models.Category, error)
}

type GameSource interface {
	GetCategoryGamesNoCache(ctx context.Context, categoryID int64, orderBy string, page, limit int) ([]models.Game, error)
	CountCategoryGamesNoCache(ctx context.Context, categoryID int64) (int64, error)
}

type OptionSource interface {
	GetIntConfig(ctx context.Context, key string, defaultValue int) (int, error)
}
