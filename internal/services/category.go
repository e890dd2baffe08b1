package services

import (
	"context"
	"database/sql"
	"errors"

	"arcade/internal/datastore"
	"arcade/internal/models"
	"arcade/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceCategory struct {
	container          *do.Injector
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceCategory(container *do.Injector) (*ServiceCategory, error) {
	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	readOnlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCategory{
		container:          container,
		readonlyPostgresDB: readonlyPostgresDB,
		cache:              cache,
		readonlyCache:      readOnlyCache,
	}, nil
}

// GetCategoryBySlug returns ErrCategoryNotFound when no category has the slug. The slug is
// normalized first so the cache key and the query always agree.
func (service *ServiceCategory) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	slug = NormalizeSlug(slug)
	callback := func() (*models.Category, error) {
		category, err := datastore.GetCategoryBySlug(ctx, service.readonlyPostgresDB, slug)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return category, err
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyCategory(slug), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceCategory) GetCategoriesByTaxonomy(ctx context.Context, taxonomy string) ([]models.Category, error) {
	callback := func() ([]models.Category, error) {
		return datastore.GetCategoriesByTaxonomy(ctx, service.readonlyPostgresDB, taxonomy)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyTaxonomy(taxonomy), CACHE_TTL_1_HOUR, callback)
}

// RefreshTaxonomy reloads the taxonomy from the database and overwrites its cache entry.
func (service *ServiceCategory) RefreshTaxonomy(ctx context.Context, taxonomy string) ([]models.Category, error) {
	callback := func() ([]models.Category, error) {
		return datastore.GetCategoriesByTaxonomy(ctx, service.readonlyPostgresDB, taxonomy)
	}

	return caching.Refresh(ctx, service.cache, DBKeyTaxonomy(taxonomy), CACHE_TTL_1_HOUR, callback)
}
