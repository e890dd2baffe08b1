package services

import (
	"context"
	"log"
	"math"
	"math/rand"

	"arcade/internal/interfaces"
	"arcade/internal/models"
	"arcade/internal/pkg/paging"

	"github.com/samber/do"
)

type ServiceListing struct {
	categories interfaces.CategorySource
	games      interfaces.GameSource
	options    interfaces.OptionSource
	shuffle    func(n int, swap func(i, j int))
}

func NewServiceListing(container *do.Injector) (*ServiceListing, error) {
	serviceCategory, err := do.Invoke[*ServiceCategory](container)
	if err != nil {
		return nil, err
	}

	serviceGame, err := do.Invoke[*ServiceGame](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return NewListing(serviceCategory, serviceGame, serviceConfig, nil), nil
}

// NewListing wires the listing to its sources. A nil shuffle uses math/rand.
func NewListing(categories interfaces.CategorySource, games interfaces.GameSource, options interfaces.OptionSource, shuffle func(n int, swap func(i, j int))) *ServiceListing {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	return &ServiceListing{
		categories: categories,
		games:      games,
		options:    options,
		shuffle:    shuffle,
	}
}

// OrderField maps a sort key to the column games are ordered by.
func OrderField(sort string) string {
	field := ORDER_FIELD_VIEWS
	if sort == SORT_MOST_PLAYED {
		// most_played currently orders by the same column as the default.
		field = ORDER_FIELD_VIEWS
	}
	return field
}

// ResolveLimit prefers the requested limit and falls back to CATEGORY_GAMES_LIMIT.
// Either way the result is capped at CATEGORY_GAMES_MAX_LIMIT.
func (service *ServiceListing) ResolveLimit(ctx context.Context, limit int) int {
	if limit <= 0 {
		limit = service.configuredLimit(ctx)
	}

	if ceiling := service.maxLimit(ctx); limit > ceiling {
		return ceiling
	}
	return limit
}

func (service *ServiceListing) configuredLimit(ctx context.Context) int {
	configured, err := service.options.GetIntConfig(ctx, CONFIG_CATEGORY_GAMES_LIMIT, CATEGORY_GAMES_DEFAULT_LIMIT)
	if err != nil {
		log.Printf("listing: read %s: %v\n", CONFIG_CATEGORY_GAMES_LIMIT, err)
		return CATEGORY_GAMES_DEFAULT_LIMIT
	}
	if configured <= 0 {
		return CATEGORY_GAMES_DEFAULT_LIMIT
	}
	return configured
}

func (service *ServiceListing) maxLimit(ctx context.Context) int {
	ceiling, err := service.options.GetIntConfig(ctx, CONFIG_CATEGORY_GAMES_MAX_LIMIT, CATEGORY_GAMES_DEFAULT_MAX_LIMIT)
	if err != nil {
		log.Printf("listing: read %s: %v\n", CONFIG_CATEGORY_GAMES_MAX_LIMIT, err)
		return CATEGORY_GAMES_DEFAULT_MAX_LIMIT
	}
	if ceiling <= 0 || ceiling > math.MaxInt32 {
		return CATEGORY_GAMES_DEFAULT_MAX_LIMIT
	}
	return ceiling
}

// pageInRange reports whether the page starts inside the result set.
func pageInRange(page, limit int, total int64) bool {
	if !paging.Fits(page, limit) {
		return false
	}
	return int64(paging.Offset(page, limit)) < total
}

// GetListing loads one page of a category's games in shuffled order, with paging and the
// game taxonomy for the sidebar. It returns ErrCategoryNotFound for an unknown slug.
func (service *ServiceListing) GetListing(ctx context.Context, req models.ListingRequest) (*models.Listing, error) {
	category, err := service.categories.GetCategoryBySlug(ctx, req.CategorySlug)
	if err != nil {
		return nil, err
	}

	limit := service.ResolveLimit(ctx, req.Limit)
	page := paging.NormalizePage(req.Page)

	total, err := service.games.CountCategoryGamesNoCache(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	games := []models.Game{}
	if pageInRange(page, limit, total) {
		games, err = service.games.GetCategoryGamesNoCache(ctx, category.ID, OrderField(req.Sort), page, limit)
		if err != nil {
			return nil, err
		}
	}

	service.shuffle(len(games), func(i, j int) {
		games[i], games[j] = games[j], games[i]
	})

	sidebar, err := service.categories.GetCategoriesByTaxonomy(ctx, models.TaxonomyGame)
	if err != nil {
		return nil, err
	}

	return &models.Listing{
		Category: category,
		Games:    games,
		Paging:   paging.New(total, page, limit),
		Sidebar:  sidebar,
	}, nil
}
