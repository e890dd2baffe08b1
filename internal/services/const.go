package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrTaxonomyWarmupLock = errors.New("taxonomy warmup locked")

const (
	CONFIG_CATEGORY_GAMES_LIMIT         = "CATEGORY_GAMES_LIMIT"
	CONFIG_CATEGORY_GAMES_MAX_LIMIT     = "CATEGORY_GAMES_MAX_LIMIT"
	CONFIG_CRONJOB_TIME_TAXONOMY_WARMUP = "CRONJOB_TIME_TAXONOMY_WARMUP"
	CONFIG_THEME_BASE_URL               = "THEME_BASE_URL"

	CATEGORY_GAMES_DEFAULT_LIMIT     = 24
	CATEGORY_GAMES_DEFAULT_MAX_LIMIT = 100

	SORT_MOST_PLAYED  = "most_played"
	ORDER_FIELD_VIEWS = "views"

	CACHE_TTL_5_MINS = 5 * time.Minute
	CACHE_TTL_1_HOUR = 1 * time.Hour

	LISTING_RATE_LIMIT_PER_MINUTE = 600
)

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", key)
}

// NormalizeSlug is applied to a slug before it is used as a cache key or a query value.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func DBKeyCategory(slug string) string {
	return fmt.Sprintf("category:slug:%s", slug)
}

func DBKeyTaxonomy(taxonomy string) string {
	return fmt.Sprintf("category:taxonomy:%s", taxonomy)
}

// DBKeyCategoryPattern matches every cached category entry.
func DBKeyCategoryPattern() string {
	return "category:*"
}

func LockKeyTaxonomyWarmup(taxonomy string) string {
	return fmt.Sprintf("lock:taxonomy-warmup:%s", taxonomy)
}

func LimitKeyListing(ip string) string {
	return fmt.Sprintf("limit:listing:%s", ip)
}
