package services

import (
	"context"
	"testing"
	"time"

	"arcade/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "puzzle", NormalizeSlug("puzzle"))
	assert.Equal(t, "puzzle", NormalizeSlug("PUZZLE"))
	assert.Equal(t, "puzzle", NormalizeSlug("  Puzzle\t"))
}

func TestGetCategoryBySlug_ColdCacheQueriesNormalizedSlug(t *testing.T) {
	db, recorder := unreachableDB(t)
	c := newMemoryCache()
	service := &ServiceCategory{readonlyPostgresDB: db, cache: c, readonlyCache: c}

	_, err := service.GetCategoryBySlug(context.Background(), " PUZZLE ")
	require.Error(t, err)

	require.Len(t, recorder.queries, 1)
	assert.Contains(t, recorder.queries[0], "slug = 'puzzle'")
	assert.NotContains(t, recorder.queries[0], "PUZZLE")
	assert.Empty(t, c.items)
}

func TestGetCategoryBySlug_WarmCacheUsesTheSameKey(t *testing.T) {
	ctx := context.Background()
	db, recorder := unreachableDB(t)
	c := newMemoryCache()
	require.NoError(t, c.Set(ctx, DBKeyCategory("puzzle"), &models.Category{ID: 1, Slug: "puzzle"}, time.Minute))
	service := &ServiceCategory{readonlyPostgresDB: db, cache: c, readonlyCache: c}

	for _, slug := range []string{"puzzle", "PUZZLE", " Puzzle "} {
		category, err := service.GetCategoryBySlug(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, int64(1), category.ID)
	}
	assert.Empty(t, recorder.queries)
}
