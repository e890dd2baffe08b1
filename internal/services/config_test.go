package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeBaseURL_ConfiguredValueWins(t *testing.T) {
	ctx := context.Background()
	db, recorder := unreachableDB(t)
	c := newMemoryCache()
	require.NoError(t, c.Set(ctx, DBKeyConfig(CONFIG_THEME_BASE_URL), "https://cdn.test/theme", time.Minute))
	service := &ServiceConfig{readonlyPostgresDB: db, cache: c, readonlyCache: c}

	assert.Equal(t, "https://cdn.test/theme", service.ThemeBaseURL(ctx, "/static"))
	assert.Empty(t, recorder.queries)
}

func TestThemeBaseURL_FallsBackOnErrors(t *testing.T) {
	ctx := context.Background()
	db, recorder := unreachableDB(t)

	c := newMemoryCache()
	c.getErr = errors.New("redis down")
	service := &ServiceConfig{readonlyPostgresDB: db, cache: c, readonlyCache: c}
	assert.Equal(t, "/static", service.ThemeBaseURL(ctx, "/static"))
	assert.Empty(t, recorder.queries)

	c = newMemoryCache()
	service = &ServiceConfig{readonlyPostgresDB: db, cache: c, readonlyCache: c}
	assert.Equal(t, "/static", service.ThemeBaseURL(ctx, "/static"))
	require.Len(t, recorder.queries, 1)
	assert.Contains(t, recorder.queries[0], "THEME_BASE_URL")
	assert.Empty(t, c.items)
}

func TestThemeBaseURL_BlankValueFallsBack(t *testing.T) {
	ctx := context.Background()
	db, _ := unreachableDB(t)
	c := newMemoryCache()
	require.NoError(t, c.Set(ctx, DBKeyConfig(CONFIG_THEME_BASE_URL), "", time.Minute))
	service := &ServiceConfig{readonlyPostgresDB: db, cache: c, readonlyCache: c}

	assert.Equal(t, "/static", service.ThemeBaseURL(ctx, "/static"))
}
