package ecoapi

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fd1az/eco-market-bot/business/crafting/app"
	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
)

const catalogKey = "recipes"

// CachedRecipeSource keeps the catalog in memory for a TTL.
type CachedRecipeSource struct {
	next  app.RecipeSource
	cache *gocache.Cache
	log   logger.LoggerInterface
}

// NewCachedRecipeSource wraps next. A ttl <= 0 disables caching.
func NewCachedRecipeSource(next app.RecipeSource, ttl time.Duration, log logger.LoggerInterface) *CachedRecipeSource {
	var c *gocache.Cache
	if ttl > 0 {
		c = gocache.New(ttl, 2*ttl)
	}
	return &CachedRecipeSource{next: next, cache: c, log: log}
}

// FetchRecipes returns the cached catalog, fetching it when expired.
func (s *CachedRecipeSource) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) {
	if s.cache == nil {
		return s.next.FetchRecipes(ctx)
	}

	if v, ok := s.cache.Get(catalogKey); ok {
		recipes := v.([]domain.Recipe)
		s.log.Debug(ctx, "recipe catalog served from cache", "recipes", len(recipes))
		return recipes, nil
	}

	recipes, err := s.next.FetchRecipes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(catalogKey, recipes)
	return recipes, nil
}

// Invalidate drops the cached catalog.
func (s *CachedRecipeSource) Invalidate() {
	if s.cache != nil {
		s.cache.Delete(catalogKey)
	}
}
