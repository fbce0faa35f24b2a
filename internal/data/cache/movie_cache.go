package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinemate/internal/data/entity"

	"go.uber.org/zap"
)

const defaultTTL = time.Hour

type MovieSource interface {
	GetMovieByID(ctx context.Context, id int) (*entity.MovieMetadata, error)
	GetMovieDetail(ctx context.Context, id int) (*entity.MovieDetail, error)
	ListMovies(ctx context.Context, list entity.MovieList, page int) (*entity.MoviePage, error)
}

// MovieCache is a read-through cache in front of a MovieSource. A broken
// cache is bypassed; only the source can fail a lookup. Misses from the
// source are not cached.
type MovieCache struct {
	source MovieSource
	store  Store
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

func NewMovieCache(source MovieSource, store Store, ttl time.Duration, log *zap.Logger) *MovieCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MovieCache{
		source: source,
		store:  store,
		ttl:    ttl,
		prefix: "movie",
		log:    log.With(zap.String("cache", "movie")),
	}
}

func (c *MovieCache) GetMovieByID(ctx context.Context, id int) (*entity.MovieMetadata, error) {
	return readThrough(ctx, c, fmt.Sprintf("%s:%d", c.prefix, id), func() (*entity.MovieMetadata, error) {
		return c.source.GetMovieByID(ctx, id)
	})
}

func (c *MovieCache) GetMovieDetail(ctx context.Context, id int) (*entity.MovieDetail, error) {
	return readThrough(ctx, c, fmt.Sprintf("%s:%d:detail", c.prefix, id), func() (*entity.MovieDetail, error) {
		return c.source.GetMovieDetail(ctx, id)
	})
}

func (c *MovieCache) ListMovies(ctx context.Context, list entity.MovieList, page int) (*entity.MoviePage, error) {
	return readThrough(ctx, c, fmt.Sprintf("%ss:%s:%d", c.prefix, list, page), func() (*entity.MoviePage, error) {
		return c.source.ListMovies(ctx, list, page)
	})
}

func readThrough[T any](ctx context.Context, c *MovieCache, key string, load func() (*T, error)) (*T, error) {
	bs, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		jsonErr := json.Unmarshal(bs, &cached)
		if jsonErr == nil {
			return &cached, nil
		}
		c.log.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(jsonErr))
	case errors.Is(err, ErrMiss):
	default:
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err := load()
	if err != nil || value == nil {
		return value, err
	}

	bs, err = json.Marshal(value)
	if err != nil {
		c.log.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	if err := c.store.Set(ctx, key, bs, c.ttl); err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}

	return value, nil
}
