package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"mobility-profile/internal/cache"
	"mobility-profile/internal/domain"
	"mobility-profile/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultOptionCountTTL is used when no TTL is configured.
const DefaultOptionCountTTL = 30 * time.Minute

// OptionCountCache serves the number of options pointing to each result, the
// denominator of the normalized score. Counts only change when the catalog is imported,
// so the importer calls Recompute or Invalidate afterwards.
type OptionCountCache interface {
	Counts(ctx context.Context) (map[int64]int, error)
	Invalidate(ctx context.Context) error
	Recompute(ctx context.Context) (map[int64]int, error)
}

type optionCountCacheImpl struct {
	cache       domain.Cache
	catalogRepo domain.CatalogRepository
	txManager   domain.TransactionManager
	ttl         time.Duration
	sfGroup     singleflight.Group
}

// NewOptionCountCache creates the cache. A nil cache reads through to the database on every call.
func NewOptionCountCache(cache domain.Cache, catalogRepo domain.CatalogRepository, txManager domain.TransactionManager, ttl time.Duration) OptionCountCache {
	if ttl <= 0 {
		ttl = DefaultOptionCountTTL
	}
	return &optionCountCacheImpl{
		cache:       cache,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		ttl:         ttl,
	}
}

func (c *optionCountCacheImpl) Counts(ctx context.Context) (map[int64]int, error) {
	key := cache.OptionCountsKey()

	if c.cache != nil {
		cached, err := c.cache.HGetAll(ctx, key)
		switch {
		case err != nil:
			logger.Get().Warn("Option count cache read failed, falling back to database", zap.Error(err), zap.String("key", key))
		case len(cached) > 0:
			counts, decodeErr := decodeOptionCounts(cached)
			if decodeErr == nil {
				return counts, nil
			}
			logger.Get().Warn("Discarding malformed option count cache entry", zap.Error(decodeErr), zap.String("key", key))
		}
	}

	res, err, _ := c.sfGroup.Do(key, func() (interface{}, error) {
		counts, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, counts)
		return counts, nil
	})
	if err != nil {
		return nil, err
	}

	counts, ok := res.(map[int64]int)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for option counts: %T", res)
	}
	return counts, nil
}

// load reads the stored num_options, counting the links instead when none were stored yet.
func (c *optionCountCacheImpl) load(ctx context.Context) (map[int64]int, error) {
	results, err := c.catalogRepo.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	counts := make(map[int64]int, len(results))
	stored := false
	for _, r := range results {
		counts[r.ID] = r.NumOptions
		if r.NumOptions > 0 {
			stored = true
		}
	}
	if stored || len(results) == 0 {
		return counts, nil
	}

	linked, err := c.catalogRepo.CountOptionsPerResult(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count options per result: %w", err)
	}
	for id, n := range linked {
		counts[id] = n
	}
	return counts, nil
}

func (c *optionCountCacheImpl) store(ctx context.Context, key string, counts map[int64]int) {
	if c.cache == nil || len(counts) == 0 {
		return
	}
	if err := c.cache.HSetAll(ctx, key, encodeOptionCounts(counts), c.ttl); err != nil {
		logger.Get().Warn("Failed to cache option counts", zap.Error(err), zap.String("key", key))
	}
}

func (c *optionCountCacheImpl) Invalidate(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	if err := c.cache.Delete(ctx, cache.OptionCountsKey()); err != nil {
		return fmt.Errorf("failed to invalidate option counts: %w", err)
	}
	return nil
}

// Recompute counts the option links of every result, stores them as num_options and drops the cached copy.
func (c *optionCountCacheImpl) Recompute(ctx context.Context) (map[int64]int, error) {
	var counts map[int64]int
	err := c.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		counts, err = c.catalogRepo.CountOptionsPerResult(txCtx)
		if err != nil {
			return err
		}
		return c.catalogRepo.UpdateResultNumOptions(txCtx, counts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recompute option counts: %w", err)
	}

	if err := c.Invalidate(ctx); err != nil {
		return nil, err
	}
	logger.Get().Info("Recomputed option counts per result", zap.Int("results", len(counts)))
	return counts, nil
}

func encodeOptionCounts(counts map[int64]int) map[string]string {
	encoded := make(map[string]string, len(counts))
	for id, n := range counts {
		encoded[strconv.FormatInt(id, 10)] = strconv.Itoa(n)
	}
	return encoded
}

func decodeOptionCounts(encoded map[string]string) (map[int64]int, error) {
	counts := make(map[int64]int, len(encoded))
	for field, value := range encoded {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid result id %q: %w", field, err)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid option count %q for result %d: %w", value, id, err)
		}
		counts[id] = n
	}
	return counts, nil
}
