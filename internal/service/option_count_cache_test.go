package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mobility-profile/internal/cache"
	"mobility-profile/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionCountCache_Counts_FromCache(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogRepository)
	c := &ManualMockCache{
		HGetAllFunc: func(ctx context.Context, key string) (map[string]string, error) {
			assert.Equal(t, cache.OptionCountsKey(), key)
			return map[string]string{"1": "3", "2": "5"}, nil
		},
	}

	counts, err := NewOptionCountCache(c, catalog, &MockTransactionManager{}, time.Minute).Counts(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 3, 2: 5}, counts)
	catalog.AssertNotCalled(t, "ListResults", ctx)
}

func TestOptionCountCache_Counts_MissLoadsAndStores(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogRepository)
	catalog.On("ListResults", ctx).Return([]*domain.Result{{ID: 1, NumOptions: 3}, {ID: 2, NumOptions: 0}}, nil)

	var stored map[string]string
	var storedTTL time.Duration
	c := &ManualMockCache{
		HGetAllFunc: func(ctx context.Context, key string) (map[string]string, error) {
			return map[string]string{}, nil
		},
		HSetAllFunc: func(ctx context.Context, key string, values map[string]string, ttl time.Duration) error {
			stored, storedTTL = values, ttl
			return nil
		},
	}

	counts, err := NewOptionCountCache(c, catalog, &MockTransactionManager{}, 10*time.Minute).Counts(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 3, 2: 0}, counts)
	assert.Equal(t, map[string]string{"1": "3", "2": "0"}, stored)
	assert.Equal(t, 10*time.Minute, storedTTL)
	catalog.AssertNotCalled(t, "CountOptionsPerResult", ctx)
}

func TestOptionCountCache_Counts_FallsBackToLinksWhenNotStored(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogRepository)
	catalog.On("ListResults", ctx).Return([]*domain.Result{{ID: 1}, {ID: 2}}, nil)
	catalog.On("CountOptionsPerResult", ctx).Return(map[int64]int{1: 4}, nil)

	counts, err := NewOptionCountCache(nil, catalog, &MockTransactionManager{}, 0).Counts(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 4, 2: 0}, counts)
}

func TestOptionCountCache_Counts_CacheOutageReadsDatabase(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogRepository)
	catalog.On("ListResults", ctx).Return([]*domain.Result{{ID: 1, NumOptions: 2}}, nil)
	c := &ManualMockCache{
		HGetAllFunc: func(ctx context.Context, key string) (map[string]string, error) {
			return nil, errors.New("redis down")
		},
		HSetAllFunc: func(ctx context.Context, key string, values map[string]string, ttl time.Duration) error {
			return errors.New("redis down")
		},
	}

	counts, err := NewOptionCountCache(c, catalog, &MockTransactionManager{}, time.Minute).Counts(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 2}, counts)
}

func TestOptionCountCache_Counts_MalformedEntryIsReloaded(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogRepository)
	catalog.On("ListResults", ctx).Return([]*domain.Result{{ID: 1, NumOptions: 2}}, nil)
	c := &ManualMockCache{
		HGetAllFunc: func(ctx context.Context, key string) (map[string]string, error) {
			return map[string]string{"one": "2"}, nil
		},
		HSetAllFunc: func(ctx context.Context, key string, values map[string]string, ttl time.Duration) error {
			return nil
		},
	}

	counts, err := NewOptionCountCache(c, catalog, &MockTransactionManager{}, time.Minute).Counts(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 2}, counts)
	catalog.AssertExpectations(t)
}

func TestOptionCountCache_Recompute(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogRepository)
	tx := &MockTransactionManager{}
	linked := map[int64]int{1: 2, 2: 7}
	catalog.On("CountOptionsPerResult", ctx).Return(linked, nil)
	catalog.On("UpdateResultNumOptions", ctx, linked).Return(nil)

	var deleted string
	c := &ManualMockCache{
		DeleteFunc: func(ctx context.Context, key string) error {
			deleted = key
			return nil
		},
	}

	counts, err := NewOptionCountCache(c, catalog, tx, time.Minute).Recompute(ctx)

	require.NoError(t, err)
	assert.Equal(t, linked, counts)
	assert.Equal(t, cache.OptionCountsKey(), deleted)
	assert.Equal(t, 1, tx.Calls)
	catalog.AssertExpectations(t)
}

func TestOptionCountCache_Recompute_UpdateFails(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogRepository)
	catalog.On("CountOptionsPerResult", ctx).Return(map[int64]int{1: 2}, nil)
	catalog.On("UpdateResultNumOptions", ctx, map[int64]int{1: 2}).Return(errors.New("lock timeout"))
	c := &ManualMockCache{}

	_, err := NewOptionCountCache(c, catalog, &MockTransactionManager{}, time.Minute).Recompute(ctx)

	assert.Error(t, err)
}

func TestDecodeOptionCounts(t *testing.T) {
	counts, err := decodeOptionCounts(encodeOptionCounts(map[int64]int{5: 1, 9: 12}))
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{5: 1, 9: 12}, counts)

	_, err = decodeOptionCounts(map[string]string{"5": "many"})
	assert.Error(t, err)
}
