// Command recompute_option_counts refreshes results.num_options from the
// option to result links and resets the cached counts. Run it after the
// catalog has been imported or edited.
package main

import (
	"context"
	"log"
	"time"

	"mobility-profile/internal/adapter"
	"mobility-profile/internal/cache"
	"mobility-profile/internal/config"
	"mobility-profile/internal/database"
	"mobility-profile/internal/logger"
	"mobility-profile/internal/repository"
	"mobility-profile/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	l := logger.Get()

	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	optionCounts := service.NewOptionCountCache(
		adapter.NewRedisCacheAdapter(redisClient),
		repository.NewCatalogDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
		cfg.Poll.OptionCountCacheTTL,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	counts, err := optionCounts.Recompute(ctx)
	if err != nil {
		l.Fatal("Failed to recompute option counts", zap.Error(err))
	}
	for resultID, count := range counts {
		l.Info("Result option count", zap.Int64("result_id", resultID), zap.Int("num_options", count))
	}
	l.Info("Option counts recomputed", zap.Int("results", len(counts)))
}
