package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/cache/redis"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/ingestion"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/neo4j"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/metrics"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/config"
	appLogger "github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "load the demo fixture graph instead of scraping")
	skipScrape := flag.Bool("skip-scrape", false, "skip portal scraping")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting MOSDAC knowledge graph ingestion")

	metrics.Init()

	ctx := context.Background()

	neo4jClient, err := neo4j.NewClient(
		cfg.Neo4j.URI,
		cfg.Neo4j.Username,
		cfg.Neo4j.Password,
		cfg.Neo4j.Database,
	)
	if err != nil {
		appLogger.Fatal("Failed to create Neo4j client", zap.Error(err))
	}
	defer neo4jClient.Close(ctx)

	if err := neo4jClient.EnsureConstraints(ctx); err != nil {
		appLogger.Fatal("Failed to ensure uniqueness constraints", zap.Error(err))
	}

	if *seed {
		if err := ingestion.SeedFixtures(ctx, neo4jClient); err != nil {
			appLogger.Fatal("Failed to load seed fixtures", zap.Error(err))
		}
	}

	if !*skipScrape {
		scraper := ingestion.NewScraper(
			neo4jClient,
			cfg.Scraper.BaseURL,
			time.Duration(cfg.Scraper.TimeoutSec)*time.Second,
		)
		if err := scraper.ScrapeMenus(ctx); err != nil {
			appLogger.Fatal("Scraping failed", zap.Error(err))
		}
	}

	// Ingestion is the only graph writer, so flush cached lookups after it.
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSec)*time.Second,
		)
		if err != nil {
			appLogger.Warn("Redis unavailable, cache not invalidated", zap.Error(err))
		} else {
			defer redisClient.Close()
			if err := redisClient.Invalidate(ctx); err != nil {
				appLogger.Warn("Failed to invalidate cached lookups", zap.Error(err))
			}
		}
	}

	appLogger.Info("Ingestion completed")
}
