// cmd/ranking-cli/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"consult-ranking/internal/cache"
	"consult-ranking/internal/common/config"
	"consult-ranking/internal/common/database"
	apperrors "consult-ranking/internal/common/errors"
	"consult-ranking/internal/common/logger"
	"consult-ranking/internal/models"
	"consult-ranking/internal/ranking"
	"consult-ranking/internal/store/catalog"
	"consult-ranking/internal/store/embed"
	"consult-ranking/internal/store/textindex"
	"consult-ranking/internal/store/vectorindex"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var (
		queryPath = flag.String("query", "-", "path to the query JSON, or - for stdin")
		asJSON    = flag.Bool("json", false, "print the full result as JSON instead of the user message")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting ranking cli...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Optional metrics endpoint ---
	if cfg.Metrics.Enabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, nil); err != nil {
				zapLog.Warn("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	// --- Wire stores and engine ---
	db := pg.GetDB()
	cat := catalog.NewPostgres(db, log)
	text := textindex.NewElasticsearch(esClient.Client, cfg.Database.Elasticsearch.Index, log)
	vector := vectorindex.NewPgvector(db, cfg.Ranking.VectorModel, log)
	embedder := embed.NewClient(cfg.Embedding)

	var recommender ranking.Recommender = ranking.NewEngine(
		cat, text, vector, embedder,
		ranking.OptionsFromConfig(cfg.Ranking),
		log,
	)

	// --- Optional Redis result cache ---
	if cfg.Cache.Enabled {
		var rd *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rd, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rd.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rd.Close()
		zapLog.Info("Redis connected successfully")

		recommender = cache.NewRecommenderCache(
			recommender,
			rd.GetClient(),
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
			log,
		)
	}

	// --- Read and run the query ---
	raw, err := readQuery(*queryPath)
	if err != nil {
		zapLog.Fatal("query read failed", zap.Error(err))
	}

	query, err := models.DecodeQuery(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
		os.Exit(2)
	}

	result, err := recommender.Recommend(ctx, query)
	if err != nil {
		zapLog.Error("recommendation failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
		os.Exit(2)
	}

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			zapLog.Fatal("result encode failed", zap.Error(err))
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println(result.Message)
	for i, rec := range result.Recommendations {
		if rec.Price != nil {
			fmt.Printf("%d. %s (%d)\n", i+1, rec.Name, *rec.Price)
		} else {
			fmt.Printf("%d. %s\n", i+1, rec.Name)
		}
	}
}

func readQuery(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
