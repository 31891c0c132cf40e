// Command orderbook-replay replays a CSV file or a synthetic update stream
// through the engine and reports throughput, optionally serving Prometheus
// metrics over HTTP for the duration of the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChristopherRussell/polars-order-book/internal/app/engine"
	rowsourcev1 "github.com/ChristopherRussell/polars-order-book/internal/domain/rowsource/v1"
	"github.com/ChristopherRussell/polars-order-book/internal/usecase/rowsource"
	"github.com/ChristopherRussell/polars-order-book/internal/usecase/snapshotsink"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
	pkgredis "github.com/ChristopherRussell/polars-order-book/pkg/redis"
	"github.com/ChristopherRussell/polars-order-book/pkg/questdb"
)

func main() {
	var (
		mode       = flag.String("mode", "synthetic", "row source: synthetic, csv, or kafka")
		file       = flag.String("file", "", "headerless CSV file to replay (mode=csv)")
		symbol     = flag.String("symbol", "BTC-USD", "symbol tag for a synthetic run")
		count      = flag.Int("count", 100000, "number of rows to generate (mode=synthetic)")
		basePrice  = flag.Int64("base-price", 10000, "starting price for the synthetic walk")
		volatility = flag.Float64("volatility", 0.001, "per-step log-return stddev for the synthetic walk")
		meanQty    = flag.Float64("mean-qty", 5, "mean of the synthetic quantity distribution")
		seed       = flag.Int64("seed", 1, "random seed for the synthetic walk")
		levels     = flag.Int("levels", 10, "top-N depth tracked and emitted per side (1-20 is the common range)")
		dialect    = flag.String("dialect", string(config.DialectPriceLevel), "price_level, quantity_delta, or delta_modify")
		useRedis   = flag.Bool("redis", false, "publish snapshots to a live Redis instance instead of discarding them")
		useQuestDB = flag.Bool("questdb", false, "write snapshot history to a live QuestDB instance instead of discarding it")
		metricsAddr = flag.String("metrics-addr", "", "address to serve /metrics on, empty disables it")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.OrderBook.Levels = *levels
	cfg.OrderBook.Dialect = config.Dialect(*dialect)

	log_, err := logger.New(logger.Level(cfg.App.LogLevel))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer log_.Sync()

	ctx := context.Background()

	reader, err := buildReader(*mode, *file, *symbol, *count, *basePrice, *volatility, *meanQty, *seed, cfg.Kafka, log_)
	if err != nil {
		log_.GetZap().Fatal(err.Error())
	}

	redisClient, questdbClient, cleanup := buildSinks(ctx, *useRedis, *useQuestDB, cfg, log_)
	defer cleanup()

	cache := snapshotsink.NewRedisCache(redisClient, cfg.Redis, log_)
	history := snapshotsink.NewHistorySink(questdbClient, cfg.QuestDB, log_)
	metrics := engine.NewMetrics()

	eng := engine.New(reader, cache, history, metrics, log_, cfg.OrderBook)

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, metrics, log_)
	}

	runCtx, cancel := context.WithCancel(ctx)
	go watchForSignal(cancel)

	go drainErrors(eng, log_)

	start := time.Now()
	eng.Start(runCtx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := eng.Stop(stopCtx); err != nil {
		log_.Warn("engine did not stop cleanly", logger.NewField("error", err.Error()))
	}

	elapsed := time.Since(start)
	fmt.Printf("processed in %s\n", elapsed)
}

func buildReader(
	mode, file, symbol string,
	count int,
	basePrice int64,
	volatility, meanQty float64,
	seed int64,
	kafkaCfg config.KafkaConfig,
	log_ *logger.Logger,
) (rowsourcev1.Reader, error) {
	switch mode {
	case "synthetic":
		return rowsource.NewSyntheticReader(rowsource.SyntheticConfig{
			Symbol: symbol, Count: count, BasePrice: basePrice,
			Volatility: volatility, MeanQty: meanQty, Seed: seed,
		}), nil

	case "csv":
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open csv file: %w", err)
		}
		return rowsource.NewCSVReader(f), nil

	case "kafka":
		return rowsource.NewKafkaReader(kafkaCfg, log_), nil

	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// buildSinks returns the Redis and QuestDB clients the engine's snapshot
// sinks should use: live clients when the corresponding flag is set, or the
// discarding no-op implementations otherwise so a replay run never requires
// a backing store to be available.
func buildSinks(ctx context.Context, useRedis, useQuestDB bool, cfg *config.Config, log_ *logger.Logger) (pkgredis.Client, questdb.Client, func()) {
	var (
		redisClient   pkgredis.Client
		questdbClient questdb.Client
		closers       []func()
	)

	if useRedis {
		rc := pkgredis.NewClient(log_, &pkgredis.Config{
			Addr:            cfg.Redis.Addr,
			Username:        cfg.Redis.Username,
			Password:        cfg.Redis.Password,
			DB:              cfg.Redis.DB,
			ConnectTimeout:  cfg.Redis.ConnectTimeout,
			MaxRetries:      cfg.Redis.MaxRetries,
			MinRetryBackoff: cfg.Redis.MinRetryBackoff,
			MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
			PoolSize:        cfg.Redis.PoolSize,
		})
		if err := rc.Connect(ctx); err != nil {
			log_.GetZap().Fatal(err.Error())
		}
		redisClient = rc
		closers = append(closers, func() { _ = rc.Disconnect(context.Background()) })
	} else {
		redisClient = noopRedisClient{}
	}

	if useQuestDB {
		qc, err := questdb.NewClient(ctx, questdb.Config{
			Host:            cfg.QuestDB.Host,
			Port:            cfg.QuestDB.Port,
			Database:        cfg.QuestDB.Database,
			Username:        cfg.QuestDB.Username,
			Password:        cfg.QuestDB.Password,
			MaxConns:        cfg.QuestDB.MaxConns,
			MinConns:        cfg.QuestDB.MinConns,
			MaxConnLifetime: cfg.QuestDB.MaxConnLifetime,
			MaxConnIdleTime: cfg.QuestDB.MaxConnIdleTime,
			ConnectTimeout:  cfg.QuestDB.ConnectTimeout,
		})
		if err != nil {
			log_.GetZap().Fatal(err.Error())
		}
		questdbClient = qc
		closers = append(closers, qc.Close)
	} else {
		questdbClient = noopQuestDBClient{}
	}

	return redisClient, questdbClient, func() {
		for _, c := range closers {
			c()
		}
	}
}

func serveMetrics(addr string, metrics *engine.Metrics, log_ *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	log_.Info("serving metrics", logger.NewField("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log_.Warn("metrics server stopped", logger.NewField("error", err.Error()))
	}
}

func watchForSignal(cancel context.CancelFunc) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
}

func drainErrors(eng *engine.Engine, log_ *logger.Logger) {
	for rowErr := range eng.Errors() {
		fmt.Printf("row %d: %v\n", rowErr.Seq, rowErr.Err)
		log_.Warn("row rejected", logger.NewField("symbol", rowErr.Symbol), logger.NewField("seq", rowErr.Seq))
	}
}
