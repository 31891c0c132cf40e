// Command orderbook-gateway serves the live websocket snapshot feed over
// HTTP, relaying each symbol's updates from the Redis channels the engine
// publishes to.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChristopherRussell/polars-order-book/internal/usecase/broadcast"
	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
	"github.com/ChristopherRussell/polars-order-book/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log_, err := logger.New(logger.Level(cfg.App.LogLevel))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer log_.Sync()

	redisClient := redis.NewClient(log_, &redis.Config{
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redisClient.Connect(ctx); err != nil {
		log_.GetZap().Fatal(err.Error())
	}
	defer redisClient.Disconnect(context.Background())

	hub := broadcast.NewHub(redisClient, cfg.Redis, log_)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)

	addr := os.Getenv("GATEWAY_ADDR")
	if addr == "" {
		addr = ":8081"
	}

	server := &http.Server{Addr: addr, Handler: mux}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
		_ = server.Close()
	}()

	log_.Info("serving websocket snapshot feed", logger.NewField("addr", addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log_.GetZap().Fatal(err.Error())
	}
}
