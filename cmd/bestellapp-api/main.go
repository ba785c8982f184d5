// README: Entry point; loads config, wires services, starts HTTP server and live feed.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bestellapp/internal/config"
	httptransport "bestellapp/internal/http"
	"bestellapp/internal/infra"
	"bestellapp/internal/logger"
	"bestellapp/internal/metrics"
	"bestellapp/internal/modules/broadcast"
	"bestellapp/internal/modules/menu"
	"bestellapp/internal/modules/order"
	"bestellapp/internal/modules/settings"
	"bestellapp/internal/modules/stats"
	"bestellapp/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rtdbClient, err := infra.NewRTDB(ctx, cfg.Firebase)
	if err != nil {
		zl.Fatal("firebase init", zap.Error(err))
	}
	tree := store.NewRTDB(rtdbClient)

	var dbPool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		dbPool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			zl.Fatal("postgres init", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = infra.NewRedis(cfg.Redis.Addr)
	}

	m := metrics.New()

	settingsSvc := settings.NewService(tree, cfg.Bar)

	orderStore := order.NewStore(tree)
	statsStore := stats.NewStore(tree, redisClient)
	statsSvc := stats.NewService(statsStore, orderStore, m, zl)

	var journal *order.Journal
	if dbPool != nil {
		journal = order.NewJournal(dbPool)
	}
	orderSvc := order.NewService(orderStore, statsSvc, settingsSvc, journal, m, zl)

	menuSvc := menu.NewService(menu.NewStore(tree))
	broadcastSvc := broadcast.NewService(tree)

	hub := httptransport.NewHub(orderSvc, cfg.Bar.RefreshSeconds, zl)

	server := httptransport.NewServer(httptransport.ServerDeps{
		Order:     orderSvc,
		Stats:     statsSvc,
		Menu:      menuSvc,
		Settings:  settingsSvc,
		Broadcast: broadcastSvc,
		Hub:       hub,
		Metrics:   m,
		Bar:       cfg.Bar,
		Log:       zl,
	})

	go hub.Run(ctx)

	httpServer := &http.Server{Addr: cfg.HTTP.Addr, Handler: server.Routes()}
	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	zl.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zl.Fatal("server", zap.Error(err))
	}
}
