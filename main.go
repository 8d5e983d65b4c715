// Package main main
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/OVantsevich/Portfolio-Service/internal/cache"
	"github.com/OVantsevich/Portfolio-Service/internal/config"
	"github.com/OVantsevich/Portfolio-Service/internal/handler"
	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/repository"
	"github.com/OVantsevich/Portfolio-Service/internal/service"
	"github.com/OVantsevich/Portfolio-Service/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewMainConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(level)
	tolerance, err := model.ParseRiskTolerance(cfg.RiskTolerance)
	if err != nil {
		logrus.Fatal(err)
	}

	listen, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.Host, cfg.Port))
	if err != nil {
		logrus.Fatalf("error while listening port: %v", err)
	}

	pool, err := dbConnection(ctx, cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closePool(pool)
	if err = migrations.Up(ctx, pool); err != nil {
		logrus.Fatal(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() {
		_ = redisClient.Close()
	}()
	if err = redisClient.Ping(ctx).Err(); err != nil {
		logrus.Warnf("redis not responding, prices are unavailable until it is: %v", err)
	}

	analyticsCache, err := newAnalyticsCache(cfg, redisClient)
	if err != nil {
		logrus.Fatal(err)
	}
	if store, ok := analyticsCache.(*cache.MemoryStore); ok {
		go store.Run(ctx)
	}
	priceCache := cache.NewMemoryStore()
	go priceCache.Run(ctx)
	priceService := repository.NewPriceServiceRepository(redisClient, priceCache, cfg.PriceCacheTTL)

	runner := repository.NewPgxWithinTransactionRunner(pool)
	portfolio := service.NewPortfolio(
		repository.NewPositionRepository(runner),
		repository.NewCapitalRepository(runner),
		repository.NewTransactionRepository(runner),
		priceService,
		repository.NewPgxTransactor(pool),
		analyticsCache,
		service.Options{
			CommissionRate: cfg.CommissionRate,
			SlippageRate:   cfg.SlippageRate,
			RiskTolerance:  tolerance,
			MaxRetries:     cfg.SettleMaxRetries,
			RetryBase:      cfg.SettleRetryBase,
			AnalyticsTTL:   cfg.AnalyticsCacheTTL,
		},
	)
	watcher := service.NewWatcher(ctx, portfolio, repository.NewListenersRepository(), priceService)

	scheduler, err := newScheduler(ctx, cfg, portfolio, watcher)
	if err != nil {
		logrus.Fatal(err)
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()
	go watchBreaches(ctx, watcher)

	ns := grpc.NewServer(grpc.UnaryInterceptor(handler.LoggingInterceptor))
	handler.RegisterPortfolioServiceServer(ns, handler.NewPortfolio(portfolio, watcher))
	go func() {
		<-ctx.Done()
		ns.GracefulStop()
	}()

	logrus.WithField("Addr", listen.Addr().String()).Info("portfolio service started")
	if err = ns.Serve(listen); err != nil {
		logrus.Errorf("error while listening server: %v", err)
	}
}

func dbConnection(ctx context.Context, cfg *config.MainConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration data: %v", err)
	}
	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database not responding: %v", err)
	}
	return pool, nil
}

func closePool(p *pgxpool.Pool) {
	if p != nil {
		p.Close()
	}
}

func newAnalyticsCache(cfg *config.MainConfig, client redis.UniversalClient) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case "memory":
		return cache.NewMemoryStore(), nil
	case "redis":
		return cache.NewRedisStore(client), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
}

// newScheduler audit and stop-loss polling jobs, schedules carry a seconds field
func newScheduler(ctx context.Context, cfg *config.MainConfig, portfolio *service.Portfolio,
	watcher *service.Watcher) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(cfg.AuditSchedule, func() {
		if _, err := portfolio.ReconcileAll(ctx); err != nil {
			logrus.Errorf("audit job: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("audit schedule %q: %w", cfg.AuditSchedule, err)
	}

	_, err = c.AddFunc(cfg.WatchSchedule, func() {
		if err := watcher.PollPrices(ctx); err != nil {
			logrus.Warnf("watch job: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("watch schedule %q: %w", cfg.WatchSchedule, err)
	}
	return c, nil
}

// watchBreaches drain breached stop levels until ctx is done, the watcher logs each of them
func watchBreaches(ctx context.Context, watcher *service.Watcher) {
	for {
		if _, err := watcher.NextBreach(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logrus.Errorf("watch breaches: %v", err)
		}
	}
}
