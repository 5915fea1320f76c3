package main

import (
	"context"
	"errors"
	"os"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/checkout"
	"github.com/noah-isme/toko-checkout/internal/config"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/pricing"
	"github.com/noah-isme/toko-checkout/internal/receipt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLoggerTo(os.Stderr, cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()
	metrics := obs.NewCheckoutMetrics(cfg.MetricsNamespace, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	products := loadCatalog(ctx, cfg, logger)

	configs, err := pricing.ParseConfigs([]byte(cfg.PricingRules))
	if err != nil {
		logger.Fatal().Err(err).Msg("parse pricing rules")
	}
	rules, err := pricing.Build(configs, products, cfg.StrictRules)
	if err != nil {
		logger.Fatal().Err(err).Msg("build pricing rules")
	}
	logger.Info().Int("rules", rules.Len()).Int("products", products.Len()).Bool("strict", cfg.StrictRules).Msg("checkout ready")

	printer, err := receipt.NewPrinter(cfg.ReceiptLanguage, cfg.ReceiptCurrency)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise receipt printer")
	}

	co := checkout.New(products, rules, checkout.WithLogger(logger), checkout.WithMetrics(metrics))
	if err := co.ScanAll(os.Args[1:]...); err != nil {
		if errors.Is(err, catalog.ErrUnknownProduct) {
			logger.Error().Err(err).Msg("unknown product")
		} else {
			logger.Error().Err(err).Msg("scan")
		}
		os.Exit(1)
	}

	if err := printer.Print(os.Stdout, co.Receipt()); err != nil {
		logger.Fatal().Err(err).Msg("print receipt")
	}
}

// loadCatalog prefers a Redis snapshot when REDIS_URL is set and falls back to
// the built-in store otherwise.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *catalog.Static {
	fallback := catalog.Default()
	if cfg.RedisURL == "" {
		return fallback
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error().Err(err).Msg("parse redis url")
		return fallback
	}
	client := redis.NewClient(opts)
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("ping redis")
		return fallback
	}
	products, err := catalog.NewCache(client, cfg.CatalogCacheKey, cfg.CatalogCacheTTL).LoadOrDefault(ctx, fallback)
	if err != nil {
		logger.Error().Err(err).Msg("load catalog snapshot")
		return fallback
	}
	return products
}
