// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package main is the entry point for the Veiltrics server.
//
// Veiltrics ingests tracking beacons from web pages, classifies them
// without storing personal data, and ships normalized events to an
// analytics warehouse. The same process serves the dashboard read
// path from pre-aggregated warehouse pipes with an in-memory cache.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load via Koanf v2 (defaults, YAML, env)
//  2. Logging: global zerolog logger
//  3. Registry: Postgres pool for project lookups and the daily salt
//  4. Geo database: optional offline IP-range CSV
//  5. Warehouse client and delivery pipeline
//  6. Ingestion processor
//  7. HTTP router and supervision tree
//
// Shutdown on SIGINT/SIGTERM is graceful: the HTTP server drains
// in-flight requests, then the delivery pipeline flushes its queue.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/veiltrics/veiltrics/internal/api"
	"github.com/veiltrics/veiltrics/internal/config"
	"github.com/veiltrics/veiltrics/internal/delivery"
	"github.com/veiltrics/veiltrics/internal/geo"
	"github.com/veiltrics/veiltrics/internal/ingest"
	"github.com/veiltrics/veiltrics/internal/logging"
	"github.com/veiltrics/veiltrics/internal/privacy"
	"github.com/veiltrics/veiltrics/internal/querycache"
	"github.com/veiltrics/veiltrics/internal/registry"
	"github.com/veiltrics/veiltrics/internal/supervisor"
	"github.com/veiltrics/veiltrics/internal/warehouse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("warehouse", cfg.Warehouse.BaseURL).
		Int("port", cfg.Server.Port).
		Msg("Starting Veiltrics")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Project registry and daily salt both live in Postgres.
	pool, err := registry.Connect(ctx, cfg.Registry.DSN)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to registry database")
	}
	defer pool.Close()

	reg := registry.New(pool)
	salts := privacy.NewSaltCache(privacy.SaltSourceFunc(reg.DailySalt))

	// Offline geo database is optional; without it the proxy-header
	// path still resolves countries.
	store := geo.NewStore()
	if cfg.Geo.DatabasePath != "" {
		if err := geo.LoadFile(store, cfg.Geo.DatabasePath); err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Geo.DatabasePath).Msg("Failed to load geo database")
		}
		stats := store.Stats()
		logging.Info().
			Int("ipv4_ranges", stats.IPv4Ranges).
			Int("ipv6_ranges", stats.IPv6Ranges).
			Int("countries", stats.Countries).
			Msg("Geo database loaded")
	} else {
		logging.Info().Msg("No geo database configured, relying on proxy headers")
	}
	locator := geo.NewLocator(store)

	client := warehouse.NewClient(cfg.Warehouse.BaseURL, cfg.Warehouse.Token)
	pipeline := delivery.NewPipeline(client, delivery.Options{
		QueueSize: cfg.Delivery.QueueSize,
		Workers:   cfg.Delivery.Workers,
		RateLimit: cfg.Delivery.RateLimit,
	})

	processor := ingest.NewProcessor(reg, salts, locator, pipeline)

	cache := querycache.New(cfg.Cache.TTL)
	handler := api.NewHandler(processor, client, cache, reg, []byte(cfg.Security.JWTSecret))
	router := api.Setup(handler, api.RouterOptions{
		CORSOrigins:      cfg.Security.CORSOrigins,
		PublicRateLimit:  cfg.Security.PublicRateLimit,
		PublicRateWindow: cfg.Security.PublicRateWindow,
	})

	newServer := func() *http.Server {
		return &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	// Supervisor events go through slog; application logs stay on
	// zerolog.
	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	tree := supervisor.NewTree(slogger, supervisor.DefaultTreeConfig())
	tree.AddDeliveryService(pipeline)
	tree.AddAPIService(supervisor.NewHTTPService(newServer, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Fatal().Err(err).Msg("Supervisor tree failed")
	}

	logging.Info().Msg("Veiltrics stopped")
}
