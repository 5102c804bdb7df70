// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

// Package main is the entry point for the AVTV server.
//
// AVTV serves broadcast schedules (EPG), VOD catalogs, ratings and
// recommendations from a flat key-value store over a small HTTP query
// API. The server initializes components in the following order:
//
//  1. Configuration: struct defaults, optional YAML file, AVTV_* env vars (Koanf v2)
//  2. Store: Redis connection with a startup ping
//  3. Links: static channel alias table (optional)
//  4. Search: Bleve free-text index over VOD titles (optional)
//  5. HTTP server: Chi router with the /v1 query dispatch
//
// Shutdown on SIGINT/SIGTERM is graceful: the listener stops accepting,
// in-flight requests get the configured drain window, then the store and
// index are closed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alekmarinov/avtv/internal/api"
	"github.com/alekmarinov/avtv/internal/catalog"
	"github.com/alekmarinov/avtv/internal/config"
	"github.com/alekmarinov/avtv/internal/logging"
	"github.com/alekmarinov/avtv/internal/search"
	"github.com/alekmarinov/avtv/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	// Load configuration first to get logging settings
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config) error {
	st := store.NewRedis(store.Config{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
		PoolSize:    cfg.Redis.PoolSize,
	})
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close store")
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	err := st.Ping(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("store unreachable at %s: %w", cfg.Redis.Addr, err)
	}
	logging.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to store")

	links, err := catalog.LoadLinks(cfg.Links.Path)
	if err != nil {
		return fmt.Errorf("load links: %w", err)
	}
	if len(links) > 0 {
		logging.Info().Str("path", cfg.Links.Path).Int("providers", len(links)).Msg("Loaded channel links")
	}

	var index search.Index
	if cfg.Search.Enabled {
		bi, err := search.Open(cfg.Search.Path)
		if err != nil {
			return fmt.Errorf("open search index: %w", err)
		}
		defer func() {
			if err := bi.Close(); err != nil {
				logging.Error().Err(err).Msg("Failed to close search index")
			}
		}()
		index = bi
		logging.Info().Str("path", cfg.Search.Path).Msg("Search index open")
	}

	engine := catalog.New(catalog.Options{
		Store:      st,
		Links:      links,
		Index:      index,
		MaxListLen: cfg.Prober.MaxListLen,
	})

	handler := api.NewHandler(engine, st)
	router := api.SetupRouter(handler, api.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      cfg.Server.RateLimit,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Info().Msg("Server stopped")
	return nil
}
