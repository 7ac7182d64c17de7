package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/packlist/internal/config"
	"github.com/JonMunkholm/packlist/internal/core"
	"github.com/JonMunkholm/packlist/internal/country"
	"github.com/JonMunkholm/packlist/internal/logging"
	"github.com/JonMunkholm/packlist/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()

	countries, closeDB, err := buildCountries(ctx, cfg)
	if err != nil {
		slog.Error("failed to prepare country table", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	extractor := core.NewExtractor(countries)
	extractor.Ranges = core.RangeExpander{MaxSpan: cfg.Pipeline.MaxRangeSpan}
	extractor.StrictGroups = cfg.Pipeline.StrictGroups

	processor := core.NewProcessor(extractor,
		core.WithWorkers(cfg.Pipeline.Workers),
		core.WithLogger(logger),
	)
	runs := core.NewRunLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime)

	server := web.NewServer(cfg, processor, countries, runs)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := runs.Status(); status.Active > 0 {
			slog.Info("waiting for packing lists to finish", "active", status.Active)
			if err := runs.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("packing lists did not finish in time", "error", err)
			} else {
				slog.Info("all packing lists finished")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// buildCountries assembles the origin resolver: the embedded table, then
// the optional aliases file, then aliases from the database, behind an LRU
// cache. The returned func closes the database pool, if one was opened.
func buildCountries(ctx context.Context, cfg *config.Config) (country.Resolver, func(), error) {
	table := country.NewDefaultTable()
	closeDB := func() {}

	if path := cfg.Country.AliasesFile; path != "" {
		n, err := table.LoadFile(path)
		if err != nil {
			return nil, closeDB, err
		}
		slog.Info("country aliases file loaded", "path", path, "entries", n)
	}

	if cfg.Database.Enabled() {
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			return nil, closeDB, err
		}
		closeDB = pool.Close

		n, err := country.LoadAliasesFromDB(ctx, pool, cfg.Country.AliasTable, table)
		if err != nil {
			return nil, closeDB, err
		}
		slog.Info("country aliases loaded from database", "table", cfg.Country.AliasTable, "aliases", n)
	}

	slog.Info("country table ready", "names", table.Len())

	if cfg.Country.CacheSize == 0 {
		return table, closeDB, nil
	}
	cached, err := country.NewCached(table, cfg.Country.CacheSize)
	if err != nil {
		return nil, closeDB, err
	}
	return cached, closeDB, nil
}

// connect opens and pings a pgx pool.
func connect(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = db.MaxConns
	poolConfig.MinConns = db.MinConns
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if u, err := url.Parse(db.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
