package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	ogimage "github.com/phanu-phoo/og-image"
	"github.com/phanu-phoo/og-image/internal/hints"
	"github.com/phanu-phoo/og-image/internal/server"
)

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common  commonFlags
	addr    string
	workers int
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, deps *Dependencies) (*serveFlags, *flag.FlagSet, []string, error) {
	fs := newFlagSet("serve", deps.Stderr, printServeUsage)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default from config, :3000)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser instances (0 = auto)")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, nil, err
	}
	return f, fs, fs.Args(), nil
}

// runServe runs the HTTP service until ctx is canceled.
func runServe(ctx context.Context, args []string, deps *Dependencies) error {
	f, fs, positional, err := parseServeFlags(args, deps)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional)
	}

	cfg, err := loadSettings(fs, &f.common, deps)
	if err != nil {
		return err
	}
	if fs.Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if fs.Changed("workers") {
		cfg.Browser.Workers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg, deps)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	size := ogimage.ResolvePoolSize(cfg.Browser.Workers)
	pool, err := ogimage.NewGeneratorPool(size, generatorOptions(cfg, log)...)
	if err != nil {
		return err
	}
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("closing browsers", zap.Error(err))
		}
	}()

	log.Info("starting og-image",
		zap.String("version", Version),
		zap.Int("workers", size),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
	)

	srv := server.New(&server.PoolRenderer{Pool: pool},
		server.WithLogger(log),
		server.WithCORSOrigins(cfg.Server.CORSOrigins),
		server.WithDefaultFontSize(cfg.Render.DefaultFontSize),
	)

	err = srv.ListenAndServe(ctx, server.HTTPConfig{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if errors.Is(err, server.ErrListen) {
		return fmt.Errorf("%w%s", err, hints.ForAddrInUse(cfg.Server.Addr))
	}
	return err
}
