package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjackd/internal/server"
)

type ServeCmd struct {
	Config string `short:"c" default:"blackjackd.hcl" help:"Path to HCL config file"`
	Listen string `short:"l" help:"Listen address, overrides config"`
	Debug  bool   `short:"d" env:"BLACKJACKD_DEBUG" help:"Enable debug logging"`
}

func (cmd *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	switch {
	case cmd.Debug:
		logger.SetLevel(log.DebugLevel)
	default:
		if level, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	addr := cfg.ListenAddress()
	if cmd.Listen != "" {
		addr = cmd.Listen
	}

	tables := server.NewTableService(logger)
	srv := server.NewServer(addr, tables, logger)

	clock := quartz.NewReal()
	for _, tableCfg := range cfg.Tables {
		tables.CreateTable(tableCfg, srv, clock)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		return srv.Stop()
	})

	return g.Wait()
}
