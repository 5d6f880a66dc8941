package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpadapter "colonysim/internal/adapter/http"
	"colonysim/internal/app/status"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the tick loop and the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *options) error {
	cfg, logger := opts.cfg, opts.logger
	col, err := buildColony(ctx, cfg, logger)
	if err != nil {
		return err
	}

	h := httpadapter.Handler{
		Colony:     col.driver,
		StatusUC:   status.UseCase{Colony: col.driver},
		ReplayUC:   col.replay,
		KPI:        col.metrics,
		CORSOrigin: cfg.Server.CORSOrigin,
	}
	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return col.driver.Run(gctx, cfg.Simulation.TickInterval)
	})
	g.Go(func() error {
		logger.Info("colonysim listening", zap.String("addr", cfg.Server.Addr))
		return s.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("colonysim stopped")
	return nil
}
