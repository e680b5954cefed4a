package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJJimenez/jobboard/internal/api"
	"github.com/MrJJimenez/jobboard/internal/source"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type ServeCmd struct {
	Listen  string `help:"Listen address (default: listen_addr from config)."`
	Latency int    `help:"Artificial latency in milliseconds; negative uses latency_ms from config." default:"-1"`
	Dataset string `help:"Path to a JSON or JSON5 dataset file." type:"path"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if s.Dataset != "" {
		cfg.DatasetPath = s.Dataset
	}
	if s.Latency >= 0 {
		cfg.LatencyMS = s.Latency
	}
	addr := firstNonEmpty(s.Listen, cfg.ListenAddr)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs, err := loadJobs(runCtx, cfg)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	src := source.NewMemory(jobs, cfg.Latency())
	server := api.NewServer(src, ctx.Logger)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		ctx.Logger.Info().Str("addr", addr).Int("jobs", src.Len()).Dur("latency", cfg.Latency()).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ctx.Logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
