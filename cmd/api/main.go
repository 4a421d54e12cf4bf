package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mohammadpnp/profile-import/internal/bootstrap"
	infrafile "github.com/mohammadpnp/profile-import/internal/infrastructure/file"
	"github.com/mohammadpnp/profile-import/internal/platform/config"
	"github.com/mohammadpnp/profile-import/internal/platform/logger"
	"github.com/mohammadpnp/profile-import/internal/platform/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Error("failed to open database", zap.Error(err))
		return err
	}
	defer db.Close()

	source := infrafile.NewLocalSource(cfg.Import.BaseDir)
	importMetrics := metrics.New(prometheus.DefaultRegisterer)
	importer := bootstrap.NewImporter(db, cfg.Import, log, importMetrics)
	worker := bootstrap.NewImportWorker(db, source, importer, cfg.Import, log)
	server := bootstrap.NewHTTPServer(db.Gorm, source, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("port", cfg.Port))
		if err := server.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		worker.Start(gctx)
		worker.Wait()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}
	return nil
}
