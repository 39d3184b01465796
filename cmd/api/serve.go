package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"photohive/internal/adapter/api"
	"photohive/internal/infrastructure/imageproc"
	"photohive/internal/usecase"
	"photohive/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg)
	if err != nil {
		logger.Error("%v", err)
		return err
	}
	defer b.Close()

	pipeline := imageproc.NewPipeline(imageproc.Options{
		ThumbnailHeight: cfg.ThumbnailHeight,
		JPEGQuality:     cfg.JPEGQuality,
		MaxImageBytes:   cfg.MaxImageBytes,
		MaxImagePixels:  cfg.MaxImagePixels,
	})
	photoUseCase := usecase.NewPhotoUseCase(b.photoRepo, b.blobStore, pipeline)

	e := api.NewServer(photoUseCase, api.ServerOptions{
		RequestTimeout: cfg.RequestTimeout,
		MaxImageBytes:  cfg.MaxImageBytes,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error: %v", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
