package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"dream_match/internal/app"
	"dream_match/internal/config"
	"dream_match/internal/lib/logger"
	"dream_match/internal/lib/logger/sl"
)

func main() {
	cfg := config.MustLoad()

	log := logger.Setup(cfg.Env)
	log.Info("starting dream_match", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Error("failed to init application", sl.Err(err))
		os.Exit(1)
	}

	go func() {
		if err := application.HTTPServer.Run(); err != nil {
			log.Error("http server stopped with error", sl.Err(err))
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-stop:
		log.Info("stopping application", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := application.HTTPServer.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop http server gracefully", sl.Err(err))
	}
	application.Stop()

	log.Info("application stopped")
}
