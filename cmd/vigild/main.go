package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"vigil/internal/capture"
	"vigil/internal/config"
	"vigil/internal/daemon"
	"vigil/internal/ipc"
	"vigil/internal/ledger"
	"vigil/internal/logging"
	"vigil/internal/monitor"
	"vigil/internal/notifications"
	"vigil/internal/review"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	notifier := notifications.NewService(cfg)
	ledgers := ledger.NewRegistry(cfg.Capture.SaveDir, logger)

	resolver := review.NewResolver(logger, notifier)
	dispatcher := review.NewDispatcher(resolver, review.Deferring{}, logger)

	source := &capture.ScreenSource{Display: cfg.Capture.Display}
	scheduler := monitor.New(cfg, capture.Today(), ledgers, source, dispatcher, notifier, logger)

	d, err := daemon.New(cfg, ledgers, scheduler, dispatcher, resolver, notifier, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	if err := d.AcquireLock(); err != nil {
		logger.Error("acquire lock", logging.Error(err))
		return
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, d, cancel, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		return
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Warn("daemon start", logging.Error(err))
	}

	<-ctx.Done()
	logger.Info("vigild shutting down")
}
