package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/catalog"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/clock"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/config"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/events/kafka"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/events/logsink"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/httpapi"
	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/ledger"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/logging"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config error")
	}
	log := logging.NewLogger("fitcoin-ledger", cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return err
	}
	defer store.Close()

	var items interfaces.CatalogProvider = catalog.Default()
	if cfg.CatalogFile != "" {
		fileCatalog, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return err
		}
		items = fileCatalog
	}

	var publisher interfaces.EventPublisher = logsink.NewPublisher(log)
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	registry := ledger.NewRegistry(ledger.Config{
		Store:     store,
		Catalog:   items,
		Publisher: publisher,
		Clock:     clock.NewSystem(cfg.Location()),
		Logger:    log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(registry, log)),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "store": cfg.StoreBackend}).Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
