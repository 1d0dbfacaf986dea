package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/careerconnect/client/api"
	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/internal/config"
	"github.com/careerconnect/client/internal/infrastructure/boltdb"
	"github.com/careerconnect/client/internal/infrastructure/monitor"
	"github.com/careerconnect/client/internal/services"
	"github.com/careerconnect/client/internal/services/lifecycle"
	"github.com/careerconnect/client/pkg/logger"
	boltRepo "github.com/careerconnect/client/repository/bolt"
	"github.com/careerconnect/client/usecase/guard"
	"github.com/careerconnect/client/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	ctx, cancel := manager.Context(context.Background())
	defer cancel()

	db, err := boltdb.Open(cfg.Keystore.Path, boltRepo.Bucket)
	if err != nil {
		zapLogger.Fatal("failed to open keystore", zap.Error(err))
	}
	manager.Register("keystore", func(ctx context.Context) error {
		return db.Close()
	})

	creds := boltRepo.NewCredentialStore(db)

	client := transport.New(transport.Options{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.RequestTimeout,
		MaxConns:  cfg.API.MaxConns,
	}, creds, zapLogger)

	groups := api.NewGroups(client)

	store := session.New(groups.Auth, creds, zapLogger)
	client.OnUnauthorized(store.HandleUnauthorized)
	store.SetNavigator(func(target string) {
		if target == guard.TargetLogin {
			fmt.Fprintln(os.Stderr, "Session expired. Run 'careerconnect login' to sign in again.")
		}
	})

	mon := monitor.New(client, creds, cfg.Context.MonitorInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	if cfg.Session.RefreshEnabled {
		refresher := services.NewSessionRefresher(store, mon, cfg.Session.RefreshInterval, zapLogger)
		refresher.Start()
		manager.Register("session_refresher", func(ctx context.Context) error {
			refresher.Stop(ctx)
			return nil
		})
	}

	app := &app{
		cfg:    cfg,
		logger: zapLogger,
		api:    groups,
		store:  store,
		mon:    mon,
	}

	store.Bootstrap(ctx)

	runErr := app.run(ctx, os.Args[1:])

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("shutdown error", zap.Error(err))
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", runErr)
		os.Exit(1)
	}
}
