// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app is the composition root of the sync engine server. It builds
// the storages, the CRM adapter, the services, the transports and the
// supervised workers from one configuration, and runs them until shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/crypto"
	"github.com/MKhiriev/crm-deal-sync/internal/handler"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/server"
	"github.com/MKhiriev/crm-deal-sync/internal/service"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/internal/workers"
	"github.com/MKhiriev/crm-deal-sync/models"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	storages *store.Storages
	services *service.Services
	server   server.Server
	workers  *workers.Workers

	logger *logger.Logger
}

// New wires every component. The returned App owns the database connection
// until Run returns.
func New(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		return nil, err
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	sealer, err := newSealer(cfg.App)
	if err != nil {
		return nil, err
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, sealer, log)
	if err != nil {
		return nil, fmt.Errorf("error creating storages: %w", err)
	}

	a, err := build(storages, cfg, buildInfo, log)
	if err != nil {
		return nil, errors.Join(err, storages.Close())
	}
	return a, nil
}

func build(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	authAdapter := adapter.NewAuthAdapter(cfg.Auth, cfg.Adapter.RequestTimeout)
	tokens := service.NewTokenManager(storages.Credentials, authAdapter, cfg.Auth, log)

	client := adapter.NewClient(cfg.Adapter, cfg.Auth.Account, tokens, log)
	crm := adapter.NewCRMAdapter(client, cfg.Adapter)

	services, err := service.NewServices(storages, crm, tokens, *cfg, buildInfo, log)
	if err != nil {
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	return &App{
		storages: storages,
		services: services,
		server:   srv,
		workers:  workers.NewWorkers(services.Orchestrator, handlers.HealthProber(services), cfg.Workers, log),
		logger:   log,
	}, nil
}

func newSealer(cfg config.App) (crypto.Sealer, error) {
	if cfg.CredentialEncryptionKey == "" {
		return crypto.NewNopSealer(), nil
	}
	sealer, err := crypto.NewSealer(cfg.CredentialEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("error creating credential sealer: %w", err)
	}
	return sealer, nil
}

// Run recovers sessions left by a previous process, starts the workers and
// serves until ctx is cancelled. Running syncs are then cancelled, bulk
// pollers stopped and the database closed.
func (a *App) Run(ctx context.Context) error {
	if err := a.services.Orchestrator.RecoverStaleSessions(ctx); err != nil {
		a.logger.Error().Err(err).Msg("stale session recovery failed")
	}

	workersCtx, stopWorkers := context.WithCancel(ctx)
	workersDone := a.workers.Run(workersCtx)

	a.server.RunServer(ctx)

	stopWorkers()
	if err := <-workersDone; err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Warn().Err(err).Msg("workers stopped with error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.services.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("services shutdown: %w", err))
	}
	if err := a.storages.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storages: %w", err))
	}

	a.logger.Info().Msg("application stopped")
	return errors.Join(errs...)
}
