package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/crm-deal-sync/internal/app"
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("crm-deal-sync")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	application, err := app.New(ctx, cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating application")
	}

	if err := application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with errors")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
