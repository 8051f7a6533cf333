package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vitarsport/sales-analytics-api/infrastructure/dataset"
	"github.com/vitarsport/sales-analytics-api/infrastructure/pohoda"
	"github.com/vitarsport/sales-analytics-api/internal/api"
	"github.com/vitarsport/sales-analytics-api/internal/config"
	"github.com/vitarsport/sales-analytics-api/internal/domain"
	"github.com/vitarsport/sales-analytics-api/internal/scheduler"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/aggregating"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/authenticating"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/reporting"
	"github.com/vitarsport/sales-analytics-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.SetupLogger(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	parser := pohoda.NewParser(cfg.Roster)
	loader := dataset.NewFileLoader(cfg.Dataset, parser)
	store := dataset.NewStore()

	// The first load happens inline so the reports are ready when the server
	// starts accepting requests. A failure here is not fatal: the endpoints
	// answer 503 until a reload succeeds.
	if snapshot, err := loader.Load(ctx); err != nil {
		logrus.WithError(err).Error("initial dataset load failed")
	} else {
		store.Swap(snapshot)
	}

	reloadService := scheduler.NewDatasetReloadService(cfg.DatasetReload, loader, store)
	if err := reloadService.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting dataset reload scheduler")
	}
	defer reloadService.Stop()

	authenticator, err := authenticating.NewService(cfg.Auth.Secret, []authenticating.Account{
		{Username: "admin", Name: "Administrátor", Role: domain.RoleAdmin, Password: cfg.Auth.AdminPassword},
		{Username: "obchod", Name: "Obchodný tím", Role: domain.RoleViewer, Password: cfg.Auth.ViewerPassword},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	aggregator := aggregating.New(cfg.Rates.EURToCZK)
	reportingService := reporting.NewService(store, aggregator, nil)

	server, err := api.New(cfg, reportingService, authenticator, reloadService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
