package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jakon89/Inpost-Paczkomaty/config"
	"github.com/jakon89/Inpost-Paczkomaty/core"
	"github.com/jakon89/Inpost-Paczkomaty/workers/lockers"
	lockermodels "github.com/jakon89/Inpost-Paczkomaty/workers/lockers/models"
	"github.com/jakon89/Inpost-Paczkomaty/workers/parcels"
	parcelmodels "github.com/jakon89/Inpost-Paczkomaty/workers/parcels/models"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := core.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	err = db.AutoMigrate(
		&parcelmodels.LockerSnapshot{},
		&parcelmodels.CarbonFootprintDay{},
		&parcelmodels.AuthTokenRecord{},
		&lockermodels.ParcelLockerRecord{},
	)
	if err != nil {
		log.Fatal(err)
	}

	orchestrator := core.NewOrchestrator(logger, []core.Worker{
		parcels.NewWorker(logger, db, cfg),
		lockers.NewWorker(logger, db, cfg),
	})

	c, err := orchestrator.Start(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	defer c.Stop()

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal to exit gracefully
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
