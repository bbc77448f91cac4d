package lockers

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakon89/Inpost-Paczkomaty/config"
	"github.com/jakon89/Inpost-Paczkomaty/core"
	"github.com/jakon89/Inpost-Paczkomaty/inpost"
	"github.com/jakon89/Inpost-Paczkomaty/workers/lockers/repositories"
)

// Worker syncs the public locker directory into the database once a day.
// The feed needs no authentication.
type Worker struct {
	logger *zap.Logger
	repo   *repositories.Repository
	client *inpost.Client
	busy   bool
}

func NewWorker(logger *zap.Logger, db *gorm.DB, cfg *config.Config) *Worker {
	return &Worker{
		logger: logger,
		repo:   repositories.NewRepository(db),
		client: inpost.NewClient(logger, inpost.Config{
			ParcelLockersURL: cfg.InPostApi.ParcelLockersURL,
		}),
	}
}

func (w *Worker) Schedule() string {
	return "0 4 * * *"
}

func (w *Worker) Ready(time.Time) bool {
	return !w.busy
}

func (w *Worker) Execute() {
	w.busy = true
	defer func() {
		w.busy = false
	}()

	w.logger.Info("Starting locker directory sync")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	items, err := w.client.GetParcelLockersList(ctx)
	if err != nil {
		w.logger.Error("Cannot fetch locker directory", zap.Error(err))
		return
	}

	if err := w.repo.ReplaceDirectory(items, time.Now().UTC()); err != nil {
		w.logger.Error("Failed to store locker directory", zap.Error(err))
		return
	}

	core.LockerDirectorySize.Set(float64(len(items)))
	w.logger.Info("Locker directory synced", zap.Int("lockers", len(items)))
}
