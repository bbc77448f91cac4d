package parcels

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakon89/Inpost-Paczkomaty/config"
	"github.com/jakon89/Inpost-Paczkomaty/core"
	"github.com/jakon89/Inpost-Paczkomaty/inpost"
	"github.com/jakon89/Inpost-Paczkomaty/workers/parcels/repositories"
)

// Worker polls the tracked parcels on a cron schedule and persists the
// per-locker snapshots and carbon figures. When a poll fails the last
// stored snapshot simply stays current.
type Worker struct {
	logger      *zap.Logger
	repo        *repositories.Repository
	client      *inpost.Client
	phoneNumber string
	busy        bool
}

func NewWorker(logger *zap.Logger, db *gorm.DB, cfg *config.Config) *Worker {
	repo := repositories.NewRepository(db)
	w := &Worker{
		logger:      logger,
		repo:        repo,
		phoneNumber: cfg.InPostApi.PhoneNumber,
	}

	accessToken := cfg.InPostApi.AccessToken
	refreshToken := cfg.InPostApi.RefreshToken
	if stored, err := repo.LoadTokens(w.phoneNumber); err != nil {
		logger.Warn("Cannot load stored tokens, using configured ones", zap.Error(err))
	} else if stored != nil {
		accessToken = stored.AccessToken
		refreshToken = stored.RefreshToken
	}

	w.client = inpost.NewClient(logger, inpost.Config{
		AccessToken:            accessToken,
		RefreshToken:           refreshToken,
		IgnoredEnRouteStatuses: cfg.InPostApi.IgnoredEnRouteStatuses,
		ShowOnlyOwnParcels:     cfg.InPostApi.ShowOnlyOwnParcels,
		HTTPTimeout:            cfg.InPostApi.HTTPTimeout,
		ParcelLockersURL:       cfg.InPostApi.ParcelLockersURL,
		Language:               cfg.InPostApi.Language,
		OnNewTokens:            w.persistTokens,
	})
	return w
}

func (w *Worker) Schedule() string {
	return "@every 5m"
}

func (w *Worker) Ready(time.Time) bool {
	return !w.busy
}

func (w *Worker) Execute() {
	w.busy = true
	defer func() {
		w.busy = false
	}()

	runID := uuid.New().String()
	logger := w.logger.With(zap.String("run_id", runID))
	logger.Info("Starting parcels poll")
	core.ParcelPollsTotal.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := w.client.GetParcels(ctx)
	if err != nil {
		core.ParcelPollErrorsTotal.Inc()
		logger.Error("Cannot read parcels, keeping last stored snapshot", zap.Error(err))
		return
	}

	core.ParcelsReadyForPickup.Set(float64(summary.ReadyForPickupCount))
	core.ParcelsEnRoute.Set(float64(summary.EnRouteCount))

	collectedAt := time.Now().UTC()
	if err := w.repo.SaveSummarySnapshot(summary, collectedAt); err != nil {
		logger.Error("Failed to save locker snapshots", zap.Error(err))
		return
	}
	for _, day := range summary.CarbonStats.DailyData {
		if err := w.repo.UpsertCarbonDay(day); err != nil {
			logger.Error("Failed to save carbon figures",
				zap.String("date", day.Date),
				zap.Error(err),
			)
			return
		}
	}

	logger.Info("Parcels poll completed",
		zap.Int("all", summary.AllCount),
		zap.Int("ready_for_pickup", summary.ReadyForPickupCount),
		zap.Int("en_route", summary.EnRouteCount),
		zap.Float64("total_co2_kg", summary.CarbonStats.TotalCO2Kg),
	)
}

// persistTokens receives every refreshed token pair from the client and
// writes it through so a restart picks up where we left off.
func (w *Worker) persistTokens(tokens inpost.AuthTokens) {
	core.TokenRefreshesTotal.Inc()
	if err := w.repo.SaveTokens(w.phoneNumber, tokens); err != nil {
		w.logger.Error("Failed to persist refreshed tokens", zap.Error(err))
		return
	}
	w.logger.Info("Refreshed tokens persisted")
}
