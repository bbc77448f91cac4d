package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParcelPollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inpost_parcel_polls_total",
		Help: "Total number of parcel polls attempted.",
	})

	ParcelPollErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inpost_parcel_poll_errors_total",
		Help: "Total number of parcel polls that failed.",
	})

	TokenRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inpost_token_refreshes_total",
		Help: "Total number of successful OAuth token refreshes.",
	})

	ParcelsReadyForPickup = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inpost_parcels_ready_for_pickup",
		Help: "Parcels currently ready for pickup.",
	})

	ParcelsEnRoute = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inpost_parcels_en_route",
		Help: "Parcels currently en route.",
	})

	LockerDirectorySize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inpost_locker_directory_size",
		Help: "Number of lockers in the last synced public directory.",
	})
)
