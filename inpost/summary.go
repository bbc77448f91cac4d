package inpost

import (
	"math"
	"sort"
)

// buildParcelsSummary groups the decoded parcels by status and locker in
// a single pass and accumulates the carbon footprint of delivered ones.
//
// A parcel lands in at most one of the two groups: READY_TO_PICKUP wins,
// otherwise an en-route status not on the ignore list. Everything else
// (DELIVERED included) only contributes to the totals. With ownOnly set,
// parcels not owned by the user are dropped before any counting, so they
// do not show up in AllCount either.
func buildParcelsSummary(parcels []*Parcel, ownOnly bool, ignoredEnRoute map[string]bool) *ParcelsSummary {
	summary := &ParcelsSummary{
		ReadyForPickup: make(map[string]*Locker),
		EnRoute:        make(map[string]*Locker),
	}

	type carbonDay struct {
		kg    float64
		count int
	}
	days := make(map[string]*carbonDay)
	var totalKg float64
	totalParcels := 0

	for _, parcel := range parcels {
		if ownOnly && parcel.OwnershipStatus != OwnershipOwn {
			continue
		}
		summary.AllCount++

		lockerID := parcel.LockerID()
		if lockerID == "" {
			lockerID = CourierLockerID
		}

		switch {
		case parcel.Status == StatusReadyToPickup:
			summary.ReadyForPickupCount++
			appendToLocker(summary.ReadyForPickup, lockerID, parcel)
		case IsEnRoute(parcel.Status) && !ignoredEnRoute[parcel.Status]:
			summary.EnRouteCount++
			appendToLocker(summary.EnRoute, lockerID, parcel)
		}

		if parcel.Status != StatusDelivered {
			continue
		}
		kg, ok := parcel.EffectiveCarbonFootprint()
		if !ok {
			continue
		}
		pickedUp, ok := parcel.PickUpDateParsed()
		if !ok {
			continue
		}
		date := pickedUp.Format("2006-01-02")
		day, exists := days[date]
		if !exists {
			day = &carbonDay{}
			days[date] = day
		}
		day.kg += kg
		day.count++
		totalKg += kg
		totalParcels++
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	daily := make([]DailyCarbonFootprint, 0, len(dates))
	for _, date := range dates {
		daily = append(daily, DailyCarbonFootprint{
			Date:        date,
			Value:       days[date].kg,
			ParcelCount: days[date].count,
		})
	}

	summary.CarbonStats = CarbonFootprintStats{
		TotalCO2Kg:   math.Round(totalKg*10000) / 10000,
		TotalParcels: totalParcels,
		DailyData:    daily,
	}
	return summary
}

func appendToLocker(lockers map[string]*Locker, lockerID string, parcel *Parcel) {
	locker, exists := lockers[lockerID]
	if !exists {
		locker = &Locker{LockerID: lockerID}
		lockers[lockerID] = locker
	}
	locker.Count++
	locker.Parcels = append(locker.Parcels, parcel.ToParcelItem())
}
