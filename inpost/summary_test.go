package inpost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockerParcel(number, status, lockerName string) *Parcel {
	return &Parcel{
		ShipmentNumber: number,
		Status:         status,
		PickUpPoint:    &PickUpPoint{Name: lockerName},
	}
}

func TestBuildParcelsSummaryEmpty(t *testing.T) {
	summary := buildParcelsSummary(nil, false, nil)

	assert.Equal(t, 0, summary.AllCount)
	assert.Equal(t, 0, summary.ReadyForPickupCount)
	assert.Equal(t, 0, summary.EnRouteCount)
	assert.Empty(t, summary.ReadyForPickup)
	assert.Empty(t, summary.EnRoute)
}

func TestBuildParcelsSummaryGrouping(t *testing.T) {
	parcels := []*Parcel{
		lockerParcel("1", StatusReadyToPickup, "GDA117M"),
		lockerParcel("2", StatusOutForDelivery, "GDA117M"),
		lockerParcel("3", StatusConfirmed, "GDA08M"),
		lockerParcel("4", StatusDelivered, "GDA117M"),
	}

	summary := buildParcelsSummary(parcels, false, nil)

	assert.Equal(t, 4, summary.AllCount)
	assert.Equal(t, 1, summary.ReadyForPickupCount)
	assert.Equal(t, 2, summary.EnRouteCount)

	require.Contains(t, summary.ReadyForPickup, "GDA117M")
	assert.Equal(t, 1, summary.ReadyForPickup["GDA117M"].Count)
	require.Contains(t, summary.EnRoute, "GDA117M")
	require.Contains(t, summary.EnRoute, "GDA08M")
	assert.Equal(t, 1, summary.EnRoute["GDA117M"].Count)
	assert.Equal(t, 1, summary.EnRoute["GDA08M"].Count)
}

func TestBuildParcelsSummaryCountInvariants(t *testing.T) {
	parcels := []*Parcel{
		lockerParcel("1", StatusReadyToPickup, "GDA117M"),
		lockerParcel("2", StatusReadyToPickup, "GDA117M"),
		lockerParcel("3", StatusReadyToPickup, "GDA08M"),
		lockerParcel("4", StatusSentFromSourceBranch, "GDA08M"),
		lockerParcel("5", StatusTakenByCourier, "WAW001"),
		lockerParcel("6", StatusDelivered, "GDA117M"),
	}

	summary := buildParcelsSummary(parcels, false, nil)

	readySum := 0
	for _, locker := range summary.ReadyForPickup {
		readySum += locker.Count
		assert.Len(t, locker.Parcels, locker.Count)
	}
	enRouteSum := 0
	for _, locker := range summary.EnRoute {
		enRouteSum += locker.Count
		assert.Len(t, locker.Parcels, locker.Count)
	}

	assert.Equal(t, summary.ReadyForPickupCount, readySum)
	assert.Equal(t, summary.EnRouteCount, enRouteSum)
	assert.Equal(t, 6, summary.AllCount)
}

func TestBuildParcelsSummaryParcelNeverInBothGroups(t *testing.T) {
	parcels := []*Parcel{
		lockerParcel("1", StatusReadyToPickup, "GDA117M"),
		lockerParcel("2", StatusOutForDelivery, "GDA117M"),
	}

	summary := buildParcelsSummary(parcels, false, nil)

	readyIDs := make(map[string]bool)
	for _, locker := range summary.ReadyForPickup {
		for _, item := range locker.Parcels {
			readyIDs[item.ID] = true
		}
	}
	for _, locker := range summary.EnRoute {
		for _, item := range locker.Parcels {
			assert.False(t, readyIDs[item.ID], "parcel %s in both groups", item.ID)
		}
	}
}

func TestBuildParcelsSummaryCourierParcels(t *testing.T) {
	parcels := []*Parcel{
		{ShipmentNumber: "1", Status: StatusOutForDelivery, ShipmentType: "courier"},
	}

	summary := buildParcelsSummary(parcels, false, nil)

	assert.Equal(t, 1, summary.EnRouteCount)
	require.Contains(t, summary.EnRoute, CourierLockerID)
	assert.Equal(t, 1, summary.EnRoute[CourierLockerID].Count)
}

func TestBuildParcelsSummaryIgnoredEnRouteStatuses(t *testing.T) {
	parcels := []*Parcel{
		lockerParcel("1", StatusConfirmed, "GDA08M"),
		lockerParcel("2", StatusOutForDelivery, "GDA08M"),
	}

	summary := buildParcelsSummary(parcels, false, map[string]bool{StatusConfirmed: true})

	assert.Equal(t, 2, summary.AllCount)
	assert.Equal(t, 1, summary.EnRouteCount)
	require.Contains(t, summary.EnRoute, "GDA08M")
	assert.Equal(t, 1, summary.EnRoute["GDA08M"].Count)
	assert.Equal(t, "2", summary.EnRoute["GDA08M"].Parcels[0].ID)
}

func TestBuildParcelsSummaryOwnershipFilter(t *testing.T) {
	own := lockerParcel("1", StatusReadyToPickup, "GDA117M")
	own.OwnershipStatus = OwnershipOwn
	shared := lockerParcel("2", StatusReadyToPickup, "GDA117M")
	shared.OwnershipStatus = "FRIEND"

	summary := buildParcelsSummary([]*Parcel{own, shared}, true, nil)

	assert.Equal(t, 1, summary.AllCount)
	assert.Equal(t, 1, summary.ReadyForPickupCount)
	assert.Equal(t, "1", summary.ReadyForPickup["GDA117M"].Parcels[0].ID)
}

func TestBuildParcelsSummaryDeliveredNotGrouped(t *testing.T) {
	summary := buildParcelsSummary([]*Parcel{
		lockerParcel("1", StatusDelivered, "GDA117M"),
	}, false, nil)

	assert.Equal(t, 1, summary.AllCount)
	assert.Empty(t, summary.ReadyForPickup)
	assert.Empty(t, summary.EnRoute)
}

func deliveredParcel(number, date string, point *PickUpPoint, carbon *CarbonFootprint) *Parcel {
	return &Parcel{
		ShipmentNumber:  number,
		Status:          StatusDelivered,
		PickUpDate:      date,
		PickUpPoint:     point,
		CarbonFootprint: carbon,
	}
}

func TestBuildParcelsSummaryCarbonStats(t *testing.T) {
	lockerPoint := &PickUpPoint{Name: "GDA117M", Type: []string{"parcel_locker"}}
	carbon := &CarbonFootprint{BoxMachineDelivery: "0.012", AddressDelivery: "0.320"}

	parcels := []*Parcel{
		deliveredParcel("1", "2025-12-01T10:00:00.000Z", lockerPoint, carbon),
		deliveredParcel("2", "2025-12-02T12:30:00.000Z", lockerPoint, carbon),
		deliveredParcel("3", "2025-12-02T18:45:00.000Z", nil, carbon),
	}

	summary := buildParcelsSummary(parcels, false, nil)
	stats := summary.CarbonStats

	// locker deliveries contribute the box machine figure, the courier
	// one the address figure
	assert.InDelta(t, 0.344, stats.TotalCO2Kg, 1e-9)
	assert.Equal(t, 3, stats.TotalParcels)
	assert.InDelta(t, 344.0, stats.TotalCO2Grams(), 1e-6)

	require.Len(t, stats.DailyData, 2)
	assert.Equal(t, "2025-12-01", stats.DailyData[0].Date)
	assert.InDelta(t, 0.012, stats.DailyData[0].Value, 1e-9)
	assert.Equal(t, 1, stats.DailyData[0].ParcelCount)
	assert.Equal(t, "2025-12-02", stats.DailyData[1].Date)
	assert.InDelta(t, 0.332, stats.DailyData[1].Value, 1e-9)
	assert.Equal(t, 2, stats.DailyData[1].ParcelCount)
}

func TestBuildParcelsSummaryCarbonSkipsInvalidFigures(t *testing.T) {
	lockerPoint := &PickUpPoint{Name: "GDA117M", Type: []string{"parcel_locker"}}

	parcels := []*Parcel{
		deliveredParcel("1", "2025-12-01T10:00:00.000Z", lockerPoint,
			&CarbonFootprint{BoxMachineDelivery: "invalid"}),
		deliveredParcel("2", "2025-12-01T10:00:00.000Z", lockerPoint, nil),
		// valid figure but no pickup date
		deliveredParcel("3", "", lockerPoint,
			&CarbonFootprint{BoxMachineDelivery: "0.012"}),
	}

	summary := buildParcelsSummary(parcels, false, nil)

	assert.Zero(t, summary.CarbonStats.TotalCO2Kg)
	assert.Zero(t, summary.CarbonStats.TotalParcels)
	assert.Empty(t, summary.CarbonStats.DailyData)
}

func TestBuildParcelsSummaryCarbonRounding(t *testing.T) {
	lockerPoint := &PickUpPoint{Name: "GDA117M", Type: []string{"parcel_locker"}}

	var parcels []*Parcel
	for i := 0; i < 3; i++ {
		parcels = append(parcels, deliveredParcel("p", "2025-12-01T10:00:00.000Z", lockerPoint,
			&CarbonFootprint{BoxMachineDelivery: "0.0001"}))
	}

	summary := buildParcelsSummary(parcels, false, nil)

	assert.Equal(t, 0.0003, summary.CarbonStats.TotalCO2Kg)
}
