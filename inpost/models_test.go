package inpost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickUpPointIsParcelLocker(t *testing.T) {
	assert.True(t, (&PickUpPoint{Type: []string{"parcel_locker"}}).IsParcelLocker())
	assert.True(t, (&PickUpPoint{Type: []string{"parcel_locker", "parcel_locker_superpop"}}).IsParcelLocker())
	assert.False(t, (&PickUpPoint{Type: []string{"pop"}}).IsParcelLocker())
	assert.False(t, (&PickUpPoint{}).IsParcelLocker())

	var nilPoint *PickUpPoint
	assert.False(t, nilPoint.IsParcelLocker())
}

func TestEffectiveCarbonFootprint(t *testing.T) {
	carbon := &CarbonFootprint{BoxMachineDelivery: "0.012", AddressDelivery: "0.320"}

	t.Run("parcel locker uses box machine figure", func(t *testing.T) {
		parcel := &Parcel{
			Status:          StatusDelivered,
			PickUpPoint:     &PickUpPoint{Name: "GDA117M", Type: []string{"parcel_locker"}},
			CarbonFootprint: carbon,
		}
		value, ok := parcel.EffectiveCarbonFootprint()
		require.True(t, ok)
		assert.InDelta(t, 0.012, value, 1e-9)
	})

	t.Run("other point uses address figure", func(t *testing.T) {
		parcel := &Parcel{
			Status:          StatusDelivered,
			PickUpPoint:     &PickUpPoint{Name: "WAW001", Type: []string{"pop"}},
			CarbonFootprint: carbon,
		}
		value, ok := parcel.EffectiveCarbonFootprint()
		require.True(t, ok)
		assert.InDelta(t, 0.320, value, 1e-9)
	})

	t.Run("no pickup point uses address figure", func(t *testing.T) {
		parcel := &Parcel{Status: StatusDelivered, CarbonFootprint: carbon}
		value, ok := parcel.EffectiveCarbonFootprint()
		require.True(t, ok)
		assert.InDelta(t, 0.320, value, 1e-9)
	})

	t.Run("no carbon data", func(t *testing.T) {
		parcel := &Parcel{Status: StatusDelivered}
		_, ok := parcel.EffectiveCarbonFootprint()
		assert.False(t, ok)
	})

	t.Run("missing figure", func(t *testing.T) {
		parcel := &Parcel{
			Status:          StatusDelivered,
			PickUpPoint:     &PickUpPoint{Type: []string{"parcel_locker"}},
			CarbonFootprint: &CarbonFootprint{AddressDelivery: "0.320"},
		}
		_, ok := parcel.EffectiveCarbonFootprint()
		assert.False(t, ok)
	})

	t.Run("non numeric figure", func(t *testing.T) {
		parcel := &Parcel{
			Status:          StatusDelivered,
			PickUpPoint:     &PickUpPoint{Type: []string{"parcel_locker"}},
			CarbonFootprint: &CarbonFootprint{BoxMachineDelivery: "invalid"},
		}
		_, ok := parcel.EffectiveCarbonFootprint()
		assert.False(t, ok)
	})
}

func TestPickUpDateParsed(t *testing.T) {
	parcel := &Parcel{PickUpDate: "2025-12-02T20:45:47.443Z"}
	ts, ok := parcel.PickUpDateParsed()
	require.True(t, ok)
	assert.Equal(t, 2025, ts.Year())
	assert.Equal(t, time.December, ts.Month())
	assert.Equal(t, 2, ts.Day())
	assert.Equal(t, 20, ts.Hour())
	assert.Equal(t, 45, ts.Minute())

	_, ok = (&Parcel{}).PickUpDateParsed()
	assert.False(t, ok)

	_, ok = (&Parcel{PickUpDate: "invalid-date"}).PickUpDateParsed()
	assert.False(t, ok)
}

func TestLockerID(t *testing.T) {
	parcel := &Parcel{PickUpPoint: &PickUpPoint{Name: "GDA117M"}}
	assert.Equal(t, "GDA117M", parcel.LockerID())
	assert.Equal(t, "", (&Parcel{}).LockerID())
}

func TestStatusDescription(t *testing.T) {
	assert.Equal(t, "Gotowa do odbioru", StatusDescription(StatusReadyToPickup))
	assert.Equal(t, "Doręczona", StatusDescription(StatusDelivered))
	assert.Equal(t, "UNKNOWN_STATUS", StatusDescription("UNKNOWN_STATUS"))
}

func TestToParcelItem(t *testing.T) {
	parcel := &Parcel{
		ShipmentNumber: "695080086580180027785172",
		Status:         StatusReadyToPickup,
		OpenCode:       "689756",
		Receiver: &Receiver{
			PhoneNumber: &PhoneNumber{Prefix: "+48", Value: "123456789"},
		},
	}

	item := parcel.ToParcelItem()

	assert.Equal(t, "695080086580180027785172", item.ID)
	assert.Equal(t, StatusReadyToPickup, item.Status)
	assert.Equal(t, "689756", item.Code)
	assert.Equal(t, "+48123456789", item.Phone)
	assert.Equal(t, "Gotowa do odbioru", item.StatusDesc)
}

func TestToParcelItemNoReceiver(t *testing.T) {
	item := (&Parcel{ShipmentNumber: "123", Status: StatusConfirmed}).ToParcelItem()
	assert.Equal(t, "", item.Phone)
}

func TestToParcelListItem(t *testing.T) {
	parcel := &Parcel{
		ShipmentNumber:  "620070566580180012876790",
		Status:          StatusReadyToPickup,
		ShipmentType:    "parcel",
		OpenCode:        "615144",
		QRCode:          "P|+48987654321|615144",
		ParcelSize:      "A",
		OwnershipStatus: OwnershipOwn,
		Sender:          &Sender{Name: "COFFEE&SONS"},
		Receiver: &Receiver{
			PhoneNumber: &PhoneNumber{Prefix: "+48", Value: "987654321"},
		},
		PickUpPoint: &PickUpPoint{
			Name:                "GDA117M",
			LocationDescription: "obiekt mieszkalny",
			AddressDetails: &AddressDetails{
				PostCode:       "80-180",
				City:           "Gdańsk",
				Street:         "Wieżycka",
				BuildingNumber: "8",
			},
			Type: []string{"parcel_locker"},
		},
	}

	item := parcel.ToParcelListItem()

	assert.Equal(t, "COFFEE&SONS", item.SenderName)
	assert.Equal(t, "Gotowa do odbioru", item.StatusDescription)
	assert.Equal(t, "+48987654321", item.PhoneNumber)
	assert.Equal(t, "GDA117M", item.PickupPointName)
	assert.Equal(t, "obiekt mieszkalny", item.PickupPointDescription)
	assert.Equal(t, "Wieżycka 8, 80-180 Gdańsk", item.PickupPointAddress)
	assert.Equal(t, "615144", item.OpenCode)
}

func TestToParcelListItemPartialAddress(t *testing.T) {
	parcel := &Parcel{
		ShipmentNumber: "123",
		Status:         StatusReadyToPickup,
		PickUpPoint: &PickUpPoint{
			Name:           "GDA117M",
			AddressDetails: &AddressDetails{City: "Gdańsk", PostCode: "80-180"},
		},
	}

	item := parcel.ToParcelListItem()

	assert.Equal(t, "80-180 Gdańsk", item.PickupPointAddress)
	assert.Equal(t, "", item.PickupPointStreet)
}

func TestToParcelListItemStreetOnly(t *testing.T) {
	parcel := &Parcel{
		ShipmentNumber: "123",
		Status:         StatusReadyToPickup,
		PickUpPoint: &PickUpPoint{
			Name:           "GDA117M",
			AddressDetails: &AddressDetails{Street: "Wieżycka", BuildingNumber: "8"},
		},
	}

	assert.Equal(t, "Wieżycka 8", parcel.ToParcelListItem().PickupPointAddress)
}

func TestToParcelListItemCourier(t *testing.T) {
	parcel := &Parcel{
		ShipmentNumber: "520113012280180076018438",
		Status:         StatusOutForDelivery,
		ShipmentType:   "courier",
		Sender:         &Sender{Name: "Amazon Polska"},
	}

	item := parcel.ToParcelListItem()

	assert.Equal(t, "Amazon Polska", item.SenderName)
	assert.Equal(t, "", item.PickupPointName)
	assert.Equal(t, "", item.PickupPointAddress)
	assert.Equal(t, "", item.PhoneNumber)
}

func TestCarbonFootprintStatsTotalGrams(t *testing.T) {
	stats := CarbonFootprintStats{TotalCO2Kg: 0.5, TotalParcels: 10}
	assert.Equal(t, 500.0, stats.TotalCO2Grams())
}

func TestProfileDeliveryPointDescription(t *testing.T) {
	point := ProfileDeliveryPoint{
		Name:         "GDA117M",
		AddressLines: []string{"Wieżycka 8", "obiekt mieszkalny", "80-180 Gdańsk"},
	}
	assert.Equal(t, "Wieżycka 8, obiekt mieszkalny, 80-180 Gdańsk", point.Description())
	assert.Equal(t, "", ProfileDeliveryPoint{Name: "GDA117M"}.Description())
}

func TestFavoriteLockerCodes(t *testing.T) {
	t.Run("empty profile", func(t *testing.T) {
		assert.Empty(t, UserProfile{}.FavoriteLockerCodes())
		assert.Empty(t, UserProfile{Delivery: &ProfileDelivery{}}.FavoriteLockerCodes())
	})

	t.Run("active only, preferred first", func(t *testing.T) {
		profile := UserProfile{Delivery: &ProfileDelivery{Points: &ProfileDeliveryPoints{
			Items: []ProfileDeliveryPoint{
				{Name: "GDA145M", Active: true},
				{Name: "GDA03B", Active: false},
				{Name: "GDA117M", Active: true, Preferred: true},
			},
		}}}

		assert.Equal(t, []string{"GDA117M", "GDA145M"}, profile.FavoriteLockerCodes())
	})
}

func TestAuthStep(t *testing.T) {
	assert.True(t, AuthStep{Step: "ONBOARDED"}.IsOnboarded())
	assert.True(t, AuthStep{Step: "PROVIDE_PHONE_NUMBER_FOR_LOGIN"}.RequiresPhone())
	assert.True(t, AuthStep{Step: "PROVIDE_PHONE_CODE"}.RequiresOTP())

	required, hashed := AuthStep{
		Step:        "PROVIDE_EXISTING_EMAIL_ADDRESS",
		RawResponse: map[string]any{"hashed_email": "abc***@example.com"},
	}.RequiresEmail()
	assert.True(t, required)
	assert.Equal(t, "abc***@example.com", hashed)

	required, hashed = AuthStep{Step: "ONBOARDED"}.RequiresEmail()
	assert.False(t, required)
	assert.Equal(t, "", hashed)
}

func TestParcelLockerDistance(t *testing.T) {
	locker := ParcelLocker{Name: "GDA117M", Latitude: 54.3188, Longitude: 18.58508}

	assert.InDelta(t, 0, locker.DistanceKm(54.3188, 18.58508), 1e-9)

	// Gdańsk to Warsaw is roughly 285 km as the crow flies
	distance := locker.DistanceKm(52.2297, 21.0122)
	assert.InDelta(t, 285, distance, 15)
}
