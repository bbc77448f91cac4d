package inpost

// Parcel lifecycle statuses as reported by the InPost tracking API.
const (
	StatusConfirmed             = "CONFIRMED"
	StatusDispatchedBySender    = "DISPATCHED_BY_SENDER"
	StatusTakenByCourier        = "TAKEN_BY_COURIER"
	StatusAdoptedAtSourceBranch = "ADOPTED_AT_SOURCE_BRANCH"
	StatusSentFromSourceBranch  = "SENT_FROM_SOURCE_BRANCH"
	StatusOutForDelivery        = "OUT_FOR_DELIVERY"
	StatusReadyToPickup         = "READY_TO_PICKUP"
	StatusDelivered             = "DELIVERED"
)

// OwnershipOwn marks parcels addressed to the authenticated user, as
// opposed to shared or forwarded parcels visible in the same account.
const OwnershipOwn = "OWN"

// CourierLockerID groups parcels that have no pickup point.
const CourierLockerID = "COURIER"

var enRouteStatuses = map[string]bool{
	StatusOutForDelivery:        true,
	StatusAdoptedAtSourceBranch: true,
	StatusSentFromSourceBranch:  true,
	StatusTakenByCourier:        true,
	StatusConfirmed:             true,
	StatusDispatchedBySender:    true,
}

var statusDescriptions = map[string]string{
	StatusConfirmed:             "Przygotowana przez nadawcę",
	StatusDispatchedBySender:    "Nadana przez nadawcę",
	StatusTakenByCourier:        "Odebrana przez kuriera",
	StatusAdoptedAtSourceBranch: "Przyjęta w oddziale",
	StatusSentFromSourceBranch:  "Wysłana z oddziału",
	StatusOutForDelivery:        "Wydana do doręczenia",
	StatusReadyToPickup:         "Gotowa do odbioru",
	StatusDelivered:             "Doręczona",
}

// IsEnRoute reports whether status represents a parcel in transit that is
// not yet ready for pickup.
func IsEnRoute(status string) bool {
	return enRouteStatuses[status]
}

// StatusDescription returns the human readable description for a status,
// or the status itself when it is unknown.
func StatusDescription(status string) string {
	if desc, ok := statusDescriptions[status]; ok {
		return desc
	}
	return status
}
