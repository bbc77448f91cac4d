package inpost

import (
	"strconv"
	"strings"
	"time"
)

// PhoneNumber is a receiver phone number split into country prefix and value.
type PhoneNumber struct {
	Prefix string
	Value  string
}

// Full returns the prefix and value joined into one dialable number.
func (p *PhoneNumber) Full() string {
	if p == nil {
		return ""
	}
	return p.Prefix + p.Value
}

type Receiver struct {
	Email       string
	Name        string
	PhoneNumber *PhoneNumber
}

type Sender struct {
	Name string
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type AddressDetails struct {
	PostCode       string
	City           string
	Province       string
	Street         string
	BuildingNumber string
	FlatNumber     string
	Country        string
}

// PickUpPoint is the locker or courier drop a parcel is assigned to.
type PickUpPoint struct {
	Name                string
	Location            *Coordinates
	LocationDescription string
	OpeningHours        string
	AddressDetails      *AddressDetails
	Type                []string
	EasyAccessZone      bool
}

// IsParcelLocker reports whether the point's type tags mark it as a
// parcel locker rather than another delivery channel.
func (p *PickUpPoint) IsParcelLocker() bool {
	if p == nil {
		return false
	}
	for _, t := range p.Type {
		if t == "parcel_locker" {
			return true
		}
	}
	return false
}

// CarbonFootprint carries the CO2 figures the API reports per parcel.
// Values arrive as decimal strings and may be absent or malformed.
type CarbonFootprint struct {
	BoxMachineDelivery        string
	AddressDelivery           string
	ChangeDeliveryTypePercent string
	ChangeDeliveryTypeValue   string
	RedirectionURL            string
}

// Parcel is one shipment as reported by the tracking API. It is built
// fresh from every response; there is no cross-poll identity.
type Parcel struct {
	ShipmentNumber  string
	ShipmentType    string
	OpenCode        string
	QRCode          string
	StoredDate      string
	ParcelSize      string
	Status          string
	OwnershipStatus string
	PickUpDate      string
	PickUpPoint     *PickUpPoint
	Receiver        *Receiver
	Sender          *Sender
	CarbonFootprint *CarbonFootprint
}

// LockerID returns the pickup point name, or "" for courier deliveries.
func (p *Parcel) LockerID() string {
	if p.PickUpPoint == nil {
		return ""
	}
	return p.PickUpPoint.Name
}

func (p *Parcel) StatusDescription() string {
	return StatusDescription(p.Status)
}

// EffectiveCarbonFootprint returns the CO2 figure in kilograms for the
// delivery channel actually used: the box machine figure when the parcel
// went to a parcel locker, the address figure otherwise. The second
// return value is false when the figure is absent or not numeric.
func (p *Parcel) EffectiveCarbonFootprint() (float64, bool) {
	if p.CarbonFootprint == nil {
		return 0, false
	}
	raw := p.CarbonFootprint.AddressDelivery
	if p.PickUpPoint.IsParcelLocker() {
		raw = p.CarbonFootprint.BoxMachineDelivery
	}
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// PickUpDateParsed parses the pickup timestamp. The second return value
// is false when the timestamp is absent or unparseable.
func (p *Parcel) PickUpDateParsed() (time.Time, bool) {
	if p.PickUpDate == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, p.PickUpDate)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ToParcelItem projects the parcel into the compact per-locker line item.
func (p *Parcel) ToParcelItem() ParcelItem {
	phone := ""
	if p.Receiver != nil {
		phone = p.Receiver.PhoneNumber.Full()
	}
	return ParcelItem{
		ID:         p.ShipmentNumber,
		Phone:      phone,
		Code:       p.OpenCode,
		Status:     p.Status,
		StatusDesc: p.StatusDescription(),
	}
}

// ToParcelListItem flattens the parcel into the rich display record,
// formatting the pickup point address from its parts.
func (p *Parcel) ToParcelListItem() ParcelListItem {
	item := ParcelListItem{
		ShipmentNumber:    p.ShipmentNumber,
		Status:            p.Status,
		StatusDescription: p.StatusDescription(),
		ShipmentType:      p.ShipmentType,
		ParcelSize:        p.ParcelSize,
		OwnershipStatus:   p.OwnershipStatus,
		OpenCode:          p.OpenCode,
		QRCode:            p.QRCode,
		StoredDate:        p.StoredDate,
	}
	if p.Sender != nil {
		item.SenderName = p.Sender.Name
	}
	if p.Receiver != nil {
		item.PhoneNumber = p.Receiver.PhoneNumber.Full()
	}
	if point := p.PickUpPoint; point != nil {
		item.PickupPointName = point.Name
		item.PickupPointDescription = point.LocationDescription
		if addr := point.AddressDetails; addr != nil {
			item.PickupPointCity = addr.City
			item.PickupPointStreet = addr.Street
			item.PickupPointBuilding = addr.BuildingNumber
			item.PickupPointPostCode = addr.PostCode
			item.PickupPointAddress = formatAddress(addr)
		}
	}
	return item
}

// formatAddress joins "street building, postcode city", dropping the
// parts that are missing.
func formatAddress(addr *AddressDetails) string {
	street := strings.TrimSpace(addr.Street + " " + addr.BuildingNumber)
	city := strings.TrimSpace(addr.PostCode + " " + addr.City)
	switch {
	case street == "":
		return city
	case city == "":
		return street
	default:
		return street + ", " + city
	}
}

// ParcelItem is the compact per-locker line item exposed per parcel.
type ParcelItem struct {
	ID         string `json:"id"`
	Phone      string `json:"phone"`
	Code       string `json:"code"`
	Status     string `json:"status"`
	StatusDesc string `json:"status_desc"`
}

// ParcelListItem is the flattened display record for one parcel.
type ParcelListItem struct {
	ShipmentNumber         string `json:"shipment_number"`
	SenderName             string `json:"sender_name"`
	Status                 string `json:"status"`
	StatusDescription      string `json:"status_description"`
	ShipmentType           string `json:"shipment_type"`
	ParcelSize             string `json:"parcel_size"`
	OwnershipStatus        string `json:"ownership_status"`
	PhoneNumber            string `json:"phone_number"`
	PickupPointName        string `json:"pickup_point_name"`
	PickupPointAddress     string `json:"pickup_point_address"`
	PickupPointDescription string `json:"pickup_point_description"`
	PickupPointCity        string `json:"pickup_point_city"`
	PickupPointStreet      string `json:"pickup_point_street"`
	PickupPointBuilding    string `json:"pickup_point_building"`
	PickupPointPostCode    string `json:"pickup_point_post_code"`
	OpenCode               string `json:"open_code"`
	QRCode                 string `json:"qr_code"`
	StoredDate             string `json:"stored_date"`
}

// Locker aggregates the parcels assigned to one pickup point (or to the
// COURIER sentinel), preserving input order.
type Locker struct {
	LockerID string       `json:"locker_id"`
	Count    int          `json:"count"`
	Parcels  []ParcelItem `json:"parcels"`
}

// ParcelsSummary is the status-grouped aggregate built from one poll.
type ParcelsSummary struct {
	AllCount            int                  `json:"all_count"`
	ReadyForPickupCount int                  `json:"ready_for_pickup_count"`
	EnRouteCount        int                  `json:"en_route_count"`
	ReadyForPickup      map[string]*Locker   `json:"ready_for_pickup"`
	EnRoute             map[string]*Locker   `json:"en_route"`
	CarbonStats         CarbonFootprintStats `json:"carbon_stats"`
}

type DailyCarbonFootprint struct {
	Date        string  `json:"date"`
	Value       float64 `json:"value"`
	ParcelCount int     `json:"parcel_count"`
}

type CarbonFootprintStats struct {
	TotalCO2Kg   float64                `json:"total_co2_kg"`
	TotalParcels int                    `json:"total_parcels"`
	DailyData    []DailyCarbonFootprint `json:"daily_data"`
}

// TotalCO2Grams derives the gram figure; it is never stored separately.
func (s CarbonFootprintStats) TotalCO2Grams() float64 {
	return s.TotalCO2Kg * 1000
}

// AuthTokens is the OAuth2 token pair. It is replaced wholesale on every
// refresh, never partially updated.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int
	Scope        string
	IDToken      string
}

// AuthStep tracks where an interactive login flow currently stands.
type AuthStep struct {
	Step        string
	RawResponse map[string]any
}

func (s AuthStep) IsOnboarded() bool   { return s.Step == "ONBOARDED" }
func (s AuthStep) RequiresPhone() bool { return s.Step == "PROVIDE_PHONE_NUMBER_FOR_LOGIN" }
func (s AuthStep) RequiresOTP() bool   { return s.Step == "PROVIDE_PHONE_CODE" }

// RequiresEmail reports whether the flow asks for an existing email
// address, together with the masked email hint when it does.
func (s AuthStep) RequiresEmail() (bool, string) {
	if s.Step != "PROVIDE_EXISTING_EMAIL_ADDRESS" {
		return false, ""
	}
	hashed, _ := s.RawResponse["hashed_email"].(string)
	return true, hashed
}

type ProfilePersonal struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

type ProfileDeliveryPoint struct {
	Name         string
	Type         string
	AddressLines []string
	Active       bool
	Preferred    bool
}

// Description joins the address lines into one display string.
func (p ProfileDeliveryPoint) Description() string {
	return strings.Join(p.AddressLines, ", ")
}

type ProfileDeliveryPoints struct {
	Items []ProfileDeliveryPoint
}

type ProfileDelivery struct {
	Points *ProfileDeliveryPoints
}

type UserProfile struct {
	Personal       *ProfilePersonal
	Delivery       *ProfileDelivery
	ShoppingActive bool
}

// FavoriteLockerCodes returns the codes of the user's active delivery
// points, preferred ones first, preserving the API order otherwise.
func (u UserProfile) FavoriteLockerCodes() []string {
	if u.Delivery == nil || u.Delivery.Points == nil {
		return []string{}
	}
	var preferred, others []string
	for _, point := range u.Delivery.Points.Items {
		if !point.Active {
			continue
		}
		if point.Preferred {
			preferred = append(preferred, point.Name)
		} else {
			others = append(others, point.Name)
		}
	}
	return append(preferred, others...)
}

// ParcelLocker is one entry of the public locker directory feed. The
// feed keys its records by short field codes; this is the expanded form.
type ParcelLocker struct {
	Name           string
	Type           int
	Description    string
	City           string
	Province       string
	Street         string
	BuildingNumber string
	PostCode       string
	Country        string
	OpeningHours   string
	Latitude       float64
	Longitude      float64
	PaymentType    int
	Status         int
}

// DistanceKm returns the great-circle distance in kilometers between the
// locker and the given coordinates.
func (l ParcelLocker) DistanceKm(latitude, longitude float64) float64 {
	return haversine(l.Longitude, l.Latitude, longitude, latitude)
}

// ParcelLockerListResponse is the paginated envelope of the directory feed.
type ParcelLockerListResponse struct {
	Date       string
	Page       int
	TotalPages int
	Items      []ParcelLocker
}
