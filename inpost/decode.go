package inpost

// Field-by-field decoders from normalized (snake_case) response maps into
// the typed entities. Unknown keys are ignored; optional nested objects
// may be absent or partially populated. Only identifying fields are
// mandatory and produce a DecodeError when missing.

func stringField(m map[string]any, key string) string {
	value, _ := m[key].(string)
	return value
}

func boolField(m map[string]any, key string) bool {
	value, _ := m[key].(bool)
	return value
}

// intField tolerates the float64 shape JSON numbers decode to.
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func floatField(m map[string]any, key string) (float64, bool) {
	value, ok := m[key].(float64)
	return value, ok
}

func mapField(m map[string]any, key string) (map[string]any, bool) {
	value, ok := m[key].(map[string]any)
	return value, ok
}

func sliceField(m map[string]any, key string) ([]any, bool) {
	value, ok := m[key].([]any)
	return value, ok
}

func stringSliceField(m map[string]any, key string) []string {
	raw, ok := sliceField(m, key)
	if !ok {
		return nil
	}
	items := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			items = append(items, s)
		}
	}
	return items
}

func requiredString(m map[string]any, key, entity string) (string, error) {
	value, ok := m[key]
	if !ok || value == nil {
		return "", &DecodeError{Entity: entity, Field: key, Reason: "missing required field"}
	}
	s, ok := value.(string)
	if !ok {
		return "", &DecodeError{Entity: entity, Field: key, Reason: "expected a string"}
	}
	return s, nil
}

func asMap(body any, entity string) (map[string]any, error) {
	m, ok := body.(map[string]any)
	if !ok {
		return nil, &DecodeError{Entity: entity, Field: "", Reason: "expected an object"}
	}
	return m, nil
}

// decodeTrackedParcels decodes the tracked-parcels response body into the
// flat parcel list. The body must already be key-normalized.
func decodeTrackedParcels(body any) ([]*Parcel, error) {
	m, err := asMap(body, "parcels response")
	if err != nil {
		return nil, err
	}
	raw, ok := sliceField(m, "parcels")
	if !ok {
		return nil, &DecodeError{Entity: "parcels response", Field: "parcels", Reason: "missing required field"}
	}
	parcels := make([]*Parcel, 0, len(raw))
	for _, item := range raw {
		pm, err := asMap(item, "parcel")
		if err != nil {
			return nil, err
		}
		parcel, err := decodeParcel(pm)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, parcel)
	}
	return parcels, nil
}

func decodeParcel(m map[string]any) (*Parcel, error) {
	shipmentNumber, err := requiredString(m, "shipment_number", "parcel")
	if err != nil {
		return nil, err
	}
	status, err := requiredString(m, "status", "parcel")
	if err != nil {
		return nil, err
	}
	parcel := &Parcel{
		ShipmentNumber:  shipmentNumber,
		Status:          status,
		ShipmentType:    stringField(m, "shipment_type"),
		OpenCode:        stringField(m, "open_code"),
		QRCode:          stringField(m, "qr_code"),
		StoredDate:      stringField(m, "stored_date"),
		ParcelSize:      stringField(m, "parcel_size"),
		OwnershipStatus: stringField(m, "ownership_status"),
		PickUpDate:      stringField(m, "pick_up_date"),
	}
	if pm, ok := mapField(m, "pick_up_point"); ok {
		parcel.PickUpPoint = decodePickUpPoint(pm)
	}
	if rm, ok := mapField(m, "receiver"); ok {
		parcel.Receiver = decodeReceiver(rm)
	}
	if sm, ok := mapField(m, "sender"); ok {
		parcel.Sender = &Sender{Name: stringField(sm, "name")}
	}
	if cm, ok := mapField(m, "carbon_footprint"); ok {
		parcel.CarbonFootprint = decodeCarbonFootprint(cm)
	}
	return parcel, nil
}

func decodePickUpPoint(m map[string]any) *PickUpPoint {
	point := &PickUpPoint{
		Name:                stringField(m, "name"),
		LocationDescription: stringField(m, "location_description"),
		OpeningHours:        stringField(m, "opening_hours"),
		Type:                stringSliceField(m, "type"),
		EasyAccessZone:      boolField(m, "easy_access_zone"),
	}
	if lm, ok := mapField(m, "location"); ok {
		latitude, okLat := floatField(lm, "latitude")
		longitude, okLon := floatField(lm, "longitude")
		if okLat && okLon {
			point.Location = &Coordinates{Latitude: latitude, Longitude: longitude}
		}
	}
	if am, ok := mapField(m, "address_details"); ok {
		point.AddressDetails = &AddressDetails{
			PostCode:       stringField(am, "post_code"),
			City:           stringField(am, "city"),
			Province:       stringField(am, "province"),
			Street:         stringField(am, "street"),
			BuildingNumber: stringField(am, "building_number"),
			FlatNumber:     stringField(am, "flat_number"),
			Country:        stringField(am, "country"),
		}
	}
	return point
}

func decodeReceiver(m map[string]any) *Receiver {
	receiver := &Receiver{
		Email: stringField(m, "email"),
		Name:  stringField(m, "name"),
	}
	if pm, ok := mapField(m, "phone_number"); ok {
		receiver.PhoneNumber = &PhoneNumber{
			Prefix: stringField(pm, "prefix"),
			Value:  stringField(pm, "value"),
		}
	}
	return receiver
}

func decodeCarbonFootprint(m map[string]any) *CarbonFootprint {
	return &CarbonFootprint{
		BoxMachineDelivery:        stringField(m, "box_machine_delivery"),
		AddressDelivery:           stringField(m, "address_delivery"),
		ChangeDeliveryTypePercent: stringField(m, "change_delivery_type_percent"),
		ChangeDeliveryTypeValue:   stringField(m, "change_delivery_type_value"),
		RedirectionURL:            stringField(m, "redirection_url"),
	}
}

// decodeAuthTokens decodes a token-endpoint response. The endpoint
// answers in snake_case already.
func decodeAuthTokens(body any) (*AuthTokens, error) {
	m, err := asMap(body, "auth tokens")
	if err != nil {
		return nil, err
	}
	accessToken, err := requiredString(m, "access_token", "auth tokens")
	if err != nil {
		return nil, err
	}
	refreshToken, err := requiredString(m, "refresh_token", "auth tokens")
	if err != nil {
		return nil, err
	}
	tokens := &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    7199,
		Scope:        "openid",
		IDToken:      stringField(m, "id_token"),
	}
	if tokenType := stringField(m, "token_type"); tokenType != "" {
		tokens.TokenType = tokenType
	}
	if expiresIn, ok := intField(m, "expires_in"); ok {
		tokens.ExpiresIn = expiresIn
	}
	if scope := stringField(m, "scope"); scope != "" {
		tokens.Scope = scope
	}
	return tokens, nil
}

func decodeProfile(body any) (*UserProfile, error) {
	m, err := asMap(body, "profile")
	if err != nil {
		return nil, err
	}
	profile := &UserProfile{
		ShoppingActive: boolField(m, "shopping_active"),
	}
	if pm, ok := mapField(m, "personal"); ok {
		profile.Personal = &ProfilePersonal{
			FirstName:   stringField(pm, "first_name"),
			LastName:    stringField(pm, "last_name"),
			Email:       stringField(pm, "email"),
			PhoneNumber: stringField(pm, "phone_number"),
		}
	}
	if dm, ok := mapField(m, "delivery"); ok {
		delivery := &ProfileDelivery{}
		if points, ok := mapField(dm, "points"); ok {
			items, _ := sliceField(points, "items")
			decoded := make([]ProfileDeliveryPoint, 0, len(items))
			for _, item := range items {
				im, err := asMap(item, "delivery point")
				if err != nil {
					return nil, err
				}
				decoded = append(decoded, decodeDeliveryPoint(im))
			}
			delivery.Points = &ProfileDeliveryPoints{Items: decoded}
		}
		profile.Delivery = delivery
	}
	return profile, nil
}

func decodeDeliveryPoint(m map[string]any) ProfileDeliveryPoint {
	point := ProfileDeliveryPoint{
		Name:         stringField(m, "name"),
		Type:         "PL",
		AddressLines: stringSliceField(m, "address_lines"),
		Active:       true,
		Preferred:    boolField(m, "preferred"),
	}
	if pointType := stringField(m, "type"); pointType != "" {
		point.Type = pointType
	}
	if active, ok := m["active"].(bool); ok {
		point.Active = active
	}
	return point
}

// decodeLockerList decodes the public locker directory feed. The feed is
// snake_cased at the source, so no key normalization happens here.
func decodeLockerList(body any) (*ParcelLockerListResponse, error) {
	m, err := asMap(body, "locker list")
	if err != nil {
		return nil, err
	}
	date, err := requiredString(m, "date", "locker list")
	if err != nil {
		return nil, err
	}
	page, ok := intField(m, "page")
	if !ok {
		return nil, &DecodeError{Entity: "locker list", Field: "page", Reason: "missing required field"}
	}
	totalPages, ok := intField(m, "total_pages")
	if !ok {
		return nil, &DecodeError{Entity: "locker list", Field: "total_pages", Reason: "missing required field"}
	}
	raw, ok := sliceField(m, "items")
	if !ok {
		return nil, &DecodeError{Entity: "locker list", Field: "items", Reason: "missing required field"}
	}
	items := make([]ParcelLocker, 0, len(raw))
	for _, item := range raw {
		im, err := asMap(item, "locker entry")
		if err != nil {
			return nil, err
		}
		locker, err := decodeLockerEntry(im)
		if err != nil {
			return nil, err
		}
		items = append(items, locker)
	}
	return &ParcelLockerListResponse{
		Date:       date,
		Page:       page,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}

// decodeLockerEntry expands the feed's short field codes into the
// ParcelLocker record.
func decodeLockerEntry(m map[string]any) (ParcelLocker, error) {
	name, err := requiredString(m, "n", "locker entry")
	if err != nil {
		return ParcelLocker{}, err
	}
	locker := ParcelLocker{
		Name:           name,
		Description:    stringField(m, "d"),
		City:           stringField(m, "m"),
		Province:       stringField(m, "g"),
		Street:         stringField(m, "r"),
		BuildingNumber: stringField(m, "o"),
		PostCode:       stringField(m, "c"),
		Country:        stringField(m, "e"),
		OpeningHours:   stringField(m, "f"),
	}
	locker.Type, _ = intField(m, "t")
	locker.PaymentType, _ = intField(m, "p")
	locker.Status, _ = intField(m, "s")
	if lm, ok := mapField(m, "l"); ok {
		locker.Latitude, _ = floatField(lm, "a")
		locker.Longitude, _ = floatField(lm, "o")
	}
	return locker, nil
}
