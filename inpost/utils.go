package inpost

import "math"

const earthRadiusKm = 6371

// haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func haversine(lon1, lat1, lon2, lat2 float64) float64 {
	lon1 = lon1 * math.Pi / 180
	lat1 = lat1 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180

	dlon := lon2 - lon1
	dlat := lat2 - lat1
	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

var languageCodes = map[string]string{
	"pl": "pl-PL",
	"en": "en-US",
}

// languageCode maps a short language tag to the Accept-Language value
// the API expects, defaulting to en-US.
func languageCode(language string) string {
	if code, ok := languageCodes[language]; ok {
		return code
	}
	return "en-US"
}
