package dto

// PlaceKind values accepted by the places gateway.
const (
	PlaceKindParking    = "parking"
	PlaceKindEVCharging = "ev_charging"
)

type SearchNearbyRequest struct {
	IncludedType   string  `json:"included_type"`
	MaxResultCount int     `json:"maxResultCount"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Radius         float64 `json:"radius"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is transient output; nothing here is persisted.
type Place struct {
	Location         LatLng `json:"location"`
	FormattedAddress string `json:"formattedAddress"`
	GoogleMapsURI    string `json:"googleMapsUri"`
	DisplayName      string `json:"displayName"`
}

type ChargingStation struct {
	Title      string  `json:"title"`
	Address    string  `json:"address"`
	DistanceKm float64 `json:"distance_km"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}
