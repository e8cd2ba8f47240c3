package services

import (
	"context"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
)

const (
	defaultPlacesRadius     = 500.0
	defaultPlacesMaxResults = 10
	defaultChargingDistance = 10.0
)

type placesPSClient interface {
	SearchNearby(ctx context.Context, includedType string, lat, lng, radiusMeters float64, maxResults int) ([]dto.Place, error)
}

type chargeMapPSClient interface {
	ChargingStations(ctx context.Context, lat, lng, distanceKm float64, maxResults int) ([]dto.ChargingStation, error)
}

type placesService struct {
	places    placesPSClient
	chargeMap chargeMapPSClient
}

func NewPlacesService(places placesPSClient, chargeMap chargeMapPSClient) *placesService {
	return &placesService{
		places:    places,
		chargeMap: chargeMap,
	}
}

func (s *placesService) SearchNearby(ctx context.Context, req dto.SearchNearbyRequest) ([]dto.Place, error) {
	var includedType string
	switch req.IncludedType {
	case dto.PlaceKindParking:
		includedType = "parking"
	case dto.PlaceKindEVCharging:
		includedType = "electric_vehicle_charging_station"
	default:
		return nil, errs.NewValidationError("included_type must be parking or ev_charging")
	}

	radius := req.Radius
	if radius <= 0 {
		radius = defaultPlacesRadius
	}
	maxResults := req.MaxResultCount
	if maxResults <= 0 {
		maxResults = defaultPlacesMaxResults
	}

	return s.places.SearchNearby(ctx, includedType, req.Latitude, req.Longitude, radius, maxResults)
}

func (s *placesService) ChargingStations(ctx context.Context, lat, lng, distanceKm float64, maxResults int) ([]dto.ChargingStation, error) {
	if distanceKm <= 0 {
		distanceKm = defaultChargingDistance
	}
	if maxResults <= 0 {
		maxResults = defaultPlacesMaxResults
	}
	return s.chargeMap.ChargingStations(ctx, lat, lng, distanceKm, maxResults)
}
