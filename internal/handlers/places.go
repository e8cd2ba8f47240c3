package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/response"
)

type PlacesService interface {
	SearchNearby(ctx context.Context, req dto.SearchNearbyRequest) ([]dto.Place, error)
	ChargingStations(ctx context.Context, lat, lng, distanceKm float64, maxResults int) ([]dto.ChargingStation, error)
}

type placesHandlers struct {
	ResponseHandler response.ResponseHandler
	PlacesSvc       PlacesService
}

func NewPlacesHandlers(deps *Deps) *placesHandlers {
	return &placesHandlers{
		ResponseHandler: deps.ResponseHandler,
		PlacesSvc:       deps.PlacesSvc,
	}
}

func (h *placesHandlers) SearchNearby(w http.ResponseWriter, r *http.Request) {
	var body dto.SearchNearbyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON payload"))
		return
	}

	places, err := h.PlacesSvc.SearchNearby(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, places)
}

func (h *placesHandlers) ChargingStations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, latErr := strconv.ParseFloat(query.Get("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(query.Get("longitude"), 64)
	if latErr != nil || lngErr != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("latitude and longitude are required"))
		return
	}

	distanceKm, _ := strconv.ParseFloat(query.Get("distance"), 64)
	maxResults, _ := strconv.Atoi(query.Get("maxresults"))

	stations, err := h.PlacesSvc.ChargingStations(r.Context(), lat, lng, distanceKm, maxResults)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, stations)
}
