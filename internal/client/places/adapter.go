// Package places proxies the Google Places v1 nearby search.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/client"
	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
)

const serviceName = "places"

// fieldMask limits the response to exactly what the Place output schema needs.
const fieldMask = "places.displayName,places.formattedAddress,places.location,places.googleMapsUri"

type Adapter struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAdapter(baseURL, apiKey string, timeout time.Duration) *Adapter {
	return &Adapter{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchNearby returns places of the given type around the point, ranked by
// distance ascending. Upstream failures propagate status and body verbatim.
func (a *Adapter) SearchNearby(ctx context.Context, includedType string, lat, lng, radiusMeters float64, maxResults int) ([]dto.Place, error) {
	payload := map[string]any{
		"includedTypes":  []string{includedType},
		"maxResultCount": maxResults,
		"rankPreference": "DISTANCE",
		"locationRestriction": map[string]any{
			"circle": map[string]any{
				"center": map[string]any{
					"latitude":  lat,
					"longitude": lng,
				},
				"radius": radiusMeters,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/v1/places:searchNearby", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", a.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if client.IsTimeout(err) {
			return nil, errs.NewTimeoutError(serviceName)
		}
		return nil, errs.NewUpstreamError(serviceName, 0, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewUpstreamError(serviceName, resp.StatusCode, "")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewUpstreamError(serviceName, resp.StatusCode, string(raw))
	}

	var out struct {
		Places []struct {
			DisplayName struct {
				Text string `json:"text"`
			} `json:"displayName"`
			FormattedAddress string `json:"formattedAddress"`
			GoogleMapsURI    string `json:"googleMapsUri"`
			Location         struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"location"`
		} `json:"places"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.NewUpstreamError(serviceName, resp.StatusCode, "malformed places response")
	}

	results := make([]dto.Place, 0, len(out.Places))
	for _, p := range out.Places {
		results = append(results, dto.Place{
			Location:         dto.LatLng{Lat: p.Location.Latitude, Lng: p.Location.Longitude},
			FormattedAddress: p.FormattedAddress,
			GoogleMapsURI:    p.GoogleMapsURI,
			DisplayName:      p.DisplayName.Text,
		})
	}
	return results, nil
}
