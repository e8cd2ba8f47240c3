// Package openchargemap wraps the OpenChargeMap POI search.
package openchargemap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/client"
	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
)

const serviceName = "openchargemap"

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

func (a *Adapter) ChargingStations(ctx context.Context, lat, lng, distanceKm float64, maxResults int) ([]dto.ChargingStation, error) {
	params := url.Values{}
	params.Set("output", "json")
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("distance", strconv.FormatFloat(distanceKm, 'f', -1, 64))
	params.Set("distanceunit", "km")
	params.Set("maxresults", strconv.Itoa(maxResults))
	params.Set("key", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"/v3/poi/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

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

	var out []struct {
		AddressInfo struct {
			Title        string  `json:"Title"`
			AddressLine1 string  `json:"AddressLine1"`
			Distance     float64 `json:"Distance"`
			Latitude     float64 `json:"Latitude"`
			Longitude    float64 `json:"Longitude"`
		} `json:"AddressInfo"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.NewUpstreamError(serviceName, resp.StatusCode, "malformed poi response")
	}

	stations := make([]dto.ChargingStation, 0, len(out))
	for _, poi := range out {
		stations = append(stations, dto.ChargingStation{
			Title:      poi.AddressInfo.Title,
			Address:    poi.AddressInfo.AddressLine1,
			DistanceKm: poi.AddressInfo.Distance,
			Latitude:   poi.AddressInfo.Latitude,
			Longitude:  poi.AddressInfo.Longitude,
		})
	}
	return stations, nil
}
