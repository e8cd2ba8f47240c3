// Package classifier calls the pretrained image-classification model, served
// as a TorchServe-style inference endpoint. The model is a black box: bytes
// in, label→confidence out.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/client"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
)

const serviceName = "classifier"

type Adapter struct {
	baseURL    string
	model      string
	topK       int
	httpClient *http.Client
}

func NewAdapter(baseURL, model string, topK int, timeout time.Duration) *Adapter {
	return &Adapter{
		baseURL:    baseURL,
		model:      model,
		topK:       topK,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Classify runs the model once on the image bytes and returns the top-K
// predictions sorted by confidence descending.
func (a *Adapter) Classify(ctx context.Context, imageBytes []byte) ([]models.Prediction, error) {
	endpoint := fmt.Sprintf("%s/predictions/%s", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(imageBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

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

	var scores map[string]float64
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, errs.NewUpstreamError(serviceName, resp.StatusCode, "malformed prediction response")
	}

	predictions := make([]models.Prediction, 0, len(scores))
	for label, confidence := range scores {
		predictions = append(predictions, models.Prediction{Label: label, Confidence: confidence})
	}
	sort.Slice(predictions, func(i, j int) bool {
		if predictions[i].Confidence != predictions[j].Confidence {
			return predictions[i].Confidence > predictions[j].Confidence
		}
		return predictions[i].Label < predictions[j].Label
	})

	if a.topK > 0 && len(predictions) > a.topK {
		predictions = predictions[:a.topK]
	}
	return predictions, nil
}
