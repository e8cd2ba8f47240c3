// Package identitytoolkit wraps the Identity Toolkit REST API. The Admin SDK
// deliberately has no password grant, so sign-in goes through the public
// endpoint keyed by the web API key.
package identitytoolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/client"
	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
)

const serviceName = "identity provider"

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

func (a *Adapter) SignInWithPassword(ctx context.Context, email, password string) (dto.Session, error) {
	var session dto.Session

	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return session, err
	}

	endpoint := fmt.Sprintf("%s/v1/accounts:signInWithPassword?key=%s",
		a.baseURL, url.QueryEscape(a.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return session, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if client.IsTimeout(err) {
			return session, errs.NewTimeoutError(serviceName)
		}
		return session, errs.NewUpstreamError(serviceName, 0, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return session, errs.NewUpstreamError(serviceName, resp.StatusCode, "")
	}

	if resp.StatusCode != http.StatusOK {
		return session, errs.NewUpstreamError(serviceName, resp.StatusCode, providerMessage(raw))
	}

	var out struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return session, errs.NewUpstreamError(serviceName, resp.StatusCode, "malformed sign-in response")
	}

	session = dto.Session{
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    out.ExpiresIn,
		UID:          out.LocalID,
		Email:        out.Email,
	}
	return session, nil
}

// providerMessage pulls the short error message (EMAIL_NOT_FOUND etc.) out of
// the provider's error envelope.
func providerMessage(raw []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error.Message == "" {
		return "login failed"
	}
	return envelope.Error.Message
}
