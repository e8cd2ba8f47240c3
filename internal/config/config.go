package config

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/ilyakaznacheev/cleanenv"
)

// TokenSource selects where the auth middleware reads the identity token from.
// Deployments run one variant or the other, never both.
type TokenSource string

const (
	TokenSourceCookie TokenSource = "cookie"
	TokenSourceBearer TokenSource = "bearer"
)

type Config struct {
	ProjectID     string `env:"PROJECT_ID"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"info"`
	Port          string `env:"PORT" env-default:"8080"`
	TLSCertFile   string `env:"TLS_CERT_FILE"`
	TLSKeyFile    string `env:"TLS_KEY_FILE"`
	StorageBucket string `env:"STORAGE_BUCKET"`

	AuthTokenSource TokenSource `env:"AUTH_TOKEN_SOURCE" env-default:"cookie"`
	CookieSecure    bool        `env:"COOKIE_SECURE" env-default:"true"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:9000"`

	// Uniform bound applied to every outbound call.
	UpstreamTimeoutSeconds int `env:"UPSTREAM_TIMEOUT_SECONDS" env-default:"10"`

	IdentityBaseURL string `env:"IDENTITY_BASE_URL" env-default:"https://identitytoolkit.googleapis.com"`
	IdentityAPIKey  string `env:"IDENTITY_API_KEY"`

	ClassifierBaseURL string `env:"CLASSIFIER_BASE_URL"`
	ClassifierModel   string `env:"CLASSIFIER_MODEL" env-default:"resnet50"`
	ClassifierTopK    int    `env:"CLASSIFIER_TOP_K" env-default:"3"`

	PlacesBaseURL string `env:"PLACES_BASE_URL" env-default:"https://places.googleapis.com"`
	PlacesAPIKey  string `env:"PLACES_API_KEY"`

	OpenChargeMapBaseURL string `env:"OPENCHARGEMAP_BASE_URL" env-default:"https://api.openchargemap.io"`
	OpenChargeMapAPIKey  string `env:"OPENCHARGEMAP_API_KEY"`

	// Optional Secret Manager resource names (projects/{p}/secrets/{s}).
	// When set they override the plain-env values above at bootstrap.
	IdentityAPIKeySecret      string `env:"IDENTITY_API_KEY_SECRET"`
	PlacesAPIKeySecret        string `env:"PLACES_API_KEY_SECRET"`
	OpenChargeMapAPIKeySecret string `env:"OPENCHARGEMAP_API_KEY_SECRET"`
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// ResolveSecrets replaces API keys with their Secret Manager values for every
// *_SECRET name that is set. Keys never live in source or images this way.
func (c *Config) ResolveSecrets(ctx context.Context, client *secretmanager.Client) error {
	pairs := []struct {
		secret string
		target *string
	}{
		{c.IdentityAPIKeySecret, &c.IdentityAPIKey},
		{c.PlacesAPIKeySecret, &c.PlacesAPIKey},
		{c.OpenChargeMapAPIKeySecret, &c.OpenChargeMapAPIKey},
	}

	for _, p := range pairs {
		if p.secret == "" {
			continue
		}
		resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
			Name: p.secret + "/versions/latest",
		})
		if err != nil {
			return fmt.Errorf("access secret %s: %w", p.secret, err)
		}
		*p.target = string(resp.GetPayload().GetData())
	}

	return nil
}
