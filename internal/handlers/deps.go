package handlers

import (
	"log/slog"

	"github.com/amirhodzic/snapvision-backend/internal/config"
	"github.com/amirhodzic/snapvision-backend/internal/middleware"
	"github.com/amirhodzic/snapvision-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        middleware.TokenVerifier

	TokenSource  config.TokenSource
	CookieSecure bool
	CORSOrigins  []string

	AuthSvc   AuthService
	UserSvc   UserService
	ImageSvc  ImageService
	LedgerSvc LedgerService
	PlacesSvc PlacesService
}
