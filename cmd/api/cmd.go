package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/bootstrap"
	"github.com/amirhodzic/snapvision-backend/internal/client/classifier"
	"github.com/amirhodzic/snapvision-backend/internal/client/identitytoolkit"
	"github.com/amirhodzic/snapvision-backend/internal/client/openchargemap"
	"github.com/amirhodzic/snapvision-backend/internal/client/places"
	"github.com/amirhodzic/snapvision-backend/internal/config"
	"github.com/amirhodzic/snapvision-backend/internal/handlers"
	"github.com/amirhodzic/snapvision-backend/internal/response"
	"github.com/amirhodzic/snapvision-backend/internal/router"
	"github.com/amirhodzic/snapvision-backend/internal/services"
	"github.com/amirhodzic/snapvision-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	timeout := time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second

	// external clients
	identity := identitytoolkit.NewAdapter(cfg.IdentityBaseURL, cfg.IdentityAPIKey, timeout)
	model := classifier.NewAdapter(cfg.ClassifierBaseURL, cfg.ClassifierModel, cfg.ClassifierTopK, timeout)
	placesClient := places.NewAdapter(cfg.PlacesBaseURL, cfg.PlacesAPIKey, timeout)
	chargeMap := openchargemap.NewAdapter(cfg.OpenChargeMapBaseURL, cfg.OpenChargeMapAPIKey, timeout)

	// stores
	ustore := store.NewUserStore(bs.Firestore, timeout)
	istore := store.NewImageStore(bs.Firestore, timeout)
	lstore := store.NewLedgerStore(bs.Firestore, timeout)
	astore := store.NewAssetStore(bs.Bucket, cfg.StorageBucket, timeout)

	// services
	aserv := services.NewAuthService(identity, bs.Firebase, ustore)
	userv := services.NewUserService(ustore, bs.Firebase, astore)
	iserv := services.NewImageService(model, istore, astore)
	lserv := services.NewLedgerService(lstore)
	pserv := services.NewPlacesService(placesClient, chargeMap)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.TokenSource = cfg.AuthTokenSource
	deps.CookieSecure = cfg.CookieSecure
	deps.CORSOrigins = cfg.CORSAllowedOrigins
	deps.AuthSvc = aserv
	deps.UserSvc = userv
	deps.ImageSvc = iserv
	deps.LedgerSvc = lserv
	deps.PlacesSvc = pserv

	// router
	r := router.NewRouter(deps)

	addr := ":" + cfg.Port
	bs.Log.Info("server starting", "addr", addr, "token_source", string(cfg.AuthTokenSource))

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		err = http.ListenAndServe(addr, r)
	}
	exitOnError("server start failed", err, bs.Log)
}
