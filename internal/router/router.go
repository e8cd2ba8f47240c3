package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/amirhodzic/snapvision-backend/internal/handlers"
	"github.com/amirhodzic/snapvision-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	cors := middleware.NewCORSMiddleware(deps.CORSOrigins)
	authmw := middleware.NewAuth(deps.Firebase, deps.TokenSource, deps.ResponseHandler)

	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler)

	ah := handlers.NewAuthHandlers(deps)
	ush := handlers.NewUserHandlers(deps)
	ish := handlers.NewImageHandlers(deps)
	lh := handlers.NewLedgerHandlers(deps)
	ph := handlers.NewPlacesHandlers(deps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Mount("/auth", ah.AuthRoutes())

	// places is a stateless proxy; no identity required
	r.Post("/search-nearby", ph.SearchNearby)
	r.Get("/charging-stations", ph.ChargingStations)

	// everything below requires a verified identity token
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth)
		r.Mount("/user", ush.UserRoutes())
		r.Mount("/image", ish.ImageRoutes())

		// ledger routes live at the root per the public API
		r.Post("/add-purchase", lh.AddPurchase)
		r.Post("/add-expense", lh.AddExpense)
		r.Get("/get-expenses", lh.GetExpenses)
	})

	return r
}
