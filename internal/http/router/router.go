package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier-dispatch/internal/http/handlers"
	mw "courier-dispatch/internal/http/middleware"
	"courier-dispatch/internal/http/middleware/ratelimit"
	"courier-dispatch/internal/logx"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Logger     logx.Logger
	Base       *handlers.Handlers
	Assignment *handlers.AssignmentHandler
	Dispatch   *handlers.DispatchHandler
	Courier    *handlers.CourierHandler
	History    *handlers.HistoryHandler
	RateLimit  *ratelimit.Middleware
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(mw.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/orders/{id}", func(r chi.Router) {
		r.Post("/assign", d.Assignment.Assign)
		r.Post("/complete", d.Assignment.Complete)
	})

	r.Route("/dispatch", func(r chi.Router) {
		r.Get("/candidates", d.Dispatch.Candidates)
		r.Get("/optimal", d.Dispatch.Optimal)
	})

	r.Route("/couriers", func(r chi.Router) {
		r.Post("/", d.Courier.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", d.Courier.Get)
			r.Get("/zone", d.Courier.Zone)
			r.Get("/history", d.History.CourierHistory)
			r.With(d.RateLimit.Handler()).Put("/position", d.Courier.UpdatePosition)
		})
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/regions", d.History.RegionReport)
		r.Get("/top-couriers", d.History.TopCouriers)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
