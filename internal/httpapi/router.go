// internal/httpapi/router.go

// Package httpapi assembles the HTTP surface of the activities service: the
// signup API, the static front end, and the operational endpoints.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mergington-activities/internal/common/config"
	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/directory"
)

// API carries the handler dependencies. The store arrives by reference so
// tests can build isolated instances.
type API struct {
	cfg       *config.Config
	store     *directory.Store
	obs       *observability.Observability
	logger    logger.Logger
	responder *apperrors.Responder
}

func NewAPI(cfg *config.Config, store *directory.Store, obs *observability.Observability, log logger.Logger) *API {
	scoped := log.WithFields(map[string]interface{}{"component": "httpapi"})
	return &API{
		cfg:       cfg,
		store:     store,
		obs:       obs,
		logger:    scoped,
		responder: apperrors.NewResponder(scoped),
	}
}

// Router builds the chi router with the full middleware chain and every
// route the service serves.
func (a *API) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(a.requestID)
	r.Use(a.requestLogger)
	r.Use(a.requestMetrics)
	r.Use(a.recoverer)

	r.Get("/", a.handleRoot)
	r.Get("/activities", a.handleListActivities)
	r.Route("/activities/{name}", func(r chi.Router) {
		r.Post("/signup", a.handleSignup)
		r.Post("/unregister", a.handleUnregister)
	})

	r.Get("/health", a.handleHealth)
	r.Get("/ready", a.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	a.mountStatic(r)

	if a.cfg.Server.EnablePprof {
		r.Mount("/debug", middleware.Profiler())
	}

	return r
}

// mountStatic serves the front-end assets under the configured route.
func (a *API) mountStatic(r chi.Router) {
	route := strings.TrimSuffix(a.cfg.Static.Route, "/")
	fs := http.StripPrefix(route, http.FileServer(http.Dir(a.cfg.Static.Dir)))
	r.Get(route+"/*", func(w http.ResponseWriter, req *http.Request) {
		// The file server 301s ".../index.html" to "./", which would bounce
		// the root redirect's target. Serve the directory index directly.
		if strings.HasSuffix(req.URL.Path, "/index.html") {
			req.URL.Path = strings.TrimSuffix(req.URL.Path, "index.html")
			if req.URL.RawPath != "" {
				req.URL.RawPath = strings.TrimSuffix(req.URL.RawPath, "index.html")
			}
		}
		fs.ServeHTTP(w, req)
	})
}
