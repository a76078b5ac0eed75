// Package httpapi exposes a small chi-routed HTTP surface for operating
// a running opcuad instance: liveness/readiness probes, Prometheus
// metrics, and pprof profiles. None of this is part of the OPC UA wire
// protocol (spec.md §6's admin/control surface, additive).
//
// Grounded on the teacher's pkg/controlplane/api.NewRouter: a chi router
// with RequestID/RealIP/Recoverer/Timeout middleware and an unauthenticated
// /health route group, generalized here from the control-plane's full
// REST surface to the health/metrics/pprof subset this domain needs.
package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/northlake-labs/opcua-server/pkg/telemetry/metrics"
	"github.com/northlake-labs/opcua-server/pkg/ua/service"
)

// NewMux builds the admin HTTP handler for a running service.
func NewMux(svc *service.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/healthz", http.StatusTemporaryRedirect)
	})

	r.Route("/healthz", func(r chi.Router) {
		r.Get("/", livenessHandler)
		r.Get("/ready", readinessHandler(svc))
	})

	if metrics.IsEnabled() {
		r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	}

	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		r.Handle("/allocs", pprof.Handler("allocs"))
		r.Handle("/block", pprof.Handler("block"))
		r.Handle("/goroutine", pprof.Handler("goroutine"))
		r.Handle("/heap", pprof.Handler("heap"))
		r.Handle("/mutex", pprof.Handler("mutex"))
		r.Handle("/threadcreate", pprof.Handler("threadcreate"))
	})

	return r
}

func livenessHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readinessHandler reports readiness from whether the Service and its
// Store are set (503 when either is nil); it makes no Store call. The
// service itself has no external dependency to probe once its NodeStore
// is open.
func readinessHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || svc.Store == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
