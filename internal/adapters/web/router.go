// Package web configures the HTTP/JSON API of the farm service.
//
// Routes configured:
//   - GET /healthz - Health check endpoint (returns 200 OK)
//   - GET /metrics - Prometheus metrics endpoint
//   - GET /api/farms - Landing page cards
//   - GET /api/farms/{farmID} - Current snapshot of one farm
//   - GET /api/farms/{farmID}/ws - Websocket feed of the farm's card
//   - POST /api/farms/{farmID}/views - Open a detail view
//   - GET /api/views/{viewID} - Chart datasets of an open detail view
//   - DELETE /api/views/{viewID} - Close a detail view
package web

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/ports"
)

// Options tunes the router
type Options struct {
	// AllowedOrigins lists browser origins, besides the service's own host,
	// that may open websockets. "*" allows any origin.
	AllowedOrigins []string
}

// NewRouter configures HTTP endpoints for the dashboard and detail views.
func NewRouter(dashboard *ports.Dashboard, views *ports.Views, gatherer prometheus.Gatherer, opts Options) http.Handler {
	mux := http.NewServeMux()
	upgrader := newUpgrader(opts.AllowedOrigins)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /api/farms", handleListFarms(dashboard))
	mux.HandleFunc("GET /api/farms/{farmID}", handleGetFarm(dashboard))
	mux.HandleFunc("GET /api/farms/{farmID}/ws", handleWatchFarm(dashboard, upgrader))
	mux.HandleFunc("POST /api/farms/{farmID}/views", handleOpenView(views))
	mux.HandleFunc("GET /api/views/{viewID}", handleGetView(views))
	mux.HandleFunc("DELETE /api/views/{viewID}", handleCloseView(views))

	return logRequests(mux)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleListFarms(dashboard *ports.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"farms": dashboard.Cards(r.Context()),
		})
	}
}

func handleGetFarm(dashboard *ports.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID := domain.NormalizeFarmID(r.PathValue("farmID"))
		if farmID == "" {
			writeErrorMessage(w, http.StatusBadRequest, "farm id required")
			return
		}
		writeJSON(w, http.StatusOK, dashboard.Card(r.Context(), farmID))
	}
}

func handleOpenView(views *ports.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := views.Open(r.PathValue("farmID"))
		if errors.Is(err, domain.ErrInvalidFarmID) {
			writeErrorMessage(w, http.StatusBadRequest, "farm id required")
			return
		}
		if errors.Is(err, domain.ErrTooManyViews) {
			writeErrorMessage(w, http.StatusTooManyRequests, "too many open views")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to open view")
			writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		w.Header().Set("Location", "/api/views/"+view.ID.String())
		writeJSON(w, http.StatusCreated, map[string]string{
			"id":      view.ID.String(),
			"farm_id": view.FarmID,
		})
	}
}

func handleGetView(views *ports.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := lookupView(w, r, views)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newViewResponse(view))
	}
}

func handleCloseView(views *ports.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseViewID(w, r)
		if !ok {
			return
		}
		if err := views.Close(id); err != nil {
			writeViewError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func lookupView(w http.ResponseWriter, r *http.Request, views *ports.Views) (*ports.DetailView, bool) {
	id, ok := parseViewID(w, r)
	if !ok {
		return nil, false
	}
	view, err := views.Get(id)
	if err != nil {
		writeViewError(w, err)
		return nil, false
	}
	return view, true
}

func parseViewID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("viewID"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid view id")
		return uuid.Nil, false
	}
	return id, true
}

func writeViewError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrViewNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "view not found")
		return
	}
	log.Error().Err(err).Msg("view lookup failed")
	writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
}
