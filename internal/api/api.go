// Package api exposes the trip service over a JSON HTTP interface.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/a28956325-cpu/trip-budget/internal/middleware"
	"github.com/a28956325-cpu/trip-budget/internal/service"
	"github.com/a28956325-cpu/trip-budget/internal/storage"
)

// API routes HTTP requests to the trip service.
type API struct {
	svc *service.TripService
}

// New creates the API around the given service.
func New(svc *service.TripService) *API {
	return &API{svc: svc}
}

// Router builds the chi router with logging and metrics middleware and
// all routes registered.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(func(req *http.Request) string {
		return chi.RouteContext(req.Context()).RoutePattern()
	}))

	r.Get("/healthz", a.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/trips", func(r chi.Router) {
		r.Post("/", a.handleCreateTrip)
		r.Get("/", a.handleListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", a.handleGetTrip)
			r.Put("/", a.handleUpdateTrip)
			r.Delete("/", a.handleDeleteTrip)

			r.Post("/people", a.handleAddPerson)
			r.Put("/people/{personID}", a.handleRenamePerson)
			r.Delete("/people/{personID}", a.handleRemovePerson)
			r.Get("/people/{personID}/summary", a.handlePersonSummary)

			r.Post("/expenses", a.handleAddExpense)
			r.Put("/expenses/{expenseID}", a.handleUpdateExpense)
			r.Delete("/expenses/{expenseID}", a.handleDeleteExpense)

			r.Get("/balances", a.handleBalances)
			r.Get("/settlements", a.handleSettlements)
			r.Post("/settlements", a.handleRecordSettlement)
			r.Delete("/settlements/{settlementID}", a.handleDeleteSettlement)

			r.Get("/budget", a.handleBudgetReport)
			r.Put("/budget", a.handleSetBudget)
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps service and storage errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrTripNotFound),
		errors.Is(err, storage.ErrSettlementNotFound),
		errors.Is(err, service.ErrPersonNotFound),
		errors.Is(err, service.ErrExpenseNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPersonReferenced):
		status = http.StatusConflict
	case errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrEmptyCurrency),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrUnknownSplitMethod),
		errors.Is(err, service.ErrSplitMismatch),
		errors.Is(err, service.ErrPayerNotMember):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
