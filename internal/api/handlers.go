package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/a28956325-cpu/trip-budget/internal/models"
)

func (a *API) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var trip models.Trip
	if err := decodeJSON(r, &trip); err != nil {
		badRequest(w, "invalid trip payload: "+err.Error())
		return
	}

	if err := a.svc.CreateTrip(r.Context(), &trip); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (a *API) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := a.svc.ListTrips(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if trips == nil {
		trips = []*models.Trip{}
	}
	writeJSON(w, http.StatusOK, trips)
}

func (a *API) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := a.svc.GetTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (a *API) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var trip models.Trip
	if err := decodeJSON(r, &trip); err != nil {
		badRequest(w, "invalid trip payload: "+err.Error())
		return
	}
	trip.ID = chi.URLParam(r, "tripID")

	if err := a.svc.UpdateTrip(r.Context(), &trip); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (a *API) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.DeleteTrip(r.Context(), chi.URLParam(r, "tripID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var person models.Person
	if err := decodeJSON(r, &person); err != nil {
		badRequest(w, "invalid person payload: "+err.Error())
		return
	}

	trip, err := a.svc.AddPerson(r.Context(), chi.URLParam(r, "tripID"), person)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (a *API) handleRenamePerson(w http.ResponseWriter, r *http.Request) {
	var person models.Person
	if err := decodeJSON(r, &person); err != nil {
		badRequest(w, "invalid person payload: "+err.Error())
		return
	}

	trip, err := a.svc.RenamePerson(r.Context(),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "personID"),
		person.Name, person.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (a *API) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	trip, err := a.svc.RemovePerson(r.Context(),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "personID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (a *API) handlePersonSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.svc.PersonSummary(r.Context(),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "personID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := decodeJSON(r, &expense); err != nil {
		badRequest(w, "invalid expense payload: "+err.Error())
		return
	}

	trip, err := a.svc.AddExpense(r.Context(), chi.URLParam(r, "tripID"), expense)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (a *API) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := decodeJSON(r, &expense); err != nil {
		badRequest(w, "invalid expense payload: "+err.Error())
		return
	}
	expense.ID = chi.URLParam(r, "expenseID")

	trip, err := a.svc.UpdateExpense(r.Context(), chi.URLParam(r, "tripID"), expense)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (a *API) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	trip, err := a.svc.DeleteExpense(r.Context(),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (a *API) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := a.svc.Balances(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balances": balances})
}

// settlementsResponse pairs the computed plan with the recorded log so
// the client renders both from one request.
type settlementsResponse struct {
	Suggested []models.Transfer    `json:"suggested"`
	Recorded  []*models.Settlement `json:"recorded"`
}

func (a *API) handleSettlements(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	suggested, err := a.svc.Settlements(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	recorded, err := a.svc.ListSettlements(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := settlementsResponse{Suggested: suggested, Recorded: recorded}
	if resp.Suggested == nil {
		resp.Suggested = []models.Transfer{}
	}
	if resp.Recorded == nil {
		resp.Recorded = []*models.Settlement{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleRecordSettlement(w http.ResponseWriter, r *http.Request) {
	var settlement models.Settlement
	if err := decodeJSON(r, &settlement); err != nil {
		badRequest(w, "invalid settlement payload: "+err.Error())
		return
	}
	settlement.TripID = chi.URLParam(r, "tripID")

	if err := a.svc.RecordSettlement(r.Context(), &settlement); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, settlement)
}

func (a *API) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.DeleteSettlement(r.Context(), chi.URLParam(r, "settlementID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleBudgetReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.svc.BudgetReport(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *API) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var budget models.Budget
	if err := decodeJSON(r, &budget); err != nil {
		badRequest(w, "invalid budget payload: "+err.Error())
		return
	}

	trip, err := a.svc.SetBudget(r.Context(), chi.URLParam(r, "tripID"), &budget)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
