package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a28956325-cpu/trip-budget/internal/api"
	"github.com/a28956325-cpu/trip-budget/internal/models"
	"github.com/a28956325-cpu/trip-budget/internal/service"
	"github.com/a28956325-cpu/trip-budget/internal/storage/sqlite"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	server := httptest.NewServer(api.New(service.NewTripService(store)).Router())
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createTripViaAPI(t *testing.T, server *httptest.Server) models.Trip {
	t.Helper()

	var trip models.Trip
	resp := doJSON(t, http.MethodPost, server.URL+"/api/trips", models.Trip{
		Name:     "Taipei",
		Currency: "USD",
		People: []models.Person{
			{Name: "Alice"},
			{Name: "Bob"},
			{Name: "Carol"},
		},
	}, &trip)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, trip.ID)
	return trip
}

func TestTripLifecycle(t *testing.T) {
	server := setupTestServer(t)
	trip := createTripViaAPI(t, server)

	var got models.Trip
	resp := doJSON(t, http.MethodGet, server.URL+"/api/trips/"+trip.ID, nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Taipei", got.Name)
	assert.Len(t, got.People, 3)

	var trips []models.Trip
	resp = doJSON(t, http.MethodGet, server.URL+"/api/trips", nil, &trips)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, trips, 1)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/trips/"+trip.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/trips/"+trip.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateTripRejectsBadPayload(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/trips", models.Trip{Currency: "USD"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/trips",
		bytes.NewBufferString(`{"name": "X", "currency": "USD", "bogus": 1}`))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestExpenseAndBalancesFlow(t *testing.T) {
	server := setupTestServer(t)
	trip := createTripViaAPI(t, server)
	alice, bob, carol := trip.People[0].ID, trip.People[1].ID, trip.People[2].ID

	var updated models.Trip
	resp := doJSON(t, http.MethodPost, server.URL+"/api/trips/"+trip.ID+"/expenses", models.Expense{
		Description: "Night market",
		Amount:      90,
		Currency:    "USD",
		PaidBy:      alice,
		SplitMethod: models.SplitEqual,
		Splits: []models.Split{
			{PersonID: alice, Amount: 30},
			{PersonID: bob, Amount: 30},
			{PersonID: carol, Amount: 30},
		},
	}, &updated)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, updated.Expenses, 1)

	var balancesResp struct {
		Balances map[string]float64 `json:"balances"`
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/trips/"+trip.ID+"/balances", nil, &balancesResp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 60, balancesResp.Balances[alice], 0.01)
	assert.InDelta(t, -30, balancesResp.Balances[bob], 0.01)

	var settlementsResp struct {
		Suggested []models.Transfer   `json:"suggested"`
		Recorded  []models.Settlement `json:"recorded"`
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/trips/"+trip.ID+"/settlements", nil, &settlementsResp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, settlementsResp.Suggested, 2)
	assert.Empty(t, settlementsResp.Recorded)

	var summary struct {
		Paid    float64 `json:"paid"`
		Owed    float64 `json:"owed"`
		Balance float64 `json:"balance"`
	}
	resp = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/trips/%s/people/%s/summary", server.URL, trip.ID, alice), nil, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 90, summary.Paid, 0.01)
	assert.InDelta(t, 30, summary.Owed, 0.01)
	assert.InDelta(t, 60, summary.Balance, 0.01)
}

func TestInvalidExpenseRejected(t *testing.T) {
	server := setupTestServer(t)
	trip := createTripViaAPI(t, server)
	alice := trip.People[0].ID

	resp := doJSON(t, http.MethodPost, server.URL+"/api/trips/"+trip.ID+"/expenses", models.Expense{
		Amount:      100,
		PaidBy:      alice,
		SplitMethod: models.SplitExact,
		Splits:      []models.Split{{PersonID: alice, Amount: 10}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRemoveReferencedPersonConflicts(t *testing.T) {
	server := setupTestServer(t)
	trip := createTripViaAPI(t, server)
	alice, bob := trip.People[0].ID, trip.People[1].ID

	resp := doJSON(t, http.MethodPost, server.URL+"/api/trips/"+trip.ID+"/expenses", models.Expense{
		Amount:      20,
		PaidBy:      alice,
		SplitMethod: models.SplitExact,
		Splits: []models.Split{
			{PersonID: alice, Amount: 10},
			{PersonID: bob, Amount: 10},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete,
		fmt.Sprintf("%s/api/trips/%s/people/%s", server.URL, trip.ID, bob), nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRecordSettlement(t *testing.T) {
	server := setupTestServer(t)
	trip := createTripViaAPI(t, server)
	alice, bob := trip.People[0].ID, trip.People[1].ID

	var recorded models.Settlement
	resp := doJSON(t, http.MethodPost, server.URL+"/api/trips/"+trip.ID+"/settlements", models.Settlement{
		From:   bob,
		To:     alice,
		Amount: 25.5,
		Note:   "paid in cash",
	}, &recorded)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, recorded.ID)
	assert.Equal(t, trip.ID, recorded.TripID)

	var settlementsResp struct {
		Suggested []models.Transfer   `json:"suggested"`
		Recorded  []models.Settlement `json:"recorded"`
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/trips/"+trip.ID+"/settlements", nil, &settlementsResp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, settlementsResp.Recorded, 1)
	assert.Equal(t, "paid in cash", settlementsResp.Recorded[0].Note)
}

func TestBudgetEndpoints(t *testing.T) {
	server := setupTestServer(t)
	trip := createTripViaAPI(t, server)
	alice := trip.People[0].ID

	resp := doJSON(t, http.MethodPost, server.URL+"/api/trips/"+trip.ID+"/expenses", models.Expense{
		Amount:      80,
		Category:    models.CategoryFood,
		PaidBy:      alice,
		SplitMethod: models.SplitExact,
		Splits:      []models.Split{{PersonID: alice, Amount: 80}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/trips/"+trip.ID+"/budget", models.Budget{
		Total: 100,
		Categories: map[models.Category]float64{
			models.CategoryFood: 50,
		},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		TotalSpent float64 `json:"total_spent"`
		Total      *struct {
			Over bool `json:"over"`
		} `json:"total"`
		Categories map[string]struct {
			Over bool `json:"over"`
		} `json:"categories"`
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/trips/"+trip.ID+"/budget", nil, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 80, report.TotalSpent, 0.01)
	require.NotNil(t, report.Total)
	assert.False(t, report.Total.Over)
	assert.True(t, report.Categories["food"].Over)
}

func TestHealthz(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
