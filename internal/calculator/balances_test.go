package calculator

import (
	"math"
	"reflect"
	"testing"

	"github.com/a28956325-cpu/trip-budget/internal/models"
)

func equalSplit(amount float64, personIDs ...string) []models.Split {
	per := amount / float64(len(personIDs))
	splits := make([]models.Split, len(personIDs))
	for i, id := range personIDs {
		splits[i] = models.Split{PersonID: id, Amount: per}
	}
	return splits
}

func threePersonTrip() *models.Trip {
	return &models.Trip{
		ID:       "trip-1",
		Currency: "USD",
		People: []models.Person{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
			{ID: "carol", Name: "Carol"},
		},
	}
}

func TestBalancesEmptyTrip(t *testing.T) {
	trip := threePersonTrip()

	balances := Balances(trip)

	if len(balances) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(balances))
	}
	for personID, b := range balances {
		if b != 0 {
			t.Errorf("balance[%s] = %v, want 0", personID, b)
		}
	}
}

func TestBalancesEqualSplit(t *testing.T) {
	trip := threePersonTrip()
	trip.Expenses = []models.Expense{
		{
			Amount:      90,
			Currency:    "USD",
			PaidBy:      "alice",
			SplitMethod: models.SplitEqual,
			Splits:      equalSplit(90, "alice", "bob", "carol"),
		},
	}

	balances := Balances(trip)

	want := map[string]float64{"alice": 60, "bob": -30, "carol": -30}
	for personID, wantBalance := range want {
		if math.Abs(balances[personID]-wantBalance) > 0.01 {
			t.Errorf("balance[%s] = %v, want %v", personID, balances[personID], wantBalance)
		}
	}
}

func TestBalancesConservation(t *testing.T) {
	trip := threePersonTrip()
	trip.Expenses = []models.Expense{
		{
			Amount:      123.45,
			Currency:    "USD",
			PaidBy:      "alice",
			SplitMethod: models.SplitExact,
			Splits: []models.Split{
				{PersonID: "alice", Amount: 23.45},
				{PersonID: "bob", Amount: 50},
				{PersonID: "carol", Amount: 50},
			},
		},
		{
			Amount:      3000,
			Currency:    "JPY",
			PaidBy:      "bob",
			SplitMethod: models.SplitEqual,
			Splits:      equalSplit(3000, "alice", "bob", "carol"),
		},
		{
			Amount:      88.8,
			Currency:    "EUR",
			PaidBy:      "carol",
			SplitMethod: models.SplitPercentage,
			Splits: []models.Split{
				{PersonID: "alice", Amount: 44.4, Percentage: 50},
				{PersonID: "bob", Amount: 44.4, Percentage: 50},
			},
		},
	}

	balances := Balances(trip)

	var sum float64
	for _, b := range balances {
		sum += b
	}
	if math.Abs(sum) > 0.02 {
		t.Errorf("sum of balances = %v, want ~0", sum)
	}
}

func TestBalancesMultiCurrency(t *testing.T) {
	// 1000 JPY at 148.5 JPY/USD is ~6.73 USD, split equally two ways.
	trip := &models.Trip{
		Currency: "USD",
		People: []models.Person{
			{ID: "alice"},
			{ID: "bob"},
		},
		Expenses: []models.Expense{
			{
				Amount:      1000,
				Currency:    "JPY",
				PaidBy:      "alice",
				SplitMethod: models.SplitEqual,
				Splits:      equalSplit(1000, "alice", "bob"),
			},
		},
	}

	balances := Balances(trip)

	if math.Abs(balances["alice"]-3.37) > 0.01 {
		t.Errorf("balance[alice] = %v, want ~3.37", balances["alice"])
	}
	if math.Abs(balances["bob"]+3.37) > 0.01 {
		t.Errorf("balance[bob] = %v, want ~-3.37", balances["bob"])
	}
}

func TestBalancesIdempotent(t *testing.T) {
	trip := threePersonTrip()
	trip.Expenses = []models.Expense{
		{
			Amount:      60,
			Currency:    "USD",
			PaidBy:      "bob",
			SplitMethod: models.SplitEqual,
			Splits:      equalSplit(60, "alice", "bob", "carol"),
		},
	}

	first := Balances(trip)
	second := Balances(trip)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestBalancesDanglingReferences(t *testing.T) {
	// A split member unknown to trip.People gets a ledger entry on
	// demand instead of crashing the aggregation.
	trip := &models.Trip{
		Currency: "USD",
		People:   []models.Person{{ID: "alice"}},
		Expenses: []models.Expense{
			{
				Amount:      40,
				Currency:    "USD",
				PaidBy:      "alice",
				SplitMethod: models.SplitExact,
				Splits: []models.Split{
					{PersonID: "alice", Amount: 20},
					{PersonID: "ghost", Amount: 20},
				},
			},
		},
	}

	balances := Balances(trip)

	if math.Abs(balances["alice"]-20) > 0.01 {
		t.Errorf("balance[alice] = %v, want 20", balances["alice"])
	}
	if math.Abs(balances["ghost"]+20) > 0.01 {
		t.Errorf("balance[ghost] = %v, want -20", balances["ghost"])
	}
}

func TestBalancesSkipsExpenseWithoutPayer(t *testing.T) {
	trip := threePersonTrip()
	trip.Expenses = []models.Expense{
		{
			Amount:      30,
			Currency:    "USD",
			SplitMethod: models.SplitEqual,
			Splits:      equalSplit(30, "alice", "bob", "carol"),
		},
	}

	balances := Balances(trip)

	for personID, b := range balances {
		if b != 0 {
			t.Errorf("balance[%s] = %v, want 0 (payerless expense skipped)", personID, b)
		}
	}
}

func TestSummaryForMatchesBalances(t *testing.T) {
	trip := threePersonTrip()
	trip.Expenses = []models.Expense{
		{
			Amount:      90,
			Currency:    "USD",
			PaidBy:      "alice",
			SplitMethod: models.SplitEqual,
			Splits:      equalSplit(90, "alice", "bob", "carol"),
		},
		{
			Amount:      1000,
			Currency:    "JPY",
			PaidBy:      "bob",
			SplitMethod: models.SplitEqual,
			Splits:      equalSplit(1000, "alice", "bob"),
		},
	}

	balances := Balances(trip)
	for _, p := range trip.People {
		summary := SummaryFor(trip, p.ID)
		if math.Abs(summary.Balance-balances[p.ID]) > 0.01 {
			t.Errorf("summary balance[%s] = %v, ledger says %v", p.ID, summary.Balance, balances[p.ID])
		}
		if math.Abs(summary.Paid-summary.Owed-summary.Balance) > 0.01 {
			t.Errorf("summary[%s] inconsistent: paid %v - owed %v != balance %v",
				p.ID, summary.Paid, summary.Owed, summary.Balance)
		}
	}
}

func TestSummaryForItemizedExpense(t *testing.T) {
	trip := threePersonTrip()
	trip.Expenses = []models.Expense{
		{
			Amount:      50,
			Currency:    "USD",
			PaidBy:      "alice",
			SplitMethod: models.SplitItems,
			Items: []models.Item{
				{Name: "Dinner", Amount: 30, SplitAmong: []string{"alice", "bob"}},
				{Name: "Drinks", Amount: 20, SplitAmong: []string{"alice", "bob", "carol"}},
			},
		},
	}

	carol := SummaryFor(trip, "carol")
	if math.Abs(carol.Owed-6.67) > 0.01 {
		t.Errorf("carol owed = %v, want ~6.67", carol.Owed)
	}
	alice := SummaryFor(trip, "alice")
	if math.Abs(alice.Owed-21.67) > 0.01 {
		t.Errorf("alice owed = %v, want ~21.67", alice.Owed)
	}
	if math.Abs(alice.Paid-50) > 0.01 {
		t.Errorf("alice paid = %v, want 50", alice.Paid)
	}
}
