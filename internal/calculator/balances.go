package calculator

import (
	"github.com/a28956325-cpu/trip-budget/internal/currency"
	"github.com/a28956325-cpu/trip-budget/internal/models"
)

// Balances folds all of a trip's expenses into one ledger: person ID to
// net balance in the trip currency. Positive means the person is owed
// money, negative means they owe.
//
// Every known participant appears in the result, with balance 0 when
// they have no expenses. An expense's amount is converted to the trip
// currency, credited to the payer, and each resolved share is converted
// and debited from its participant. A person referenced only by an
// expense (not in trip.People) gets a ledger entry on demand rather
// than being dropped. Expenses with an empty payer reference are
// skipped entirely — there is nobody to credit, so debiting the splits
// would break conservation.
//
// Intermediate arithmetic is unrounded; each entry is rounded to two
// decimals once, at return.
func Balances(trip *models.Trip) map[string]float64 {
	balances := make(map[string]float64, len(trip.People))
	for _, p := range trip.People {
		balances[p.ID] = 0
	}

	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		if e.PaidBy == "" {
			continue
		}

		balances[e.PaidBy] += currency.Convert(e.Amount, e.Currency, trip.Currency)

		for personID, share := range ResolveShares(e) {
			balances[personID] -= currency.Convert(share, e.Currency, trip.Currency)
		}
	}

	for personID, b := range balances {
		balances[personID] = roundCents(b)
	}
	return balances
}

// PersonSummary is a single participant's view of the trip ledger, in
// the trip currency.
type PersonSummary struct {
	// Paid is the sum of expense amounts this person paid.
	Paid float64 `json:"paid"`

	// Owed is the sum of this person's resolved shares.
	Owed float64 `json:"owed"`

	// Balance is Paid minus Owed. Positive = is owed money.
	Balance float64 `json:"balance"`
}

// SummaryFor computes one participant's totals. It restricts the same
// aggregation Balances performs to a single person, so the summaries of
// all participants sum to the same ledger Balances produces.
func SummaryFor(trip *models.Trip, personID string) PersonSummary {
	var paid, owed float64

	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		if e.PaidBy == "" {
			continue
		}

		if e.PaidBy == personID {
			paid += currency.Convert(e.Amount, e.Currency, trip.Currency)
		}
		if share, ok := ResolveShares(e)[personID]; ok {
			owed += currency.Convert(share, e.Currency, trip.Currency)
		}
	}

	return PersonSummary{
		Paid:    roundCents(paid),
		Owed:    roundCents(owed),
		Balance: roundCents(paid - owed),
	}
}
