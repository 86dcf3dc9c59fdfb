// Package calculator implements the balance and settlement engine:
// per-expense share resolution, trip-wide balance aggregation, greedy
// debt simplification, and per-person and budget reports.
//
// Every function here is pure: no I/O, no shared state, no errors. The
// engine is a best-effort aggregator, not a validator — it computes
// over whatever splits it is given and tolerates dangling person
// references by ledgering them under their unknown ID.
package calculator

import (
	"math"

	"github.com/a28956325-cpu/trip-budget/internal/models"
)

// ResolveShares returns each participant's owed share of a single
// expense, keyed by person ID, in the expense's own currency.
//
// For the items method each item's amount is divided evenly among the
// people sharing it; an item assigned to nobody contributes nothing.
// For every other method the share is read directly from each split
// entry's amount (the percentage field is an entry-form aid, never
// authoritative). People absent from the split owe nothing.
func ResolveShares(e *models.Expense) map[string]float64 {
	shares := make(map[string]float64)

	if e.SplitMethod == models.SplitItems {
		for _, item := range e.Items {
			n := len(item.SplitAmong)
			if n == 0 {
				continue
			}
			// Even division, no remainder redistribution: a sub-cent
			// remainder stays unassigned, matching entry-form behavior.
			perPerson := item.Amount / float64(n)
			for _, personID := range item.SplitAmong {
				shares[personID] += perPerson
			}
		}
		return shares
	}

	for _, s := range e.Splits {
		shares[s.PersonID] += s.Amount
	}
	return shares
}

// roundCents rounds to two decimal places, half away from zero.
func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
