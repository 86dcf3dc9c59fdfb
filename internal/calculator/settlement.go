package calculator

import (
	"math"
	"sort"

	"github.com/a28956325-cpu/trip-budget/internal/models"
)

// deadZone absorbs floating-point noise everywhere a balance is
// compared to zero. Anything within a cent of zero counts as settled.
const deadZone = 0.01

type ledgerEntry struct {
	personID string
	balance  float64
}

// Settlements computes the trip's balances and reduces them to a
// near-minimal list of transfers that settles every debt.
func Settlements(trip *models.Trip) []models.Transfer {
	return PlanTransfers(Balances(trip))
}

// PlanTransfers produces directed transfers (debtor pays creditor) that
// drive every balance in the ledger to within a cent of zero.
//
// Greedy two-pointer sweep: debtors sorted most-negative first,
// creditors most-positive first, always matching the largest
// obligations against each other — the standard debt-simplification
// heuristic, near-minimal in transfer count (the true minimum is
// NP-hard). Ties sort by person ID so the output is deterministic.
//
// Because every expense credits its payer with exactly what its splits
// debit, total debt equals total credit and the sweep exhausts both
// lists together.
func PlanTransfers(balances map[string]float64) []models.Transfer {
	var debtors, creditors []ledgerEntry
	for personID, b := range balances {
		switch {
		case b < -deadZone:
			debtors = append(debtors, ledgerEntry{personID, b})
		case b > deadZone:
			creditors = append(creditors, ledgerEntry{personID, b})
		}
	}

	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].balance != debtors[j].balance {
			return debtors[i].balance < debtors[j].balance
		}
		return debtors[i].personID < debtors[j].personID
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].balance != creditors[j].balance {
			return creditors[i].balance > creditors[j].balance
		}
		return creditors[i].personID < creditors[j].personID
	})

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := math.Min(-debtor.balance, creditor.balance)
		if amount > deadZone {
			transfers = append(transfers, models.Transfer{
				From:   debtor.personID,
				To:     creditor.personID,
				Amount: roundCents(amount),
			})
		}

		debtor.balance += amount
		creditor.balance -= amount

		// Both pointers may advance in the same step when the pair
		// settled each other exactly.
		if math.Abs(debtor.balance) < deadZone {
			i++
		}
		if math.Abs(creditor.balance) < deadZone {
			j++
		}
	}

	return transfers
}
