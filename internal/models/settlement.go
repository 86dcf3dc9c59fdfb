package models

// Transfer is a single suggested payment (debtor pays creditor) in the
// trip currency. Transfers are derived from balances on every request
// and never persisted.
type Transfer struct {
	// From is the person ID of the debtor.
	From string `json:"from"`

	// To is the person ID of the creditor.
	To string `json:"to"`

	// Amount is the payment amount in the trip currency.
	Amount float64 `json:"amount"`
}

// Settlement records a transfer that was actually paid. Recorded
// settlements are bookkeeping for the presentation layer only; they do
// not feed back into balance computation.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// TripID is the trip this settlement belongs to.
	TripID string `json:"trip_id"`

	// From is the person ID of the debtor who paid.
	From string `json:"from"`

	// To is the person ID of the creditor who was paid.
	To string `json:"to"`

	// Amount is the payment amount in the trip currency.
	Amount float64 `json:"amount"`

	// Note is an optional description.
	Note string `json:"note,omitempty"`

	// SettledAt is the Unix timestamp when the payment was recorded.
	SettledAt int64 `json:"settled_at"`
}
