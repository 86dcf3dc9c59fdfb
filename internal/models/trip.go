package models

// Person is a trip participant.
//
// People have no lifecycle beyond trip membership: immutable once
// created except for rename. The service layer refuses to remove a
// person that is still referenced by an expense; the computation core
// itself tolerates a dangling reference.
type Person struct {
	// ID is the unique identifier within the trip (UUID format).
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Color is the display color used by the presentation layer
	// (e.g. "#ff6b6b"). Not interpreted by the server.
	Color string `json:"color,omitempty"`
}

// Budget holds optional spending limits for a trip, expressed in the
// trip currency. A zero limit means "no limit set".
type Budget struct {
	// Total is the overall trip budget.
	Total float64 `json:"total,omitempty"`

	// Categories maps expense category to a per-category limit.
	Categories map[Category]float64 `json:"categories,omitempty"`
}

// Trip is the aggregate everything else hangs off: a base currency, an
// ordered participant list, and an ordered expense list. All balances
// and settlements are expressed in Currency regardless of the currency
// each individual expense was recorded in.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Name is the human-readable trip name.
	Name string `json:"name"`

	// Description is an optional free-text description.
	Description string `json:"description,omitempty"`

	// Currency is the base currency code (e.g. "USD") that balances
	// and settlements are computed in.
	Currency string `json:"currency"`

	// StartDate and EndDate are ISO dates (YYYY-MM-DD), informational.
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	// People is the ordered list of participants.
	People []Person `json:"people"`

	// Expenses is the ordered list of shared expenses.
	Expenses []Expense `json:"expenses"`

	// Budget holds optional spending limits, nil when none are set.
	Budget *Budget `json:"budget,omitempty"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"created_at"`
}

// Person returns the participant with the given ID, or nil when the ID
// is unknown to this trip.
func (t *Trip) Person(personID string) *Person {
	for i := range t.People {
		if t.People[i].ID == personID {
			return &t.People[i]
		}
	}
	return nil
}
