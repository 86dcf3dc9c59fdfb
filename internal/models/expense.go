package models

// Category classifies an expense for budget tracking and reporting.
type Category string

// Expense categories.
const (
	CategoryFood          Category = "food"
	CategoryClothing      Category = "clothing"
	CategoryAccommodation Category = "accommodation"
	CategoryTransport     Category = "transport"
	CategoryEducation     Category = "education"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// SplitMethod enumerates how an expense is divided among participants.
type SplitMethod string

// Split methods. Equal, exact and percentage all carry their result in
// the Splits list; Items carries per-line-item assignments instead.
const (
	SplitEqual      SplitMethod = "equal"
	SplitExact      SplitMethod = "exact"
	SplitPercentage SplitMethod = "percentage"
	SplitItems      SplitMethod = "items"
)

// Split is one participant's share of an expense, in the expense's own
// currency. Amount is authoritative; Percentage is an entry-form aid
// kept for round-tripping and never used in computation.
type Split struct {
	PersonID   string  `json:"person_id"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage,omitempty"`
}

// Item is a line item within an expense (e.g. one dish on a restaurant
// bill), split equally among the people in SplitAmong.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name describes the item (e.g. "Ramen", "Museum ticket").
	Name string `json:"name"`

	// Amount is the item price in the expense currency.
	Amount float64 `json:"amount"`

	// SplitAmong lists the person IDs sharing this item.
	SplitAmong []string `json:"split_among"`
}

// Expense is one shared expense: who paid, how much, in what currency,
// and how it is divided.
//
// For SplitEqual, SplitExact and SplitPercentage the division lives in
// Splits; for SplitItems it lives in Items. The sum of Split amounts is
// expected to match Amount within a cent (entry-form enforced); the sum
// of Item amounts need not — uncovered remainder is charged to nobody.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable expense description.
	Description string `json:"description"`

	// Amount is the full expense amount in Currency. Non-negative.
	Amount float64 `json:"amount"`

	// Currency is the code the expense was recorded in; it may differ
	// from the trip currency.
	Currency string `json:"currency"`

	// Date is the expense date as an ISO date (YYYY-MM-DD).
	Date string `json:"date,omitempty"`

	// Category classifies the expense for budget tracking.
	Category Category `json:"category,omitempty"`

	// PaidBy references the person who paid.
	PaidBy string `json:"paid_by"`

	// SplitMethod selects which of Splits or Items applies.
	SplitMethod SplitMethod `json:"split_method"`

	// Splits carries the division for equal/exact/percentage methods.
	Splits []Split `json:"splits,omitempty"`

	// Items carries the division for the items method.
	Items []Item `json:"items,omitempty"`

	// Notes is optional free text.
	Notes string `json:"notes,omitempty"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// References reports whether the expense mentions the given person as
// payer, split member, or item sharer.
func (e *Expense) References(personID string) bool {
	if e.PaidBy == personID {
		return true
	}
	for _, s := range e.Splits {
		if s.PersonID == personID {
			return true
		}
	}
	for _, item := range e.Items {
		for _, id := range item.SplitAmong {
			if id == personID {
				return true
			}
		}
	}
	return false
}
