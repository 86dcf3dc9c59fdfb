package calculator

import (
	"github.com/a28956325-cpu/trip-budget/internal/currency"
	"github.com/a28956325-cpu/trip-budget/internal/models"
)

// BudgetLine compares spend against one configured limit, in the trip
// currency.
type BudgetLine struct {
	Limit     float64 `json:"limit"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Over      bool    `json:"over"`
}

// BudgetReport is the trip-wide budget view. Total is nil when no
// overall budget is set; Categories only carries entries for categories
// with a limit configured.
type BudgetReport struct {
	TotalSpent float64                        `json:"total_spent"`
	Total      *BudgetLine                    `json:"total,omitempty"`
	Categories map[models.Category]BudgetLine `json:"categories,omitempty"`
	ByCategory map[models.Category]float64    `json:"by_category"`
}

// CategorySpend sums expense amounts per category, converted to the
// trip currency and rounded to cents. Expenses without a category count
// under CategoryOther.
func CategorySpend(trip *models.Trip) map[models.Category]float64 {
	spend := make(map[models.Category]float64)
	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		cat := e.Category
		if cat == "" {
			cat = models.CategoryOther
		}
		spend[cat] += currency.Convert(e.Amount, e.Currency, trip.Currency)
	}
	for cat, amount := range spend {
		spend[cat] = roundCents(amount)
	}
	return spend
}

// BuildBudgetReport compares the trip's spend against its configured
// budget. Works with a nil budget: the report then only carries spend.
func BuildBudgetReport(trip *models.Trip) BudgetReport {
	spend := CategorySpend(trip)

	var total float64
	for _, amount := range spend {
		total += amount
	}

	report := BudgetReport{
		TotalSpent: roundCents(total),
		ByCategory: spend,
	}
	if trip.Budget == nil {
		return report
	}

	if trip.Budget.Total > 0 {
		report.Total = budgetLine(trip.Budget.Total, report.TotalSpent)
	}
	for cat, limit := range trip.Budget.Categories {
		if limit <= 0 {
			continue
		}
		if report.Categories == nil {
			report.Categories = make(map[models.Category]BudgetLine)
		}
		report.Categories[cat] = *budgetLine(limit, spend[cat])
	}
	return report
}

func budgetLine(limit, spent float64) *BudgetLine {
	return &BudgetLine{
		Limit:     limit,
		Spent:     spent,
		Remaining: roundCents(limit - spent),
		Over:      spent > limit,
	}
}
