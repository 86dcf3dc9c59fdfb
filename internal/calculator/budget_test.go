package calculator

import (
	"math"
	"testing"

	"github.com/a28956325-cpu/trip-budget/internal/models"
)

func TestCategorySpend(t *testing.T) {
	trip := &models.Trip{
		Currency: "USD",
		Expenses: []models.Expense{
			{Amount: 40, Currency: "USD", Category: models.CategoryFood},
			{Amount: 1485, Currency: "JPY", Category: models.CategoryFood},
			{Amount: 25, Currency: "USD", Category: models.CategoryTransport},
			{Amount: 10, Currency: "USD"}, // uncategorized counts as other
		},
	}

	spend := CategorySpend(trip)

	if math.Abs(spend[models.CategoryFood]-50) > 0.01 {
		t.Errorf("food spend = %v, want ~50 (40 USD + 1485 JPY)", spend[models.CategoryFood])
	}
	if math.Abs(spend[models.CategoryTransport]-25) > 0.01 {
		t.Errorf("transport spend = %v, want 25", spend[models.CategoryTransport])
	}
	if math.Abs(spend[models.CategoryOther]-10) > 0.01 {
		t.Errorf("other spend = %v, want 10", spend[models.CategoryOther])
	}
}

func TestBuildBudgetReport(t *testing.T) {
	trip := &models.Trip{
		Currency: "USD",
		Budget: &models.Budget{
			Total: 100,
			Categories: map[models.Category]float64{
				models.CategoryFood:      30,
				models.CategoryTransport: 50,
			},
		},
		Expenses: []models.Expense{
			{Amount: 45, Currency: "USD", Category: models.CategoryFood},
			{Amount: 20, Currency: "USD", Category: models.CategoryTransport},
		},
	}

	report := BuildBudgetReport(trip)

	if math.Abs(report.TotalSpent-65) > 0.01 {
		t.Errorf("total spent = %v, want 65", report.TotalSpent)
	}
	if report.Total == nil {
		t.Fatal("expected a total budget line")
	}
	if report.Total.Over {
		t.Error("total should not be over budget")
	}
	if math.Abs(report.Total.Remaining-35) > 0.01 {
		t.Errorf("total remaining = %v, want 35", report.Total.Remaining)
	}

	food := report.Categories[models.CategoryFood]
	if !food.Over {
		t.Error("food should be over budget (45 spent, 30 limit)")
	}
	if math.Abs(food.Remaining+15) > 0.01 {
		t.Errorf("food remaining = %v, want -15", food.Remaining)
	}

	transport := report.Categories[models.CategoryTransport]
	if transport.Over {
		t.Error("transport should not be over budget")
	}
}

func TestBuildBudgetReportNoBudget(t *testing.T) {
	trip := &models.Trip{
		Currency: "USD",
		Expenses: []models.Expense{
			{Amount: 12.5, Currency: "USD", Category: models.CategoryFood},
		},
	}

	report := BuildBudgetReport(trip)

	if report.Total != nil {
		t.Errorf("expected nil total line, got %+v", report.Total)
	}
	if len(report.Categories) != 0 {
		t.Errorf("expected no category lines, got %v", report.Categories)
	}
	if math.Abs(report.TotalSpent-12.5) > 0.01 {
		t.Errorf("total spent = %v, want 12.5", report.TotalSpent)
	}
}
