// Package service orchestrates storage and the calculation engine, and
// enforces the entry-point validation the engine itself deliberately
// skips.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/a28956325-cpu/trip-budget/internal/calculator"
	"github.com/a28956325-cpu/trip-budget/internal/models"
	"github.com/a28956325-cpu/trip-budget/internal/storage"
)

// splitTolerance is the entry-form tolerance for split sums matching
// the expense amount.
const splitTolerance = 0.01

// Validation errors returned by TripService.
var (
	ErrEmptyName          = errors.New("name can't be empty")
	ErrEmptyCurrency      = errors.New("currency can't be empty")
	ErrNegativeAmount     = errors.New("amount must be non-negative")
	ErrUnknownSplitMethod = errors.New("unknown split method")
	ErrSplitMismatch      = errors.New("split amounts don't sum to the expense amount")
	ErrPayerNotMember     = errors.New("payer must be a trip participant")
	ErrPersonNotFound     = errors.New("person not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrPersonReferenced   = errors.New("person is referenced by an expense")
)

// TripService owns the trip lifecycle: CRUD on trips, people and
// expenses, plus the derived balance, settlement, summary and budget
// views. Derived views are recomputed from the stored aggregate on
// every call, never cached.
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage
// backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTrip validates and persists a new trip.
func (s *TripService) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.Name == "" {
		return ErrEmptyName
	}
	if trip.Currency == "" {
		return ErrEmptyCurrency
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return err
	}
	slog.Info("Trip created", "trip_id", trip.ID, "currency", trip.Currency, "people", len(trip.People))
	return nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return s.store.GetTrip(ctx, tripID)
}

// ListTrips retrieves all trips.
func (s *TripService) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	return s.store.ListTrips(ctx)
}

// UpdateTrip validates and replaces a trip wholesale. Derived views
// pick up the change on their next computation; there is nothing to
// invalidate.
func (s *TripService) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.Name == "" {
		return ErrEmptyName
	}
	if trip.Currency == "" {
		return ErrEmptyCurrency
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateTrip failed", "trip_id", trip.ID, "error", err)
		return err
	}
	slog.Info("Trip updated", "trip_id", trip.ID)
	return nil
}

// DeleteTrip removes a trip and everything attached to it.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", tripID, "error", err)
		return err
	}
	slog.Info("Trip deleted", "trip_id", tripID)
	return nil
}

// AddPerson appends a participant to the trip and returns the updated
// trip.
func (s *TripService) AddPerson(ctx context.Context, tripID string, person models.Person) (*models.Trip, error) {
	if person.Name == "" {
		return nil, ErrEmptyName
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	trip.People = append(trip.People, person)
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("AddPerson failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	slog.Info("Person added", "trip_id", tripID, "person_id", trip.People[len(trip.People)-1].ID)
	return trip, nil
}

// RenamePerson updates a participant's display name and color.
func (s *TripService) RenamePerson(ctx context.Context, tripID, personID, name, color string) (*models.Trip, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	person := trip.Person(personID)
	if person == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	person.Name = name
	if color != "" {
		person.Color = color
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("RenamePerson failed", "trip_id", tripID, "person_id", personID, "error", err)
		return nil, err
	}
	return trip, nil
}

// RemovePerson removes a participant. It refuses while any expense
// still references the person as payer, split member, or item sharer —
// referential integrity lives here, at the collaborator boundary, so
// the calculation core never has to.
func (s *TripService) RemovePerson(ctx context.Context, tripID, personID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.Person(personID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	for i := range trip.Expenses {
		if trip.Expenses[i].References(personID) {
			return nil, fmt.Errorf("%w: %s", ErrPersonReferenced, personID)
		}
	}

	people := trip.People[:0]
	for _, p := range trip.People {
		if p.ID != personID {
			people = append(people, p)
		}
	}
	trip.People = people

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("RemovePerson failed", "trip_id", tripID, "person_id", personID, "error", err)
		return nil, err
	}
	slog.Info("Person removed", "trip_id", tripID, "person_id", personID)
	return trip, nil
}

// validateExpense applies the entry-form rules: known split method,
// non-negative amount, payer among the trip's people, and (for the
// split-list methods) split amounts summing to the expense amount
// within a cent. Itemized expenses are exempt from the sum check —
// partial coverage is allowed.
func validateExpense(trip *models.Trip, e *models.Expense) error {
	if e.Amount < 0 {
		return ErrNegativeAmount
	}

	switch e.SplitMethod {
	case models.SplitEqual, models.SplitExact, models.SplitPercentage:
		var sum float64
		for _, split := range e.Splits {
			sum += split.Amount
		}
		if math.Abs(sum-e.Amount) > splitTolerance {
			return fmt.Errorf("%w: splits %.2f, expense %.2f", ErrSplitMismatch, sum, e.Amount)
		}
	case models.SplitItems:
		// Item totals may under- or overshoot the expense amount.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSplitMethod, e.SplitMethod)
	}

	if e.PaidBy != "" && trip.Person(e.PaidBy) == nil {
		return fmt.Errorf("%w: %s", ErrPayerNotMember, e.PaidBy)
	}
	return nil
}

// AddExpense validates and appends an expense, returning the updated
// trip.
func (s *TripService) AddExpense(ctx context.Context, tripID string, expense models.Expense) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if expense.Currency == "" {
		expense.Currency = trip.Currency
	}
	if err := validateExpense(trip, &expense); err != nil {
		slog.Warn("AddExpense validation failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	trip.Expenses = append(trip.Expenses, expense)
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("AddExpense failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	slog.Info("Expense added",
		"trip_id", tripID,
		"expense_id", trip.Expenses[len(trip.Expenses)-1].ID,
		"amount", expense.Amount,
		"currency", expense.Currency,
		"split_method", expense.SplitMethod,
	)
	return trip, nil
}

// UpdateExpense validates and replaces an existing expense in place.
func (s *TripService) UpdateExpense(ctx context.Context, tripID string, expense models.Expense) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if expense.Currency == "" {
		expense.Currency = trip.Currency
	}
	if err := validateExpense(trip, &expense); err != nil {
		slog.Warn("UpdateExpense validation failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	found := false
	for i := range trip.Expenses {
		if trip.Expenses[i].ID == expense.ID {
			if expense.CreatedAt == 0 {
				expense.CreatedAt = trip.Expenses[i].CreatedAt
			}
			trip.Expenses[i] = expense
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, expense.ID)
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateExpense failed", "trip_id", tripID, "expense_id", expense.ID, "error", err)
		return nil, err
	}
	return trip, nil
}

// DeleteExpense removes one expense from the trip.
func (s *TripService) DeleteExpense(ctx context.Context, tripID, expenseID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	found := false
	expenses := trip.Expenses[:0]
	for _, e := range trip.Expenses {
		if e.ID == expenseID {
			found = true
			continue
		}
		expenses = append(expenses, e)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, expenseID)
	}
	trip.Expenses = expenses

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("DeleteExpense failed", "trip_id", tripID, "expense_id", expenseID, "error", err)
		return nil, err
	}
	slog.Info("Expense deleted", "trip_id", tripID, "expense_id", expenseID)
	return trip, nil
}

// SetBudget replaces the trip's budget. A nil budget clears it.
func (s *TripService) SetBudget(ctx context.Context, tripID string, budget *models.Budget) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip.Budget = budget
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("SetBudget failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	return trip, nil
}

// Balances computes the trip's net balance per participant.
func (s *TripService) Balances(ctx context.Context, tripID string) (map[string]float64, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return calculator.Balances(trip), nil
}

// Settlements computes the suggested transfers that settle the trip.
func (s *TripService) Settlements(ctx context.Context, tripID string) ([]models.Transfer, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return calculator.Settlements(trip), nil
}

// PersonSummary computes one participant's paid/owed/balance view.
func (s *TripService) PersonSummary(ctx context.Context, tripID, personID string) (calculator.PersonSummary, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return calculator.PersonSummary{}, err
	}
	if trip.Person(personID) == nil {
		return calculator.PersonSummary{}, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	return calculator.SummaryFor(trip, personID), nil
}

// BudgetReport computes the trip's budget view.
func (s *TripService) BudgetReport(ctx context.Context, tripID string) (calculator.BudgetReport, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return calculator.BudgetReport{}, err
	}
	return calculator.BuildBudgetReport(trip), nil
}

// RecordSettlement stores a transfer that was actually paid. Recorded
// settlements are bookkeeping only; they never feed back into the
// balance computation.
func (s *TripService) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.Amount < 0 {
		return ErrNegativeAmount
	}
	if _, err := s.store.GetTrip(ctx, settlement.TripID); err != nil {
		return err
	}
	if err := s.store.RecordSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "trip_id", settlement.TripID, "error", err)
		return err
	}
	slog.Info("Settlement recorded",
		"trip_id", settlement.TripID,
		"from", settlement.From,
		"to", settlement.To,
		"amount", settlement.Amount,
	)
	return nil
}

// ListSettlements returns the recorded settlement log for a trip.
func (s *TripService) ListSettlements(ctx context.Context, tripID string) ([]*models.Settlement, error) {
	return s.store.ListSettlements(ctx, tripID)
}

// DeleteSettlement removes one recorded settlement.
func (s *TripService) DeleteSettlement(ctx context.Context, settlementID string) error {
	return s.store.DeleteSettlement(ctx, settlementID)
}
