package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/a28956325-cpu/trip-budget/internal/models"
	"github.com/a28956325-cpu/trip-budget/internal/storage"
)

// CreateTrip persists a new trip aggregate to the database.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTrip(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateTrip replaces an existing trip aggregate wholesale: the trip
// row is updated and all aggregate children (people, expenses, budget)
// are deleted and reinserted in one transaction. Recorded settlements
// are a separate log and survive trip edits.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", trip.ID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", storage.ErrTripNotFound, trip.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}

	var budgetTotal float64
	if trip.Budget != nil {
		budgetTotal = trip.Budget.Total
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE trips SET name = ?, description = ?, currency = ?, start_date = ?, end_date = ?, budget_total = ?
		 WHERE id = ?`,
		trip.Name, trip.Description, trip.Currency,
		trip.StartDate, trip.EndDate, budgetTotal, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	// Splits, items and item shares cascade off the expense rows.
	for _, stmt := range []string{
		"DELETE FROM people WHERE trip_id = ?",
		"DELETE FROM expenses WHERE trip_id = ?",
		"DELETE FROM budget_categories WHERE trip_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, trip.ID); err != nil {
			return fmt.Errorf("failed to clear trip children: %w", err)
		}
	}

	if err := insertChildren(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertTrip writes the trip row and all of its children inside tx.
func insertTrip(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	var budgetTotal float64
	if trip.Budget != nil {
		budgetTotal = trip.Budget.Total
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, description, currency, start_date, end_date, budget_total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Description, trip.Currency,
		trip.StartDate, trip.EndDate, budgetTotal, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	return insertChildren(ctx, tx, trip)
}

// insertChildren writes people, expenses and budget categories.
func insertChildren(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	for i := range trip.People {
		p := &trip.People[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO people (trip_id, id, name, color, position) VALUES (?, ?, ?, ?, ?)",
			trip.ID, p.ID, p.Name, p.Color, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i := range trip.Expenses {
		if err := insertExpense(ctx, tx, trip.ID, &trip.Expenses[i], i); err != nil {
			return err
		}
	}

	if trip.Budget != nil {
		for cat, amount := range trip.Budget.Categories {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO budget_categories (trip_id, category, amount) VALUES (?, ?, ?)",
				trip.ID, string(cat), amount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert budget category: %w", err)
			}
		}
	}

	return nil
}

// insertExpense writes one expense with its splits and items inside tx.
func insertExpense(ctx context.Context, tx *sql.Tx, tripID string, e *models.Expense, position int) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, description, amount, currency, date, category, paid_by, split_method, notes, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, tripID, e.Description, e.Amount, e.Currency, e.Date,
		string(e.Category), e.PaidBy, string(e.SplitMethod), e.Notes, position, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range e.Splits {
		var pct interface{}
		if split.Percentage != 0 {
			pct = split.Percentage
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO splits (expense_id, person_id, amount, percentage) VALUES (?, ?, ?, ?)",
			e.ID, split.PersonID, split.Amount, pct,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	for i := range e.Items {
		item := &e.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO items (id, expense_id, name, amount, position) VALUES (?, ?, ?, ?, ?)",
			item.ID, e.ID, item.Name, item.Amount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		for _, personID := range item.SplitAmong {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO item_shares (item_id, person_id) VALUES (?, ?)",
				item.ID, personID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item share: %w", err)
			}
		}
	}

	return nil
}

// GetTrip retrieves a full trip aggregate by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	var budgetTotal float64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, currency, start_date, end_date, budget_total, created_at
		 FROM trips WHERE id = ?`,
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.Description, &trip.Currency,
		&trip.StartDate, &trip.EndDate, &budgetTotal, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrTripNotFound, tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	if err := s.loadPeople(ctx, trip); err != nil {
		return nil, err
	}
	if err := s.loadExpenses(ctx, trip); err != nil {
		return nil, err
	}
	if err := s.loadBudget(ctx, trip, budgetTotal); err != nil {
		return nil, err
	}

	return trip, nil
}

func (s *SQLiteStore) loadPeople(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, color FROM people WHERE trip_id = ? ORDER BY position",
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Color); err != nil {
			return fmt.Errorf("failed to scan person: %w", err)
		}
		trip.People = append(trip.People, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate people: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadExpenses(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, currency, date, category, paid_by, split_method, notes, created_at
		 FROM expenses WHERE trip_id = ? ORDER BY position`,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Expense
		var category, method string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Currency, &e.Date,
			&category, &e.PaidBy, &method, &e.Notes, &e.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Category = models.Category(category)
		e.SplitMethod = models.SplitMethod(method)
		trip.Expenses = append(trip.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range trip.Expenses {
		if err := s.loadExpenseChildren(ctx, &trip.Expenses[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) loadExpenseChildren(ctx context.Context, e *models.Expense) error {
	splitRows, err := s.db.QueryContext(ctx,
		"SELECT person_id, amount, percentage FROM splits WHERE expense_id = ? ORDER BY person_id",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var split models.Split
		var pct sql.NullFloat64
		if err := splitRows.Scan(&split.PersonID, &split.Amount, &pct); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		if pct.Valid {
			split.Percentage = pct.Float64
		}
		e.Splits = append(e.Splits, split)
	}
	if err := splitRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount FROM items WHERE expense_id = ? ORDER BY position",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Amount); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		e.Items = append(e.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	for i := range e.Items {
		item := &e.Items[i]
		shareRows, err := s.db.QueryContext(ctx,
			"SELECT person_id FROM item_shares WHERE item_id = ? ORDER BY person_id",
			item.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get item shares: %w", err)
		}
		for shareRows.Next() {
			var personID string
			if err := shareRows.Scan(&personID); err != nil {
				shareRows.Close()
				return fmt.Errorf("failed to scan item share: %w", err)
			}
			item.SplitAmong = append(item.SplitAmong, personID)
		}
		shareRows.Close()
		if err := shareRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate item shares: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadBudget(ctx context.Context, trip *models.Trip, budgetTotal float64) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, amount FROM budget_categories WHERE trip_id = ?",
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get budget categories: %w", err)
	}
	defer rows.Close()

	var categories map[models.Category]float64
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return fmt.Errorf("failed to scan budget category: %w", err)
		}
		if categories == nil {
			categories = make(map[models.Category]float64)
		}
		categories[models.Category(category)] = amount
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate budget categories: %w", err)
	}

	if budgetTotal != 0 || categories != nil {
		trip.Budget = &models.Budget{Total: budgetTotal, Categories: categories}
	}
	return nil
}

// ListTrips retrieves all trip aggregates, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM trips ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// DeleteTrip removes a trip; children cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrTripNotFound, tripID)
	}
	return nil
}
