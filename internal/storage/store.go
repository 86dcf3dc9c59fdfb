// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/a28956325-cpu/trip-budget/internal/models"
)

// Sentinel errors returned by Store implementations.
var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrSettlementNotFound = errors.New("settlement not found")
)

// Store defines the interface for trip storage operations.
//
// Trips are persisted as whole aggregates: a mutation loads the trip,
// produces a new value, and writes it back wholesale via UpdateTrip.
// This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip. Missing IDs and timestamps are
	// populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a full trip aggregate by ID, including people,
	// expenses, splits and items. Returns ErrTripNotFound when absent.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips retrieves all trips, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// UpdateTrip replaces an existing trip aggregate wholesale.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip and everything attached to it.
	DeleteTrip(ctx context.Context, tripID string) error

	// RecordSettlement persists a settlement that was actually paid.
	RecordSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlements retrieves the recorded settlements for a trip,
	// newest first.
	ListSettlements(ctx context.Context, tripID string) ([]*models.Settlement, error)

	// DeleteSettlement removes one recorded settlement.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
