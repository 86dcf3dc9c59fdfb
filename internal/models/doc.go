// Package models defines the core domain models for the trip budget
// service.
//
// # Model Overview
//
//   - Trip: the unit of computation — a base currency, a participant
//     list, and an ordered list of expenses
//   - Person: a trip participant, identified by ID within the trip
//   - Expense: one shared expense with a payer, a currency, and a split
//     across participants
//   - Split / Item: the two split representations an expense can carry
//   - Transfer: a computed settlement suggestion (derived, never stored)
//   - Settlement: a transfer that was recorded as actually paid
//
// # Design Principles
//
//  1. Trip is an immutable-by-convention aggregate: mutations produce a
//     new Trip value that is written back wholesale. Balance and
//     settlement views are re-derived from the aggregate on every
//     request, never cached.
//  2. Relationships use ID strings instead of pointers, so the
//     aggregate serializes cleanly and a dangling reference degrades to
//     an unknown ID rather than a nil dereference.
//  3. Amounts are float64 with two-decimal rounding applied only at
//     computation boundaries; models carry whatever they were given.
package models
