// Package ledger implements the balance and settlement engine: it derives
// net balances from a household's expenses, plans a minimal set of
// settling transactions, and validates payment transitions on expenses.
//
// ComputeBalances and PlanSettlement are pure functions over a snapshot of
// the expense collection; they hold no state and are safe to call
// concurrently. ApplyPayment mutates a single in-memory expense; callers
// that persist the result must do so through a conditional update so
// concurrent payments of the same share cannot both succeed.
package ledger

import "errors"

// Tolerance is the epsilon used for every approximate money comparison.
// Balances within Tolerance of zero are considered settled.
const Tolerance = 0.01

var (
	// ErrExpenseNotFound indicates the referenced expense does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotParticipant indicates the acting user has no share in the expense.
	ErrNotParticipant = errors.New("user is not a participant of this expense")

	// ErrAlreadyPaid indicates the participant's share was already marked paid.
	ErrAlreadyPaid = errors.New("share is already paid")

	// ErrAmountMismatch indicates the paid amount does not match the owed
	// portion within Tolerance.
	ErrAmountMismatch = errors.New("paid amount does not match the owed share")

	// ErrInvalidExpense indicates a creation-time validation failure.
	ErrInvalidExpense = errors.New("invalid expense")
)
