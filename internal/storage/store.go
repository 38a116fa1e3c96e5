// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/housetab/housetab/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrShareAlreadyPaid is returned by MarkSharePaid when the share's
	// paid flag was already set, including when a concurrent payment won
	// the conditional update first.
	ErrShareAlreadyPaid = errors.New("participant share already paid")
)

// Store defines the persistence surface for the expense engine. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateExpense persists a new expense with its participant shares.
	// The expense ID and timestamps are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, shares in creation order.
	// Returns an error wrapping ErrNotFound if it does not exist.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByHousehold retrieves all expenses of a household,
	// oldest first.
	ListExpensesByHousehold(ctx context.Context, householdID string) ([]models.Expense, error)

	// MarkSharePaid atomically flips the participant's paid flag and
	// records the amount paid, then recomputes the expense's completion
	// flag in the same transaction. If the flag was already set it fails
	// with ErrShareAlreadyPaid so that at most one of two racing payment
	// attempts succeeds. Returns the updated expense.
	MarkSharePaid(ctx context.Context, expenseID, userID string, amount float64) (*models.Expense, error)

	// CreateHousehold persists a new household and its member list.
	CreateHousehold(ctx context.Context, household *models.Household) error

	// GetHousehold retrieves a household by ID with its members.
	GetHousehold(ctx context.Context, householdID string) (*models.Household, error)

	// AddHouseholdMembers adds users to a household, ignoring users that
	// are already members.
	AddHouseholdMembers(ctx context.Context, householdID string, userIDs []string) error

	// ListHouseholdsByMember retrieves the households a user belongs to.
	ListHouseholdsByMember(ctx context.Context, userID string) ([]models.Household, error)

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) if no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) if no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
