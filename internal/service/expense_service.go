// Package service orchestrates the ledger engine over persistent storage.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/housetab/housetab/internal/ledger"
	"github.com/housetab/housetab/internal/metrics"
	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

// ErrNotMember indicates the acting user does not belong to the household.
var ErrNotMember = errors.New("user is not a member of this household")

// ExpenseService owns the expense lifecycle: creation, listing, balance
// and settlement computation, and payment recording.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries the fields of a new expense. The acting user
// must be a member of the household.
type CreateExpenseInput struct {
	HouseholdID  string
	Name         string
	Amount       float64
	Date         int64
	PayerID      string
	Participants []models.ParticipantShare
}

// CreateExpense validates and persists a new expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, in CreateExpenseInput) (*models.Expense, error) {
	if err := s.requireMember(ctx, in.HouseholdID, userID); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		HouseholdID:  in.HouseholdID,
		Name:         in.Name,
		Amount:       in.Amount,
		Date:         in.Date,
		PayerID:      in.PayerID,
		Participants: in.Participants,
	}
	if err := ledger.ValidateExpense(expense); err != nil {
		slog.Warn("CreateExpense validation failed", "household_id", in.HouseholdID, "error", err)
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "household_id", in.HouseholdID, "error", err)
		return nil, fmt.Errorf("create expense: %w", err)
	}

	metrics.ExpensesCreated.Inc()
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"household_id", expense.HouseholdID,
		"amount", expense.Amount,
		"participants", len(expense.Participants),
	)
	return expense, nil
}

// ListExpenses returns all expenses of a household, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID, householdID string) ([]models.Expense, error) {
	if err := s.requireMember(ctx, householdID, userID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByHousehold(ctx, householdID)
	if err != nil {
		slog.Error("ListExpenses failed", "household_id", householdID, "error", err)
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Balances computes net balances over a snapshot of the household's
// expenses. Results reflect the collection at the moment of retrieval;
// payments recorded concurrently appear in later snapshots.
func (s *ExpenseService) Balances(ctx context.Context, userID, householdID string) (ledger.Balances, error) {
	if err := s.requireMember(ctx, householdID, userID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByHousehold(ctx, householdID)
	if err != nil {
		slog.Error("Balances failed", "household_id", householdID, "error", err)
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return ledger.ComputeBalances(expenses), nil
}

// SettleUp plans the transactions that settle the household's current
// balances.
func (s *ExpenseService) SettleUp(ctx context.Context, userID, householdID string) ([]ledger.Transaction, error) {
	balances, err := s.Balances(ctx, userID, householdID)
	if err != nil {
		return nil, err
	}
	plan := ledger.PlanSettlement(balances)
	metrics.SettlementPlans.Inc()
	slog.Info("Settlement planned",
		"household_id", householdID,
		"transactions", len(plan),
	)
	return plan, nil
}

// RecordPayment applies one participant's payment against an expense.
// Validation happens in memory first; the persisted transition goes
// through the store's conditional update so a racing duplicate payment
// surfaces as ErrAlreadyPaid rather than being applied twice.
func (s *ExpenseService) RecordPayment(ctx context.Context, expenseID, userID string, amount float64) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.PaymentsRejected.WithLabelValues("not_found").Inc()
			return nil, ledger.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("fetch expense: %w", err)
	}

	if err := ledger.ApplyPayment(expense, userID, amount); err != nil {
		metrics.PaymentsRejected.WithLabelValues(rejectReason(err)).Inc()
		slog.Warn("RecordPayment rejected",
			"expense_id", expenseID,
			"user_id", userID,
			"error", err,
		)
		return nil, err
	}

	updated, err := s.store.MarkSharePaid(ctx, expenseID, userID, amount)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrShareAlreadyPaid):
			metrics.PaymentsRejected.WithLabelValues("already_paid").Inc()
			return nil, ledger.ErrAlreadyPaid
		case errors.Is(err, storage.ErrNotFound):
			metrics.PaymentsRejected.WithLabelValues("not_found").Inc()
			return nil, ledger.ErrExpenseNotFound
		}
		slog.Error("RecordPayment persistence failed", "expense_id", expenseID, "error", err)
		return nil, fmt.Errorf("mark share paid: %w", err)
	}

	metrics.PaymentsRecorded.Inc()
	slog.Info("Payment recorded",
		"expense_id", expenseID,
		"user_id", userID,
		"amount", amount,
		"completely_paid", updated.IsCompletelyPaid,
	)
	return updated, nil
}

func (s *ExpenseService) requireMember(ctx context.Context, householdID, userID string) error {
	household, err := s.store.GetHousehold(ctx, householdID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: household %s", storage.ErrNotFound, householdID)
		}
		return fmt.Errorf("fetch household: %w", err)
	}
	if !household.HasMember(userID) {
		return ErrNotMember
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrNotParticipant):
		return "not_participant"
	case errors.Is(err, ledger.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, ledger.ErrAmountMismatch):
		return "amount_mismatch"
	default:
		return "other"
	}
}
