package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

// CreateExpense persists a new expense and its participant shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}
	if expense.Date == 0 {
		expense.Date = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, household_id, name, amount, date, payer_id, is_completely_paid, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.HouseholdID, expense.Name, expense.Amount, expense.Date,
		expense.PayerID, boolToInt(expense.IsCompletelyPaid), expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, p := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO participant_shares (expense_id, user_id, share, is_paid, amount_paid, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			expense.ID, p.UserID, p.Share, boolToInt(p.IsPaid), p.AmountPaid, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its participant shares
// in creation order.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var completelyPaid int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, household_id, name, amount, date, payer_id, is_completely_paid, created_at, updated_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.HouseholdID, &expense.Name, &expense.Amount, &expense.Date,
		&expense.PayerID, &completelyPaid, &expense.CreatedAt, &expense.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.IsCompletelyPaid = completelyPaid != 0

	if expense.Participants, err = s.loadShares(ctx, expenseID); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByHousehold retrieves all expenses of a household, oldest first.
func (s *SQLiteStore) ListExpensesByHousehold(ctx context.Context, householdID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, household_id, name, amount, date, payer_id, is_completely_paid, created_at, updated_at
		 FROM expenses WHERE household_id = ? ORDER BY created_at, id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		var completelyPaid int
		if err := rows.Scan(&expense.ID, &expense.HouseholdID, &expense.Name, &expense.Amount,
			&expense.Date, &expense.PayerID, &completelyPaid, &expense.CreatedAt, &expense.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.IsCompletelyPaid = completelyPaid != 0
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if expenses[i].Participants, err = s.loadShares(ctx, expenses[i].ID); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// MarkSharePaid flips the share's paid flag with a conditional update so
// that two racing payments of the same share cannot both succeed, then
// recomputes the expense's completion flag in the same transaction.
func (s *SQLiteStore) MarkSharePaid(ctx context.Context, expenseID, userID string, amount float64) (*models.Expense, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE participant_shares SET is_paid = 1, amount_paid = ?
		 WHERE expense_id = ? AND user_id = ? AND is_paid = 0`,
		amount, expenseID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update participant share: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing share from one that is already paid.
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM participant_shares WHERE expense_id = ? AND user_id = ?`,
			expenseID, userID,
		).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: share of %s on expense %s", storage.ErrNotFound, userID, expenseID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check participant share: %w", err)
		}
		return nil, storage.ErrShareAlreadyPaid
	}

	var unpaid int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participant_shares WHERE expense_id = ? AND is_paid = 0`,
		expenseID,
	).Scan(&unpaid)
	if err != nil {
		return nil, fmt.Errorf("failed to count unpaid shares: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE expenses SET is_completely_paid = ?, updated_at = ? WHERE id = ?`,
		boolToInt(unpaid == 0), time.Now().Unix(), expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense completion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetExpense(ctx, expenseID)
}

// loadShares fetches the participant shares of one expense in creation order.
func (s *SQLiteStore) loadShares(ctx context.Context, expenseID string) ([]models.ParticipantShare, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, share, is_paid, amount_paid FROM participant_shares
		 WHERE expense_id = ? ORDER BY position`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant shares: %w", err)
	}
	defer rows.Close()

	var shares []models.ParticipantShare
	for rows.Next() {
		var p models.ParticipantShare
		var isPaid int
		if err := rows.Scan(&p.UserID, &p.Share, &isPaid, &p.AmountPaid); err != nil {
			return nil, fmt.Errorf("failed to scan participant share: %w", err)
		}
		p.IsPaid = isPaid != 0
		shares = append(shares, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participant shares: %w", err)
	}

	return shares, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
