package ledger

import (
	"fmt"
	"math"

	"github.com/housetab/housetab/internal/models"
)

// ApplyPayment records a participant's payment on the expense in memory.
// Validations run in order and each failure is terminal for the attempt:
// the user must hold a share, the share must still be unpaid, and the
// amount must match amount*share within Tolerance. Nothing is mutated
// until all checks pass.
//
// On success the share is marked paid with the transferred amount and
// IsCompletelyPaid is recomputed from all shares.
func ApplyPayment(exp *models.Expense, userID string, amount float64) error {
	share := exp.ShareOf(userID)
	if share == nil {
		return ErrNotParticipant
	}
	if share.IsPaid {
		return ErrAlreadyPaid
	}
	expected := exp.Amount * share.Share
	if math.Abs(amount-expected) > Tolerance {
		return fmt.Errorf("%w: expected %.2f, got %.2f", ErrAmountMismatch, expected, amount)
	}

	share.IsPaid = true
	share.AmountPaid = amount

	allPaid := true
	for _, p := range exp.Participants {
		if !p.IsPaid {
			allPaid = false
			break
		}
	}
	exp.IsCompletelyPaid = allPaid
	return nil
}

// ValidateExpense checks an expense at creation time. This is the only
// place the share-sum invariant is enforced; balances computed later
// tolerate drift instead of re-validating.
func ValidateExpense(exp *models.Expense) error {
	if exp.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidExpense)
	}
	if exp.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if exp.PayerID == "" {
		return fmt.Errorf("%w: payer is required", ErrInvalidExpense)
	}
	if len(exp.Participants) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidExpense)
	}

	seen := make(map[string]bool, len(exp.Participants))
	var total float64
	for _, p := range exp.Participants {
		if p.UserID == "" {
			return fmt.Errorf("%w: participant user is required", ErrInvalidExpense)
		}
		if seen[p.UserID] {
			return fmt.Errorf("%w: duplicate participant %s", ErrInvalidExpense, p.UserID)
		}
		seen[p.UserID] = true
		if p.Share <= 0 || p.Share > 1 {
			return fmt.Errorf("%w: share for %s must be in (0, 1]", ErrInvalidExpense, p.UserID)
		}
		total += p.Share
	}
	if math.Abs(total-1) > Tolerance {
		return fmt.Errorf("%w: participant shares must sum to 1, got %.2f", ErrInvalidExpense, total)
	}
	return nil
}
