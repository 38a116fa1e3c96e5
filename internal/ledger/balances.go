package ledger

import "github.com/housetab/housetab/internal/models"

// Balances maps a user ID to their signed net balance across a
// household's expenses. Positive means the household owes the user money;
// negative means the user owes the household.
type Balances map[string]float64

// Get returns the user's net balance, defaulting to zero for users with
// no entry. Consumers must treat a missing entry and an explicit zero
// identically.
func (b Balances) Get(userID string) float64 {
	return b[userID]
}

// Sum returns the total of all balances. Every debit has a matching
// credit, so the sum stays near zero up to floating-point drift.
func (b Balances) Sum() float64 {
	var total float64
	for _, v := range b {
		total += v
	}
	return total
}

func (b Balances) add(userID string, delta float64) {
	b[userID] += delta
}

// ComputeBalances folds a snapshot of a household's expenses into a net
// balance per user. For each expense the payer is credited the full
// amount, each participant is debited amount*share, and any recorded
// payment moves amountPaid from the payer back to the participant. A
// payer who is also a participant nets out through the same rules.
//
// The fold is order-independent and never fails; malformed share sums
// degrade into approximate balances rather than errors (creation-time
// validation is the only gate on share data).
func ComputeBalances(expenses []models.Expense) Balances {
	balances := make(Balances)
	for _, exp := range expenses {
		balances.add(exp.PayerID, exp.Amount)
		for _, p := range exp.Participants {
			balances.add(p.UserID, -exp.Amount*p.Share)
			if p.AmountPaid > 0 {
				balances.add(p.UserID, p.AmountPaid)
				balances.add(exp.PayerID, -p.AmountPaid)
			}
		}
	}
	return balances
}
