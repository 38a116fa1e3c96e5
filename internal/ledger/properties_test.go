package ledger

import (
	"fmt"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/housetab/housetab/internal/models"
)

// genExpense draws an expense with equal shares among 1-6 participants
// out of a small fixed user pool, optionally with some shares prepaid.
func genExpense(t *rapid.T) models.Expense {
	users := []string{"u1", "u2", "u3", "u4", "u5", "u6"}

	n := rapid.IntRange(1, len(users)).Draw(t, "participants")
	payer := users[rapid.IntRange(0, len(users)-1).Draw(t, "payer")]
	amount := float64(rapid.IntRange(1, 100000).Draw(t, "cents")) / 100

	exp := models.Expense{
		Name:    "expense",
		Amount:  amount,
		PayerID: payer,
	}
	share := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		ps := models.ParticipantShare{UserID: users[i], Share: share}
		if rapid.Bool().Draw(t, fmt.Sprintf("paid%d", i)) {
			ps.IsPaid = true
			ps.AmountPaid = amount * share
		}
		exp.Participants = append(exp.Participants, ps)
	}
	return exp
}

// Every debit has a matching credit, so balances always sum to ~0.
func TestBalanceConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 20).Draw(t, "expenses")
		expenses := make([]models.Expense, count)
		for i := range expenses {
			expenses[i] = genExpense(t)
		}

		balances := ComputeBalances(expenses)
		if sum := balances.Sum(); math.Abs(sum) > Tolerance*float64(count+1) {
			t.Fatalf("balances sum to %v over %d expenses", sum, count)
		}
	})
}

// Applying every planned transaction drives all balances to ~0, using at
// most debtors+creditors-1 transactions.
func TestSettlementCompletenessAndBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		users := rapid.IntRange(2, 10).Draw(t, "users")
		balances := make(Balances)
		var total float64
		for i := 0; i < users-1; i++ {
			b := float64(rapid.IntRange(-50000, 50000).Draw(t, fmt.Sprintf("b%d", i))) / 100
			balances[fmt.Sprintf("u%d", i)] = b
			total += b
		}
		// Last user absorbs the remainder so the mapping conserves.
		balances[fmt.Sprintf("u%d", users-1)] = -total

		var debtors, creditors int
		for _, b := range balances {
			switch {
			case b < -Tolerance:
				debtors++
			case b > Tolerance:
				creditors++
			}
		}

		plan := PlanSettlement(balances)

		if debtors+creditors > 1 && len(plan) > debtors+creditors-1 {
			t.Fatalf("plan has %d transactions for %d debtors and %d creditors",
				len(plan), debtors, creditors)
		}

		remaining := applyPlan(balances, plan)
		for user, b := range remaining {
			if math.Abs(b) > Tolerance*float64(len(plan)+1) {
				t.Fatalf("balance[%s] = %v after applying full plan", user, b)
			}
		}

		for _, tx := range plan {
			if tx.Amount <= 0 {
				t.Fatalf("non-positive transaction amount %v", tx.Amount)
			}
			if tx.From == tx.To {
				t.Fatalf("self transaction for %s", tx.From)
			}
		}
	})
}

// A paid share contributes nothing further to what the participant owes
// the payer: paying your exact share zeroes your balance for that expense.
func TestPaymentZeroesParticipantBalance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		exp := genExpense(t)
		// Pick an unpaid, non-payer participant if one exists.
		for i := range exp.Participants {
			p := &exp.Participants[i]
			if p.IsPaid || p.UserID == exp.PayerID {
				continue
			}
			owed := exp.Amount * p.Share
			if err := ApplyPayment(&exp, p.UserID, owed); err != nil {
				t.Fatalf("ApplyPayment failed: %v", err)
			}
			balances := ComputeBalances([]models.Expense{exp})
			if b := balances.Get(p.UserID); math.Abs(b) > Tolerance {
				t.Fatalf("balance[%s] = %v after paying exact share", p.UserID, b)
			}
			break
		}
	})
}
