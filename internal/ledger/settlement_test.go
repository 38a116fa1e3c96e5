package ledger

import (
	"math"
	"testing"
)

func TestPlanSettlement(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		validate func(t *testing.T, plan []Transaction)
	}{
		{
			name:     "empty balances yield empty plan",
			balances: Balances{},
			validate: func(t *testing.T, plan []Transaction) {
				if len(plan) != 0 {
					t.Errorf("got %d transactions, want 0", len(plan))
				}
			},
		},
		{
			name:     "near-zero balances are treated as settled",
			balances: Balances{"alice": 0.005, "bob": -0.005, "carol": 0},
			validate: func(t *testing.T, plan []Transaction) {
				if len(plan) != 0 {
					t.Errorf("got %d transactions, want 0", len(plan))
				}
			},
		},
		{
			name:     "two debtors one creditor",
			balances: Balances{"alice": 90, "bob": -45, "carol": -45},
			validate: func(t *testing.T, plan []Transaction) {
				if len(plan) != 2 {
					t.Fatalf("got %d transactions, want 2", len(plan))
				}
				total := 0.0
				for _, tx := range plan {
					if tx.To != "alice" {
						t.Errorf("transaction to %s, want alice", tx.To)
					}
					if math.Abs(tx.Amount-45) > Tolerance {
						t.Errorf("transaction amount = %v, want 45", tx.Amount)
					}
					total += tx.Amount
				}
				if math.Abs(total-90) > Tolerance {
					t.Errorf("total settled = %v, want 90", total)
				}
			},
		},
		{
			name:     "largest debtor matched with largest creditor first",
			balances: Balances{"alice": 70, "bob": 30, "carol": -60, "dan": -40},
			validate: func(t *testing.T, plan []Transaction) {
				if len(plan) == 0 {
					t.Fatal("empty plan")
				}
				first := plan[0]
				if first.From != "carol" || first.To != "alice" {
					t.Errorf("first transaction %s->%s, want carol->alice", first.From, first.To)
				}
				if math.Abs(first.Amount-60) > Tolerance {
					t.Errorf("first amount = %v, want 60", first.Amount)
				}
			},
		},
		{
			name:     "amounts are rounded to cents",
			balances: Balances{"alice": 33.333333, "bob": -33.333333},
			validate: func(t *testing.T, plan []Transaction) {
				if len(plan) != 1 {
					t.Fatalf("got %d transactions, want 1", len(plan))
				}
				if plan[0].Amount != 33.33 {
					t.Errorf("amount = %v, want 33.33", plan[0].Amount)
				}
			},
		},
		{
			name:     "one-sided balances produce no transactions",
			balances: Balances{"alice": 50, "bob": 20},
			validate: func(t *testing.T, plan []Transaction) {
				if len(plan) != 0 {
					t.Errorf("got %d transactions, want 0", len(plan))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, PlanSettlement(tt.balances))
		})
	}
}

// applyPlan executes the plan against a copy of the balances and returns
// the remaining balances.
func applyPlan(balances Balances, plan []Transaction) Balances {
	remaining := make(Balances, len(balances))
	for user, b := range balances {
		remaining[user] = b
	}
	for _, tx := range plan {
		remaining[tx.From] += tx.Amount
		remaining[tx.To] -= tx.Amount
	}
	return remaining
}

func TestPlanSettlementCompleteness(t *testing.T) {
	balances := Balances{
		"alice": 120.50,
		"bob":   -80.25,
		"carol": -40.25,
		"dan":   35,
		"erin":  -35,
	}
	plan := PlanSettlement(balances)

	remaining := applyPlan(balances, plan)
	for user, b := range remaining {
		// Each emitted amount can carry up to a cent of rounding drift.
		if math.Abs(b) > Tolerance*float64(len(plan)+1) {
			t.Errorf("remaining balance[%s] = %v, want ~0", user, b)
		}
	}

	// Greedy bound: debtors + creditors - 1.
	if len(plan) > 4 {
		t.Errorf("plan has %d transactions, want <= 4", len(plan))
	}
}
