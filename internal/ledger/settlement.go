package ledger

import (
	"container/heap"
	"math"
)

// Transaction is a proposed peer-to-peer payment that reduces both
// parties' outstanding balances.
type Transaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// party is one side of the settlement: a user and the positive magnitude
// of what they still owe (debtor) or are owed (creditor).
type party struct {
	userID  string
	balance float64
}

// partyHeap pops the party with the largest remaining magnitude first,
// breaking ties by user ID so plans are deterministic.
type partyHeap []party

func (h partyHeap) Len() int { return len(h) }
func (h partyHeap) Less(i, j int) bool {
	if h[i].balance != h[j].balance {
		return h[i].balance > h[j].balance
	}
	return h[i].userID < h[j].userID
}
func (h partyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *partyHeap) Push(x any)   { *h = append(*h, x.(party)) }
func (h *partyHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}

// PlanSettlement produces transactions that drive every balance to within
// Tolerance of zero, greedily matching the largest debtor against the
// largest creditor. The greedy bound holds: at most
// len(debtors)+len(creditors)-1 transactions are emitted.
//
// Emitted amounts are rounded to cents for presentation only; the working
// balances keep full precision for the remainder of the computation.
// Users already within Tolerance of zero are excluded up front. An empty
// balance mapping yields an empty plan.
func PlanSettlement(balances Balances) []Transaction {
	debtors := &partyHeap{}
	creditors := &partyHeap{}
	for userID, balance := range balances {
		switch {
		case balance < -Tolerance:
			*debtors = append(*debtors, party{userID: userID, balance: -balance})
		case balance > Tolerance:
			*creditors = append(*creditors, party{userID: userID, balance: balance})
		}
	}
	heap.Init(debtors)
	heap.Init(creditors)

	var transactions []Transaction
	for debtors.Len() > 0 && creditors.Len() > 0 {
		debtor := heap.Pop(debtors).(party)
		creditor := heap.Pop(creditors).(party)

		amount := math.Min(debtor.balance, creditor.balance)
		transactions = append(transactions, Transaction{
			From:   debtor.userID,
			To:     creditor.userID,
			Amount: roundCents(amount),
		})

		debtor.balance -= amount
		creditor.balance -= amount
		if debtor.balance > Tolerance {
			heap.Push(debtors, debtor)
		}
		if creditor.balance > Tolerance {
			heap.Push(creditors, creditor)
		}
	}
	return transactions
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
