package models

// Expense represents one shared cost paid up front by a single payer.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// HouseholdID is the household this expense belongs to.
	HouseholdID string

	// Name is the human-readable description (e.g. "Groceries", "Rent").
	Name string

	// Amount is the total cost of the expense. Immutable after creation.
	Amount float64

	// Date is the Unix timestamp of when the cost was incurred.
	// Defaults to creation time if not provided.
	Date int64

	// PayerID is the user who fronted the full amount.
	PayerID string

	// Participants is the ordered list of shares splitting this expense.
	// Each user appears at most once.
	Participants []ParticipantShare

	// IsCompletelyPaid caches whether every participant share is paid.
	// Recomputed after each payment; the shares are the source of truth.
	IsCompletelyPaid bool

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last payment recorded.
	UpdatedAt int64
}

// ParticipantShare is one participant's fractional liability for an
// expense plus its payment-tracking state.
type ParticipantShare struct {
	// UserID identifies the participant.
	UserID string

	// Share is the fraction of the expense amount this participant owes,
	// in (0, 1]. Shares of one expense sum to 1 (validated at creation).
	Share float64

	// IsPaid marks whether the participant has settled with the payer.
	// Transitions false to true exactly once, never back.
	IsPaid bool

	// AmountPaid is the amount transferred to the payer, set when
	// IsPaid becomes true.
	AmountPaid float64
}

// ShareOf returns a pointer to the participant share for the given user,
// or nil if the user is not a participant of this expense.
func (e *Expense) ShareOf(userID string) *ParticipantShare {
	for i := range e.Participants {
		if e.Participants[i].UserID == userID {
			return &e.Participants[i]
		}
	}
	return nil
}
