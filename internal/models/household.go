package models

// Household represents a group of users who share expenses.
// All expenses are scoped to exactly one household.
type Household struct {
	// ID is the unique identifier for the household (UUID format).
	ID string

	// Name is the display name (e.g. "Elm Street", "Ski Trip 2026").
	Name string

	// Members is the list of user IDs belonging to this household.
	Members []string

	// CreatedAt is the Unix timestamp when the household was created.
	CreatedAt int64
}

// HasMember reports whether the given user belongs to the household.
func (h *Household) HasMember(userID string) bool {
	for _, m := range h.Members {
		if m == userID {
			return true
		}
	}
	return false
}
