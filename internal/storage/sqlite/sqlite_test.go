package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testExpense(householdID string) *models.Expense {
	return &models.Expense{
		HouseholdID: householdID,
		Name:        "Groceries",
		Amount:      90,
		PayerID:     "alice",
		Participants: []models.ParticipantShare{
			{UserID: "bob", Share: 0.5},
			{UserID: "carol", Share: 0.5},
		},
	}
}

func TestExpenseStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateExpense generates ID and timestamps", func(t *testing.T) {
		expense := testExpense("h1")
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
		if expense.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if expense.Date == 0 {
			t.Error("Expected Date to default to creation time")
		}
	})

	t.Run("GetExpense retrieves shares in order", func(t *testing.T) {
		original := testExpense("h1")
		if err := store.CreateExpense(ctx, original); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		retrieved, err := store.GetExpense(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if retrieved.Name != original.Name || retrieved.Amount != original.Amount {
			t.Errorf("expense mismatch: got %+v", retrieved)
		}
		if len(retrieved.Participants) != 2 {
			t.Fatalf("got %d shares, want 2", len(retrieved.Participants))
		}
		if retrieved.Participants[0].UserID != "bob" || retrieved.Participants[1].UserID != "carol" {
			t.Errorf("share order not preserved: %+v", retrieved.Participants)
		}
		if retrieved.IsCompletelyPaid {
			t.Error("new expense marked completely paid")
		}
	})

	t.Run("GetExpense unknown ID returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetExpense(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListExpensesByHousehold scopes by household", func(t *testing.T) {
		other := testExpense("h2")
		if err := store.CreateExpense(ctx, other); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesByHousehold(ctx, "h2")
		if err != nil {
			t.Fatalf("ListExpensesByHousehold failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("got %d expenses, want 1", len(expenses))
		}
		if expenses[0].ID != other.ID {
			t.Errorf("got expense %s, want %s", expenses[0].ID, other.ID)
		}
		if len(expenses[0].Participants) != 2 {
			t.Errorf("shares not loaded for listed expense")
		}
	})
}

func TestMarkSharePaid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	expense := testExpense("h1")
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	t.Run("first payment succeeds", func(t *testing.T) {
		updated, err := store.MarkSharePaid(ctx, expense.ID, "bob", 45)
		if err != nil {
			t.Fatalf("MarkSharePaid failed: %v", err)
		}
		share := updated.ShareOf("bob")
		if share == nil || !share.IsPaid || share.AmountPaid != 45 {
			t.Errorf("share not updated: %+v", share)
		}
		if updated.IsCompletelyPaid {
			t.Error("expense completely paid with carol unpaid")
		}
	})

	t.Run("second payment fails with ErrShareAlreadyPaid", func(t *testing.T) {
		_, err := store.MarkSharePaid(ctx, expense.ID, "bob", 45)
		if !errors.Is(err, storage.ErrShareAlreadyPaid) {
			t.Errorf("err = %v, want ErrShareAlreadyPaid", err)
		}

		// State unchanged after the rejected attempt.
		current, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		share := current.ShareOf("bob")
		if !share.IsPaid || share.AmountPaid != 45 {
			t.Errorf("share mutated by rejected payment: %+v", share)
		}
	})

	t.Run("unknown share fails with ErrNotFound", func(t *testing.T) {
		_, err := store.MarkSharePaid(ctx, expense.ID, "mallory", 45)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("last payment flips completion flag", func(t *testing.T) {
		updated, err := store.MarkSharePaid(ctx, expense.ID, "carol", 45)
		if err != nil {
			t.Fatalf("MarkSharePaid failed: %v", err)
		}
		if !updated.IsCompletelyPaid {
			t.Error("expense not completely paid after last share")
		}
	})
}

func TestHouseholdStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and get household", func(t *testing.T) {
		household := &models.Household{
			Name:    "Elm Street",
			Members: []string{"alice", "bob"},
		}
		if err := store.CreateHousehold(ctx, household); err != nil {
			t.Fatalf("CreateHousehold failed: %v", err)
		}
		if household.ID == "" {
			t.Error("Expected household ID to be generated")
		}

		retrieved, err := store.GetHousehold(ctx, household.ID)
		if err != nil {
			t.Fatalf("GetHousehold failed: %v", err)
		}
		if retrieved.Name != "Elm Street" || len(retrieved.Members) != 2 {
			t.Errorf("household mismatch: %+v", retrieved)
		}
	})

	t.Run("AddHouseholdMembers ignores duplicates", func(t *testing.T) {
		household := &models.Household{Name: "Ski Trip", Members: []string{"alice"}}
		if err := store.CreateHousehold(ctx, household); err != nil {
			t.Fatalf("CreateHousehold failed: %v", err)
		}

		if err := store.AddHouseholdMembers(ctx, household.ID, []string{"alice", "carol"}); err != nil {
			t.Fatalf("AddHouseholdMembers failed: %v", err)
		}

		retrieved, err := store.GetHousehold(ctx, household.ID)
		if err != nil {
			t.Fatalf("GetHousehold failed: %v", err)
		}
		if len(retrieved.Members) != 2 {
			t.Errorf("got %d members, want 2: %v", len(retrieved.Members), retrieved.Members)
		}
	})

	t.Run("AddHouseholdMembers on missing household fails", func(t *testing.T) {
		err := store.AddHouseholdMembers(ctx, "missing", []string{"alice"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListHouseholdsByMember", func(t *testing.T) {
		households, err := store.ListHouseholdsByMember(ctx, "carol")
		if err != nil {
			t.Fatalf("ListHouseholdsByMember failed: %v", err)
		}
		if len(households) != 1 || households[0].Name != "Ski Trip" {
			t.Errorf("unexpected households: %+v", households)
		}
	})
}

func TestUserStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail = %+v, want %s", byEmail, user.ID)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID == nil || byID.Email != user.Email {
		t.Errorf("GetUserByID = %+v", byID)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("missing user: got %+v, %v; want nil, nil", missing, err)
	}

	if err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Alice2", "hash")); err == nil {
		t.Error("duplicate email accepted")
	}
}
