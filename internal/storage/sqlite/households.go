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

// CreateHousehold persists a new household and its member list.
func (s *SQLiteStore) CreateHousehold(ctx context.Context, household *models.Household) error {
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.CreatedAt == 0 {
		household.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO households (id, name, created_at) VALUES (?, ?, ?)",
		household.ID, household.Name, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}

	for _, userID := range household.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO household_members (household_id, user_id) VALUES (?, ?)",
			household.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert household member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetHousehold retrieves a household by ID with its members.
func (s *SQLiteStore) GetHousehold(ctx context.Context, householdID string) (*models.Household, error) {
	household := &models.Household{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM households WHERE id = ?",
		householdID,
	).Scan(&household.ID, &household.Name, &household.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: household %s", storage.ErrNotFound, householdID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM household_members WHERE household_id = ? ORDER BY user_id",
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get household members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan household member: %w", err)
		}
		household.Members = append(household.Members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate household members: %w", err)
	}

	return household, nil
}

// AddHouseholdMembers adds users to a household, skipping existing members.
func (s *SQLiteStore) AddHouseholdMembers(ctx context.Context, householdID string, userIDs []string) error {
	// Verify the household exists first; INSERT OR IGNORE would silently
	// succeed against a missing household otherwise.
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM households WHERE id = ?", householdID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: household %s", storage.ErrNotFound, householdID)
	}
	if err != nil {
		return fmt.Errorf("failed to check household existence: %w", err)
	}

	for _, userID := range userIDs {
		_, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO household_members (household_id, user_id) VALUES (?, ?)",
			householdID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to add household member: %w", err)
		}
	}

	return nil
}

// ListHouseholdsByMember retrieves the households a user belongs to.
func (s *SQLiteStore) ListHouseholdsByMember(ctx context.Context, userID string) ([]models.Household, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT h.id FROM households h
		 JOIN household_members m ON m.household_id = h.id
		 WHERE m.user_id = ? ORDER BY h.created_at, h.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate households: %w", err)
	}

	var households []models.Household
	for _, id := range ids {
		household, err := s.GetHousehold(ctx, id)
		if err != nil {
			return nil, err
		}
		households = append(households, *household)
	}

	return households, nil
}
