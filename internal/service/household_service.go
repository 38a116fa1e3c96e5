package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

// HouseholdService manages households and their membership.
type HouseholdService struct {
	store storage.Store
}

// NewHouseholdService creates a HouseholdService with the given storage backend.
func NewHouseholdService(store storage.Store) *HouseholdService {
	return &HouseholdService{store: store}
}

// CreateHousehold creates a household. The creator always becomes a member.
func (s *HouseholdService) CreateHousehold(ctx context.Context, creatorID, name string, members []string) (*models.Household, error) {
	household := &models.Household{
		Name:    name,
		Members: members,
	}
	if !household.HasMember(creatorID) {
		household.Members = append(household.Members, creatorID)
	}

	if err := s.store.CreateHousehold(ctx, household); err != nil {
		slog.Error("CreateHousehold failed", "name", name, "error", err)
		return nil, fmt.Errorf("create household: %w", err)
	}

	slog.Info("Household created",
		"household_id", household.ID,
		"name", household.Name,
		"members", len(household.Members),
	)
	return household, nil
}

// GetHousehold retrieves a household the user belongs to.
func (s *HouseholdService) GetHousehold(ctx context.Context, userID, householdID string) (*models.Household, error) {
	household, err := s.store.GetHousehold(ctx, householdID)
	if err != nil {
		slog.Warn("GetHousehold failed", "household_id", householdID, "error", err)
		return nil, err
	}
	if !household.HasMember(userID) {
		return nil, ErrNotMember
	}
	return household, nil
}

// ListHouseholds returns the households the user belongs to.
func (s *HouseholdService) ListHouseholds(ctx context.Context, userID string) ([]models.Household, error) {
	households, err := s.store.ListHouseholdsByMember(ctx, userID)
	if err != nil {
		slog.Error("ListHouseholds failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list households: %w", err)
	}
	return households, nil
}

// AddMembers adds users to a household the acting user belongs to.
func (s *HouseholdService) AddMembers(ctx context.Context, userID, householdID string, newMembers []string) (*models.Household, error) {
	household, err := s.store.GetHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if !household.HasMember(userID) {
		return nil, ErrNotMember
	}

	if err := s.store.AddHouseholdMembers(ctx, householdID, newMembers); err != nil {
		slog.Error("AddMembers failed", "household_id", householdID, "error", err)
		return nil, fmt.Errorf("add members: %w", err)
	}

	slog.Info("Household members added", "household_id", householdID, "added", len(newMembers))
	return s.store.GetHousehold(ctx, householdID)
}
