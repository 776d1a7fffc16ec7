package mocks

import (
	"context"

	"github.com/terrarisk/workshop-server/internal/repository/models"
)

// GroupRepository is a configurable test double for the group storage layer.
type MockGroupRepository struct {
	CreateGroupFunc    func(ctx context.Context, g models.Group) error
	GetGroupFunc       func(ctx context.Context, id string) (models.Group, error)
	ListGroupsFunc     func(ctx context.Context) ([]models.Group, error)
	UpdateCreditsFunc  func(ctx context.Context, id string, credits int, purchasedLayers []string) error
	RecordPurchaseFunc func(ctx context.Context, p models.Purchase) error
	PurchaseStatsFunc  func(ctx context.Context) (models.PurchaseStats, error)
}

func (m *MockGroupRepository) CreateGroup(ctx context.Context, g models.Group) error {
	return m.CreateGroupFunc(ctx, g)
}

func (m *MockGroupRepository) GetGroup(ctx context.Context, id string) (models.Group, error) {
	return m.GetGroupFunc(ctx, id)
}

func (m *MockGroupRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	return m.ListGroupsFunc(ctx)
}

func (m *MockGroupRepository) UpdateCredits(ctx context.Context, id string, credits int, purchasedLayers []string) error {
	return m.UpdateCreditsFunc(ctx, id, credits, purchasedLayers)
}

func (m *MockGroupRepository) RecordPurchase(ctx context.Context, p models.Purchase) error {
	return m.RecordPurchaseFunc(ctx, p)
}

func (m *MockGroupRepository) PurchaseStats(ctx context.Context) (models.PurchaseStats, error) {
	return m.PurchaseStatsFunc(ctx)
}

// WorkshopRepository is a configurable test double for the workshop storage layer.
type MockWorkshopRepository struct {
	SaveRankingFunc            func(ctx context.Context, groupID, phase string, entries []models.RankingRow) error
	GetRankingFunc             func(ctx context.Context, groupID, phase string) ([]models.RankingRow, error)
	SaveSelectedActionsFunc    func(ctx context.Context, groupID string, actionIDs []string) error
	GetSelectedActionsFunc     func(ctx context.Context, groupID string) ([]string, error)
	MunicipalityDimensionsFunc func(ctx context.Context) ([]models.MunicipalityDimensionRow, error)
}

func (m *MockWorkshopRepository) SaveRanking(ctx context.Context, groupID, phase string, entries []models.RankingRow) error {
	return m.SaveRankingFunc(ctx, groupID, phase, entries)
}

func (m *MockWorkshopRepository) GetRanking(ctx context.Context, groupID, phase string) ([]models.RankingRow, error) {
	return m.GetRankingFunc(ctx, groupID, phase)
}

func (m *MockWorkshopRepository) SaveSelectedActions(ctx context.Context, groupID string, actionIDs []string) error {
	return m.SaveSelectedActionsFunc(ctx, groupID, actionIDs)
}

func (m *MockWorkshopRepository) GetSelectedActions(ctx context.Context, groupID string) ([]string, error) {
	return m.GetSelectedActionsFunc(ctx, groupID)
}

func (m *MockWorkshopRepository) MunicipalityDimensions(ctx context.Context) ([]models.MunicipalityDimensionRow, error) {
	return m.MunicipalityDimensionsFunc(ctx)
}
