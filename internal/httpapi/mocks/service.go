package mocks

import (
	"context"

	"github.com/terrarisk/workshop-server/internal/analysis"
	"github.com/terrarisk/workshop-server/internal/catalog"
	"github.com/terrarisk/workshop-server/internal/repository/models"
	"github.com/terrarisk/workshop-server/internal/service"
)

// MockGroupService is a configurable test double for the group service.
type MockGroupService struct {
	CreateGroupFunc   func(ctx context.Context, name string) (models.Group, error)
	GetGroupFunc      func(ctx context.Context, id string) (models.Group, error)
	ListGroupsFunc    func(ctx context.Context) ([]models.Group, error)
	PurchaseLayerFunc func(ctx context.Context, groupID, layerID string) (models.Group, error)
	LayersFunc        func() []catalog.Layer
	StatsFunc         func(ctx context.Context) (models.PurchaseStats, error)
}

func (m *MockGroupService) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	return m.CreateGroupFunc(ctx, name)
}

func (m *MockGroupService) GetGroup(ctx context.Context, id string) (models.Group, error) {
	return m.GetGroupFunc(ctx, id)
}

func (m *MockGroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return m.ListGroupsFunc(ctx)
}

func (m *MockGroupService) PurchaseLayer(ctx context.Context, groupID, layerID string) (models.Group, error) {
	return m.PurchaseLayerFunc(ctx, groupID, layerID)
}

func (m *MockGroupService) Layers() []catalog.Layer {
	if m.LayersFunc != nil {
		return m.LayersFunc()
	}
	return catalog.Layers()
}

func (m *MockGroupService) Stats(ctx context.Context) (models.PurchaseStats, error) {
	return m.StatsFunc(ctx)
}

// MockWorkshopService is a configurable test double for the workshop service.
type MockWorkshopService struct {
	MunicipalitiesFunc      func(ctx context.Context) ([]service.MunicipalitySummary, error)
	ActionsCatalogFunc      func() []catalog.ActionWithStats
	SubmitRankingFunc       func(ctx context.Context, groupID, phase string, entries []analysis.RankingEntry) error
	RankingsFunc            func(ctx context.Context, groupID string) (service.GroupRankings, error)
	SaveSelectedActionsFunc func(ctx context.Context, groupID string, actionIDs []string) error
	PlatformRankingFunc     func(ctx context.Context) ([]analysis.PlatformRankingEntry, map[string]float64, error)
	ComparisonFunc          func(ctx context.Context, groupID string) (*analysis.RankingComparison, error)
	PerspectiveChangeFunc   func(ctx context.Context, groupID string) (*service.PerspectiveReport, error)
}

func (m *MockWorkshopService) Municipalities(ctx context.Context) ([]service.MunicipalitySummary, error) {
	return m.MunicipalitiesFunc(ctx)
}

func (m *MockWorkshopService) ActionsCatalog() []catalog.ActionWithStats {
	if m.ActionsCatalogFunc != nil {
		return m.ActionsCatalogFunc()
	}
	return catalog.ActionsWithStats()
}

func (m *MockWorkshopService) SubmitRanking(ctx context.Context, groupID, phase string, entries []analysis.RankingEntry) error {
	return m.SubmitRankingFunc(ctx, groupID, phase, entries)
}

func (m *MockWorkshopService) Rankings(ctx context.Context, groupID string) (service.GroupRankings, error) {
	return m.RankingsFunc(ctx, groupID)
}

func (m *MockWorkshopService) SaveSelectedActions(ctx context.Context, groupID string, actionIDs []string) error {
	return m.SaveSelectedActionsFunc(ctx, groupID, actionIDs)
}

func (m *MockWorkshopService) PlatformRanking(ctx context.Context) ([]analysis.PlatformRankingEntry, map[string]float64, error) {
	return m.PlatformRankingFunc(ctx)
}

func (m *MockWorkshopService) Comparison(ctx context.Context, groupID string) (*analysis.RankingComparison, error) {
	return m.ComparisonFunc(ctx, groupID)
}

func (m *MockWorkshopService) PerspectiveChange(ctx context.Context, groupID string) (*service.PerspectiveReport, error) {
	return m.PerspectiveChangeFunc(ctx, groupID)
}
