package service

import (
	"context"

	"github.com/terrarisk/workshop-server/internal/repository/models"
)

// GroupRepository defines the database operations the group service needs.
type GroupRepository interface {
	CreateGroup(ctx context.Context, g models.Group) error
	GetGroup(ctx context.Context, id string) (models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	UpdateCredits(ctx context.Context, id string, credits int, purchasedLayers []string) error
	RecordPurchase(ctx context.Context, p models.Purchase) error
	PurchaseStats(ctx context.Context) (models.PurchaseStats, error)
}

// WorkshopRepository defines the database operations the workshop service needs.
type WorkshopRepository interface {
	SaveRanking(ctx context.Context, groupID, phase string, entries []models.RankingRow) error
	GetRanking(ctx context.Context, groupID, phase string) ([]models.RankingRow, error)
	SaveSelectedActions(ctx context.Context, groupID string, actionIDs []string) error
	GetSelectedActions(ctx context.Context, groupID string) ([]string, error)
	MunicipalityDimensions(ctx context.Context) ([]models.MunicipalityDimensionRow, error)
}
