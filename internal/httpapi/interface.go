package httpapi

import (
	"context"
	"time"

	"github.com/terrarisk/workshop-server/internal/analysis"
	"github.com/terrarisk/workshop-server/internal/catalog"
	"github.com/terrarisk/workshop-server/internal/repository/models"
	"github.com/terrarisk/workshop-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type GroupService interface {
	CreateGroup(ctx context.Context, name string) (models.Group, error)
	GetGroup(ctx context.Context, id string) (models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	PurchaseLayer(ctx context.Context, groupID, layerID string) (models.Group, error)
	Layers() []catalog.Layer
	Stats(ctx context.Context) (models.PurchaseStats, error)
}

type WorkshopService interface {
	Municipalities(ctx context.Context) ([]service.MunicipalitySummary, error)
	ActionsCatalog() []catalog.ActionWithStats
	SubmitRanking(ctx context.Context, groupID, phase string, entries []analysis.RankingEntry) error
	Rankings(ctx context.Context, groupID string) (service.GroupRankings, error)
	SaveSelectedActions(ctx context.Context, groupID string, actionIDs []string) error
	PlatformRanking(ctx context.Context) ([]analysis.PlatformRankingEntry, map[string]float64, error)
	Comparison(ctx context.Context, groupID string) (*analysis.RankingComparison, error)
	PerspectiveChange(ctx context.Context, groupID string) (*service.PerspectiveReport, error)
}
