package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terrarisk/workshop-server/internal/catalog"
	"github.com/terrarisk/workshop-server/internal/repository/models"
)

var (
	ErrInvalidGroupName      = errors.New("group name must have at least 2 characters")
	ErrLayerNotFound         = errors.New("layer not found")
	ErrLayerAlreadyPurchased = errors.New("layer already purchased")
	ErrLayerIsFree           = errors.New("layer is free")
	ErrInsufficientCredits   = errors.New("insufficient credits")
)

// GroupService handles group lifecycle and the layer purchase economy.
type GroupService struct {
	storage GroupRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewGroupService creates a new GroupService instance.
func NewGroupService(storage GroupRepository, logger *zap.Logger) *GroupService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &GroupService{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateGroup registers a workshop group with its starting credit budget.
// Group ids are short so facilitators can read them out loud.
func (s *GroupService) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return models.Group{}, ErrInvalidGroupName
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	now := s.now().UTC()
	g := models.Group{
		ID:        uuid.NewString()[:8],
		Name:      name,
		Credits:   catalog.InitialCredits,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.CreateGroup(dbCtx, g); err != nil {
		return models.Group{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("group created", zap.String("group", g.ID), zap.String("name", g.Name))
	return g, nil
}

// GetGroup fetches one group.
func (s *GroupService) GetGroup(ctx context.Context, id string) (models.Group, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	g, err := s.storage.GetGroup(dbCtx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, ErrGroupNotFound
		}
		return models.Group{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return g, nil
}

// ListGroups returns every registered group, newest first.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	groups, err := s.storage.ListGroups(dbCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return groups, nil
}

// PurchaseLayer spends a group's credits on a map layer. Free layers cannot
// be bought and a layer can be bought at most once.
func (s *GroupService) PurchaseLayer(ctx context.Context, groupID, layerID string) (models.Group, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	g, err := s.GetGroup(dbCtx, groupID)
	if err != nil {
		return models.Group{}, err
	}

	layer, ok := catalog.LayerByID(layerID)
	if !ok {
		return models.Group{}, ErrLayerNotFound
	}
	if layer.Free {
		return models.Group{}, ErrLayerIsFree
	}
	for _, purchased := range g.PurchasedLayers {
		if purchased == layerID {
			return models.Group{}, ErrLayerAlreadyPurchased
		}
	}
	if g.Credits < layer.Cost {
		return models.Group{}, ErrInsufficientCredits
	}

	g.Credits -= layer.Cost
	g.PurchasedLayers = append(g.PurchasedLayers, layerID)

	if err := s.storage.UpdateCredits(dbCtx, groupID, g.Credits, g.PurchasedLayers); err != nil {
		return models.Group{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if err := s.storage.RecordPurchase(dbCtx, models.Purchase{
		GroupID:     groupID,
		LayerID:     layerID,
		Cost:        layer.Cost,
		PurchasedAt: s.now().UTC(),
	}); err != nil {
		return models.Group{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("layer purchased",
		zap.String("group", groupID),
		zap.String("layer", layerID),
		zap.Int("creditsLeft", g.Credits))
	return g, nil
}

// Layers returns the purchasable layer catalog.
func (s *GroupService) Layers() []catalog.Layer {
	return catalog.Layers()
}

// Stats aggregates the layer economy across all groups.
func (s *GroupService) Stats(ctx context.Context) (models.PurchaseStats, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	stats, err := s.storage.PurchaseStats(dbCtx)
	if err != nil {
		return models.PurchaseStats{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return stats, nil
}
