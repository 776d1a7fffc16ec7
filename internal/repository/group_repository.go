package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/terrarisk/workshop-server/internal/repository/models"
)

type GroupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

const timeLayout = time.RFC3339

func scanGroup(row interface{ Scan(...any) error }) (models.Group, error) {
	var g models.Group
	var purchased, createdAt, updatedAt string
	if err := row.Scan(&g.ID, &g.Name, &g.Credits, &purchased, &createdAt, &updatedAt); err != nil {
		return models.Group{}, err
	}
	if err := json.Unmarshal([]byte(purchased), &g.PurchasedLayers); err != nil {
		return models.Group{}, fmt.Errorf("decode purchased layers: %w", err)
	}
	g.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	g.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return g, nil
}

// CreateGroup inserts a new group with its starting credits.
func (r *GroupRepository) CreateGroup(ctx context.Context, g models.Group) error {
	purchased, err := json.Marshal(g.PurchasedLayers)
	if err != nil {
		return fmt.Errorf("encode purchased layers: %w", err)
	}
	if g.PurchasedLayers == nil {
		purchased = []byte("[]")
	}

	const query = `
		INSERT INTO groups (id, name, credits, purchased_layers, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		g.ID, g.Name, g.Credits, string(purchased),
		g.CreatedAt.UTC().Format(timeLayout), g.UpdatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetGroup fetches a group by id. Unknown ids surface sql.ErrNoRows.
func (r *GroupRepository) GetGroup(ctx context.Context, id string) (models.Group, error) {
	const query = `
		SELECT id, name, credits, purchased_layers, created_at, updated_at
		FROM groups WHERE id = ?
	`
	g, err := scanGroup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return models.Group{}, fmt.Errorf("query group %s: %w", id, err)
	}
	return g, nil
}

// ListGroups returns all groups, newest first.
func (r *GroupRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	const query = `
		SELECT id, name, credits, purchased_layers, created_at, updated_at
		FROM groups ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

// UpdateCredits sets a group's remaining credits and purchased-layer list.
func (r *GroupRepository) UpdateCredits(ctx context.Context, id string, credits int, purchasedLayers []string) error {
	purchased, err := json.Marshal(purchasedLayers)
	if err != nil {
		return fmt.Errorf("encode purchased layers: %w", err)
	}

	const query = `UPDATE groups SET credits = ?, purchased_layers = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, credits, string(purchased), time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("update group %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update group %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// RecordPurchase appends one purchase to the history.
func (r *GroupRepository) RecordPurchase(ctx context.Context, p models.Purchase) error {
	const query = `INSERT INTO purchases (group_id, layer_id, cost, purchased_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.GroupID, p.LayerID, p.Cost, p.PurchasedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// PurchaseStats aggregates the layer economy for the admin view. Counting and
// summing stay in SQL.
func (r *GroupRepository) PurchaseStats(ctx context.Context) (models.PurchaseStats, error) {
	var stats models.PurchaseStats

	const totalsQuery = `SELECT COUNT(*), COALESCE(SUM(cost), 0) FROM purchases`
	if err := r.db.QueryRowContext(ctx, totalsQuery).Scan(&stats.TotalPurchases, &stats.CreditsSpent); err != nil {
		return models.PurchaseStats{}, fmt.Errorf("query purchase totals: %w", err)
	}

	const popularQuery = `
		SELECT layer_id, COUNT(*) AS cnt
		FROM purchases
		GROUP BY layer_id
		ORDER BY cnt DESC, layer_id
	`
	rows, err := r.db.QueryContext(ctx, popularQuery)
	if err != nil {
		return models.PurchaseStats{}, fmt.Errorf("query popular layers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.LayerPopularity
		if err := rows.Scan(&p.LayerID, &p.Count); err != nil {
			return models.PurchaseStats{}, fmt.Errorf("scan popular layer: %w", err)
		}
		stats.PopularLayers = append(stats.PopularLayers, p)
	}
	if err := rows.Err(); err != nil {
		return models.PurchaseStats{}, fmt.Errorf("iterate popular layers: %w", err)
	}

	const groupQuery = `
		SELECT id, name, credits, purchased_layers, updated_at
		FROM groups ORDER BY updated_at DESC
	`
	groupRows, err := r.db.QueryContext(ctx, groupQuery)
	if err != nil {
		return models.PurchaseStats{}, fmt.Errorf("query group stats: %w", err)
	}
	defer groupRows.Close()
	for groupRows.Next() {
		var a models.GroupActivity
		var purchased, updatedAt string
		if err := groupRows.Scan(&a.ID, &a.Name, &a.Credits, &purchased, &updatedAt); err != nil {
			return models.PurchaseStats{}, fmt.Errorf("scan group stats: %w", err)
		}
		var layerIDs []string
		if err := json.Unmarshal([]byte(purchased), &layerIDs); err != nil {
			return models.PurchaseStats{}, fmt.Errorf("decode purchased layers: %w", err)
		}
		a.PurchasedCount = len(layerIDs)
		a.LastActivity, _ = time.Parse(timeLayout, updatedAt)
		stats.GroupStats = append(stats.GroupStats, a)
	}
	if err := groupRows.Err(); err != nil {
		return models.PurchaseStats{}, fmt.Errorf("iterate group stats: %w", err)
	}

	stats.TotalGroups = len(stats.GroupStats)
	return stats, nil
}
