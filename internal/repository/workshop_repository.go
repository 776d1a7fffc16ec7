package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/terrarisk/workshop-server/internal/repository/models"
)

type WorkshopRepository struct {
	db *sql.DB
}

func NewWorkshopRepository(db *sql.DB) *WorkshopRepository {
	return &WorkshopRepository{db: db}
}

// SaveRanking replaces a group's ranking for the given phase. Resubmission
// overwrites: the workshop lets groups refine until the phase closes.
func (r *WorkshopRepository) SaveRanking(ctx context.Context, groupID, phase string, entries []models.RankingRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ranking tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rankings WHERE group_id = ? AND phase = ?`, groupID, phase); err != nil {
		return fmt.Errorf("clear ranking %s/%s: %w", groupID, phase, err)
	}

	const insert = `INSERT INTO rankings (group_id, phase, code, position) VALUES (?, ?, ?, ?)`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, insert, groupID, phase, e.Code, e.Position); err != nil {
			return fmt.Errorf("insert ranking entry %s: %w", e.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ranking: %w", err)
	}
	return nil
}

// GetRanking loads a group's ranking for one phase, ordered by position. A
// phase that was never submitted yields an empty slice.
func (r *WorkshopRepository) GetRanking(ctx context.Context, groupID, phase string) ([]models.RankingRow, error) {
	const query = `
		SELECT group_id, phase, code, position
		FROM rankings
		WHERE group_id = ? AND phase = ?
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, groupID, phase)
	if err != nil {
		return nil, fmt.Errorf("query ranking %s/%s: %w", groupID, phase, err)
	}
	defer rows.Close()

	var entries []models.RankingRow
	for rows.Next() {
		var e models.RankingRow
		if err := rows.Scan(&e.GroupID, &e.Phase, &e.Code, &e.Position); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranking rows: %w", err)
	}
	return entries, nil
}

// SaveSelectedActions replaces a group's PEARC action selection.
func (r *WorkshopRepository) SaveSelectedActions(ctx context.Context, groupID string, actionIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin actions tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM selected_actions WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("clear selected actions %s: %w", groupID, err)
	}

	const insert = `INSERT INTO selected_actions (group_id, action_id) VALUES (?, ?)`
	for _, id := range actionIDs {
		if _, err := tx.ExecContext(ctx, insert, groupID, id); err != nil {
			return fmt.Errorf("insert selected action %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit selected actions: %w", err)
	}
	return nil
}

// GetSelectedActions returns a group's selected action ids.
func (r *WorkshopRepository) GetSelectedActions(ctx context.Context, groupID string) ([]string, error) {
	const query = `SELECT action_id FROM selected_actions WHERE group_id = ? ORDER BY action_id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("query selected actions %s: %w", groupID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan selected action: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selected actions: %w", err)
	}
	return ids, nil
}

// MunicipalityDimensions loads the full indicator matrix for the workshop
// municipality set.
func (r *WorkshopRepository) MunicipalityDimensions(ctx context.Context) ([]models.MunicipalityDimensionRow, error) {
	const query = `
		SELECT code, name, quadrant, dimension, value
		FROM municipality_dimensions
		ORDER BY code, dimension
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query municipality dimensions: %w", err)
	}
	defer rows.Close()

	var result []models.MunicipalityDimensionRow
	for rows.Next() {
		var row models.MunicipalityDimensionRow
		if err := rows.Scan(&row.Code, &row.Name, &row.Quadrant, &row.Dimension, &row.Value); err != nil {
			return nil, fmt.Errorf("scan municipality dimension: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate municipality dimensions: %w", err)
	}
	return result, nil
}
