package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/terrarisk/workshop-server/internal/analysis"
	"github.com/terrarisk/workshop-server/internal/catalog"
	"github.com/terrarisk/workshop-server/internal/repository/models"
)

const dbTimeout = 1 * time.Second

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrRankingNotFound = errors.New("ranking not found")
	ErrInvalidPhase    = errors.New("phase must be 'initial' or 'revised'")
	ErrInvalidRanking  = errors.New("invalid ranking submission")
	ErrUnknownAction   = errors.New("unknown action id")
	ErrStorageFailure  = errors.New("storage failure")
)

// WorkshopService runs the workshop flow: municipality data, ranking
// submissions, PEARC action selection and the comparison analytics.
type WorkshopService struct {
	groups          GroupRepository
	workshop        WorkshopRepository
	logger          *zap.Logger
	suggestionLimit int
}

// NewWorkshopService creates a new WorkshopService instance.
func NewWorkshopService(groups GroupRepository, workshop WorkshopRepository, logger *zap.Logger) *WorkshopService {
	if groups == nil || workshop == nil {
		panic("repositories must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &WorkshopService{
		groups:          groups,
		workshop:        workshop,
		logger:          logger,
		suggestionLimit: analysis.DefaultSuggestionLimit,
	}
}

func (s *WorkshopService) group(ctx context.Context, groupID string) (models.Group, error) {
	g, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, ErrGroupNotFound
		}
		return models.Group{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return g, nil
}

// municipalityData pivots the per-dimension rows into one record per
// municipality, in stable code order.
func (s *WorkshopService) municipalityData(ctx context.Context) ([]analysis.MunicipalityData, error) {
	rows, err := s.workshop.MunicipalityDimensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	byCode := make(map[string]*analysis.MunicipalityData)
	for _, row := range rows {
		m, ok := byCode[row.Code]
		if !ok {
			m = &analysis.MunicipalityData{
				Code:       row.Code,
				Name:       row.Name,
				Quadrant:   row.Quadrant,
				Dimensions: make(map[string]float64),
			}
			byCode[row.Code] = m
		}
		m.Dimensions[row.Dimension] = row.Value
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	data := make([]analysis.MunicipalityData, 0, len(codes))
	for _, code := range codes {
		data = append(data, *byCode[code])
	}
	return data, nil
}

// Municipalities returns the workshop municipality set with per-category
// risk summaries (mean raw indicator value per category, 3 decimals).
func (s *WorkshopService) Municipalities(ctx context.Context) ([]MunicipalitySummary, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	data, err := s.municipalityData(dbCtx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no municipality data", ErrStorageFailure)
	}

	summaries := make([]MunicipalitySummary, 0, len(data))
	for _, m := range data {
		riskSummary := make(map[string]float64, len(catalog.CategoryDimensions))
		for category, dims := range catalog.CategoryDimensions {
			var sum float64
			var count int
			for _, dim := range dims {
				if v, ok := m.Dimensions[dim]; ok {
					sum += v
					count++
				}
			}
			if count > 0 {
				riskSummary[category] = math.Round(sum/float64(count)*1000) / 1000
			} else {
				riskSummary[category] = 0
			}
		}

		summaries = append(summaries, MunicipalitySummary{
			Code:        m.Code,
			Name:        m.Name,
			Quadrant:    m.Quadrant,
			Description: catalog.QuadrantDescriptions[m.Quadrant],
			RiskSummary: riskSummary,
		})
	}
	return summaries, nil
}

// ActionsCatalog returns the PEARC catalog with link statistics.
func (s *WorkshopService) ActionsCatalog() []catalog.ActionWithStats {
	return catalog.ActionsWithStats()
}

// SubmitRanking validates and persists one phase of a group's ranking. The
// submission must be a permutation of 1..N over the complete workshop
// municipality set.
func (s *WorkshopService) SubmitRanking(ctx context.Context, groupID, phase string, entries []analysis.RankingEntry) error {
	if phase != PhaseInitial && phase != PhaseRevised {
		return ErrInvalidPhase
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.group(dbCtx, groupID); err != nil {
		return err
	}

	data, err := s.municipalityData(dbCtx)
	if err != nil {
		return err
	}
	if len(entries) != len(data) {
		return fmt.Errorf("%w: expected %d entries, got %d", ErrInvalidRanking, len(data), len(entries))
	}

	known := make(map[string]struct{}, len(data))
	for _, m := range data {
		known[m.Code] = struct{}{}
	}

	seenCodes := make(map[string]struct{}, len(entries))
	seenPositions := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := known[e.Code]; !ok {
			return fmt.Errorf("%w: unknown municipality %s", ErrInvalidRanking, e.Code)
		}
		if _, dup := seenCodes[e.Code]; dup {
			return fmt.Errorf("%w: duplicate municipality %s", ErrInvalidRanking, e.Code)
		}
		seenCodes[e.Code] = struct{}{}
		if e.Position < 1 || e.Position > len(entries) {
			return fmt.Errorf("%w: position %d out of range", ErrInvalidRanking, e.Position)
		}
		if _, dup := seenPositions[e.Position]; dup {
			return fmt.Errorf("%w: duplicate position %d", ErrInvalidRanking, e.Position)
		}
		seenPositions[e.Position] = struct{}{}
	}

	rows := make([]models.RankingRow, len(entries))
	for i, e := range entries {
		rows[i] = models.RankingRow{GroupID: groupID, Phase: phase, Code: e.Code, Position: e.Position}
	}
	if err := s.workshop.SaveRanking(dbCtx, groupID, phase, rows); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("ranking submitted",
		zap.String("group", groupID),
		zap.String("phase", phase),
		zap.Int("entries", len(entries)))
	return nil
}

func (s *WorkshopService) ranking(ctx context.Context, groupID, phase string) ([]analysis.RankingEntry, error) {
	rows, err := s.workshop.GetRanking(ctx, groupID, phase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	entries := make([]analysis.RankingEntry, len(rows))
	for i, r := range rows {
		entries[i] = analysis.RankingEntry{Code: r.Code, Position: r.Position}
	}
	return entries, nil
}

// Rankings returns both submitted phases together with the platform ranking.
func (s *WorkshopService) Rankings(ctx context.Context, groupID string) (GroupRankings, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.group(dbCtx, groupID); err != nil {
		return GroupRankings{}, err
	}

	initial, err := s.ranking(dbCtx, groupID, PhaseInitial)
	if err != nil {
		return GroupRankings{}, err
	}
	revised, err := s.ranking(dbCtx, groupID, PhaseRevised)
	if err != nil {
		return GroupRankings{}, err
	}

	platform, _, err := s.PlatformRanking(ctx)
	if err != nil {
		return GroupRankings{}, err
	}

	return GroupRankings{Initial: initial, Revised: revised, Platform: platform}, nil
}

// SaveSelectedActions validates the action ids against the PEARC catalog and
// persists the group's selection.
func (s *WorkshopService) SaveSelectedActions(ctx context.Context, groupID string, actionIDs []string) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.group(dbCtx, groupID); err != nil {
		return err
	}

	valid := catalog.ActionIDs()
	for _, id := range actionIDs {
		if _, ok := valid[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAction, id)
		}
	}

	if err := s.workshop.SaveSelectedActions(dbCtx, groupID, actionIDs); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("actions saved",
		zap.String("group", groupID),
		zap.Int("count", len(actionIDs)))
	return nil
}

// PlatformRanking computes the composite ranking and the risk-dimension
// severity profile from the seeded municipality data.
func (s *WorkshopService) PlatformRanking(ctx context.Context) ([]analysis.PlatformRankingEntry, map[string]float64, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	data, err := s.municipalityData(dbCtx)
	if err != nil {
		return nil, nil, err
	}

	platform, err := analysis.ComputePlatformRanking(data, catalog.RiskDimensions, catalog.ProtectiveDimensions)
	if err != nil {
		return nil, nil, err
	}
	severities := analysis.DimensionSeverities(data, catalog.RiskDimensions)
	return platform, severities, nil
}

// Comparison runs the full comparison pipeline for a group. Both ranking
// phases must have been submitted.
func (s *WorkshopService) Comparison(ctx context.Context, groupID string) (*analysis.RankingComparison, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.group(dbCtx, groupID); err != nil {
		return nil, err
	}

	initial, err := s.ranking(dbCtx, groupID, PhaseInitial)
	if err != nil {
		return nil, err
	}
	revised, err := s.ranking(dbCtx, groupID, PhaseRevised)
	if err != nil {
		return nil, err
	}
	if len(initial) == 0 || len(revised) == 0 {
		return nil, ErrRankingNotFound
	}

	selected, err := s.workshop.GetSelectedActions(dbCtx, groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	platform, severities, err := s.PlatformRanking(ctx)
	if err != nil {
		return nil, err
	}

	result, err := analysis.ComputeComparison(analysis.ComparisonInput{
		Initial:         initial,
		Revised:         revised,
		Platform:        platform,
		Catalog:         catalog.Actions(),
		Severities:      severities,
		SelectedActions: selected,
		SuggestionLimit: s.suggestionLimit,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comparison computed",
		zap.String("group", groupID),
		zap.Float64("spearman", result.Correlation.Spearman),
		zap.Float64("actionOverlap", result.ActionOverlap))
	return result, nil
}

// PerspectiveChange reports how the group's view shifted between the initial
// and revised rankings, including the exploration effort that drove it.
func (s *WorkshopService) PerspectiveChange(ctx context.Context, groupID string) (*PerspectiveReport, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	g, err := s.group(dbCtx, groupID)
	if err != nil {
		return nil, err
	}

	comparison, err := s.Comparison(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &PerspectiveReport{
		PerspectiveShift: comparison.Shift,
		DataLayersUsed:   len(g.PurchasedLayers) + len(catalog.FreeLayers()),
		CreditsSpent:     catalog.InitialCredits - g.Credits,
	}, nil
}
