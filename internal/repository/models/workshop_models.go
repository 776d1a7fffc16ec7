package models

import "time"

type Group struct {
	ID              string
	Name            string
	Credits         int
	PurchasedLayers []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Purchase struct {
	GroupID     string
	LayerID     string
	Cost        int
	PurchasedAt time.Time
}

// RankingRow is one persisted entry of a submitted ranking.
type RankingRow struct {
	GroupID  string
	Phase    string
	Code     string
	Position int
}

// MunicipalityDimensionRow is one indicator value of the read-only seed data
// backing the platform ranking.
type MunicipalityDimensionRow struct {
	Code      string
	Name      string
	Quadrant  string
	Dimension string
	Value     float64
}

type LayerPopularity struct {
	LayerID string
	Count   int
}

type GroupActivity struct {
	ID             string
	Name           string
	Credits        int
	PurchasedCount int
	LastActivity   time.Time
}

// PurchaseStats is the admin overview of the layer economy.
type PurchaseStats struct {
	TotalGroups    int
	TotalPurchases int
	CreditsSpent   int
	PopularLayers  []LayerPopularity
	GroupStats     []GroupActivity
}
