//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrarisk/workshop-server/internal/catalog"
	"github.com/terrarisk/workshop-server/internal/httpapi"
	"github.com/terrarisk/workshop-server/internal/repository"
	"github.com/terrarisk/workshop-server/internal/service"
	"github.com/terrarisk/workshop-server/pkg/cache"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repository.Migrate(context.Background(), db))

	// four municipalities, risk rising from m1 to m4
	seed := `
	INSERT INTO municipality_dimensions (code, name, quadrant, dimension, value) VALUES
	('m1', 'Alfa',    'Q1', 'flooding', 0.10), ('m1', 'Alfa',    'Q1', 'dengue', 10), ('m1', 'Alfa',    'Q1', 'poverty', 5),  ('m1', 'Alfa',    'Q1', 'governance_general', 90),
	('m2', 'Bravo',   'Q2', 'flooding', 0.30), ('m2', 'Bravo',   'Q2', 'dengue', 35), ('m2', 'Bravo',   'Q2', 'poverty', 15), ('m2', 'Bravo',   'Q2', 'governance_general', 70),
	('m3', 'Charlie', 'Q3', 'flooding', 0.60), ('m3', 'Charlie', 'Q3', 'dengue', 60), ('m3', 'Charlie', 'Q3', 'poverty', 30), ('m3', 'Charlie', 'Q3', 'governance_general', 50),
	('m4', 'Delta',   'Q4', 'flooding', 0.90), ('m4', 'Delta',   'Q4', 'dengue', 95), ('m4', 'Delta',   'Q4', 'poverty', 55), ('m4', 'Delta',   'Q4', 'governance_general', 20);
	`
	_, err = db.Exec(seed)
	require.NoError(t, err)

	return db
}

func setupServer(t *testing.T) *httptest.Server {
	db := setupTestDB(t)
	logger := zap.NewNop()

	mr := miniredis.RunT(t)
	cacheClient, err := cache.New(context.Background(), cache.WithAddress(mr.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cacheClient.Close() })

	groupRepo := repository.NewGroupRepository(db)
	workshopRepo := repository.NewWorkshopRepository(db)

	groupService := service.NewGroupService(groupRepo, logger)
	workshopService := service.NewWorkshopService(groupRepo, workshopRepo, logger)

	handlers := httpapi.NewHTTPHandlers(groupService, workshopService, cacheClient, logger, 5*time.Minute)

	srv := httptest.NewServer(handlers.Router(nil))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any, dest any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string, dest any) *http.Response {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
	return resp
}

type groupPayload struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Credits         int      `json:"credits"`
	PurchasedLayers []string `json:"purchasedLayers"`
}

func TestE2E_WorkshopFlow(t *testing.T) {
	srv := setupServer(t)

	// create a group with the starting budget
	var group groupPayload
	resp := post(t, srv, "/api/groups", map[string]string{"name": "Equipo Norte"}, &group)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, catalog.InitialCredits, group.Credits)
	require.Len(t, group.ID, 8)

	// explore: buy two layers
	for _, layer := range []string{"flooding", "dengue"} {
		var updated groupPayload
		resp = post(t, srv, fmt.Sprintf("/api/groups/%s/purchase", group.ID),
			map[string]string{"layerId": layer}, &updated)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		group = updated
	}
	assert.Equal(t, catalog.InitialCredits-2, group.Credits)
	assert.ElementsMatch(t, []string{"flooding", "dengue"}, group.PurchasedLayers)

	// a second purchase of the same layer is rejected
	resp = post(t, srv, fmt.Sprintf("/api/groups/%s/purchase", group.ID),
		map[string]string{"layerId": "flooding"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// submit the initial ranking: opposite of the data
	initial := []map[string]any{
		{"code": "m1", "position": 1}, {"code": "m2", "position": 2},
		{"code": "m3", "position": 3}, {"code": "m4", "position": 4},
	}
	resp = post(t, srv, "/api/workshop/ranking", map[string]any{
		"groupId": group.ID, "phase": "initial", "ranking": initial,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// comparison needs both phases
	resp = get(t, srv, "/api/workshop/comparison/"+group.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// revised ranking follows the data exactly
	revised := []map[string]any{
		{"code": "m4", "position": 1}, {"code": "m3", "position": 2},
		{"code": "m2", "position": 3}, {"code": "m1", "position": 4},
	}
	resp = post(t, srv, "/api/workshop/ranking", map[string]any{
		"groupId": group.ID, "phase": "revised", "ranking": revised,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// pick actions
	resp = post(t, srv, "/api/workshop/actions/save", map[string]any{
		"groupId":         group.ID,
		"selectedActions": []string{"urban_drainage", "vector_surveillance"},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// rankings bundle shows both phases and the platform view
	var bundle struct {
		Initial  []map[string]any `json:"initial"`
		Revised  []map[string]any `json:"revised"`
		Platform []map[string]any `json:"platform"`
	}
	resp = get(t, srv, "/api/workshop/rankings/"+group.ID, &bundle)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, bundle.Initial, 4)
	assert.Len(t, bundle.Revised, 4)
	require.Len(t, bundle.Platform, 4)
	assert.Equal(t, "m4", bundle.Platform[0]["code"])

	// full comparison: revised matches the platform, initial was its reverse
	var comparison struct {
		Correlation struct {
			Spearman float64 `json:"spearman"`
			Kendall  float64 `json:"kendall"`
		} `json:"rankingCorrelation"`
		InitialCorrelation struct {
			Spearman float64 `json:"spearman"`
		} `json:"initialCorrelation"`
		SuggestedActions []map[string]any `json:"suggestedActions"`
		ActionOverlap    float64          `json:"actionOverlap"`
	}
	resp = get(t, srv, "/api/workshop/comparison/"+group.ID, &comparison)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 1.0, comparison.Correlation.Spearman, 1e-9)
	assert.InDelta(t, 1.0, comparison.Correlation.Kendall, 1e-9)
	assert.InDelta(t, -1.0, comparison.InitialCorrelation.Spearman, 1e-9)
	assert.NotEmpty(t, comparison.SuggestedActions)
	assert.GreaterOrEqual(t, comparison.ActionOverlap, 0.0)
	assert.LessOrEqual(t, comparison.ActionOverlap, 100.0)

	// perspective change report carries the exploration effort
	var perspective struct {
		TotalPositionChanges int  `json:"totalPositionChanges"`
		Meaningful           bool `json:"meaningful"`
		DataLayersUsed       int  `json:"dataLayersUsed"`
		CreditsSpent         int  `json:"creditsSpent"`
		Convergence          struct {
			Improvement float64 `json:"improvement"`
		} `json:"convergenceWithPlatform"`
	}
	resp = get(t, srv, "/api/workshop/perspective-change/"+group.ID, &perspective)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, perspective.TotalPositionChanges)
	assert.True(t, perspective.Meaningful)
	assert.Equal(t, 2+len(catalog.FreeLayers()), perspective.DataLayersUsed)
	assert.Equal(t, 2, perspective.CreditsSpent)
	assert.InDelta(t, 200, perspective.Convergence.Improvement, 1e-9)

	// admin view aggregates the economy
	var stats struct {
		TotalGroups    int `json:"totalGroups"`
		TotalPurchases int `json:"totalPurchases"`
		CreditsSpent   int `json:"creditsSpent"`
	}
	resp = get(t, srv, "/api/admin/stats", &stats)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, stats.TotalGroups)
	assert.Equal(t, 2, stats.TotalPurchases)
	assert.Equal(t, 2, stats.CreditsSpent)
}

func TestE2E_RankingValidation(t *testing.T) {
	srv := setupServer(t)

	var group groupPayload
	resp := post(t, srv, "/api/groups", map[string]string{"name": "Equipo Sur"}, &group)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("unknown group", func(t *testing.T) {
		resp := post(t, srv, "/api/workshop/ranking", map[string]any{
			"groupId": "nope", "phase": "initial",
			"ranking": []map[string]any{{"code": "m1", "position": 1}},
		}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("incomplete ranking", func(t *testing.T) {
		resp := post(t, srv, "/api/workshop/ranking", map[string]any{
			"groupId": group.ID, "phase": "initial",
			"ranking": []map[string]any{{"code": "m1", "position": 1}},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad phase", func(t *testing.T) {
		resp := post(t, srv, "/api/workshop/ranking", map[string]any{
			"groupId": group.ID, "phase": "final",
			"ranking": []map[string]any{},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown action id", func(t *testing.T) {
		resp := post(t, srv, "/api/workshop/actions/save", map[string]any{
			"groupId":         group.ID,
			"selectedActions": []string{"terraform_mars"},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestE2E_StaticCatalogs(t *testing.T) {
	srv := setupServer(t)

	var layers []map[string]any
	resp := get(t, srv, "/api/layers", &layers)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, layers, 16)

	var actions []map[string]any
	resp = get(t, srv, "/api/workshop/actions", &actions)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, actions, 15)

	var municipalities []map[string]any
	resp = get(t, srv, "/api/workshop/municipalities", &municipalities)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, municipalities, 4)

	var platform struct {
		Ranking    []map[string]any   `json:"ranking"`
		Severities map[string]float64 `json:"dimensionSeverities"`
	}
	resp = get(t, srv, "/api/workshop/platform-ranking", &platform)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, platform.Ranking, 4)
	assert.Equal(t, "m4", platform.Ranking[0]["code"])
	assert.NotEmpty(t, platform.Severities)
}
