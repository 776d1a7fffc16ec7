package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/terrarisk/workshop-server/internal/analysis"
	"github.com/terrarisk/workshop-server/internal/repository/models"
	"github.com/terrarisk/workshop-server/internal/service"
	"github.com/terrarisk/workshop-server/pkg/httpserver"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyPlatformRanking CacheKeyType = "http:platform_ranking"
	cacheKeyMunicipalities  CacheKeyType = "http:municipalities"
	cacheKeyComparison      CacheKeyType = "http:comparison"
	cacheKeyPerspective     CacheKeyType = "http:perspective_change"
)

type HTTPHandlers struct {
	groups   GroupService
	workshop WorkshopService
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewHTTPHandlers initializes the HTTP handlers.
func NewHTTPHandlers(groups GroupService, workshop WorkshopService, cache Cacher, logger *zap.Logger, ttl time.Duration) *HTTPHandlers {
	if groups == nil || workshop == nil {
		panic("nil services provided to NewHTTPHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &HTTPHandlers{
		groups:   groups,
		workshop: workshop,
		cache:    cache,
		logger:   logger.Named("http-handler"),
		cacheTTL: ttl,
	}
}

// Router assembles the full route tree with middleware.
func (h *HTTPHandlers) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(httpserver.RequestID)
	r.Use(httpserver.RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/groups", func(r chi.Router) {
			r.Post("/", h.CreateGroup)
			r.Get("/", h.ListGroups)
			r.Get("/{groupID}", h.GetGroup)
			r.Post("/{groupID}/purchase", h.PurchaseLayer)
		})

		r.Get("/layers", h.Layers)

		r.Route("/workshop", func(r chi.Router) {
			r.Get("/municipalities", h.Municipalities)
			r.Get("/actions", h.Actions)
			r.Post("/actions/save", h.SaveSelectedActions)
			r.Post("/ranking", h.SubmitRanking)
			r.Get("/rankings/{groupID}", h.Rankings)
			r.Get("/platform-ranking", h.PlatformRanking)
			r.Get("/comparison/{groupID}", h.Comparison)
			r.Get("/perspective-change/{groupID}", h.PerspectiveChange)
		})

		r.Get("/admin/stats", h.AdminStats)
	})

	return r
}

type groupResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Credits         int       `json:"credits"`
	PurchasedLayers []string  `json:"purchasedLayers"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toGroupResponse(g models.Group) groupResponse {
	layers := g.PurchasedLayers
	if layers == nil {
		layers = []string{}
	}
	return groupResponse{
		ID:              g.ID,
		Name:            g.Name,
		Credits:         g.Credits,
		PurchasedLayers: layers,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

// handleServiceError translates service and analysis sentinels into HTTP
// status codes. Validation problems come back as 400, missing resources as
// 404, broken analysis preconditions as 422 and everything else as 500.
func (h *HTTPHandlers) handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch r.Context().Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		writeError(w, 499, "request canceled")
		return
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		writeError(w, http.StatusGatewayTimeout, "request timed out")
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidGroupName),
		errors.Is(err, service.ErrInvalidPhase),
		errors.Is(err, service.ErrInvalidRanking),
		errors.Is(err, service.ErrUnknownAction),
		errors.Is(err, service.ErrLayerIsFree),
		errors.Is(err, service.ErrLayerAlreadyPurchased),
		errors.Is(err, service.ErrInsufficientCredits):
		h.logger.Info("rejected request", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrRankingNotFound),
		errors.Is(err, service.ErrLayerNotFound):
		h.logger.Info("resource not found", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, analysis.ErrMismatchedUniverse),
		errors.Is(err, analysis.ErrMissingCode),
		errors.Is(err, analysis.ErrEmptyCatalog),
		errors.Is(err, analysis.ErrNoMunicipalities):
		h.logger.Warn("analysis precondition failed", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database error")

	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s failed", op))
	}
}

// invalidateGroupAnalysis drops the cached analysis responses for a group
// after its inputs changed.
func (h *HTTPHandlers) invalidateGroupAnalysis(ctx context.Context, groupID string) {
	if h.cache == nil {
		return
	}
	keys := []string{
		fmt.Sprintf("%s:%s", cacheKeyComparison, groupID),
		fmt.Sprintf("%s:%s", cacheKeyPerspective, groupID),
	}
	if err := h.cache.Delete(ctx, keys...); err != nil {
		h.logger.Warn("cache invalidation failed", zap.String("group", groupID), zap.Error(err))
	}
}

func (h *HTTPHandlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.groups.CreateGroup(r.Context(), req.Name)
	if err != nil {
		h.handleError(w, r, "CreateGroup", err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(g))
}

func (h *HTTPHandlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListGroups(r.Context())
	if err != nil {
		h.handleError(w, r, "ListGroups", err)
		return
	}

	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = toGroupResponse(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	g, err := h.groups.GetGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		h.handleError(w, r, "GetGroup", err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(g))
}

func (h *HTTPHandlers) PurchaseLayer(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	var req struct {
		LayerID string `json:"layerId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.groups.PurchaseLayer(r.Context(), groupID, req.LayerID)
	if err != nil {
		h.handleError(w, r, "PurchaseLayer", err)
		return
	}

	// purchased layers feed the perspective report
	h.invalidateGroupAnalysis(r.Context(), groupID)
	writeJSON(w, http.StatusOK, toGroupResponse(g))
}

func (h *HTTPHandlers) Layers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.groups.Layers())
}

func (h *HTTPHandlers) Municipalities(w http.ResponseWriter, r *http.Request) {
	summaries, err := FindAndCache(r.Context(), h.cache, &h.sfGroup, string(cacheKeyMunicipalities), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) ([]service.MunicipalitySummary, error) {
			return h.workshop.Municipalities(fetchCtx)
		})
	if err != nil {
		h.handleError(w, r, "Municipalities", err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *HTTPHandlers) Actions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.workshop.ActionsCatalog())
}

func (h *HTTPHandlers) SubmitRanking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID string                  `json:"groupId"`
		Phase   string                  `json:"phase"`
		Ranking []analysis.RankingEntry `json:"ranking"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.workshop.SubmitRanking(r.Context(), req.GroupID, req.Phase, req.Ranking); err != nil {
		h.handleError(w, r, "SubmitRanking", err)
		return
	}

	h.invalidateGroupAnalysis(r.Context(), req.GroupID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *HTTPHandlers) Rankings(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.workshop.Rankings(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		h.handleError(w, r, "Rankings", err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *HTTPHandlers) SaveSelectedActions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID         string   `json:"groupId"`
		SelectedActions []string `json:"selectedActions"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.workshop.SaveSelectedActions(r.Context(), req.GroupID, req.SelectedActions); err != nil {
		h.handleError(w, r, "SaveSelectedActions", err)
		return
	}

	h.invalidateGroupAnalysis(r.Context(), req.GroupID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

type platformRankingResponse struct {
	Ranking    []analysis.PlatformRankingEntry `json:"ranking"`
	Severities map[string]float64              `json:"dimensionSeverities"`
}

func (h *HTTPHandlers) PlatformRanking(w http.ResponseWriter, r *http.Request) {
	resp, err := FindAndCache(r.Context(), h.cache, &h.sfGroup, string(cacheKeyPlatformRanking), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (platformRankingResponse, error) {
			ranking, severities, err := h.workshop.PlatformRanking(fetchCtx)
			if err != nil {
				return platformRankingResponse{}, err
			}
			return platformRankingResponse{Ranking: ranking, Severities: severities}, nil
		})
	if err != nil {
		h.handleError(w, r, "PlatformRanking", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandlers) Comparison(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	key := fmt.Sprintf("%s:%s", cacheKeyComparison, groupID)

	result, err := FindAndCache(r.Context(), h.cache, &h.sfGroup, key, h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (*analysis.RankingComparison, error) {
			return h.workshop.Comparison(fetchCtx, groupID)
		})
	if err != nil {
		h.handleError(w, r, "Comparison", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandlers) PerspectiveChange(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	key := fmt.Sprintf("%s:%s", cacheKeyPerspective, groupID)

	report, err := FindAndCache(r.Context(), h.cache, &h.sfGroup, key, h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (*service.PerspectiveReport, error) {
			return h.workshop.PerspectiveChange(fetchCtx, groupID)
		})
	if err != nil {
		h.handleError(w, r, "PerspectiveChange", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type adminStatsResponse struct {
	TotalGroups    int                    `json:"totalGroups"`
	TotalPurchases int                    `json:"totalPurchases"`
	CreditsSpent   int                    `json:"creditsSpent"`
	PopularLayers  []layerPopularityEntry `json:"popularLayers"`
	GroupStats     []groupActivityEntry   `json:"groupStats"`
}

type layerPopularityEntry struct {
	LayerID string `json:"layerId"`
	Count   int    `json:"count"`
}

type groupActivityEntry struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Credits        int       `json:"credits"`
	PurchasedCount int       `json:"purchasedCount"`
	LastActivity   time.Time `json:"lastActivity"`
}

func (h *HTTPHandlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.groups.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, "AdminStats", err)
		return
	}

	resp := adminStatsResponse{
		TotalGroups:    stats.TotalGroups,
		TotalPurchases: stats.TotalPurchases,
		CreditsSpent:   stats.CreditsSpent,
		PopularLayers:  make([]layerPopularityEntry, len(stats.PopularLayers)),
		GroupStats:     make([]groupActivityEntry, len(stats.GroupStats)),
	}
	for i, l := range stats.PopularLayers {
		resp.PopularLayers[i] = layerPopularityEntry{LayerID: l.LayerID, Count: l.Count}
	}
	for i, g := range stats.GroupStats {
		resp.GroupStats[i] = groupActivityEntry{
			ID: g.ID, Name: g.Name, Credits: g.Credits,
			PurchasedCount: g.PurchasedCount, LastActivity: g.LastActivity,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
