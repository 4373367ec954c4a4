package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/asset-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

// GetAggregatesHandler godoc
// @Summary Aggregate snapshot of the filtered item population
// @Description Applies the filter spec from the query string and recomputes the full aggregate snapshot
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param branches query []int false "Branch ids"
// @Param categories query []int false "Category ids"
// @Param status query []string false "Status values"
// @Param start query string false "Purchase date range start (YYYY-MM-DD)"
// @Param end query string false "Purchase date range end (YYYY-MM-DD)"
// @Param search query string false "Free-text search over description and asset number"
// @Param min_value query number false "Minimum accounting value"
// @Param max_value query number false "Maximum accounting value"
// @Success 200 {object} AggregatesResult
// @Router /dashboard/aggregates [get]
func GetAggregatesHandler(w http.ResponseWriter, r *http.Request) {
	spec := dashboard.ParseFilterSpec(r.URL.Query())
	session.SetFilters(spec)
	filtered, snap := session.Recompute()

	writeJSON(w, http.StatusOK, AggregatesResult{
		Data: snap,
		Meta: Meta{TotalCount: len(filtered), CacheVersion: session.CacheVersion()},
	})
}

// GetFilteredItemsHandler godoc
// @Summary Filtered item listing from the session cache
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ItemsSearchResult
// @Router /dashboard/items [get]
func GetFilteredItemsHandler(w http.ResponseWriter, r *http.Request) {
	spec := dashboard.ParseFilterSpec(r.URL.Query())
	session.SetFilters(spec)
	filtered, _ := session.Recompute()

	if filtered == nil {
		filtered = []models.Item{}
	}
	writeJSON(w, http.StatusOK, ItemsSearchResult{
		Data: filtered,
		Meta: Meta{TotalCount: len(filtered), CacheVersion: session.CacheVersion()},
	})
}

// GetEvolutionHandler godoc
// @Summary Cumulative accounting value series over purchase-date months
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} EvolutionResult
// @Router /dashboard/evolution [get]
func GetEvolutionHandler(w http.ResponseWriter, r *http.Request) {
	spec := dashboard.ParseFilterSpec(r.URL.Query())
	session.SetFilters(spec)
	filtered, snap := session.Recompute()

	writeJSON(w, http.StatusOK, EvolutionResult{
		Data: snap.Evolution,
		Meta: Meta{TotalCount: len(filtered), CacheVersion: session.CacheVersion()},
	})
}

// RefreshHandler godoc
// @Summary Reload the item population from the listing API
// @Description Replaces the cached set wholesale; on failure the previous cache is retained
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RefreshResult
// @Failure 502 {string} string "Upstream fetch failed"
// @Router /dashboard/refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if err := session.Refresh(r.Context()); err != nil {
		log.Printf("Refresh failed: %v", err)
		http.Error(w, "could not refresh items", http.StatusBadGateway)
		return
	}

	filtered, _ := session.Recompute()
	writeJSON(w, http.StatusOK, RefreshResult{
		Items:        len(filtered),
		CacheVersion: session.CacheVersion(),
	})
}

// GetFilterOptionsHandler godoc
// @Summary Branch and category option lists for filter controls
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FilterOptionsResult
// @Failure 502 {string} string "Upstream fetch failed"
// @Router /dashboard/filters [get]
func GetFilterOptionsHandler(w http.ResponseWriter, r *http.Request) {
	branches, err := api.ListBranches(r.Context())
	if err != nil {
		log.Printf("Failed to fetch branches: %v", err)
		http.Error(w, "could not fetch filter options", http.StatusBadGateway)
		return
	}
	categories, err := api.ListCategories(r.Context())
	if err != nil {
		log.Printf("Failed to fetch categories: %v", err)
		http.Error(w, "could not fetch filter options", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, FilterOptionsResult{Branches: branches, Categories: categories})
}

// ResolveDrillDownHandler godoc
// @Summary Resolve an activated aggregate bucket to its navigation target
// @Description Returns either a macro view route or a detail modal query; the target is re-validated against the latest snapshot
// @Tags drilldown
// @Produce json
// @Security BearerAuth
// @Param dimension path string true "Aggregate dimension (branch, category, status, month)"
// @Param key path string true "Bucket key"
// @Success 200 {object} DrillDownResult
// @Failure 400 {string} string "Unknown dimension"
// @Router /dashboard/drilldown/{dimension}/{key} [get]
func ResolveDrillDownHandler(w http.ResponseWriter, r *http.Request) {
	dimension := dashboard.Dimension(chi.URLParam(r, "dimension"))
	key := chi.URLParam(r, "key")

	target, err := dashboard.ResolveDrillDown(dimension, key)
	if err != nil {
		http.Error(w, "unknown drill-down dimension", http.StatusBadRequest)
		return
	}

	_, snap := session.Recompute()
	writeJSON(w, http.StatusOK, DrillDownResult{
		Target: target,
		Stale:  !dashboard.BucketExists(snap, dimension, key),
	})
}

// GetMacroViewHandler godoc
// @Summary Dedicated aggregate view scoped to one dimension value
// @Tags drilldown
// @Produce json
// @Security BearerAuth
// @Param dimension path string true "Scope dimension (branch, category, status)"
// @Param key path string true "Scope value (display name or status)"
// @Success 200 {object} dashboard.MacroView
// @Failure 400 {string} string "Unknown dimension"
// @Failure 502 {string} string "Upstream fetch failed"
// @Router /dashboard/macro/{dimension}/{key} [get]
func GetMacroViewHandler(w http.ResponseWriter, r *http.Request) {
	dimension := dashboard.Dimension(chi.URLParam(r, "dimension"))
	key := chi.URLParam(r, "key")

	view, err := resolver.FetchMacroView(r.Context(), dimension, key, time.Now())
	if err != nil {
		switch dimension {
		case dashboard.DimensionBranch, dashboard.DimensionCategory, dashboard.DimensionStatus:
			log.Printf("Macro view fetch failed: %v", err)
			http.Error(w, "could not fetch macro view", http.StatusBadGateway)
		default:
			http.Error(w, "unknown macro view dimension", http.StatusBadRequest)
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetDetailHandler godoc
// @Summary Detail modal item set for a drill-down
// @Description The query string is the addressable modal state; a failed fetch yields an empty result with a failure flag, never an error page
// @Tags drilldown
// @Produce json
// @Security BearerAuth
// @Param modal query string true "Modal identifier"
// @Param status query string false "Native status filter"
// @Param limit query int false "Native page limit"
// @Param month query string false "Evolution bucket (YYYY-MM)"
// @Param zero_value query bool false "Only fully depreciated items"
// @Param recent_days query int false "Only items created in the last N days"
// @Success 200 {object} DetailResult
// @Failure 400 {string} string "Missing modal"
// @Router /dashboard/detail [get]
func GetDetailHandler(w http.ResponseWriter, r *http.Request) {
	q := dashboard.ParseDetailQuery(r.URL.Query())
	if q.Modal == "" {
		http.Error(w, "missing modal identifier", http.StatusBadRequest)
		return
	}

	// A bare modal identifier (shared URL without parameters) falls back
	// to the modal's own query definition.
	if q.Status == "" && q.Limit == 0 && q.Month == "" && !q.ZeroValue && q.RecentDays == 0 {
		q = dashboard.ResolveModal(q.Modal, "")
	}

	items, err := resolver.FetchDetail(r.Context(), q, time.Now())
	if err != nil {
		log.Printf("Detail fetch failed: %v", err)
		writeJSON(w, http.StatusOK, DetailResult{Data: []models.Item{}, Query: q, Failed: true})
		return
	}

	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, DetailResult{
		Data:  items,
		Query: q,
		Meta:  Meta{TotalCount: len(items)},
	})
}
