package handlers

import (
	"github.com/rogerio-castellano/asset-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/asset-dashboard/internal/models"
	"github.com/rogerio-castellano/asset-dashboard/internal/repo"
)

type Meta struct {
	TotalCount   int    `json:"total_count"`
	CacheVersion uint64 `json:"cache_version"`
}

type AggregatesResult struct {
	Data dashboard.Snapshot `json:"data"`
	Meta Meta               `json:"meta"`
}

type ItemsSearchResult struct {
	Data []models.Item `json:"data"`
	Meta Meta          `json:"meta,omitempty"`
}

type EvolutionResult struct {
	Data []dashboard.SeriesPoint `json:"data"`
	Meta Meta                    `json:"meta,omitempty"`
}

type FilterOptionsResult struct {
	Branches   []models.Branch   `json:"branches"`
	Categories []models.Category `json:"categories"`
}

type DetailResult struct {
	Data  []models.Item         `json:"data"`
	Query dashboard.DetailQuery `json:"query"`
	Meta  Meta                  `json:"meta,omitempty"`
	// Failed marks a drill-down whose fetch did not complete; the UI shows
	// an empty result with a loading-failed indicator instead of crashing.
	Failed bool `json:"failed,omitempty"`
}

type DrillDownResult struct {
	Target dashboard.DrillDown `json:"target"`
	// Stale marks a bucket that no longer exists in the latest snapshot,
	// e.g. after a concurrent refresh removed it.
	Stale bool `json:"stale,omitempty"`
}

type RefreshResult struct {
	Items        int    `json:"items"`
	CacheVersion uint64 `json:"cache_version"`
}

type PreferencesResponse struct {
	Layout  []string            `json:"layout"`
	Presets map[string][]string `json:"presets"`
	Theme   string              `json:"theme"`
	Default bool                `json:"default"` // true when nothing was stored and the role default applies
}

type LayoutRequest struct {
	Layout []string `json:"layout"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type AlertRequest struct {
	Message string `json:"message"`
}

func preferencesResponse(p repo.Preferences, isDefault bool) PreferencesResponse {
	return PreferencesResponse{
		Layout:  p.Layout,
		Presets: p.Presets,
		Theme:   p.Theme,
		Default: isDefault,
	}
}
