package dashboard

import (
	"sort"
	"time"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

// Bucket labels for items whose branch or category cannot be resolved.
// Such items still count towards every total; only the dimension that
// needs the missing field falls back to the sentinel.
const (
	NoBranchLabel   = "No branch"
	NoCategoryLabel = "No category"
)

// A month is approximated as 30.44 days for asset age computation.
const hoursPerMonth = 24 * 30.44

// Snapshot is the aggregate view of a filtered item set. It is a pure
// function of the item list and the captured "now"; it is recomputed
// wholesale on every input change, never patched incrementally.
type Snapshot struct {
	TotalValue            float64 `json:"total_value"`
	TotalPurchaseValue    float64 `json:"total_purchase_value"`
	TotalItems            int     `json:"total_items"`
	PendingValue          float64 `json:"pending_value"`
	PendingCount          int     `json:"pending_count"`
	AverageAssetAgeMonths float64 `json:"average_asset_age_months"`
	ZeroDepreciationCount int     `json:"zero_depreciation_count"`

	ValueByBranch   map[string]float64 `json:"value_by_branch"`
	CountByBranch   map[string]int     `json:"count_by_branch"`
	ValueByCategory map[string]float64 `json:"value_by_category"`
	CountByCategory map[string]int     `json:"count_by_category"`
	ItemsByStatus   map[string]int     `json:"items_by_status"`

	TopItems    []models.Item `json:"top_items"`
	RecentItems []models.Item `json:"recent_items"`

	Evolution []SeriesPoint `json:"evolution"`
}

// Aggregate computes the snapshot for a filtered item set using the
// current time for age figures.
func Aggregate(items []models.Item) Snapshot {
	return AggregateAt(items, time.Now())
}

// AggregateAt computes the snapshot with an injected "now", captured once
// for the whole pass. Identical inputs yield identical snapshots.
func AggregateAt(items []models.Item, now time.Time) Snapshot {
	snap := Snapshot{
		ValueByBranch:   map[string]float64{},
		CountByBranch:   map[string]int{},
		ValueByCategory: map[string]float64{},
		CountByCategory: map[string]int{},
		ItemsByStatus:   map[string]int{},
	}

	var totalAgeMonths float64
	agedItems := 0

	for _, item := range items {
		value := item.BookValue()

		snap.TotalValue += value
		snap.TotalPurchaseValue += item.InvoiceValue
		snap.TotalItems++

		if item.FullyDepreciated() {
			snap.ZeroDepreciationCount++
		}

		if item.PurchaseDate != nil {
			ageMonths := now.Sub(*item.PurchaseDate).Hours() / hoursPerMonth
			if ageMonths > 0 {
				totalAgeMonths += ageMonths
				agedItems++
			}
		}

		if item.Status.Pending() {
			snap.PendingCount++
			snap.PendingValue += value
		}

		branchName := item.BranchName()
		if branchName == "" {
			branchName = NoBranchLabel
		}
		snap.ValueByBranch[branchName] += value
		snap.CountByBranch[branchName]++

		categoryName := item.CategoryName()
		if categoryName == "" {
			categoryName = NoCategoryLabel
		}
		snap.ValueByCategory[categoryName] += value
		snap.CountByCategory[categoryName]++

		snap.ItemsByStatus[string(item.Status)]++
	}

	if agedItems > 0 {
		snap.AverageAssetAgeMonths = totalAgeMonths / float64(agedItems)
	}

	snap.TopItems = topByValue(items, 10)
	snap.RecentItems = recentByID(items, 10)
	snap.Evolution = EvolutionSeries(items)

	return snap
}

// topByValue returns the n highest-valued items, descending. Ties keep
// their original relative order.
func topByValue(items []models.Item, n int) []models.Item {
	ranked := make([]models.Item, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BookValue() > ranked[j].BookValue()
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// recentByID returns the n highest-id items, descending. The numeric id is
// a proxy for recency; see the item listing contract.
func recentByID(items []models.Item, n int) []models.Item {
	ranked := make([]models.Item, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ID > ranked[j].ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
