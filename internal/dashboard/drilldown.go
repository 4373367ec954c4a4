package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rogerio-castellano/asset-dashboard/internal/client"
	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

// Dimension identifies the aggregate axis a user activated.
type Dimension string

const (
	DimensionBranch   Dimension = "branch"
	DimensionCategory Dimension = "category"
	DimensionStatus   Dimension = "status"
	DimensionMonth    Dimension = "month"
)

// Detail modal identifiers. Each KPI card or chart segment opens one of
// these, and the identifier is part of the addressable view state.
const (
	ModalTotalValue = "total-value"
	ModalTotalItems = "total-items"
	ModalPending    = "pending"
	ModalWriteOff   = "writeoff"
	ModalZeroDep    = "zero-dep"
	ModalEvolution  = "evolution"
	ModalRecent     = "recent"
)

const (
	defaultDetailLimit = 1000
	monthDetailLimit   = 5000
	macroFetchLimit    = 5000
)

// DetailQuery describes a drill-down detail fetch: which parameters the
// listing API applies natively (status, limit) and which predicates this
// side applies after the fetch (month bucket, zero value, recent days).
type DetailQuery struct {
	Modal      string `json:"modal"`
	Status     string `json:"status,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Month      string `json:"month,omitempty"`
	ZeroValue  bool   `json:"zero_value,omitempty"`
	RecentDays int    `json:"recent_days,omitempty"`
}

// Values encodes the query as URL values so an open modal survives
// navigation and can be restored from a shared URL.
func (q DetailQuery) Values() url.Values {
	v := url.Values{}
	v.Set("modal", q.Modal)
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Month != "" {
		v.Set("month", q.Month)
	}
	if q.ZeroValue {
		v.Set("zero_value", "true")
	}
	if q.RecentDays > 0 {
		v.Set("recent_days", strconv.Itoa(q.RecentDays))
	}
	return v
}

// ParseDetailQuery restores a DetailQuery from URL values.
func ParseDetailQuery(v url.Values) DetailQuery {
	q := DetailQuery{
		Modal:  v.Get("modal"),
		Status: v.Get("status"),
		Month:  v.Get("month"),
	}
	if raw := v.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Limit = n
		}
	}
	if v.Get("zero_value") == "true" {
		q.ZeroValue = true
	}
	if raw := v.Get("recent_days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.RecentDays = n
		}
	}
	return q
}

// ResolveModal maps a modal identifier to its detail query. Unknown modals
// fall back to a plain limited listing rather than failing.
func ResolveModal(modal string, key string) DetailQuery {
	switch modal {
	case ModalTotalValue, ModalTotalItems:
		return DetailQuery{Modal: modal, Limit: 100}
	case ModalPending:
		return DetailQuery{Modal: modal, Status: string(models.StatusPending)}
	case ModalWriteOff:
		return DetailQuery{Modal: modal, Status: string(models.StatusWriteOffPending)}
	case ModalZeroDep:
		return DetailQuery{Modal: modal, ZeroValue: true}
	case ModalEvolution:
		return DetailQuery{Modal: modal, Month: key}
	case ModalRecent:
		return DetailQuery{Modal: modal, RecentDays: 30}
	default:
		return DetailQuery{Modal: modal, Limit: defaultDetailLimit}
	}
}

// DrillDown is the resolved target of an activated aggregate bucket:
// either a dedicated macro view scoped to a dimension value, or a detail
// modal backed by a constrained fetch.
type DrillDown struct {
	Macro     bool        `json:"macro"`
	Dimension Dimension   `json:"dimension,omitempty"`
	Key       string      `json:"key,omitempty"`
	Detail    DetailQuery `json:"detail,omitempty"`
}

// ResolveDrillDown translates a clicked dimension and bucket key into its
// navigation target. Branch, category and status buckets open macro
// views; month buckets open the evolution detail modal.
func ResolveDrillDown(dimension Dimension, key string) (DrillDown, error) {
	switch dimension {
	case DimensionBranch, DimensionCategory, DimensionStatus:
		return DrillDown{Macro: true, Dimension: dimension, Key: key}, nil
	case DimensionMonth:
		return DrillDown{Detail: ResolveModal(ModalEvolution, key)}, nil
	default:
		return DrillDown{}, fmt.Errorf("unknown drill-down dimension %q", dimension)
	}
}

// itemAPI is the slice of the listing client the resolver needs.
type itemAPI interface {
	ListItems(ctx context.Context, params client.ListParams) ([]models.Item, error)
}

// Resolver fetches drill-down item sets from the listing API,
// independently of the session cache.
type Resolver struct {
	api itemAPI
}

func NewResolver(api itemAPI) *Resolver {
	return &Resolver{api: api}
}

// FetchDetail runs a detail modal query: it pushes the natively supported
// parameters to the API and applies the remaining predicates locally. The
// API has no month or year filter, so month-scoped fetches pull a larger
// window and narrow it here with the same bucket rule as the evolution
// series.
func (r *Resolver) FetchDetail(ctx context.Context, q DetailQuery, now time.Time) ([]models.Item, error) {
	params := client.ListParams{Status: q.Status}
	switch {
	case q.Month != "":
		params.Limit = monthDetailLimit
	case q.Limit > 0:
		params.Limit = q.Limit
	default:
		params.Limit = defaultDetailLimit
	}

	items, err := r.api.ListItems(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("drill-down fetch failed: %w", err)
	}

	if q.RecentDays > 0 {
		cutoff := now.AddDate(0, 0, -q.RecentDays)
		items = keep(items, func(i models.Item) bool {
			when := i.CreatedAt
			if when == nil {
				when = i.PurchaseDate
			}
			return when != nil && !when.Before(cutoff)
		})
	}

	if q.ZeroValue {
		items = keep(items, models.Item.FullyDepreciated)
	}

	if q.Month != "" {
		items = keep(items, func(i models.Item) bool {
			return i.PurchaseDate != nil && MonthKey(*i.PurchaseDate) == q.Month
		})
	}

	return items, nil
}

// MacroView is a dedicated aggregate view scoped to one dimension value.
type MacroView struct {
	Dimension        Dimension     `json:"dimension"`
	Key              string        `json:"key"`
	Items            []models.Item `json:"items"`
	Snapshot         Snapshot      `json:"snapshot"`
	AverageItemValue float64       `json:"average_item_value"`
}

// FetchMacroView fetches a fresh, larger item set and scopes it to the
// dimension value, then re-runs the regular aggregation over the result.
// Branch and category buckets are keyed by display name, so the scope
// predicate matches on the resolved display name too.
func (r *Resolver) FetchMacroView(ctx context.Context, dimension Dimension, key string, now time.Time) (MacroView, error) {
	items, err := r.api.ListItems(ctx, client.ListParams{Limit: macroFetchLimit})
	if err != nil {
		return MacroView{}, fmt.Errorf("macro view fetch failed: %w", err)
	}

	switch dimension {
	case DimensionBranch:
		items = keep(items, func(i models.Item) bool { return i.BranchName() == key })
	case DimensionCategory:
		items = keep(items, func(i models.Item) bool { return i.CategoryName() == key })
	case DimensionStatus:
		items = keep(items, func(i models.Item) bool { return string(i.Status) == key })
	default:
		return MacroView{}, fmt.Errorf("unknown macro view dimension %q", dimension)
	}

	view := MacroView{
		Dimension: dimension,
		Key:       key,
		Items:     items,
		Snapshot:  AggregateAt(items, now),
	}
	if view.Snapshot.TotalItems > 0 {
		view.AverageItemValue = view.Snapshot.TotalValue / float64(view.Snapshot.TotalItems)
	}
	return view, nil
}

// BucketExists re-validates a drill-down target against the latest
// snapshot. After a concurrent refresh a clicked bucket may no longer
// exist; callers use this to flag the mismatch instead of crashing.
func BucketExists(snap Snapshot, dimension Dimension, key string) bool {
	switch dimension {
	case DimensionBranch:
		_, ok := snap.CountByBranch[key]
		return ok
	case DimensionCategory:
		_, ok := snap.CountByCategory[key]
		return ok
	case DimensionStatus:
		_, ok := snap.ItemsByStatus[key]
		return ok
	case DimensionMonth:
		for _, p := range snap.Evolution {
			if p.Month == key {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func keep(items []models.Item, pred func(models.Item) bool) []models.Item {
	kept := items[:0:0]
	for _, item := range items {
		if pred(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
