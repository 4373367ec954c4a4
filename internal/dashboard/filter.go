// Package dashboard implements the in-memory aggregation core: filtering
// the cached item population, computing aggregate snapshots, and resolving
// drill-downs from aggregate buckets back to item sets.
package dashboard

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

// DateRange bounds the purchase date, inclusive on both ends. The filter is
// only active when both bounds are present.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ValueRange bounds the accounting value. Nil bounds are inactive.
type ValueRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// FilterSpec selects a subset of the item population. An empty or absent
// component means "match all" for that dimension, never "match none".
type FilterSpec struct {
	Branches   []int           `json:"branches,omitempty"`
	Categories []int           `json:"categories,omitempty"`
	Status     []models.Status `json:"status,omitempty"`
	DateRange  *DateRange      `json:"date_range,omitempty"`
	Search     string          `json:"search,omitempty"`
	ValueRange ValueRange      `json:"value_range,omitempty"`
}

// IsZero reports whether no predicate is active.
func (s FilterSpec) IsZero() bool {
	return len(s.Branches) == 0 && len(s.Categories) == 0 && len(s.Status) == 0 &&
		s.DateRange == nil && s.Search == "" &&
		s.ValueRange.Min == nil && s.ValueRange.Max == nil
}

// matches evaluates the predicate conjunction for one item. Predicates are
// checked in the documented order: branch, category, status, value lower
// bound, value upper bound, free-text search, date range.
func (s FilterSpec) matches(item models.Item) bool {
	if len(s.Branches) > 0 && !containsInt(s.Branches, item.BranchID) {
		return false
	}
	if len(s.Categories) > 0 {
		id, ok := item.CategoryID()
		if !ok || !containsInt(s.Categories, id) {
			return false
		}
	}
	if len(s.Status) > 0 && !containsStatus(s.Status, item.Status) {
		return false
	}
	if s.ValueRange.Min != nil && item.BookValue() < *s.ValueRange.Min {
		return false
	}
	if s.ValueRange.Max != nil && item.BookValue() > *s.ValueRange.Max {
		return false
	}
	if s.Search != "" {
		needle := strings.ToLower(s.Search)
		if !strings.Contains(strings.ToLower(item.Description), needle) &&
			!(item.FixedAssetNumber != "" && strings.Contains(strings.ToLower(item.FixedAssetNumber), needle)) {
			return false
		}
	}
	if s.DateRange != nil {
		if item.PurchaseDate == nil {
			return false
		}
		d := *item.PurchaseDate
		if d.Before(s.DateRange.Start) || d.After(s.DateRange.End) {
			return false
		}
	}
	return true
}

// Apply filters items by the spec. The result preserves the input's
// relative order; the input is never mutated.
func Apply(items []models.Item, spec FilterSpec) []models.Item {
	filtered := make([]models.Item, 0, len(items))
	for _, item := range items {
		if spec.matches(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsStatus(list []models.Status, v models.Status) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

const specDateLayout = "2006-01-02"

// Values encodes the spec as URL query values. The encoding round-trips
// through ParseFilterSpec, which makes any filtered view addressable and
// shareable.
func (s FilterSpec) Values() url.Values {
	q := url.Values{}
	for _, b := range s.Branches {
		q.Add("branches", strconv.Itoa(b))
	}
	for _, c := range s.Categories {
		q.Add("categories", strconv.Itoa(c))
	}
	for _, st := range s.Status {
		q.Add("status", string(st))
	}
	if s.DateRange != nil {
		q.Set("start", s.DateRange.Start.Format(specDateLayout))
		q.Set("end", s.DateRange.End.Format(specDateLayout))
	}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.ValueRange.Min != nil {
		q.Set("min_value", strconv.FormatFloat(*s.ValueRange.Min, 'f', -1, 64))
	}
	if s.ValueRange.Max != nil {
		q.Set("max_value", strconv.FormatFloat(*s.ValueRange.Max, 'f', -1, 64))
	}
	return q
}

// Key returns a canonical string form of the spec, used as a memoization
// key alongside the cache generation.
func (s FilterSpec) Key() string {
	return s.Values().Encode()
}

// ParseFilterSpec decodes a spec from URL query values. Unparseable
// members are skipped; a date range with only one parseable bound is
// inactive.
func ParseFilterSpec(q url.Values) FilterSpec {
	var spec FilterSpec
	for _, raw := range q["branches"] {
		if id, err := strconv.Atoi(raw); err == nil {
			spec.Branches = append(spec.Branches, id)
		}
	}
	for _, raw := range q["categories"] {
		if id, err := strconv.Atoi(raw); err == nil {
			spec.Categories = append(spec.Categories, id)
		}
	}
	for _, raw := range q["status"] {
		if raw != "" {
			spec.Status = append(spec.Status, models.Status(raw))
		}
	}
	if startRaw, endRaw := q.Get("start"), q.Get("end"); startRaw != "" && endRaw != "" {
		start, errStart := time.Parse(specDateLayout, startRaw)
		end, errEnd := time.Parse(specDateLayout, endRaw)
		if errStart == nil && errEnd == nil {
			// The end bound is inclusive for the whole day.
			end = end.Add(24*time.Hour - time.Nanosecond)
			spec.DateRange = &DateRange{Start: start, End: end}
		}
	}
	spec.Search = q.Get("search")
	if raw := q.Get("min_value"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			spec.ValueRange.Min = &v
		}
	}
	if raw := q.Get("max_value"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			spec.ValueRange.Max = &v
		}
	}
	return spec
}
