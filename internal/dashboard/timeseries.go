package dashboard

import (
	"sort"
	"time"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

// SeriesPoint is one bucket of the evolution series: the total accounting
// value of all matching items purchased up to and including that month.
type SeriesPoint struct {
	Month           string  `json:"month"`
	CumulativeValue float64 `json:"cumulative_value"`
}

const monthKeyLayout = "2006-01"

// MonthKey buckets a date into its year-month key. Drill-down matching
// uses the same rule, so clicking a series point yields exactly the items
// that contributed to it.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// EvolutionSeries computes the cumulative accounting value series over
// purchase-date month buckets, in ascending chronological order. Items
// without a parseable purchase date are skipped. When several items share
// a bucket the last running total written for it wins.
func EvolutionSeries(items []models.Item) []SeriesPoint {
	type dated struct {
		date  time.Time
		value float64
	}

	withDate := make([]dated, 0, len(items))
	for _, item := range items {
		if item.PurchaseDate == nil {
			continue
		}
		withDate = append(withDate, dated{date: *item.PurchaseDate, value: item.BookValue()})
	}
	sort.SliceStable(withDate, func(i, j int) bool {
		return withDate[i].date.Before(withDate[j].date)
	})

	var series []SeriesPoint
	var running float64
	for _, d := range withDate {
		running += d.value
		key := MonthKey(d.date)
		if n := len(series); n > 0 && series[n-1].Month == key {
			series[n-1].CumulativeValue = running
			continue
		}
		series = append(series, SeriesPoint{Month: key, CumulativeValue: running})
	}
	return series
}
