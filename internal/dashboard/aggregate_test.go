package dashboard

import (
	"reflect"
	"testing"
	"time"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestAggregate_ScenarioUnfiltered(t *testing.T) {
	snap := AggregateAt(scenarioItems(), testNow)

	if snap.TotalValue != 3500 {
		t.Errorf("expected total value 3500, got %v", snap.TotalValue)
	}
	if snap.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", snap.TotalItems)
	}
	if snap.PendingValue != 2500 {
		t.Errorf("expected pending value 2500, got %v", snap.PendingValue)
	}
	if snap.PendingCount != 2 {
		t.Errorf("expected pending count 2, got %d", snap.PendingCount)
	}
	expectedByBranch := map[string]float64{"Matriz": 1500, "Filial SP": 2000}
	if !reflect.DeepEqual(snap.ValueByBranch, expectedByBranch) {
		t.Errorf("expected value by branch %v, got %v", expectedByBranch, snap.ValueByBranch)
	}
}

func TestAggregate_ScenarioBranchFiltered(t *testing.T) {
	filtered := Apply(scenarioItems(), FilterSpec{Branches: []int{matrizID}})
	snap := AggregateAt(filtered, testNow)

	if len(filtered) != 2 || filtered[0].ID != 1 || filtered[1].ID != 2 {
		t.Fatalf("expected filtered set [1 2], got %v", filtered)
	}
	if snap.TotalValue != 1500 {
		t.Errorf("expected total value 1500, got %v", snap.TotalValue)
	}
	if snap.PendingCount != 1 {
		t.Errorf("expected pending count 1, got %d", snap.PendingCount)
	}
}

func TestAggregate_ZeroVersusAbsentValue(t *testing.T) {
	items := []models.Item{
		{ID: 1, Description: "Explicit zero", Status: models.StatusApproved, AccountingValue: fptr(0)},
		{ID: 2, Description: "No value", Status: models.StatusApproved},
	}

	snap := AggregateAt(items, testNow)

	if snap.ZeroDepreciationCount != 1 {
		t.Errorf("expected only the explicit zero to count, got %d", snap.ZeroDepreciationCount)
	}
	if snap.TotalValue != 0 {
		t.Errorf("expected both items to contribute 0 to total value, got %v", snap.TotalValue)
	}
	if snap.TotalItems != 2 {
		t.Errorf("expected both items in the total count, got %d", snap.TotalItems)
	}
}

func TestAggregate_SumInvariant(t *testing.T) {
	items := append(scenarioItems(),
		models.Item{ID: 4, Description: "Orphan", Status: models.StatusApproved, AccountingValue: fptr(300)},
	)

	snap := AggregateAt(items, testNow)

	var branchSum float64
	for _, v := range snap.ValueByBranch {
		branchSum += v
	}
	if branchSum != snap.TotalValue {
		t.Errorf("value by branch sums to %v, total is %v", branchSum, snap.TotalValue)
	}

	var statusSum int
	for _, c := range snap.ItemsByStatus {
		statusSum += c
	}
	if statusSum != snap.TotalItems {
		t.Errorf("status counts sum to %d, total is %d", statusSum, snap.TotalItems)
	}
}

func TestAggregate_SentinelBuckets(t *testing.T) {
	items := []models.Item{
		{ID: 1, Status: models.StatusApproved, AccountingValue: fptr(100)},
		testItem(2, matrizID, "Matriz", 50, models.StatusApproved),
	}

	snap := AggregateAt(items, testNow)

	if snap.ValueByBranch[NoBranchLabel] != 100 {
		t.Errorf("expected the unresolved branch in the sentinel bucket, got %v", snap.ValueByBranch)
	}
	if snap.CountByCategory[NoCategoryLabel] != 2 {
		t.Errorf("expected both items in the category sentinel bucket, got %v", snap.CountByCategory)
	}
}

func TestAggregate_CategoryNamePrefersRelational(t *testing.T) {
	items := []models.Item{
		{ID: 1, Status: models.StatusApproved, AccountingValue: fptr(10),
			Category: "it-legacy", CategoryRel: category(3, "IT Equipment")},
		{ID: 2, Status: models.StatusApproved, AccountingValue: fptr(20),
			Category: "Vehicles"},
	}

	snap := AggregateAt(items, testNow)

	if snap.ValueByCategory["IT Equipment"] != 10 {
		t.Errorf("expected relational name to win, got %v", snap.ValueByCategory)
	}
	if snap.ValueByCategory["Vehicles"] != 20 {
		t.Errorf("expected legacy name fallback, got %v", snap.ValueByCategory)
	}
}

func TestAggregate_AverageAssetAge(t *testing.T) {
	items := []models.Item{
		{ID: 1, Status: models.StatusApproved, PurchaseDate: dptr(testNow.AddDate(0, 0, -61))}, // ~2 months
		{ID: 2, Status: models.StatusApproved},                                                 // no date: excluded
		{ID: 3, Status: models.StatusApproved, PurchaseDate: dptr(testNow.AddDate(0, 0, 30))},  // future: excluded
	}

	snap := AggregateAt(items, testNow)

	expected := 61.0 / 30.44
	if diff := snap.AverageAssetAgeMonths - expected; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("expected average age %v months over the single aged item, got %v", expected, snap.AverageAssetAgeMonths)
	}
}

func TestAggregate_TopItems(t *testing.T) {
	items := []models.Item{
		{ID: 1, AccountingValue: fptr(100), Status: models.StatusApproved},
		{ID: 2, AccountingValue: fptr(300), Status: models.StatusApproved},
		{ID: 3, AccountingValue: fptr(100), Status: models.StatusApproved}, // tie with item 1
		{ID: 4, Status: models.StatusApproved},                            // absent value sorts as 0
	}

	snap := AggregateAt(items, testNow)

	var ids []int
	for _, item := range snap.TopItems {
		ids = append(ids, item.ID)
	}
	expected := []int{2, 1, 3, 4} // ties keep original relative order
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("expected top order %v, got %v", expected, ids)
	}
}

func TestAggregate_RecentItemsAndTruncation(t *testing.T) {
	var items []models.Item
	for id := 1; id <= 15; id++ {
		items = append(items, models.Item{ID: id, Status: models.StatusApproved})
	}

	snap := AggregateAt(items, testNow)

	if len(snap.TopItems) != 10 || len(snap.RecentItems) != 10 {
		t.Fatalf("expected both rankings truncated to 10, got %d and %d", len(snap.TopItems), len(snap.RecentItems))
	}
	for i, item := range snap.RecentItems {
		if item.ID != 15-i {
			t.Fatalf("expected id-descending order, got %d at position %d", item.ID, i)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	items := append(scenarioItems(),
		models.Item{ID: 4, Status: models.StatusWriteOffPending, AccountingValue: fptr(250),
			PurchaseDate: dptr(day(2024, time.March, 10))},
	)

	first := AggregateAt(items, testNow)
	second := AggregateAt(items, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Error("aggregating identical inputs twice produced different snapshots")
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	snap := AggregateAt(nil, testNow)

	if snap.TotalItems != 0 || snap.TotalValue != 0 || snap.AverageAssetAgeMonths != 0 {
		t.Errorf("expected zero totals for empty input, got %+v", snap)
	}
	if len(snap.TopItems) != 0 || len(snap.RecentItems) != 0 || len(snap.Evolution) != 0 {
		t.Errorf("expected empty rankings and series, got %+v", snap)
	}
}

func TestAggregate_PendingStatuses(t *testing.T) {
	items := []models.Item{
		{ID: 1, Status: models.StatusPending, AccountingValue: fptr(1)},
		{ID: 2, Status: models.StatusWriteOffPending, AccountingValue: fptr(2)},
		{ID: 3, Status: models.StatusTransferPending, AccountingValue: fptr(4)},
		{ID: 4, Status: models.StatusApproved, AccountingValue: fptr(8)},
		{ID: 5, Status: models.StatusWrittenOff, AccountingValue: fptr(16)},
		{ID: 6, Status: models.StatusRejected, AccountingValue: fptr(32)},
	}

	snap := AggregateAt(items, testNow)

	if snap.PendingCount != 3 {
		t.Errorf("expected 3 pending items, got %d", snap.PendingCount)
	}
	if snap.PendingValue != 7 {
		t.Errorf("expected pending value 7, got %v", snap.PendingValue)
	}
}
