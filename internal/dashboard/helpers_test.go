package dashboard

import (
	"time"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

func fptr(v float64) *float64 { return &v }

func dptr(t time.Time) *time.Time { return &t }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func branch(id int, name string) *models.Branch {
	return &models.Branch{ID: id, Name: name}
}

func category(id int, name string) *models.Category {
	return &models.Category{ID: id, Name: name}
}

// testItem builds an item with a resolved branch and an explicit
// accounting value, the common case in these tests.
func testItem(id, branchID int, branchName string, value float64, status models.Status) models.Item {
	return models.Item{
		ID:              id,
		Description:     "Item",
		BranchID:        branchID,
		Branch:          branch(branchID, branchName),
		Status:          status,
		AccountingValue: fptr(value),
	}
}

const (
	matrizID   = 1
	filialSPID = 2
)

// scenarioItems is the three-item population used by the KPI scenarios:
// two items in Matriz (one approved, one pending) and one pending item in
// Filial SP.
func scenarioItems() []models.Item {
	return []models.Item{
		testItem(1, matrizID, "Matriz", 1000, models.StatusApproved),
		testItem(2, matrizID, "Matriz", 500, models.StatusPending),
		testItem(3, filialSPID, "Filial SP", 2000, models.StatusPending),
	}
}
